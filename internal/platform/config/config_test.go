package config

import (
	"testing"
	"time"
)

func TestMay(t *testing.T) {
	c := FromMap(map[string]string{
		"SERVICE_PGSQL_MAX_CONNS": " 8 ",
		"SERVICE_PGSQL_SLOW_MS":   "fast",
		"SERVICE_PGSQL_LOG_SQL":   "true",
		"CORE_API_SWAGGER":        "nope",
		"FILTERS_CATALOG_TTL":     "2m",
		"FILTERS_BAD_TTL":         "2 minutes",
	})
	pg := c.Prefix("SERVICE_PGSQL_")
	api := c.Prefix("CORE_API_")
	filters := c.Prefix("FILTERS_")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"int", pg.MayInt("MAX_CONNS", 4), 8},
		{"bad int falls back", pg.MayInt("SLOW_MS", 500), 500},
		{"bool", pg.MayBool("LOG_SQL", false), true},
		{"bad bool falls back", api.MayBool("SWAGGER", true), true},
		{"missing bool", api.MayBool("PROFILER", false), false},
		{"duration", filters.MayDuration("CATALOG_TTL", 30*time.Second), 2 * time.Minute},
		{"bad duration falls back", filters.MayDuration("BAD_TTL", 30*time.Second), 30 * time.Second},
		{"string default", api.MayString("ADMIN_TOKEN", ""), ""},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestMustString(t *testing.T) {
	c := FromMap(map[string]string{"SERVICE_PGSQL_DBURL": "postgres://localhost/botdesk", "SERVICE_PGSQL_BLANK": "  "}).Prefix("SERVICE_PGSQL_")

	if got := c.MustString("DBURL"); got != "postgres://localhost/botdesk" {
		t.Fatalf("MustString = %q", got)
	}
	for _, key := range []string{"MISSING", "BLANK"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("MustString(%q) did not panic", key)
				}
			}()
			_ = c.MustString(key)
		}()
	}
}

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("CORE_API_PORT", "4100")
	if got := New().Prefix("CORE_API_").MayString("PORT", ":4000"); got != "4100" {
		t.Fatalf("MayString = %q", got)
	}
}
