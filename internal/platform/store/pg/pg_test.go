package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func TestOpen_BadURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "://nope"}, zerolog.Nop()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestOpen_AppliesConfig(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantTracer bool
	}{
		{name: "plain", cfg: Config{}},
		{name: "slow only", cfg: Config{Slow: 250 * time.Millisecond}, wantTracer: true},
		{name: "log all", cfg: Config{LogAll: true}, wantTracer: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var got *pgxpool.Config
			orig := newPool
			newPool = func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
				got = c
				return nil, errors.New("no server in unit tests")
			}
			defer func() { newPool = orig }()

			cfg := tc.cfg
			cfg.URL = "postgres://u:p@localhost:5432/botdesk"
			cfg.MaxConns = 7
			cfg.AppName = "botdesk-api"
			if _, err := Open(context.Background(), cfg, zerolog.Nop()); err == nil {
				t.Fatal("expected the pool seam error")
			}
			if got == nil {
				t.Fatal("pool constructor not called")
			}
			if got.MaxConns != 7 {
				t.Fatalf("MaxConns = %d", got.MaxConns)
			}
			if got.ConnConfig.RuntimeParams["application_name"] != "botdesk-api" {
				t.Fatalf("application_name = %q", got.ConnConfig.RuntimeParams["application_name"])
			}
			if (got.ConnConfig.Tracer != nil) != tc.wantTracer {
				t.Fatalf("tracer installed = %v, want %v", got.ConnConfig.Tracer != nil, tc.wantTracer)
			}
		})
	}
}
