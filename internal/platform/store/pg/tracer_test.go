package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// clock returns a now func that advances by step on every call
func clock(step time.Duration) func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func trace(tr *Tracer, sql string, args []any, err error) {
	ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: sql, Args: args})
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("INSERT 0 1"), Err: err})
}

func TestTracer_Levels(t *testing.T) {
	tests := []struct {
		name  string
		all   bool
		slow  time.Duration
		step  time.Duration
		err   error
		level string // empty means nothing logged
	}{
		{name: "fast and quiet", slow: time.Second, step: time.Millisecond},
		{name: "fast with log all", all: true, slow: time.Second, step: time.Millisecond, level: "info"},
		{name: "slow", slow: 10 * time.Millisecond, step: 20 * time.Millisecond, level: "warn"},
		{name: "slow error", slow: 10 * time.Millisecond, step: 20 * time.Millisecond, err: errors.New("boom"), level: "error"},
		{name: "error with log all", all: true, step: time.Millisecond, err: errors.New("boom"), level: "error"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tr := NewTracer(zerolog.New(&buf), tc.slow, tc.all)
			tr.now = clock(tc.step)

			trace(tr, "INSERT INTO discord_bot\n\t(name, discord_bot_token)\n\tVALUES ($1, $2)", []any{"helpdesk", "super-secret-token"}, tc.err)

			if tc.level == "" {
				if buf.Len() != 0 {
					t.Fatalf("expected no output, got %s", buf.String())
				}
				return
			}
			var line map[string]any
			if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
				t.Fatalf("bad log line %q: %v", buf.String(), err)
			}
			if line["level"] != tc.level {
				t.Fatalf("level = %v, want %s", line["level"], tc.level)
			}
			if line["sql"] != "INSERT INTO discord_bot (name, discord_bot_token) VALUES ($1, $2)" {
				t.Fatalf("sql = %v", line["sql"])
			}
			if line["args"] != float64(2) || line["component"] != "pg" {
				t.Fatalf("unexpected fields: %v", line)
			}
			if strings.Contains(buf.String(), "super-secret-token") {
				t.Fatal("argument values must not be logged")
			}
		})
	}
}

func TestTracer_EndWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(zerolog.New(&buf), 0, true)
	tr.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %s", buf.String())
	}
}
