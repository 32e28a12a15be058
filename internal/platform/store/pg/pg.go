// Package pg opens the pgx pool behind the store and traces its statements
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"botdesk/internal/platform/logger"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32

	// AppName is reported to the server as application_name
	AppName string

	// LogAll logs every statement; statements slower than Slow are logged either way
	LogAll bool
	Slow   time.Duration
}

// newPool is swapped in tests so Open can run without a server
var newPool = pgxpool.NewWithConfig

// Open parses cfg and creates the pool; the first connection is made lazily
func Open(ctx context.Context, cfg Config, log logger.Logger) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.LogAll || cfg.Slow > 0 {
		pcfg.ConnConfig.Tracer = NewTracer(log, cfg.Slow, cfg.LogAll)
	}
	return newPool(ctx, pcfg)
}
