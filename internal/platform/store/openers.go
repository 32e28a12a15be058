package store

import (
	"context"
	"fmt"
	"time"

	"botdesk/internal/platform/store/pg"
)

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
	backoffStart          = 150 * time.Millisecond
	backoffCeiling        = 2 * time.Second
)

// openPG builds the pool and holds boot until postgres answers
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	pool, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		AppName:  cfg.AppName,
		LogAll:   cfg.PG.LogSQL,
		Slow:     time.Duration(cfg.PG.SlowQueryMs) * time.Millisecond,
	}, s.Log)
	if err != nil {
		return nil, err
	}

	if err := waitReady(ctx, pool.Ping, cfg.PG, s); err != nil {
		pool.Close()
		return nil, err
	}
	return pgxRunner{querier: querier{pool}, pool: pool}, nil
}

// waitReady pings with a doubling backoff; compose and k8s start the api before postgres accepts
func waitReady(ctx context.Context, ping func(context.Context) error, cfg PGConfig, s *Store) error {
	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = defaultConnectRetries
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	wait := backoffStart
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = ping(pctx)
		cancel()
		if err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		s.Log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("postgres not ready")
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait = min(wait*2, backoffCeiling)
	}
	return fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, err)
}
