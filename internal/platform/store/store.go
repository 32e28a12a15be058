// Package store opens the database the API modules run on
package store

import (
	"context"
	"errors"

	"botdesk/internal/platform/logger"
)

// Store holds the opened backends. A zero Store has none
type Store struct {
	Log logger.Logger

	// PG is nil unless Config.PG.Enabled
	PG TxRunner
}

// Option is applied before any backend opens
type Option func(*Store) error

// WithLogger routes connection and query logs to l
func WithLogger(l logger.Logger) Option {
	return func(s *Store) error {
		s.Log = l
		return nil
	}
}

// Open connects every enabled backend, waiting for each to answer a ping
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: logger.Named("store").With().Logger()}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		db, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = db
	}
	return s, nil
}

// Close releases every open backend
func (s *Store) Close(context.Context) error {
	var errs []error
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
