package store

import (
	"context"
	stdsql "database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

// Row is one scanned result
type Row interface {
	Scan(dest ...any) error
}

// Rows walks a result set; Close must be called
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a write did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs statements on a pool or inside a tx
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also open a tx; fn's error rolls it back
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger answers readiness probes
type Pinger interface{ Ping(context.Context) error }

// ErrNoRows is what Row.Scan returns when nothing matched
var ErrNoRows = pgx.ErrNoRows

// IsNoRows matches both the pgx and database/sql sentinels
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, stdsql.ErrNoRows)
}
