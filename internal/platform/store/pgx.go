package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxConn is the statement surface shared by *pgxpool.Pool and pgx.Tx
type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier narrows a pgx connection to RowQuerier
type querier struct{ c pgxConn }

func (q querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	tag, err := q.c.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (q querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := q.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgxRows{rows}, nil
}

func (q querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return q.c.QueryRow(ctx, sql, args...)
}

// pgxRows adds Columns on top of pgx.Rows
type pgxRows struct{ pgx.Rows }

func (r pgxRows) Columns() []string {
	fds := r.FieldDescriptions()
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Name
	}
	return out
}

// pgxRunner is the pool backed TxRunner the store hands to repos
type pgxRunner struct {
	querier
	pool *pgxpool.Pool
}

// Tx commits when fn returns nil and rolls back otherwise
func (r pgxRunner) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(querier{tx})
	})
}

func (r pgxRunner) Ping(ctx context.Context) error { return r.pool.Ping(ctx) }

func (r pgxRunner) Close() error {
	r.pool.Close()
	return nil
}
