// Package storetest provides an in-memory store.TxRunner for tests that script results per statement
package storetest

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"botdesk/internal/platform/store"
)

// Call is one recorded statement
type Call struct {
	SQL  string
	Args []any
}

// DB records statements and answers them through the On* hooks.
// Tx runs fn against the same DB; a failing fn counts as a rollback
type DB struct {
	mu        sync.Mutex
	calls     []Call
	Txs       int
	Rollbacks int

	// OnExec returns rows affected for a write; nil means 1 row, no error
	OnExec func(sql string, args []any) (int64, error)

	// OnQuery returns the result rows for a read; nil means no rows
	OnQuery func(sql string, args []any) ([][]any, error)

	// PingErr is returned by Ping
	PingErr error
}

var _ store.TxRunner = (*DB)(nil)

// Calls returns a copy of every statement seen so far
func (d *DB) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// Saw reports whether any recorded statement contains fragment
func (d *DB) Saw(fragment string) bool {
	for _, c := range d.Calls() {
		if strings.Contains(c.SQL, fragment) {
			return true
		}
	}
	return false
}

func (d *DB) record(sql string, args []any) {
	d.mu.Lock()
	d.calls = append(d.calls, Call{SQL: sql, Args: args})
	d.mu.Unlock()
}

// Exec implements store.RowQuerier
func (d *DB) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	d.record(sql, args)
	if d.OnExec == nil {
		return Tag(1), nil
	}
	n, err := d.OnExec(sql, args)
	return Tag(n), err
}

// Query implements store.RowQuerier
func (d *DB) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	d.record(sql, args)
	if d.OnQuery == nil {
		return &Rows{}, nil
	}
	data, err := d.OnQuery(sql, args)
	if err != nil {
		return nil, err
	}
	return &Rows{Data: data}, nil
}

// QueryRow implements store.RowQuerier; no rows scans to store.ErrNoRows
func (d *DB) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	rs, err := d.Query(ctx, sql, args...)
	if err != nil {
		return errRow{err: err}
	}
	r := rs.(*Rows)
	if len(r.Data) == 0 {
		return errRow{err: store.ErrNoRows}
	}
	return valueRow(r.Data[0])
}

// Tx implements store.TxRunner
func (d *DB) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	d.mu.Lock()
	d.Txs++
	d.mu.Unlock()
	if err := fn(d); err != nil {
		d.mu.Lock()
		d.Rollbacks++
		d.mu.Unlock()
		return err
	}
	return nil
}

// Ping satisfies store.Pinger
func (d *DB) Ping(context.Context) error { return d.PingErr }

// Tag is a CommandTag with a fixed row count
type Tag int64

// String mimics the postgres tag text
func (t Tag) String() string { return fmt.Sprintf("UPDATE %d", int64(t)) }

// RowsAffected implements store.CommandTag
func (t Tag) RowsAffected() int64 { return int64(t) }

// Rows iterates scripted data
type Rows struct {
	Data [][]any
	Cols []string
	i    int
}

// Next implements store.Rows
func (r *Rows) Next() bool {
	if r.i >= len(r.Data) {
		return false
	}
	r.i++
	return true
}

// Scan implements store.Rows
func (r *Rows) Scan(dest ...any) error {
	if r.i == 0 || r.i > len(r.Data) {
		return fmt.Errorf("storetest: scan without row")
	}
	return assignAll(r.Data[r.i-1], dest)
}

// Err implements store.Rows
func (r *Rows) Err() error { return nil }

// Close implements store.Rows
func (r *Rows) Close() {}

// Columns implements store.Rows
func (r *Rows) Columns() []string { return r.Cols }

type errRow struct{ err error }

func (e errRow) Scan(...any) error { return e.err }

type valueRow []any

func (v valueRow) Scan(dest ...any) error { return assignAll(v, dest) }

func assignAll(src []any, dest []any) error {
	if len(src) != len(dest) {
		return fmt.Errorf("storetest: %d values for %d targets", len(src), len(dest))
	}
	for i := range dest {
		if err := assign(dest[i], src[i]); err != nil {
			return fmt.Errorf("storetest: column %d: %w", i, err)
		}
	}
	return nil
}

// assign copies v into the pointer dst, converting where reflect allows.
// A nil v zeroes dst, which also covers nullable pointer targets
func assign(dst, v any) error {
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("target %T is not a pointer", dst)
	}
	el := dv.Elem()
	if v == nil {
		el.Set(reflect.Zero(el.Type()))
		return nil
	}
	sv := reflect.ValueOf(v)
	switch {
	case sv.Type().AssignableTo(el.Type()):
		el.Set(sv)
	case sv.Type().ConvertibleTo(el.Type()):
		el.Set(sv.Convert(el.Type()))
	case el.Kind() == reflect.Pointer && sv.Type().AssignableTo(el.Type().Elem()):
		p := reflect.New(el.Type().Elem())
		p.Elem().Set(sv)
		el.Set(p)
	default:
		return fmt.Errorf("cannot assign %T to %s", v, el.Type())
	}
	return nil
}
