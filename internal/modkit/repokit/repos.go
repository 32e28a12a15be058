// Package repokit is the seam between services and the store
package repokit

import (
	perr "botdesk/internal/platform/errors"
	"botdesk/internal/platform/store"
)

type (
	// Queryer is what a bound repo runs its statements on, a pool or a tx
	Queryer = store.RowQuerier
	// TxRunner opens the transactions services work in
	TxRunner = store.TxRunner
	// Row is a single row result
	Row = store.Row
	// Rows is a result set
	Rows = store.Rows
	// CommandTag reports what a write touched
	CommandTag = store.CommandTag
)

// Affected turns a write that touched no rows into a not found error
func Affected(tag CommandTag, err error, what string) error {
	if err != nil {
		return err
	}
	if tag == nil || tag.RowsAffected() == 0 {
		return perr.NotFoundf("%s not found", what)
	}
	return nil
}
