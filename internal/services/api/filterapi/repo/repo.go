// Package repo reads the search catalog used to validate filter members
package repo

import (
	"context"
	"embed"

	"botdesk/internal/core/filters"
	"botdesk/internal/core/sources"
	"botdesk/internal/modkit/repokit"
	perr "botdesk/internal/platform/errors"
	"botdesk/internal/platform/store/sqlset"
)

//go:embed queries.sql
var files embed.FS

var sqls = sqlset.MustLoad(files, ".")

// Repo is the catalog read surface
type Repo interface {
	Sources(ctx context.Context) ([]sources.ID, error)
	DocumentSets(ctx context.Context) ([]string, error)
	Tags(ctx context.Context) ([]filters.Tag, error)
}

type (
	// PG is a Postgres implementation of the catalog repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Sources lists the source kinds of enabled connectors
func (r *queries) Sources(ctx context.Context) ([]sources.ID, error) {
	names, err := r.strings(ctx, "connector-sources")
	if err != nil {
		return nil, perr.FromPostgres(err, "list connector sources")
	}
	out := make([]sources.ID, 0, len(names))
	for _, n := range names {
		out = append(out, sources.ID(n))
	}
	return out, nil
}

// DocumentSets lists document set names
func (r *queries) DocumentSets(ctx context.Context) ([]string, error) {
	out, err := r.strings(ctx, "document-set-names")
	return out, perr.FromPostgres(err, "list document sets")
}

// Tags lists every tag
func (r *queries) Tags(ctx context.Context) ([]filters.Tag, error) {
	rows, err := r.q.Query(ctx, sqls.Q("tags"))
	if err != nil {
		return nil, perr.FromPostgres(err, "list tags")
	}
	defer rows.Close()

	out := []filters.Tag{}
	for rows.Next() {
		var (
			t   filters.Tag
			src string
		)
		if err := rows.Scan(&t.Key, &t.Value, &src); err != nil {
			return nil, perr.FromPostgres(err, "scan tag")
		}
		t.Source = sources.ID(src)
		out = append(out, t)
	}
	return out, perr.FromPostgres(rows.Err(), "list tags")
}

func (r *queries) strings(ctx context.Context, name string) ([]string, error) {
	rows, err := r.q.Query(ctx, sqls.Q(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
