// Package repo provides the Discord bot repository implementation
package repo

import (
	"context"
	"embed"

	"botdesk/internal/modkit/repokit"
	perr "botdesk/internal/platform/errors"
	"botdesk/internal/platform/store"
	"botdesk/internal/platform/store/sqlset"
	"botdesk/internal/services/api/bots/domain"
)

//go:embed queries.sql
var files embed.FS

var sqls = sqlset.MustLoad(files, ".")

// Repo is the bot persistence surface used by the service layer
type Repo interface {
	List(ctx context.Context) ([]domain.Record, error)
	Get(ctx context.Context, id int64) (domain.Record, error)
	Insert(ctx context.Context, name string, enabled bool, token string) (int64, error)
	Update(ctx context.Context, id int64, name string, enabled bool) error
	RotateToken(ctx context.Context, id int64, token string) error
	// DeletePersonas removes personas referenced by the bot's configs whose name starts with prefix
	DeletePersonas(ctx context.Context, id int64, prefix string) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type (
	// PG is a Postgres implementation of the bots repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) List(ctx context.Context) ([]domain.Record, error) {
	rows, err := r.q.Query(ctx, sqls.Q("list-bots"))
	if err != nil {
		return nil, perr.FromPostgres(err, "list discord bots")
	}
	defer rows.Close()

	out := []domain.Record{}
	for rows.Next() {
		rec, err := scanBot(rows)
		if err != nil {
			return nil, perr.FromPostgres(err, "scan discord bot")
		}
		out = append(out, rec)
	}
	return out, perr.FromPostgres(rows.Err(), "list discord bots")
}

func (r *queries) Get(ctx context.Context, id int64) (domain.Record, error) {
	rec, err := scanBot(r.q.QueryRow(ctx, sqls.Q("get-bot"), id))
	if store.IsNoRows(err) {
		return domain.Record{}, perr.NotFoundf("discord bot %d not found", id)
	}
	return rec, perr.FromPostgres(err, "load discord bot")
}

func (r *queries) Insert(ctx context.Context, name string, enabled bool, token string) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, sqls.Q("insert-bot"), name, enabled, token).Scan(&id)
	if perr.IsDuplicateKey(err) {
		return 0, perr.WithField(perr.DuplicateKeyf("a discord bot with this token already exists"), "bot_token")
	}
	return id, perr.FromPostgres(err, "insert discord bot")
}

func (r *queries) Update(ctx context.Context, id int64, name string, enabled bool) error {
	tag, err := r.q.Exec(ctx, sqls.Q("update-bot"), id, name, enabled)
	return repokit.Affected(tag, perr.FromPostgres(err, "update discord bot"), "discord bot")
}

func (r *queries) RotateToken(ctx context.Context, id int64, token string) error {
	tag, err := r.q.Exec(ctx, sqls.Q("rotate-token"), id, token)
	if perr.IsDuplicateKey(err) {
		return perr.WithField(perr.DuplicateKeyf("a discord bot with this token already exists"), "bot_token")
	}
	return repokit.Affected(tag, perr.FromPostgres(err, "rotate discord bot token"), "discord bot")
}

func (r *queries) DeletePersonas(ctx context.Context, id int64, prefix string) (int64, error) {
	tag, err := r.q.Exec(ctx, sqls.Q("delete-bot-personas"), id, prefix)
	if err != nil {
		return 0, perr.FromPostgres(err, "delete bot personas")
	}
	return tag.RowsAffected(), nil
}

func (r *queries) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, sqls.Q("delete-bot"), id)
	return repokit.Affected(tag, perr.FromPostgres(err, "delete discord bot"), "discord bot")
}

func scanBot(row store.Row) (domain.Record, error) {
	var rec domain.Record
	err := row.Scan(&rec.ID, &rec.Name, &rec.Enabled, &rec.Token, &rec.TokenRotatedAt, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}
