// Package repo provides the channel config repository implementation
package repo

import (
	"context"
	"embed"
	"encoding/json"

	"botdesk/internal/modkit/repokit"
	perr "botdesk/internal/platform/errors"
	"botdesk/internal/platform/store"
	"botdesk/internal/platform/store/sqlset"
	"botdesk/internal/services/api/channels/domain"
)

//go:embed queries.sql
var files embed.FS

var sqls = sqlset.MustLoad(files, ".")

// Repo is the channel config persistence surface used by the service layer
type Repo interface {
	BotName(ctx context.Context, botID int64) (string, error)

	List(ctx context.Context) ([]domain.Config, error)
	ListByBot(ctx context.Context, botID int64) ([]domain.Config, error)
	Get(ctx context.Context, id int64) (domain.Config, error)
	Insert(ctx context.Context, row domain.Row) (int64, error)
	Update(ctx context.Context, id int64, row domain.Row) error
	Delete(ctx context.Context, id int64) error

	Persona(ctx context.Context, id int64) (domain.Persona, error)
	// UpsertPersona creates the named persona, or renames existing when set, and replaces its document sets
	UpsertPersona(ctx context.Context, existing *int64, name string, documentSets []int64) (int64, error)
	DeletePersona(ctx context.Context, id int64) error
}

type (
	// PG is a Postgres implementation of the channels repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) BotName(ctx context.Context, botID int64) (string, error) {
	var name string
	err := r.q.QueryRow(ctx, sqls.Q("bot-name"), botID).Scan(&name)
	if store.IsNoRows(err) {
		return "", perr.NotFoundf("discord bot %d not found", botID)
	}
	return name, perr.FromPostgres(err, "load discord bot")
}

func (r *queries) List(ctx context.Context) ([]domain.Config, error) {
	return r.list(ctx, sqls.Q("list-configs"))
}

func (r *queries) ListByBot(ctx context.Context, botID int64) ([]domain.Config, error) {
	return r.list(ctx, sqls.Q("list-configs-by-bot"), botID)
}

func (r *queries) list(ctx context.Context, sql string, args ...any) ([]domain.Config, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "list channel configs")
	}
	defer rows.Close()

	out := []domain.Config{}
	for rows.Next() {
		c, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, perr.FromPostgres(rows.Err(), "list channel configs")
}

func (r *queries) Get(ctx context.Context, id int64) (domain.Config, error) {
	c, err := scanConfig(r.q.QueryRow(ctx, sqls.Q("get-config"), id))
	if store.IsNoRows(perr.Root(err)) {
		return domain.Config{}, perr.NotFoundf("channel config %d not found", id)
	}
	return c, err
}

func (r *queries) Insert(ctx context.Context, row domain.Row) (int64, error) {
	doc, err := json.Marshal(row.ChannelConfig)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeUnknown, "encode channel config")
	}
	var id int64
	err = r.q.QueryRow(ctx, sqls.Q("insert-config"), row.BotID, row.PersonaID, doc, row.EnableAutoFilters).Scan(&id)
	return id, perr.FromPostgres(err, "insert channel config")
}

func (r *queries) Update(ctx context.Context, id int64, row domain.Row) error {
	doc, err := json.Marshal(row.ChannelConfig)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "encode channel config")
	}
	tag, err := r.q.Exec(ctx, sqls.Q("update-config"), id, row.PersonaID, doc, row.EnableAutoFilters)
	return repokit.Affected(tag, perr.FromPostgres(err, "update channel config"), "channel config")
}

func (r *queries) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, sqls.Q("delete-config"), id)
	return repokit.Affected(tag, perr.FromPostgres(err, "delete channel config"), "channel config")
}

func (r *queries) Persona(ctx context.Context, id int64) (domain.Persona, error) {
	var p domain.Persona
	err := r.q.QueryRow(ctx, sqls.Q("get-persona"), id).Scan(&p.ID, &p.Name)
	if store.IsNoRows(err) {
		return domain.Persona{}, perr.NotFoundf("persona %d not found", id)
	}
	return p, perr.FromPostgres(err, "load persona")
}

func (r *queries) UpsertPersona(ctx context.Context, existing *int64, name string, documentSets []int64) (int64, error) {
	var id int64
	if existing != nil {
		id = *existing
		tag, err := r.q.Exec(ctx, sqls.Q("rename-persona"), id, name)
		if err := repokit.Affected(tag, perr.FromPostgres(err, "rename persona"), "persona"); err != nil {
			return 0, err
		}
	} else if err := r.q.QueryRow(ctx, sqls.Q("insert-persona"), name).Scan(&id); err != nil {
		return 0, perr.FromPostgres(err, "insert persona")
	}

	if _, err := r.q.Exec(ctx, sqls.Q("clear-persona-document-sets"), id); err != nil {
		return 0, perr.FromPostgres(err, "clear persona document sets")
	}
	if len(documentSets) > 0 {
		if _, err := r.q.Exec(ctx, sqls.Q("link-persona-document-sets"), id, documentSets); err != nil {
			return 0, perr.FromPostgres(err, "link persona document sets")
		}
	}
	return id, nil
}

func (r *queries) DeletePersona(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, sqls.Q("delete-persona"), id)
	return perr.FromPostgres(err, "delete persona")
}

func scanConfig(row store.Row) (domain.Config, error) {
	var (
		c   domain.Config
		doc []byte
	)
	if err := row.Scan(&c.ID, &c.BotID, &c.PersonaID, &doc, &c.EnableAutoFilters, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if store.IsNoRows(err) {
			return c, err
		}
		return c, perr.FromPostgres(err, "scan channel config")
	}
	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &c.ChannelConfig); err != nil {
			return c, perr.Wrap(err, perr.ErrorCodeDB, "decode channel config")
		}
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}
