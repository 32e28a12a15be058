// Package migrate applies embedded, checksummed SQL migrations through a store.TxRunner
package migrate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	perr "botdesk/internal/platform/errors"
	"botdesk/internal/platform/logger"
	"botdesk/internal/platform/store"
)

// Table tracks applied migrations
const Table = "schema_migrations"

// Migration is one parsed .sql file
type Migration struct {
	ID       string
	Checksum string
	SQL      string
}

// Status reports one migration against the tracking table
type Status struct {
	ID          string     `json:"id"`
	Checksum    string     `json:"checksum"`
	Applied     bool       `json:"applied"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
	ExecutionMs int64      `json:"execution_ms,omitempty"`
}

// Parse reads every .sql file under dir in fsys, ordered by file name
func Parse(fsys fs.FS, dir string) ([]Migration, error) {
	var out []Migration
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".sql" {
			return nil
		}
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		sum := sha256.Sum256(b)
		out = append(out, Migration{
			ID:       path.Base(p),
			Checksum: hex.EncodeToString(sum[:]),
			SQL:      string(b),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Statements splits a migration body on ';' and drops blanks and comment-only chunks
func Statements(body string) []string {
	var out []string
	for _, raw := range strings.Split(body, ";") {
		stmt := stripComments(raw)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

func stripComments(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "--") {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return strings.TrimSpace(b.String())
}

// Up applies every pending migration, each in its own transaction with its bookkeeping row.
// Applied migrations whose checksum changed, or that vanished from fsys, abort the run
func Up(ctx context.Context, db store.TxRunner, fsys fs.FS, dir string) error {
	log := logger.Named("migrate")

	migs, err := Parse(fsys, dir)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "parse migrations")
	}
	if err := ensureTable(ctx, db); err != nil {
		return perr.FromPostgres(err, "create migrations table")
	}
	applied, err := appliedSet(ctx, db)
	if err != nil {
		return perr.FromPostgres(err, "read applied migrations")
	}
	if err := verify(migs, applied); err != nil {
		return err
	}

	for _, m := range migs {
		if _, ok := applied[m.ID]; ok {
			continue
		}
		start := time.Now()
		err := db.Tx(ctx, func(q store.RowQuerier) error {
			for _, stmt := range Statements(m.SQL) {
				if _, err := q.Exec(ctx, stmt); err != nil {
					return fmt.Errorf("%s: %w", m.ID, err)
				}
			}
			_, err := q.Exec(ctx,
				`INSERT INTO `+Table+` (migration_id, checksum, applied_at, execution_ms) VALUES ($1, $2, now(), $3)`,
				m.ID, m.Checksum, time.Since(start).Milliseconds(),
			)
			return err
		})
		if err != nil {
			return perr.FromPostgresf(err, "apply migration %s", m.ID)
		}
		log.Info().Str("migration", m.ID).Dur("took", time.Since(start)).Msg("migration applied")
	}
	return nil
}

// Report lists every known migration with its applied state
func Report(ctx context.Context, db store.TxRunner, fsys fs.FS, dir string) ([]Status, error) {
	migs, err := Parse(fsys, dir)
	if err != nil {
		return nil, err
	}
	if err := ensureTable(ctx, db); err != nil {
		return nil, perr.FromPostgres(err, "create migrations table")
	}
	applied, err := appliedSet(ctx, db)
	if err != nil {
		return nil, perr.FromPostgres(err, "read applied migrations")
	}
	out := make([]Status, 0, len(migs))
	for _, m := range migs {
		if s, ok := applied[m.ID]; ok {
			out = append(out, s)
			continue
		}
		out = append(out, Status{ID: m.ID, Checksum: m.Checksum})
	}
	return out, nil
}

func verify(migs []Migration, applied map[string]Status) error {
	want := make(map[string]string, len(migs))
	for _, m := range migs {
		want[m.ID] = m.Checksum
	}
	for id, s := range applied {
		sum, ok := want[id]
		if !ok {
			return perr.Conflictf("migration %s is applied but not embedded", id)
		}
		if sum != s.Checksum {
			return perr.Conflictf("checksum mismatch for migration %s", id)
		}
	}
	return nil
}

func ensureTable(ctx context.Context, db store.RowQuerier) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS `+Table+` (
			migration_id TEXT PRIMARY KEY,
			checksum     TEXT NOT NULL,
			applied_at   TIMESTAMPTZ NOT NULL,
			execution_ms BIGINT NOT NULL
		)`)
	return err
}

func appliedSet(ctx context.Context, db store.RowQuerier) (map[string]Status, error) {
	rows, err := db.Query(ctx, `SELECT migration_id, checksum, applied_at, execution_ms FROM `+Table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]Status{}
	for rows.Next() {
		var s Status
		var at time.Time
		if err := rows.Scan(&s.ID, &s.Checksum, &at, &s.ExecutionMs); err != nil {
			return nil, err
		}
		s.Applied = true
		s.AppliedAt = &at
		out[s.ID] = s
	}
	return out, rows.Err()
}
