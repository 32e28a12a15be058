// Package sqlset loads named SQL queries from embedded .sql files
//
// Files use the dotsql header convention:
//
//	-- name: get-bot
//	SELECT ... WHERE id = $1;
package sqlset

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/qustavo/dotsql"
)

// Set is an immutable collection of named queries
type Set struct {
	dot *dotsql.DotSql
}

// Load concatenates every .sql file under dir and parses the named queries
func Load(fsys fs.FS, dir string) (*Set, error) {
	var b strings.Builder
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".sql" {
			return nil
		}
		body, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		b.Write(body)
		b.WriteByte('\n')
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sqlset: load: %w", err)
	}
	dot, err := dotsql.LoadFromString(b.String())
	if err != nil {
		return nil, fmt.Errorf("sqlset: parse: %w", err)
	}
	return &Set{dot: dot}, nil
}

// MustLoad is Load for package level vars; it panics on a broken embed
func MustLoad(fsys fs.FS, dir string) *Set {
	s, err := Load(fsys, dir)
	if err != nil {
		panic(err)
	}
	return s
}

// Raw returns the SQL text for name
func (s *Set) Raw(name string) (string, error) {
	q, err := s.dot.Raw(name)
	if err != nil {
		return "", fmt.Errorf("sqlset: query %q not found", name)
	}
	return q, nil
}

// Q returns the SQL text for name and panics when it is missing.
// Repos call it with literal names, so a miss is a programming error
func (s *Set) Q(name string) string {
	q, err := s.Raw(name)
	if err != nil {
		panic(err)
	}
	return q
}

// Names lists the loaded query names in sorted order
func (s *Set) Names() []string {
	m := s.dot.QueryMap()
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
