// Package module wires the meta endpoints into the API
package module

import (
	"time"

	"botdesk/internal/core/version"
	"botdesk/internal/modkit"
	"botdesk/internal/modkit/httpkit"
	"botdesk/internal/schema"
	metahttp "botdesk/internal/services/api/meta/http"
)

// Module serves /meta; it exposes no ports
type Module struct {
	modkit.Base
}

// New records the start time reported by /meta/version
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.NewBase("meta", "/meta", opts...)}

	d := metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   time.Now(),
		PG:          deps.PG,
		Schema:      schema.FS,
		SchemaDir:   schema.Dir,
		Auth:        deps.Auth,
	}
	m.Serve(func(r httpkit.Router) { metahttp.Register(r, d) })
	m.Document(metahttp.Docs()...)
	return m
}
