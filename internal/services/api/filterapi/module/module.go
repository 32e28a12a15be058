// Package module wires search filter resolution into the API
package module

import (
	"botdesk/internal/modkit"
	"botdesk/internal/modkit/httpkit"
	fhttp "botdesk/internal/services/api/filterapi/http"
	frepo "botdesk/internal/services/api/filterapi/repo"
	fsvc "botdesk/internal/services/api/filterapi/service"
)

// Module serves /search/filters; its routes are public reads
type Module struct {
	modkit.Base
}

func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.NewBase("filters", "/search/filters", opts...)}

	cfg := FromConfig(deps.Cfg)
	svc := fsvc.New(deps.PG, frepo.NewPG(), fsvc.Options{
		Registry:   deps.SourceRegistry(),
		CatalogTTL: cfg.CatalogTTL,
	})
	m.Expose(adaptFiltersPort{svc: svc})
	m.Serve(func(r httpkit.Router) { fhttp.Register(r, svc) })
	m.Document(fhttp.Docs()...)
	return m
}
