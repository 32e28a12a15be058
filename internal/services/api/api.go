// Package api provides the HTTP API for the application
package api

import (
	"botdesk/internal/core/sources"
	"botdesk/internal/core/version"
	"botdesk/internal/platform/config"
	"botdesk/internal/platform/logger"
	phttp "botdesk/internal/platform/net/http"
	"botdesk/internal/platform/net/middleware"
	"botdesk/internal/platform/store"

	"botdesk/internal/modkit"
	"botdesk/internal/modkit/httpkit"
	"botdesk/internal/modkit/module"
	"botdesk/internal/modkit/swaggerkit"

	botsmod "botdesk/internal/services/api/bots/module"
	chdom "botdesk/internal/services/api/channels/domain"
	chmod "botdesk/internal/services/api/channels/module"
	filtersmod "botdesk/internal/services/api/filterapi/module"
	metamod "botdesk/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	// Auth guards the admin routes; nil leaves them open
	Auth middleware.AuthPort

	// Sources overrides the built in connector source registry
	Sources sources.Registry

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Config,
		Auth:    opt.Auth,
		Sources: opt.Sources,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// channels owns the per bot config listing, bots consumes it
	channels := chmod.New(deps)
	bots := botsmod.New(
		deps,
		modkit.WithPorts(botsmod.Ports{
			Channels: module.MustPortsOf[chdom.ByBotPort](channels),
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		bots,
		channels,
		filtersmod.New(deps),
	}

	var ops []swaggerkit.Op
	for _, m := range mods {
		if d, ok := m.(documented); ok {
			ops = append(ops, d.Docs()...)
		}
	}
	v := version.Info()
	swaggerkit.Mount(r, swaggerkit.Options{
		Enabled: opt.EnableSwagger,
		Info: swaggerkit.Info{
			Title:       "Botdesk API",
			Version:     v.Version,
			Description: "Discord bot administration and search filter endpoints",
			Server:      "/api/v1",
		},
		Ops: ops,
	})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// siblings look each other up by name
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}

type documented interface {
	Docs() []swaggerkit.Op
}
