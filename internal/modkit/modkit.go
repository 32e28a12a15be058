// Package modkit wires API modules from shared deps
package modkit

import (
	"botdesk/internal/core/sources"
	"botdesk/internal/modkit/httpkit"
	"botdesk/internal/modkit/module"
	"botdesk/internal/modkit/repokit"
	"botdesk/internal/modkit/swaggerkit"
	"botdesk/internal/platform/config"
	"botdesk/internal/platform/logger"
	"botdesk/internal/platform/net/middleware"
	pstrings "botdesk/internal/platform/strings"
)

// Module is the surface api.Mount drives
type Module = module.Module

// Deps holds what every module may draw on
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner

	// Auth guards the admin routes; nil leaves them open
	Auth middleware.AuthPort

	// Sources resolves connector source kinds; nil means the built in registry
	Sources sources.Registry
}

// SourceRegistry returns Sources or the built in registry
func (d Deps) SourceRegistry() sources.Registry {
	if d.Sources == nil {
		return sources.Default()
	}
	return d.Sources
}

// Option overrides a module's defaults at construction
type Option func(*Base)

// WithName renames a module, which also changes its registry key
func WithName(name string) Option { return func(b *Base) { b.name = name } }

// WithPrefix moves a module's routes
func WithPrefix(prefix string) Option { return func(b *Base) { b.prefix = prefix } }

// WithMiddlewares runs mw in order in front of the module's routes only
func WithMiddlewares(mw ...middleware.Middleware) Option {
	return func(b *Base) { b.mws = append(b.mws, mw...) }
}

// WithPorts hands a module the ports it consumes from its siblings
func WithPorts(p any) Option { return func(b *Base) { b.injected = p } }

// Base carries what all modules share; modules embed it and call Serve
type Base struct {
	name     string
	prefix   string
	mws      []middleware.Middleware
	injected any
	ports    any
	routes   func(httpkit.Router)
	docs     []swaggerkit.Op
}

// NewBase applies opts over the module's own name and prefix
func NewBase(name, prefix string, opts ...Option) Base {
	b := Base{name: name, prefix: prefix}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Name is the registry key
func (b *Base) Name() string { return pstrings.MustString(b.name, "module name") }

// Prefix is where MountRoutes attaches
func (b *Base) Prefix() string { return pstrings.MustPrefix(b.prefix) }

// Ports is what the module offers its siblings, nil when nothing
func (b *Base) Ports() any { return b.ports }

// Expose sets the value Ports returns
func (b *Base) Expose(p any) { b.ports = p }

// Serve sets the route registration MountRoutes runs under Prefix
func (b *Base) Serve(fn func(httpkit.Router)) { b.routes = fn }

// Document records ops, relative to Prefix, for the API document
func (b *Base) Document(ops ...swaggerkit.Op) {
	b.docs = append(b.docs, swaggerkit.Under(b.Prefix(), ops...)...)
}

// Docs returns what Document recorded
func (b *Base) Docs() []swaggerkit.Op { return b.docs }

// MountRoutes attaches the module under its prefix behind its middlewares
func (b *Base) MountRoutes(r httpkit.Router) {
	if b.routes == nil {
		return
	}
	httpkit.MountUnder(r, b.Prefix(), b.mws, b.routes)
}

// Injected returns the ports passed with WithPorts as T
func Injected[T any](b *Base) (T, bool) {
	v, ok := b.injected.(T)
	return v, ok
}
