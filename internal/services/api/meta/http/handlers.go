// Package http serves the /meta probes and build info
package http

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"botdesk/internal/core/version"
	"botdesk/internal/modkit/httpkit"
	"botdesk/internal/modkit/repokit"
	"botdesk/internal/modkit/swaggerkit"
	"botdesk/internal/platform/net/middleware"
	"botdesk/internal/platform/store"
	"botdesk/internal/platform/store/migrate"
)

// Check states
const (
	CheckOK      = "ok"
	CheckFail    = "fail"
	CheckSkipped = "skipped"
	CheckPending = "pending"
	CheckUnknown = "unknown"
)

// readyTimeout bounds every dependency probe behind /ready
const readyTimeout = 2 * time.Second

// Deps are what the probes look at
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          repokit.TxRunner

	// Schema and SchemaDir hold the embedded migrations compared against the ledger
	Schema    fs.FS
	SchemaDir string

	// Auth guards /migrations
	Auth middleware.AuthPort
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(), nil })
	httpkit.Get(r, "/service", h.service)
	httpkit.Protected(r, d.Auth, func(pr httpkit.Router) {
		httpkit.Get(pr, "/migrations", h.migrations)
	})
}

// Docs describes the routes Register mounts
func Docs() []swaggerkit.Op {
	return []swaggerkit.Op{
		{Method: "GET", Path: "/health", Summary: "Health check", Tag: "Meta"},
		{Method: "GET", Path: "/ready", Summary: "Readiness probe with dependency checks", Tag: "Meta"},
		{Method: "GET", Path: "/version", Summary: "Build and version info", Tag: "Meta"},
		{Method: "GET", Path: "/service", Summary: "Service info and uptime", Tag: "Meta"},
		{Method: "GET", Path: "/migrations", Summary: "Embedded migrations and their applied state", Tag: "Meta", Secured: true},
	}
}

// Health answers liveness; it never touches a dependency
type Health struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"botdesk-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"     example:"2025-09-03T13:05:00Z"`
}

// Check is one dependency's probe result
type Check struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}

// Readiness is ok when every check is, fail when any failed, degraded otherwise
type Readiness struct {
	Status string  `json:"status" example:"degraded"`
	Checks []Check `json:"checks"`
	Now    string  `json:"now"`
}

// ServiceInfo reports uptime in whole seconds
type ServiceInfo struct {
	Name    string `json:"name"    example:"botdesk-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

func (h *handlers) stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} Health
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return Health{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.stamp(h.deps.StartedAt),
		Now:     h.stamp(h.now()),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} Readiness
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := []Check{h.probePG(ctx)}
	// the ledger is unreadable without a connection
	if checks[0].Status == CheckOK {
		checks = append(checks, h.probeSchema(ctx))
	}
	return Readiness{Status: overall(checks), Checks: checks, Now: h.stamp(h.now())}, nil
}

func overall(checks []Check) string {
	status := CheckOK
	for _, c := range checks {
		switch {
		case c.Status == CheckFail:
			return CheckFail
		case c.Status != CheckOK:
			status = "degraded"
		}
	}
	return status
}

func (h *handlers) probePG(ctx context.Context) Check {
	c := Check{Name: "pg"}
	p, ok := h.deps.PG.(store.Pinger)
	switch {
	case h.deps.PG == nil:
		c.Status = CheckSkipped
	case !ok:
		c.Status = CheckUnknown
	default:
		c.Status = CheckOK
		if err := p.Ping(ctx); err != nil {
			c.Status, c.Error = CheckFail, err.Error()
		}
	}
	return c
}

func (h *handlers) probeSchema(ctx context.Context) Check {
	c := Check{Name: "schema", Status: CheckOK}
	if h.deps.Schema == nil {
		c.Status = CheckSkipped
		return c
	}
	report, err := migrate.Report(ctx, h.deps.PG, h.deps.Schema, h.deps.SchemaDir)
	if err != nil {
		c.Status, c.Error = CheckFail, err.Error()
		return c
	}
	for _, m := range report {
		if !m.Applied {
			c.Status, c.Error = CheckPending, m.ID+" not applied"
			break
		}
	}
	return c
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceInfo
// @Router /meta/service [get]
func (h *handlers) service(*http.Request) (any, error) {
	return ServiceInfo{
		Name:    h.deps.ServiceName,
		Started: h.stamp(h.deps.StartedAt),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

// @Summary Embedded migrations and their applied state
// @Tags Meta
// @Produce json
// @Security BearerAuth
// @Success 200 {array} migrate.Status
// @Router /meta/migrations [get]
func (h *handlers) migrations(r *http.Request) (any, error) {
	if h.deps.PG == nil || h.deps.Schema == nil {
		return []migrate.Status{}, nil
	}
	return migrate.Report(r.Context(), h.deps.PG, h.deps.Schema, h.deps.SchemaDir)
}
