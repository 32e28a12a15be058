// Package http provides http transport for search filters
package http

import (
	stdhttp "net/http"

	"botdesk/internal/modkit/httpkit"
	"botdesk/internal/modkit/swaggerkit"
	"botdesk/internal/services/api/filterapi/domain"
	svc "botdesk/internal/services/api/filterapi/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/options", h.options)
	httpkit.Get(r, "/resolve", h.resolve)
	httpkit.PostJSON[domain.EncodeInput](r, "/encode", h.encode)
}

// Docs describes the routes Register mounts
func Docs() []swaggerkit.Op {
	const tag = "Filters"
	return []swaggerkit.Op{
		{Method: "GET", Path: "/options", Summary: "Filter catalog", Tag: tag},
		{Method: "GET", Path: "/resolve", Summary: "Decode a filter query against the catalog", Tag: tag},
		{Method: "POST", Path: "/encode", Summary: "Encode a filter selection", Tag: tag, Body: true, Status: stdhttp.StatusOK},
	}
}

type handlers struct{ svc svc.Service }

// swagger:route GET /search/filters/options Filters options
// @Summary Filter catalog
// @Tags filters
// @Produce json
// @Success 200 {object} domain.Options "ok"
// @Router /search/filters/options [get]
func (h *handlers) options(r *stdhttp.Request) (any, error) {
	return h.svc.Options(r.Context())
}

// swagger:route GET /search/filters/resolve Filters resolve
// @Summary Decode a filter query against the catalog
// @Description The query string itself is the filter, e.g. ?sources=slack&tags=p%3Ahigh
// @Tags filters
// @Produce json
// @Param from query string false "Window start, RFC 3339"
// @Param to query string false "Window end, RFC 3339"
// @Param sources query string false "Comma separated source names"
// @Param documentSets query string false "Comma separated document set names"
// @Param tags query string false "Comma separated tag values"
// @Success 200 {object} domain.Resolved "ok"
// @Router /search/filters/resolve [get]
func (h *handlers) resolve(r *stdhttp.Request) (any, error) {
	return h.svc.Resolve(r.Context(), r.URL.RawQuery)
}

// swagger:route POST /search/filters/encode Filters encode
// @Summary Encode a filter selection
// @Tags filters
// @Accept json
// @Produce json
// @Param payload body domain.EncodeInput true "Selection"
// @Success 200 {object} domain.Encoded "ok"
// @Router /search/filters/encode [post]
func (h *handlers) encode(r *stdhttp.Request, in domain.EncodeInput) (any, error) {
	return h.svc.Encode(r.Context(), in)
}
