// Package http provides http transport for Discord channel configs
package http

import (
	stdhttp "net/http"

	"botdesk/internal/modkit/httpkit"
	"botdesk/internal/modkit/swaggerkit"
	"botdesk/internal/platform/logger"
	"botdesk/internal/services/api/channels/domain"
	svc "botdesk/internal/services/api/channels/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ConfigInput](r, "/", h.create)
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/lookup", h.lookup)
	httpkit.PatchJSON[domain.ConfigInput](r, "/{id}", h.update)
	httpkit.Delete(r, "/{id}", h.remove)
}

// Docs describes the routes Register mounts
func Docs() []swaggerkit.Op {
	const tag = "Channels"
	return []swaggerkit.Op{
		{Method: "POST", Path: "/", Summary: "Create a channel config", Tag: tag, Secured: true, Body: true},
		{Method: "GET", Path: "/", Summary: "List channel configs", Tag: tag, Secured: true},
		{Method: "GET", Path: "/lookup", Summary: "Find the config routing a channel", Tag: tag, Secured: true},
		{Method: "PATCH", Path: "/{id}", Summary: "Update a channel config", Tag: tag, Secured: true, Body: true},
		{Method: "DELETE", Path: "/{id}", Summary: "Delete a channel config and its bot owned persona", Tag: tag, Secured: true},
	}
}

type handlers struct{ svc svc.Service }

// swagger:route POST /manage/admin/discord-app/channel Channels create
// @Summary Create a channel config
// @Tags channels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.ConfigInput true "Channel config"
// @Success 201 {object} domain.Config "created"
// @Failure 400 {object} httpkit.Envelope "invalid channel rules"
// @Failure 404 {object} httpkit.Envelope "bot not found"
// @Router /manage/admin/discord-app/channel [post]
func (h *handlers) create(r *stdhttp.Request, in domain.ConfigInput) (any, error) {
	out, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// swagger:route GET /manage/admin/discord-app/channel Channels list
// @Summary List channel configs
// @Tags channels
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Config "ok"
// @Router /manage/admin/discord-app/channel [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

// swagger:route GET /manage/admin/discord-app/channel/lookup Channels lookup
// @Summary Find the config routing a channel
// @Tags channels
// @Produce json
// @Security BearerAuth
// @Param bot_id query int true "Bot id"
// @Param channel query string true "Channel name, with or without #"
// @Success 200 {object} domain.Config "ok"
// @Failure 404 {object} httpkit.Envelope "no config"
// @Router /manage/admin/discord-app/channel/lookup [get]
func (h *handlers) lookup(r *stdhttp.Request) (any, error) {
	botID, _, err := httpkit.QueryID(r, "bot_id")
	if err != nil {
		return nil, err
	}
	return h.svc.Lookup(r.Context(), domain.LookupQuery{
		BotID:   botID,
		Channel: r.URL.Query().Get("channel"),
	})
}

// swagger:route PATCH /manage/admin/discord-app/channel/{id} Channels update
// @Summary Update a channel config
// @Tags channels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Config id"
// @Param payload body domain.ConfigInput true "Channel config"
// @Success 200 {object} domain.Config "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /manage/admin/discord-app/channel/{id} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.ConfigInput) (any, error) {
	id, err := httpkit.PathID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Update(r.Context(), id, in)
}

// swagger:route DELETE /manage/admin/discord-app/channel/{id} Channels delete
// @Summary Delete a channel config and its bot owned persona
// @Tags channels
// @Security BearerAuth
// @Param id path int true "Config id"
// @Success 204 "deleted"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /manage/admin/discord-app/channel/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathID(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	logger.C(r.Context()).Info().Str("actor", httpkit.Actor(r)).Int64("config_id", id).Msg("channel config deleted")
	return httpkit.NoContent(), nil
}
