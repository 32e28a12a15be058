// Package http provides http transport for Discord bots
package http

import (
	stdhttp "net/http"

	"botdesk/internal/modkit/httpkit"
	"botdesk/internal/modkit/swaggerkit"
	"botdesk/internal/platform/logger"
	"botdesk/internal/services/api/bots/domain"
	svc "botdesk/internal/services/api/bots/service"
)

// Register mounts the router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.PatchJSON[domain.UpdateInput](r, "/{id}", h.update)
	httpkit.PutJSON[domain.RotateInput](r, "/{id}/token", h.rotate)
	httpkit.Delete(r, "/{id}", h.remove)
	httpkit.Get(r, "/{id}/config", h.configs)
}

// Docs describes the routes Register mounts
func Docs() []swaggerkit.Op {
	const tag = "Bots"
	return []swaggerkit.Op{
		{Method: "POST", Path: "/", Summary: "Register a Discord bot", Tag: tag, Secured: true, Body: true},
		{Method: "GET", Path: "/", Summary: "List Discord bots", Tag: tag, Secured: true},
		{Method: "GET", Path: "/{id}", Summary: "Fetch a Discord bot", Tag: tag, Secured: true},
		{Method: "PATCH", Path: "/{id}", Summary: "Update a Discord bot", Tag: tag, Secured: true, Body: true},
		{Method: "PUT", Path: "/{id}/token", Summary: "Rotate a Discord bot token", Tag: tag, Secured: true, Body: true},
		{Method: "DELETE", Path: "/{id}", Summary: "Delete a Discord bot and its channel configs", Tag: tag, Secured: true},
		{Method: "GET", Path: "/{id}/config", Summary: "List a bot's channel configs", Tag: tag, Secured: true},
	}
}

type handlers struct{ svc svc.Service }

// swagger:route POST /manage/admin/discord-app/bots Bots create
// @Summary Register a Discord bot
// @Tags bots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.CreateInput true "Bot"
// @Success 201 {object} domain.Bot "created"
// @Failure 409 {object} httpkit.Envelope "token already registered"
// @Router /manage/admin/discord-app/bots [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	out, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// swagger:route GET /manage/admin/discord-app/bots Bots list
// @Summary List Discord bots
// @Tags bots
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Bot "ok"
// @Router /manage/admin/discord-app/bots [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

// swagger:route GET /manage/admin/discord-app/bots/{id} Bots get
// @Summary Fetch a Discord bot
// @Tags bots
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bot id"
// @Success 200 {object} domain.Bot "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /manage/admin/discord-app/bots/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// swagger:route PATCH /manage/admin/discord-app/bots/{id} Bots update
// @Summary Update a Discord bot
// @Tags bots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bot id"
// @Param payload body domain.UpdateInput true "Bot"
// @Success 200 {object} domain.Bot "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /manage/admin/discord-app/bots/{id} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	id, err := httpkit.PathID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Update(r.Context(), id, in)
}

// swagger:route PUT /manage/admin/discord-app/bots/{id}/token Bots rotate
// @Summary Rotate a Discord bot token
// @Tags bots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bot id"
// @Param payload body domain.RotateInput true "Token"
// @Success 200 {object} domain.Bot "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Failure 409 {object} httpkit.Envelope "token already registered"
// @Router /manage/admin/discord-app/bots/{id}/token [put]
func (h *handlers) rotate(r *stdhttp.Request, in domain.RotateInput) (any, error) {
	id, err := httpkit.PathID(r, "id")
	if err != nil {
		return nil, err
	}
	out, err := h.svc.RotateToken(r.Context(), id, in)
	if err != nil {
		return nil, err
	}
	logger.C(r.Context()).Info().Str("actor", httpkit.Actor(r)).Int64("bot_id", id).Msg("discord bot token rotated")
	return out, nil
}

// swagger:route DELETE /manage/admin/discord-app/bots/{id} Bots delete
// @Summary Delete a Discord bot and its channel configs
// @Tags bots
// @Security BearerAuth
// @Param id path int true "Bot id"
// @Success 204 "deleted"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /manage/admin/discord-app/bots/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathID(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	logger.C(r.Context()).Info().Str("actor", httpkit.Actor(r)).Int64("bot_id", id).Msg("discord bot deleted")
	return httpkit.NoContent(), nil
}

// swagger:route GET /manage/admin/discord-app/bots/{id}/config Bots configs
// @Summary List a bot's channel configs
// @Tags bots
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bot id"
// @Success 200 {array} channels.Config "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /manage/admin/discord-app/bots/{id}/config [get]
func (h *handlers) configs(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathID(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Configs(r.Context(), id)
}
