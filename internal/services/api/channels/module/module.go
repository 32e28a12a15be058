// Package module wires Discord channel configs into the API
package module

import (
	"botdesk/internal/modkit"
	"botdesk/internal/modkit/httpkit"
	chttp "botdesk/internal/services/api/channels/http"
	crepo "botdesk/internal/services/api/channels/repo"
	csvc "botdesk/internal/services/api/channels/service"
)

// Module serves /manage/admin/discord-app/channel behind deps.Auth
type Module struct {
	modkit.Base
}

// New builds the module; its ports satisfy channels/domain.ByBotPort
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.NewBase("channels", "/manage/admin/discord-app/channel", opts...)}

	svc := csvc.New(deps.PG, crepo.NewPG())
	m.Expose(adaptChannelsPort{svc: svc})
	m.Serve(func(r httpkit.Router) {
		httpkit.Protected(r, deps.Auth, func(pr httpkit.Router) {
			chttp.Register(pr, svc)
		})
	})
	m.Document(chttp.Docs()...)
	return m
}
