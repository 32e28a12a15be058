// Package module wires Discord bots into the API
package module

import (
	"botdesk/internal/modkit"
	"botdesk/internal/modkit/httpkit"
	bhttp "botdesk/internal/services/api/bots/http"
	brepo "botdesk/internal/services/api/bots/repo"
	bsvc "botdesk/internal/services/api/bots/service"
	chdom "botdesk/internal/services/api/channels/domain"
)

// Ports declares what bots needs from its siblings
type Ports struct {
	Channels chdom.ByBotPort
}

// Module serves /manage/admin/discord-app/bots behind deps.Auth
type Module struct {
	modkit.Base
}

// New panics without a Channels port; pass it with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.NewBase("bots", "/manage/admin/discord-app/bots", opts...)}

	in, _ := modkit.Injected[Ports](&m.Base)
	if in.Channels == nil {
		panic("bots module requires the channels ByBotPort")
	}

	svc := bsvc.New(deps.PG, brepo.NewPG(), bsvc.Options{Channels: in.Channels})
	m.Expose(adaptBotsPort{svc: svc})
	m.Serve(func(r httpkit.Router) {
		httpkit.Protected(r, deps.Auth, func(pr httpkit.Router) {
			bhttp.Register(pr, svc)
		})
	})
	m.Document(bhttp.Docs()...)
	return m
}
