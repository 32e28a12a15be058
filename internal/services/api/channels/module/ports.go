package module

import (
	"context"

	"botdesk/internal/services/api/channels/domain"
	csvc "botdesk/internal/services/api/channels/service"
)

// adaptChannelsPort is the read side bots uses to embed configs
type adaptChannelsPort struct{ svc csvc.Service }

var _ domain.ByBotPort = adaptChannelsPort{}

func (a adaptChannelsPort) ListByBot(ctx context.Context, botID int64) ([]domain.Config, error) {
	return a.svc.ListByBot(ctx, botID)
}
