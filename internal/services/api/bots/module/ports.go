package module

import (
	"context"

	"botdesk/internal/services/api/bots/domain"
	bsvc "botdesk/internal/services/api/bots/service"
)

// adaptBotsPort hands bot credentials to the gateway process
type adaptBotsPort struct{ svc bsvc.Service }

var _ domain.TokenPort = adaptBotsPort{}

func (a adaptBotsPort) EnabledTokens(ctx context.Context) (map[int64]string, error) {
	return a.svc.EnabledTokens(ctx)
}
