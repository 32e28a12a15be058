package domain

import (
	"context"

	chdom "botdesk/internal/services/api/channels/domain"
)

// ServicePort is the interface implemented by the bots service
type ServicePort interface {
	Create(ctx context.Context, in CreateInput) (Bot, error)
	List(ctx context.Context) ([]Bot, error)
	Get(ctx context.Context, id int64) (Bot, error)
	Update(ctx context.Context, id int64, in UpdateInput) (Bot, error)
	RotateToken(ctx context.Context, id int64, in RotateInput) (Bot, error)
	Delete(ctx context.Context, id int64) error
	Configs(ctx context.Context, id int64) ([]chdom.Config, error)
}

// TokenPort hands credentials to the gateway process that connects enabled bots
type TokenPort interface {
	EnabledTokens(ctx context.Context) (map[int64]string, error)
}
