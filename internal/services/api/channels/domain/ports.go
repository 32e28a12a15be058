package domain

import "context"

// ServicePort is the interface implemented by the channels service
type ServicePort interface {
	Create(ctx context.Context, in ConfigInput) (Config, error)
	List(ctx context.Context) ([]Config, error)
	ListByBot(ctx context.Context, botID int64) ([]Config, error)
	Lookup(ctx context.Context, q LookupQuery) (Config, error)
	Update(ctx context.Context, id int64, in ConfigInput) (Config, error)
	Delete(ctx context.Context, id int64) error
}

// ByBotPort is the read surface other modules consume
type ByBotPort interface {
	ListByBot(ctx context.Context, botID int64) ([]Config, error)
}
