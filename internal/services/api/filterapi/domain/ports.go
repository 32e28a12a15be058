package domain

import (
	"context"

	"botdesk/internal/core/filters"
)

// ServicePort is the interface implemented by the filters service
type ServicePort interface {
	Options(ctx context.Context) (Options, error)
	Resolve(ctx context.Context, rawQuery string) (Resolved, error)
	Encode(ctx context.Context, in EncodeInput) (Encoded, error)
}

// CatalogPort exposes the current catalog to other modules
type CatalogPort interface {
	Catalog(ctx context.Context) (filters.Catalog, error)
}
