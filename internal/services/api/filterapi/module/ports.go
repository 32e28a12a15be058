package module

import (
	"context"

	"botdesk/internal/core/filters"
	fsvc "botdesk/internal/services/api/filterapi/service"
)

type adaptFiltersPort struct{ svc fsvc.Service }

func (a adaptFiltersPort) Catalog(ctx context.Context) (filters.Catalog, error) {
	return a.svc.Catalog(ctx)
}
