package adminclient

import (
	"context"
	"strings"

	"botdesk/internal/core/filters"
	fdom "botdesk/internal/services/api/filterapi/domain"
)

// FiltersPath is the filter endpoint root
const FiltersPath = "/api/v1/search/filters"

// ResolvePath composes the resolve url for a state with the codec
func ResolvePath(st filters.State) string {
	return resolvePath(filters.Encode(st))
}

func resolvePath(query string) string {
	query = strings.TrimPrefix(query, "?")
	if query == "" {
		return FiltersPath + "/resolve"
	}
	return FiltersPath + "/resolve?" + query
}

// FilterOptions returns the catalog a filter bar may offer
func (c *Client) FilterOptions(ctx context.Context) (fdom.Options, error) {
	var out fdom.Options
	err := c.get(ctx, FiltersPath+"/options", &out)
	return out, err
}

// RefreshFilterOptions refetches the catalog
func (c *Client) RefreshFilterOptions(ctx context.Context) (fdom.Options, error) {
	var out fdom.Options
	err := c.refresh(ctx, FiltersPath+"/options", &out)
	return out, err
}

// ResolveFilters asks the server to canonicalize st against the live catalog
func (c *Client) ResolveFilters(ctx context.Context, st filters.State) (fdom.Resolved, error) {
	var out fdom.Resolved
	err := c.get(ctx, ResolvePath(st), &out)
	return out, err
}

// ResolveQuery resolves an already encoded query, as read from a page url
func (c *Client) ResolveQuery(ctx context.Context, rawQuery string) (fdom.Resolved, error) {
	var out fdom.Resolved
	err := c.get(ctx, resolvePath(rawQuery), &out)
	return out, err
}

// EncodeFilters returns the canonical query for a selection given by member names
func (c *Client) EncodeFilters(ctx context.Context, in fdom.EncodeInput) (string, error) {
	var out fdom.Encoded
	if err := c.do(ctx, "POST", FiltersPath+"/encode", in, &out); err != nil {
		return "", err
	}
	return out.Query, nil
}
