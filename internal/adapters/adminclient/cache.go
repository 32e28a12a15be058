package adminclient

import (
	"context"
	"strings"
)

// Invalidate drops the cached responses for the given paths
func (c *Client) Invalidate(paths ...string) {
	for _, p := range paths {
		c.cache.Remove(c.url(p))
	}
}

// InvalidatePrefix drops every cached response whose path starts with prefix
func (c *Client) InvalidatePrefix(prefix string) {
	want := c.url(prefix)
	for _, k := range c.cache.Keys() {
		if strings.HasPrefix(k, want) {
			c.cache.Remove(k)
		}
	}
}

// Purge empties the cache
func (c *Client) Purge() { c.cache.Purge() }

// Cached reports whether path has a cached response
func (c *Client) Cached(path string) bool { return c.cache.Contains(c.url(path)) }

// refresh drops path then fetches it again into out
func (c *Client) refresh(ctx context.Context, path string, out any) error {
	c.Invalidate(path)
	return c.get(ctx, path, out)
}
