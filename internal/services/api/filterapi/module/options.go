package module

import (
	"time"

	"botdesk/internal/platform/config"
)

// Options controls filter catalog caching
type Options struct {
	CatalogTTL time.Duration
}

// FromConfig reads FILTERS_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	fc := cfg.Prefix("FILTERS_")
	return Options{
		CatalogTTL: fc.MayDuration("CATALOG_TTL", 30*time.Second),
	}
}
