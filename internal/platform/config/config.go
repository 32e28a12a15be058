// Package config reads prefixed environment variables, logging bad values
package config

import (
	"strconv"
	"time"

	"botdesk/internal/platform/config/raw"
	"botdesk/internal/platform/logger"
)

// Conf is a prefixed view, e.g. New().Prefix("CORE_API_")
type Conf struct{ env raw.Conf }

// New reads the process environment
func New() Conf { return Conf{env: raw.New()} }

// FromMap reads m instead of the environment
func FromMap(m map[string]string) Conf { return Conf{env: raw.FromMap(m)} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{env: c.env.Prefix(p)} }

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	v, ok := c.env.Lookup(key)
	if !ok {
		logger.Get().Panic().Str("key", c.env.Key(key)).Msg("missing required env")
	}
	return v
}

// MayString is the value of key or def
func (c Conf) MayString(key, def string) string { return c.env.Get(key, def) }

// MayInt is the value of key or def; an unparsable value logs and yields def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayBool accepts strconv.ParseBool spellings
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration takes Go duration syntax such as 30s or 5m
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s, ok := c.env.Lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.env.Key(key)).Str("value", s).Interface("default", def).Msg("invalid env value, using default")
		return def
	}
	return v
}
