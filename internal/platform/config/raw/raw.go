// Package raw reads prefixed environment variables without logging,
// so the logger can configure itself from it during bootstrap
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view over a variable source
type Conf struct {
	prefix string
	lookup func(string) (string, bool)
}

// New reads the process environment
func New() Conf { return Conf{lookup: os.LookupEnv} }

// FromMap reads m instead of the environment
func FromMap(m map[string]string) Conf {
	return Conf{lookup: func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}}
}

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf {
	c.prefix += p
	return c
}

// Key is the full variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

// Lookup returns the trimmed value; blank counts as unset
func (c Conf) Lookup(k string) (string, bool) {
	if c.lookup == nil {
		return "", false
	}
	v, _ := c.lookup(c.Key(k))
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Get is the value of k or def
func (c Conf) Get(k, def string) string {
	if v, ok := c.Lookup(k); ok {
		return v
	}
	return def
}

// GetBool accepts strconv.ParseBool spellings plus yes/no; anything else is def
func (c Conf) GetBool(k string, def bool) bool {
	v, ok := c.Lookup(k)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

// GetInt is def when k is unset or not an integer
func (c Conf) GetInt(k string, def int) int {
	v, ok := c.Lookup(k)
	if !ok {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}
