// Package strings has the small string and slice helpers the modules share
package strings

import std "strings"

// IfEmpty is def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// NonBlank trims every element and drops the empty ones; nil when nothing is left
func NonBlank(in []string) []string {
	var out []string
	for _, v := range in {
		if v = std.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Dedupe keeps the first occurrence of each element, in order
func Dedupe[T comparable](in []T) []T {
	var out []T
	seen := make(map[T]struct{}, len(in))
	for _, v := range in {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// MustString panics naming what is missing when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalises a mount path to one leading slash and no trailing one.
// The bare root is rejected
func MustPrefix(s string) string {
	p := "/" + std.Trim(std.TrimSpace(s), "/ ")
	if p == "/" {
		panic("mount prefix is required")
	}
	return p
}
