// Package channelname canonicalises chat channel names so configs and incoming
// messages compare the same way
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Lower casing
// 4 Remove format chars (zero widths, BOM)
// 5 Width fold fullwidth to ASCII
// 6 Trim space and leading '#'
package channelname

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// MaxLen is the longest cleaned name accepted, in runes
const MaxLen = 100

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Lower(language.Und),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// Clean returns the stored form of a channel name: "#General " becomes "general"
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	s, _, _ = transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "#")
	return strings.TrimSpace(s)
}

// Matches reports whether candidate names the channel a config was stored for
func Matches(configured, candidate string) bool {
	c := Clean(configured)
	return c != "" && c == Clean(candidate)
}

// Valid reports whether raw cleans to a usable name
func Valid(raw string) bool {
	c := Clean(raw)
	if c == "" {
		return false
	}
	return len([]rune(c)) <= MaxLen
}
