package filters

import (
	"net/url"
	"strings"
	"time"
)

// componentFix turns url.QueryEscape output into encodeURIComponent output:
// spaces become %20 and the sub delims ! ' ( ) * stay literal
var componentFix = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent percent encodes one set member
func escapeComponent(s string) string {
	return componentFix.Replace(url.QueryEscape(s))
}

// unescapeComponent reverses escapeComponent; + is read as a space like form decoding does
func unescapeComponent(s string) (string, bool) {
	v, err := url.QueryUnescape(s)
	if err != nil {
		return "", false
	}
	return v, true
}

// isoMillis matches the browser's Date.toISOString output
const isoMillis = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTime accepts RFC 3339 with or without fraction or seconds, a zone-less timestamp, or a bare date.
// Zone-less forms are read as UTC
func parseTime(raw string) (time.Time, bool) {
	s, err := url.PathUnescape(raw)
	if err != nil {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
