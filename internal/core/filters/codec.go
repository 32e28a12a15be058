package filters

import (
	"net/url"
	"strings"

	"botdesk/internal/core/sources"
)

// Query parameter names
const (
	ParamFrom         = "from"
	ParamTo           = "to"
	ParamSources      = "sources"
	ParamDocumentSets = "documentSets"
	ParamTags         = "tags"
)

// Codec maps State to and from a query string; the registry hydrates decoded sources
type Codec struct {
	reg sources.Registry
}

// NewCodec builds a codec over reg, nil means the built in registry
func NewCodec(reg sources.Registry) *Codec {
	if reg == nil {
		reg = sources.Default()
	}
	return &Codec{reg: reg}
}

var std = NewCodec(nil)

// Encode renders s as a bare key=value&... string, "" when s is empty
func Encode(s State) string {
	var parts []string
	add := func(key, value string) { parts = append(parts, key+"="+value) }

	if s.TimeRange != nil {
		add(ParamFrom, formatTime(s.TimeRange.From))
		add(ParamTo, formatTime(s.TimeRange.To))
	}

	if len(s.Sources) > 0 {
		names := make([]string, 0, len(s.Sources))
		for _, m := range s.Sources {
			names = append(names, string(m.InternalName))
		}
		add(ParamSources, joinMembers(names))
	}

	if len(s.DocumentSets) > 0 {
		add(ParamDocumentSets, joinMembers(s.DocumentSets))
	}

	if len(s.Tags) > 0 {
		values := make([]string, 0, len(s.Tags))
		for _, t := range s.Tags {
			values = append(values, t.Value)
		}
		add(ParamTags, joinMembers(values))
	}

	return strings.Join(parts, "&")
}

// AppendQuery composes s onto an existing query, joining with & when base is non-empty
func AppendQuery(base string, s State) string {
	enc := Encode(s)
	switch {
	case enc == "":
		return base
	case base == "":
		return enc
	default:
		return base + "&" + enc
	}
}

// Encode is the method form of the package level Encode
func (c *Codec) Encode(s State) string { return Encode(s) }

// Decode parses raw with the built in source registry
func Decode(raw string, cat Catalog) State { return std.Decode(raw, cat) }

// Decode parses raw into a fresh state, keeping only members present in cat.
// It never fails: malformed parts degrade to the empty value for their field
func (c *Codec) Decode(raw string, cat Catalog) State {
	params := parseQuery(raw)
	st := Clear()

	from, okFrom := params[ParamFrom]
	to, okTo := params[ParamTo]
	if okFrom && okTo {
		f, fok := parseTime(from)
		t, tok := parseTime(to)
		if fok && tok {
			st.TimeRange = &TimeRange{From: f, To: t}
		}
	}

	if v, ok := params[ParamSources]; ok {
		want := splitMembers(v)
		seen := map[sources.ID]bool{}
		for _, id := range cat.Sources {
			if _, hit := want[string(id)]; hit && !seen[id] {
				seen[id] = true
				st.Sources = append(st.Sources, sources.Resolve(c.reg, id))
			}
		}
	}

	if v, ok := params[ParamDocumentSets]; ok {
		want := splitMembers(v)
		seen := map[string]bool{}
		for _, name := range cat.DocumentSets {
			if _, hit := want[name]; hit && !seen[name] {
				seen[name] = true
				st.DocumentSets = append(st.DocumentSets, name)
			}
		}
	}

	if v, ok := params[ParamTags]; ok {
		want := splitMembers(v)
		seen := map[Tag]bool{}
		for _, tag := range cat.Tags {
			if _, hit := want[tag.Value]; hit && !seen[tag] {
				seen[tag] = true
				st.Tags = append(st.Tags, tag)
			}
		}
	}

	return st
}

// joinMembers escapes each member then joins, so a literal comma never reads as a separator
func joinMembers(members []string) string {
	seen := make(map[string]bool, len(members))
	out := make([]string, 0, len(members))
	for _, m := range members {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, escapeComponent(m))
	}
	return strings.Join(out, ",")
}

// splitMembers splits a still escaped value on commas and unescapes each piece.
// An empty piece is the empty member; an empty value is no members at all
func splitMembers(raw string) map[string]struct{} {
	out := map[string]struct{}{}
	if raw == "" {
		return out
	}
	for _, piece := range strings.Split(raw, ",") {
		v, ok := unescapeComponent(piece)
		if !ok {
			continue
		}
		out[v] = struct{}{}
	}
	return out
}

// parseQuery returns the raw, still escaped value of the first occurrence of each key
func parseQuery(raw string) map[string]string {
	raw = strings.TrimLeft(raw, "?&")
	out := map[string]string{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			continue
		}
		if _, dup := out[key]; dup {
			continue
		}
		out[key] = v
	}
	return out
}
