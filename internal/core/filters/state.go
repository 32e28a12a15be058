// Package filters owns the search filter state (time range, sources, document sets, tags)
// and its lossy round trip through a URL query string
package filters

import (
	"time"

	"botdesk/internal/core/sources"
)

// TimeRange is an inclusive window; From > To is kept as given
type TimeRange struct {
	From time.Time `json:"from" example:"2024-01-01T00:00:00.000Z"`
	To   time.Time `json:"to"   example:"2024-01-31T23:59:59.000Z"`
}

// Tag is a catalog tag; filters match and encode it by Value
type Tag struct {
	Key    string     `json:"tag_key,omitempty"   example:"priority"`
	Value  string     `json:"tag_value"           example:"p:high"`
	Source sources.ID `json:"source,omitempty"    example:"jira"`
}

// State is the filter selection owned by one UI context
type State struct {
	TimeRange    *TimeRange         `json:"time_range"`
	Sources      []sources.Metadata `json:"sources"`
	DocumentSets []string           `json:"document_sets"`
	Tags         []Tag              `json:"tags"`
}

// Catalog lists the option values valid at decode time
type Catalog struct {
	Sources      []sources.ID `json:"sources"`
	DocumentSets []string     `json:"document_sets"`
	Tags         []Tag        `json:"tags"`
}

// Clear returns the canonical empty state
func Clear() State {
	return State{
		Sources:      []sources.Metadata{},
		DocumentSets: []string{},
		Tags:         []Tag{},
	}
}

// SetTimeRange replaces the time range; nil clears it
func (s *State) SetTimeRange(tr *TimeRange) {
	if tr == nil {
		s.TimeRange = nil
		return
	}
	cp := *tr
	s.TimeRange = &cp
}

// SetSources replaces the selected sources
func (s *State) SetSources(v []sources.Metadata) {
	s.Sources = append([]sources.Metadata{}, v...)
}

// SetDocumentSets replaces the selected document sets
func (s *State) SetDocumentSets(v []string) {
	s.DocumentSets = append([]string{}, v...)
}

// SetTags replaces the selected tags
func (s *State) SetTags(v []Tag) {
	s.Tags = append([]Tag{}, v...)
}

// IsEmpty reports whether no field is set
func (s State) IsEmpty() bool {
	return s.TimeRange == nil && len(s.Sources) == 0 && len(s.DocumentSets) == 0 && len(s.Tags) == 0
}

// Equal compares two states with set semantics for the collection fields
func (s State) Equal(o State) bool {
	switch {
	case s.TimeRange == nil && o.TimeRange == nil:
	case s.TimeRange == nil || o.TimeRange == nil:
		return false
	case !s.TimeRange.From.Equal(o.TimeRange.From) || !s.TimeRange.To.Equal(o.TimeRange.To):
		return false
	}

	srcA := make([]sources.ID, 0, len(s.Sources))
	for _, m := range s.Sources {
		srcA = append(srcA, m.InternalName)
	}
	srcB := make([]sources.ID, 0, len(o.Sources))
	for _, m := range o.Sources {
		srcB = append(srcB, m.InternalName)
	}
	return sameSet(srcA, srcB) && sameSet(s.DocumentSets, o.DocumentSets) && sameSet(s.Tags, o.Tags)
}

func sameSet[T comparable](a, b []T) bool {
	as := make(map[T]struct{}, len(a))
	for _, v := range a {
		as[v] = struct{}{}
	}
	bs := make(map[T]struct{}, len(b))
	for _, v := range b {
		if _, ok := as[v]; !ok {
			return false
		}
		bs[v] = struct{}{}
	}
	return len(as) == len(bs)
}
