// Package sources holds the static registry of document source kinds and their display metadata
package sources

import "sort"

// ID is the stable symbolic name of a source kind, e.g. "slack"
type ID string

// Category groups sources for display
type Category string

const (
	// CategoryMessaging covers chat and messaging platforms
	CategoryMessaging Category = "messaging"

	// CategoryWiki covers wikis and knowledge bases
	CategoryWiki Category = "wiki"

	// CategoryStorage covers file stores and drives
	CategoryStorage Category = "storage"

	// CategoryTicketing covers issue trackers and CRMs
	CategoryTicketing Category = "ticketing"

	// CategoryCode covers code hosts
	CategoryCode Category = "code"

	// CategoryOther is the fallback bucket
	CategoryOther Category = "other"
)

// Metadata describes a source kind for display
type Metadata struct {
	InternalName ID       `json:"internal_name" example:"slack"`
	DisplayName  string   `json:"display_name"  example:"Slack"`
	Category     Category `json:"category"      example:"messaging"`
	DocsURL      string   `json:"docs_url,omitempty"`
}

// Registry resolves symbolic names to metadata
type Registry interface {
	Lookup(id ID) (Metadata, bool)
	All() []Metadata
}

// Static is an immutable map backed Registry
type Static struct {
	byID map[ID]Metadata
}

// NewStatic builds a registry from entries; later duplicates win
func NewStatic(entries ...Metadata) *Static {
	m := make(map[ID]Metadata, len(entries))
	for _, e := range entries {
		m[e.InternalName] = e
	}
	return &Static{byID: m}
}

// Lookup returns metadata for id
func (s *Static) Lookup(id ID) (Metadata, bool) {
	md, ok := s.byID[id]
	return md, ok
}

// All returns every entry sorted by internal name
func (s *Static) All() []Metadata {
	out := make([]Metadata, 0, len(s.byID))
	for _, md := range s.byID {
		out = append(out, md)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InternalName < out[j].InternalName })
	return out
}

var builtin = NewStatic(
	Metadata{InternalName: "web", DisplayName: "Web", Category: CategoryOther},
	Metadata{InternalName: "file", DisplayName: "File", Category: CategoryStorage},
	Metadata{InternalName: "slack", DisplayName: "Slack", Category: CategoryMessaging},
	Metadata{InternalName: "discord", DisplayName: "Discord", Category: CategoryMessaging},
	Metadata{InternalName: "teams", DisplayName: "Teams", Category: CategoryMessaging},
	Metadata{InternalName: "gmail", DisplayName: "Gmail", Category: CategoryMessaging},
	Metadata{InternalName: "confluence", DisplayName: "Confluence", Category: CategoryWiki},
	Metadata{InternalName: "notion", DisplayName: "Notion", Category: CategoryWiki},
	Metadata{InternalName: "guru", DisplayName: "Guru", Category: CategoryWiki},
	Metadata{InternalName: "bookstack", DisplayName: "BookStack", Category: CategoryWiki},
	Metadata{InternalName: "google_drive", DisplayName: "Google Drive", Category: CategoryStorage},
	Metadata{InternalName: "dropbox", DisplayName: "Dropbox", Category: CategoryStorage},
	Metadata{InternalName: "sharepoint", DisplayName: "Sharepoint", Category: CategoryStorage},
	Metadata{InternalName: "s3", DisplayName: "S3", Category: CategoryStorage},
	Metadata{InternalName: "jira", DisplayName: "Jira", Category: CategoryTicketing},
	Metadata{InternalName: "linear", DisplayName: "Linear", Category: CategoryTicketing},
	Metadata{InternalName: "zendesk", DisplayName: "Zendesk", Category: CategoryTicketing},
	Metadata{InternalName: "salesforce", DisplayName: "Salesforce", Category: CategoryTicketing},
	Metadata{InternalName: "hubspot", DisplayName: "HubSpot", Category: CategoryTicketing},
	Metadata{InternalName: "github", DisplayName: "Github", Category: CategoryCode},
	Metadata{InternalName: "gitlab", DisplayName: "Gitlab", Category: CategoryCode},
)

// Default returns the built in registry
func Default() *Static { return builtin }

// Valid reports whether id is a known source kind in the built in registry
func Valid(id ID) bool {
	_, ok := builtin.Lookup(id)
	return ok
}

// Resolve looks id up in reg and falls back to a generic entry named after id,
// so stale or custom kinds still render
func Resolve(reg Registry, id ID) Metadata {
	if reg != nil {
		if md, ok := reg.Lookup(id); ok {
			return md
		}
	}
	return Metadata{InternalName: id, DisplayName: string(id), Category: CategoryOther}
}
