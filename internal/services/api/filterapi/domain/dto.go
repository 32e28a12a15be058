// Package domain holds filter endpoint contracts
package domain

import (
	"time"

	"botdesk/internal/core/filters"
	"botdesk/internal/core/sources"
)

// Options is the catalog a filter bar may offer
type Options struct {
	Sources      []sources.Metadata `json:"sources"`
	DocumentSets []string           `json:"document_sets"`
	Tags         []filters.Tag      `json:"tags"`
}

// Resolved is a decoded filter query with its canonical re-encoding
type Resolved struct {
	State filters.State `json:"state"`
	Query string        `json:"query" example:"sources=slack&tags=p%3Ahigh"`
}

// TimeRange is the wire form of a filter window
type TimeRange struct {
	From time.Time `json:"from" validate:"required" example:"2024-01-01T00:00:00.000Z"`
	To   time.Time `json:"to"   validate:"required" example:"2024-01-31T23:59:59.000Z"`
}

// EncodeInput is a filter selection to turn into a query string; tags are given by value
type EncodeInput struct {
	TimeRange    *TimeRange   `json:"time_range,omitempty"`
	Sources      []sources.ID `json:"sources"       validate:"omitempty,dive,required,max=100" example:"slack"`
	DocumentSets []string     `json:"document_sets" validate:"omitempty,dive,required,max=200" example:"Engineering Docs"`
	Tags         []string     `json:"tags"          validate:"omitempty,dive,required,max=200" example:"p:high"`
}

// Encoded carries a query string without a leading '?'
type Encoded struct {
	Query string `json:"query" example:"sources=slack&documentSets=Engineering%20Docs"`
}
