// Package service resolves and encodes search filter queries against the live catalog
package service

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"botdesk/internal/core/filters"
	"botdesk/internal/core/sources"
	"botdesk/internal/modkit/repokit"
	"botdesk/internal/services/api/filterapi/domain"
	"botdesk/internal/services/api/filterapi/repo"
)

// Service is the public service port
type Service interface {
	domain.ServicePort
	domain.CatalogPort
}

// Svc implements the service port
type Svc struct {
	Repo  repo.Repo
	reg   sources.Registry
	codec *filters.Codec

	cache *lru.LRU[string, filters.Catalog]
	group singleflight.Group
}

// Options control service behavior
type Options struct {
	// Registry hydrates source metadata; nil means the built in registry
	Registry sources.Registry

	// CatalogTTL caches the catalog between requests; 0 disables caching
	CatalogTTL time.Duration
}

const catalogKey = "catalog"

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("filterapi.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("filterapi.Service requires a non nil Repo binder")
	}
	reg := opt.Registry
	if reg == nil {
		reg = sources.Default()
	}
	s := &Svc{
		Repo:  binder.Bind(db),
		reg:   reg,
		codec: filters.NewCodec(reg),
	}
	if opt.CatalogTTL > 0 {
		s.cache = lru.NewLRU[string, filters.Catalog](1, nil, opt.CatalogTTL)
	}
	return s
}

// Catalog returns the option values valid right now, cached for CatalogTTL
func (s *Svc) Catalog(ctx context.Context) (filters.Catalog, error) {
	if s.cache != nil {
		if c, ok := s.cache.Get(catalogKey); ok {
			return c, nil
		}
	}
	// callers share one load, so one caller going away must not fail the rest
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(catalogKey, func() (any, error) {
		c, err := s.load(loadCtx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Add(catalogKey, c)
		}
		return c, nil
	})
	if err != nil {
		return filters.Catalog{}, err
	}
	return v.(filters.Catalog), nil
}

func (s *Svc) load(ctx context.Context) (filters.Catalog, error) {
	src, err := s.Repo.Sources(ctx)
	if err != nil {
		return filters.Catalog{}, err
	}
	docs, err := s.Repo.DocumentSets(ctx)
	if err != nil {
		return filters.Catalog{}, err
	}
	tags, err := s.Repo.Tags(ctx)
	if err != nil {
		return filters.Catalog{}, err
	}
	return filters.Catalog{Sources: src, DocumentSets: docs, Tags: tags}, nil
}

// Options returns the catalog with source metadata attached
func (s *Svc) Options(ctx context.Context) (domain.Options, error) {
	cat, err := s.Catalog(ctx)
	if err != nil {
		return domain.Options{}, err
	}
	out := domain.Options{
		Sources:      make([]sources.Metadata, 0, len(cat.Sources)),
		DocumentSets: append([]string{}, cat.DocumentSets...),
		Tags:         append([]filters.Tag{}, cat.Tags...),
	}
	for _, id := range cat.Sources {
		out.Sources = append(out.Sources, sources.Resolve(s.reg, id))
	}
	return out, nil
}

// Resolve decodes rawQuery and re-encodes what survived
func (s *Svc) Resolve(ctx context.Context, rawQuery string) (domain.Resolved, error) {
	cat, err := s.Catalog(ctx)
	if err != nil {
		return domain.Resolved{}, err
	}
	st := s.codec.Decode(rawQuery, cat)
	return domain.Resolved{State: st, Query: s.codec.Encode(st)}, nil
}

// Encode turns a selection into its canonical query; members missing from the catalog are dropped
func (s *Svc) Encode(ctx context.Context, in domain.EncodeInput) (domain.Encoded, error) {
	cat, err := s.Catalog(ctx)
	if err != nil {
		return domain.Encoded{}, err
	}

	st := filters.Clear()
	if in.TimeRange != nil {
		st.SetTimeRange(&filters.TimeRange{From: in.TimeRange.From, To: in.TimeRange.To})
	}
	picked := make([]sources.Metadata, 0, len(in.Sources))
	for _, id := range in.Sources {
		picked = append(picked, sources.Resolve(s.reg, id))
	}
	st.SetSources(picked)
	st.SetDocumentSets(in.DocumentSets)
	tags := make([]filters.Tag, 0, len(in.Tags))
	for _, v := range in.Tags {
		tags = append(tags, filters.Tag{Value: v})
	}
	st.SetTags(tags)

	// the round trip filters against the catalog and fixes member order
	canonical := s.codec.Decode(s.codec.Encode(st), cat)
	return domain.Encoded{Query: s.codec.Encode(canonical)}, nil
}
