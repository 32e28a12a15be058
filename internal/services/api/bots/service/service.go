// Package service contains Discord bot workflows
package service

import (
	"context"
	"strings"

	"botdesk/internal/modkit/repokit"
	perr "botdesk/internal/platform/errors"
	"botdesk/internal/platform/logger"
	"botdesk/internal/services/api/bots/domain"
	"botdesk/internal/services/api/bots/repo"
	chdom "botdesk/internal/services/api/channels/domain"
)

// Service is the public service port
type Service interface {
	domain.ServicePort
	domain.TokenPort
}

// Svc implements the service port
type Svc struct {
	Repo     repo.Repo
	binder   repokit.Binder[repo.Repo]
	db       repokit.TxRunner
	channels chdom.ByBotPort
}

// Options control service behavior
type Options struct {
	// Channels is required; it backs Configs
	Channels chdom.ByBotPort
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("bots.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("bots.Service requires a non nil Repo binder")
	}
	if opt.Channels == nil {
		panic("bots.Service requires a non nil channels ByBotPort")
	}
	return &Svc{
		Repo:     binder.Bind(db),
		binder:   binder,
		db:       db,
		channels: opt.Channels,
	}
}

// Create registers a bot
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Bot, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return domain.Bot{}, err
	}
	id, err := s.Repo.Insert(ctx, name, in.Enabled, in.Token)
	if err != nil {
		return domain.Bot{}, err
	}
	logger.C(ctx).Info().Int64("bot_id", id).Str("name", name).Msg("discord bot created")
	return s.Get(ctx, id)
}

// List returns every bot
func (s *Svc) List(ctx context.Context) ([]domain.Bot, error) {
	recs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Bot, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.View())
	}
	return out, nil
}

// Get returns one bot
func (s *Svc) Get(ctx context.Context, id int64) (domain.Bot, error) {
	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Bot{}, err
	}
	return rec.View(), nil
}

// Update edits name and enabled; a non-empty token that differs from the stored one is rotated too
func (s *Svc) Update(ctx context.Context, id int64, in domain.UpdateInput) (domain.Bot, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return domain.Bot{}, err
	}
	err = s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		cur, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Update(ctx, id, name, in.Enabled); err != nil {
			return err
		}
		if in.Token != "" && in.Token != cur.Token {
			return r.RotateToken(ctx, id, in.Token)
		}
		return nil
	})
	if err != nil {
		return domain.Bot{}, err
	}
	return s.Get(ctx, id)
}

// RotateToken replaces the stored credential and stamps the rotation time
func (s *Svc) RotateToken(ctx context.Context, id int64, in domain.RotateInput) (domain.Bot, error) {
	if err := s.Repo.RotateToken(ctx, id, in.Token); err != nil {
		return domain.Bot{}, err
	}
	logger.C(ctx).Info().Int64("bot_id", id).Msg("discord bot token rotated")
	return s.Get(ctx, id)
}

// Delete removes a bot, its channel configs by cascade, and the personas those configs owned
func (s *Svc) Delete(ctx context.Context, id int64) error {
	return s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		n, err := r.DeletePersonas(ctx, id, chdom.PersonaPrefix)
		if err != nil {
			return err
		}
		if err := r.Delete(ctx, id); err != nil {
			return err
		}
		logger.C(ctx).Info().Int64("bot_id", id).Int64("personas", n).Msg("discord bot deleted")
		return nil
	})
}

// Configs lists the channel configs of an existing bot
func (s *Svc) Configs(ctx context.Context, id int64) ([]chdom.Config, error) {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.channels.ListByBot(ctx, id)
}

// EnabledTokens returns the credentials of enabled bots keyed by bot id
func (s *Svc) EnabledTokens(ctx context.Context) (map[int64]string, error) {
	recs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(recs))
	for _, r := range recs {
		if r.Enabled {
			out[r.ID] = r.Token
		}
	}
	return out, nil
}

func cleanName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", perr.WithField(perr.Newf(perr.ErrorCodeValidation, "name is required"), "name")
	}
	return name, nil
}
