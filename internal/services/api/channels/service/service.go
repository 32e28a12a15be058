// Package service contains Discord channel config workflows
package service

import (
	"context"

	"botdesk/internal/core/channelname"
	"botdesk/internal/modkit/repokit"
	perr "botdesk/internal/platform/errors"
	"botdesk/internal/platform/logger"
	pstrings "botdesk/internal/platform/strings"
	"botdesk/internal/services/api/channels/domain"
	"botdesk/internal/services/api/channels/repo"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the service port
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("channels.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("channels.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
	}
}

// Create validates the request, resolves the persona and stores a new config
func (s *Svc) Create(ctx context.Context, in domain.ConfigInput) (domain.Config, error) {
	var id int64
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		cc, err := s.channelConfig(ctx, r, in, 0)
		if err != nil {
			return err
		}

		personaID := in.PersonaID
		if personaID == nil && len(in.DocumentSets) > 0 {
			pid, err := r.UpsertPersona(ctx, nil, domain.PersonaName(cc.ChannelName), in.DocumentSets)
			if err != nil {
				return err
			}
			personaID = &pid
		}

		id, err = r.Insert(ctx, domain.Row{
			BotID:             in.BotID,
			PersonaID:         personaID,
			ChannelConfig:     cc,
			EnableAutoFilters: in.EnableAutoFilters,
		})
		return err
	})
	if err != nil {
		return domain.Config{}, err
	}
	logger.C(ctx).Info().Int64("config_id", id).Int64("bot_id", in.BotID).Msg("channel config created")
	return s.Repo.Get(ctx, id)
}

// List returns every config
func (s *Svc) List(ctx context.Context) ([]domain.Config, error) {
	return s.Repo.List(ctx)
}

// ListByBot returns the configs owned by one bot
func (s *Svc) ListByBot(ctx context.Context, botID int64) ([]domain.Config, error) {
	return s.Repo.ListByBot(ctx, botID)
}

// Lookup returns the first config of the bot whose channel matches q.Channel
func (s *Svc) Lookup(ctx context.Context, q domain.LookupQuery) (domain.Config, error) {
	if q.BotID <= 0 {
		return domain.Config{}, perr.WithField(perr.InvalidArgf("bot_id must be a positive integer"), "bot_id")
	}
	if channelname.Clean(q.Channel) == "" {
		return domain.Config{}, perr.WithField(perr.InvalidArgf("channel is required"), "channel")
	}
	cfgs, err := s.Repo.ListByBot(ctx, q.BotID)
	if err != nil {
		return domain.Config{}, err
	}
	for _, c := range cfgs {
		if channelname.Matches(c.ChannelConfig.ChannelName, q.Channel) {
			return c, nil
		}
	}
	return domain.Config{}, perr.NotFoundf("no channel config for %q", q.Channel)
}

// Update replaces a config. A persona not created for the channel is never modified;
// document sets then mint a fresh bot owned persona instead
func (s *Svc) Update(ctx context.Context, id int64, in domain.ConfigInput) (domain.Config, error) {
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		existing, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing.BotID != in.BotID {
			return perr.WithField(perr.InvalidArgf("discord_bot_id cannot change"), "discord_bot_id")
		}

		cc, err := s.channelConfig(ctx, r, in, id)
		if err != nil {
			return err
		}

		var owned *int64
		if existing.PersonaID != nil {
			p, err := r.Persona(ctx, *existing.PersonaID)
			switch {
			case perr.IsCode(err, perr.ErrorCodeNotFound):
			case err != nil:
				return err
			case domain.BotOwned(p.Name):
				owned = &p.ID
			}
		}

		personaID := in.PersonaID
		if personaID == nil && len(in.DocumentSets) > 0 {
			pid, err := r.UpsertPersona(ctx, owned, domain.PersonaName(cc.ChannelName), in.DocumentSets)
			if err != nil {
				return err
			}
			personaID = &pid
		}

		if err := r.Update(ctx, id, domain.Row{
			BotID:             existing.BotID,
			PersonaID:         personaID,
			ChannelConfig:     cc,
			EnableAutoFilters: in.EnableAutoFilters,
		}); err != nil {
			return err
		}

		// the old bot owned persona is orphaned once the config points elsewhere
		if owned != nil && (personaID == nil || *personaID != *owned) {
			return r.DeletePersona(ctx, *owned)
		}
		return nil
	})
	if err != nil {
		return domain.Config{}, err
	}
	return s.Repo.Get(ctx, id)
}

// Delete removes a config and the persona it owns
func (s *Svc) Delete(ctx context.Context, id int64) error {
	return s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		existing, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Delete(ctx, id); err != nil {
			return err
		}
		if existing.PersonaID == nil {
			return nil
		}
		p, err := r.Persona(ctx, *existing.PersonaID)
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if !domain.BotOwned(p.Name) {
			return nil
		}
		return r.DeletePersona(ctx, p.ID)
	})
}

// channelConfig builds the stored document and enforces the per bot rules.
// self is the id being updated, 0 on create
func (s *Svc) channelConfig(ctx context.Context, r repo.Repo, in domain.ConfigInput, self int64) (domain.ChannelConfig, error) {
	name := channelname.Clean(in.ChannelName)
	if name == "" {
		return domain.ChannelConfig{}, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "channel_name is required"), "channel_name")
	}
	if !channelname.Valid(name) {
		return domain.ChannelConfig{}, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "channel_name is too long"), "channel_name")
	}

	groups := pstrings.NonBlank(in.RespondMemberGroupList)
	if in.RespondMentionOnly && len(groups) > 0 {
		return domain.ChannelConfig{}, perr.Newf(perr.ErrorCodeValidation,
			"Cannot set the bot to only respond to mentions and also respond to a predetermined set of users")
	}

	botName, err := r.BotName(ctx, in.BotID)
	if err != nil {
		return domain.ChannelConfig{}, err
	}
	others, err := r.ListByBot(ctx, in.BotID)
	if err != nil {
		return domain.ChannelConfig{}, err
	}
	for _, c := range others {
		if c.ID == self {
			continue
		}
		if channelname.Matches(c.ChannelConfig.ChannelName, name) {
			return domain.ChannelConfig{}, perr.WithField(perr.Newf(perr.ErrorCodeValidation,
				"Channel name '%s' already exists in another Discord channel config with in Discord Bot with name: %s",
				name, botName), "channel_name")
		}
	}

	return domain.ChannelConfig{
		ChannelName:            name,
		RespondMentionOnly:     in.RespondMentionOnly,
		RespondToBots:          in.RespondToBots,
		ShowContinueInWebUI:    in.ShowContinueInWebUI,
		RespondMemberGroupList: groups,
		AnswerFilters:          pstrings.Dedupe(in.AnswerFilters),
		FollowUpTags:           pstrings.NonBlank(in.FollowUpTags),
	}, nil
}
