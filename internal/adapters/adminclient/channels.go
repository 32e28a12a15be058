package adminclient

import (
	"context"
	"net/url"
	"strconv"

	chdom "botdesk/internal/services/api/channels/domain"
)

// ChannelsPath is the channel config collection endpoint
const ChannelsPath = "/api/v1/manage/admin/discord-app/channel"

// ChannelPath is the endpoint for one channel config
func ChannelPath(id int64) string { return ChannelsPath + "/" + strconv.FormatInt(id, 10) }

// LookupPath is the routing lookup for a channel of a bot
func LookupPath(botID int64, channel string) string {
	q := url.Values{}
	q.Set("bot_id", strconv.FormatInt(botID, 10))
	q.Set("channel", channel)
	return ChannelsPath + "/lookup?" + q.Encode()
}

// ChannelForm is what the channel config screen collects
type ChannelForm struct {
	BotID                  int64
	ChannelName            string
	RespondMentionOnly     bool
	RespondToBots          bool
	ShowContinueInWebUI    bool
	EnableAutoFilters      bool
	RespondMemberGroupList []string

	// AnswerValidityCheck and QuestionmarkPrefilter are the two filter toggles
	AnswerValidityCheck   bool
	QuestionmarkPrefilter bool

	FollowUpTags []string

	// UsePersona sends PersonaID, otherwise DocumentSets
	UsePersona   bool
	PersonaID    *int64
	DocumentSets []int64
}

// channelBody is the request wire form; exactly one of persona_id and document_sets is sent
type channelBody struct {
	BotID                  int64                `json:"discord_bot_id"`
	ChannelName            string               `json:"channel_name"`
	RespondMentionOnly     bool                 `json:"respond_mention_only"`
	RespondToBots          bool                 `json:"respond_to_bots"`
	ShowContinueInWebUI    bool                 `json:"show_continue_in_web_ui"`
	EnableAutoFilters      bool                 `json:"enable_auto_filters"`
	RespondMemberGroupList []string             `json:"respond_member_group_list"`
	AnswerFilters          []chdom.AnswerFilter `json:"answer_filters"`
	FollowUpTags           []string             `json:"follow_up_tags,omitempty"`
	PersonaID              *int64               `json:"persona_id,omitempty"`
	DocumentSets           []int64              `json:"document_sets,omitempty"`
}

// body builds the request for f
func (f ChannelForm) body() channelBody {
	b := channelBody{
		BotID:                  f.BotID,
		ChannelName:            f.ChannelName,
		RespondMentionOnly:     f.RespondMentionOnly,
		RespondToBots:          f.RespondToBots,
		ShowContinueInWebUI:    f.ShowContinueInWebUI,
		EnableAutoFilters:      f.EnableAutoFilters,
		RespondMemberGroupList: f.RespondMemberGroupList,
		AnswerFilters:          f.AnswerFilters(),
	}
	if b.RespondMemberGroupList == nil {
		b.RespondMemberGroupList = []string{}
	}
	for _, t := range f.FollowUpTags {
		if t != "" {
			b.FollowUpTags = append(b.FollowUpTags, t)
		}
	}
	if f.UsePersona {
		b.PersonaID = f.PersonaID
	} else {
		b.DocumentSets = f.DocumentSets
	}
	return b
}

// AnswerFilters derives the filter list from the two toggles
func (f ChannelForm) AnswerFilters() []chdom.AnswerFilter {
	out := []chdom.AnswerFilter{}
	if f.AnswerValidityCheck {
		out = append(out, chdom.WellAnsweredPostfilter)
	}
	if f.QuestionmarkPrefilter {
		out = append(out, chdom.QuestionmarkPrefilter)
	}
	return out
}

// ListChannelConfigs returns every channel config
func (c *Client) ListChannelConfigs(ctx context.Context) ([]chdom.Config, error) {
	var out []chdom.Config
	err := c.get(ctx, ChannelsPath, &out)
	return out, err
}

// RefreshChannelConfigs refetches the channel config list
func (c *Client) RefreshChannelConfigs(ctx context.Context) ([]chdom.Config, error) {
	var out []chdom.Config
	err := c.refresh(ctx, ChannelsPath, &out)
	return out, err
}

// LookupChannel returns the config routing channel for a bot
func (c *Client) LookupChannel(ctx context.Context, botID int64, channel string) (chdom.Config, error) {
	var out chdom.Config
	err := c.get(ctx, LookupPath(botID, channel), &out)
	return out, err
}

// CreateChannelConfig creates a config from the form
func (c *Client) CreateChannelConfig(ctx context.Context, f ChannelForm) (chdom.Config, error) {
	var out chdom.Config
	err := c.do(ctx, "POST", ChannelsPath, f.body(), &out)
	return out, err
}

// UpdateChannelConfig replaces a config from the form
func (c *Client) UpdateChannelConfig(ctx context.Context, id int64, f ChannelForm) (chdom.Config, error) {
	var out chdom.Config
	err := c.do(ctx, "PATCH", ChannelPath(id), f.body(), &out)
	return out, err
}

// DeleteChannelConfig removes a config
func (c *Client) DeleteChannelConfig(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", ChannelPath(id), nil, nil)
}
