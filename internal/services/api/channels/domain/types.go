// Package domain holds Discord channel config types independent of transport or storage
package domain

import (
	"strings"
	"time"
)

// AnswerFilter gates which questions the bot answers in a channel
type AnswerFilter string

const (
	// AnswerablePrefilter skips questions the assistant judges unanswerable
	AnswerablePrefilter AnswerFilter = "answerable_prefilter"

	// WellAnsweredPostfilter drops answers that did not cite enough context
	WellAnsweredPostfilter AnswerFilter = "well_answered_postfilter"

	// QuestionmarkPrefilter only answers messages containing a question mark
	QuestionmarkPrefilter AnswerFilter = "questionmark_prefilter"
)

// PersonaPrefix marks personas created and owned by a channel config
const PersonaPrefix = "__discord_bot_persona__"

// PersonaName is the bot owned persona name for a channel
func PersonaName(channel string) string { return PersonaPrefix + channel }

// BotOwned reports whether a persona name was minted by PersonaName
func BotOwned(personaName string) bool { return strings.HasPrefix(personaName, PersonaPrefix) }

// ChannelConfig is the JSON document stored per channel; optional keys are omitted when unset
type ChannelConfig struct {
	ChannelName            string         `json:"channel_name"`
	RespondMentionOnly     bool           `json:"respond_mention_only,omitempty"`
	RespondToBots          bool           `json:"respond_to_bots"`
	ShowContinueInWebUI    bool           `json:"show_continue_in_web_ui"`
	RespondMemberGroupList []string       `json:"respond_member_group_list,omitempty"`
	AnswerFilters          []AnswerFilter `json:"answer_filters,omitempty"`
	FollowUpTags           []string       `json:"follow_up_tags,omitempty"`
}

// Config is one stored channel config
type Config struct {
	ID                int64         `json:"id"                   example:"7"`
	BotID             int64         `json:"discord_bot_id"       example:"1"`
	PersonaID         *int64        `json:"persona_id,omitempty" example:"12"`
	ChannelConfig     ChannelConfig `json:"channel_config"`
	EnableAutoFilters bool          `json:"enable_auto_filters"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// Row is the writable part of a config
type Row struct {
	BotID             int64
	PersonaID         *int64
	ChannelConfig     ChannelConfig
	EnableAutoFilters bool
}

// Persona is the slice of a persona the channel rules need
type Persona struct {
	ID   int64
	Name string
}
