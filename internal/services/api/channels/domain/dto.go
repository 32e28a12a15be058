package domain

// ConfigInput creates or replaces a channel config.
// Either PersonaID or DocumentSets selects what the bot answers from
type ConfigInput struct {
	BotID                  int64          `json:"discord_bot_id"            validate:"required,gt=0" example:"1"`
	ChannelName            string         `json:"channel_name"              validate:"required,min=1,max=200" example:"#support"`
	RespondMentionOnly     bool           `json:"respond_mention_only"`
	RespondToBots          bool           `json:"respond_to_bots"`
	ShowContinueInWebUI    bool           `json:"show_continue_in_web_ui"`
	EnableAutoFilters      bool           `json:"enable_auto_filters"`
	RespondMemberGroupList []string       `json:"respond_member_group_list" validate:"omitempty,dive,required,max=200"`
	AnswerFilters          []AnswerFilter `json:"answer_filters"            validate:"omitempty,dive,oneof=answerable_prefilter well_answered_postfilter questionmark_prefilter"` //nolint:lll
	FollowUpTags           []string       `json:"follow_up_tags"            validate:"omitempty,dive,max=200"`
	PersonaID              *int64         `json:"persona_id,omitempty"      validate:"omitempty,gt=0" example:"12"`
	DocumentSets           []int64        `json:"document_sets"             validate:"omitempty,dive,gt=0"`
}

// LookupQuery finds the config routing a channel for a bot
type LookupQuery struct {
	BotID   int64  `json:"bot_id"  example:"1"`
	Channel string `json:"channel" example:"support"`
}
