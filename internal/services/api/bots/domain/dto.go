package domain

// CreateInput registers a bot
type CreateInput struct {
	Name    string `json:"name"      validate:"required,min=1,max=200" example:"helpdesk"`
	Enabled bool   `json:"enabled"   example:"true"`
	Token   string `json:"bot_token" validate:"required,min=10,max=512,printascii" example:"MTA4Nz..."`
}

// UpdateInput edits a bot; an empty token keeps the stored one
type UpdateInput struct {
	Name    string `json:"name"      validate:"required,min=1,max=200" example:"helpdesk"`
	Enabled bool   `json:"enabled"   example:"false"`
	Token   string `json:"bot_token" validate:"omitempty,min=10,max=512,printascii"`
}

// RotateInput replaces the stored token
type RotateInput struct {
	Token string `json:"bot_token" validate:"required,min=10,max=512,printascii" example:"MTA4Nz..."`
}
