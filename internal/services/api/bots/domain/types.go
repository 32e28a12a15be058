// Package domain holds Discord bot types independent of transport or storage
package domain

import "time"

// Bot is the public view of a registered bot; the token itself never leaves the service
type Bot struct {
	ID             int64      `json:"id"                         example:"1"`
	Name           string     `json:"name"                       example:"helpdesk"`
	Enabled        bool       `json:"enabled"                    example:"true"`
	TokenHint      string     `json:"bot_token_hint"             example:"****Xy9Q"`
	TokenRotatedAt *time.Time `json:"token_rotated_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Record is a stored bot including its credential
type Record struct {
	Bot
	Token string
}

// View strips the credential, leaving only its hint
func (r Record) View() Bot {
	b := r.Bot
	b.TokenHint = Hint(r.Token)
	return b
}

// Hint masks a token down to its last four characters
func Hint(token string) string {
	const keep = 4
	if len(token) <= keep {
		return "****"
	}
	return "****" + token[len(token)-keep:]
}
