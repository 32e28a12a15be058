package adminclient

import (
	"context"
	"strconv"

	bdom "botdesk/internal/services/api/bots/domain"
	chdom "botdesk/internal/services/api/channels/domain"
)

// BotsPath is the bot collection endpoint
const BotsPath = "/api/v1/manage/admin/discord-app/bots"

// BotPath is the endpoint for one bot
func BotPath(id int64) string { return BotsPath + "/" + strconv.FormatInt(id, 10) }

// BotConfigsPath lists the channel configs owned by one bot
func BotConfigsPath(id int64) string { return BotPath(id) + "/config" }

// ListBots returns every registered bot
func (c *Client) ListBots(ctx context.Context) ([]bdom.Bot, error) {
	var out []bdom.Bot
	err := c.get(ctx, BotsPath, &out)
	return out, err
}

// RefreshBots refetches the bot list
func (c *Client) RefreshBots(ctx context.Context) ([]bdom.Bot, error) {
	var out []bdom.Bot
	err := c.refresh(ctx, BotsPath, &out)
	return out, err
}

// GetBot returns one bot
func (c *Client) GetBot(ctx context.Context, id int64) (bdom.Bot, error) {
	var out bdom.Bot
	err := c.get(ctx, BotPath(id), &out)
	return out, err
}

// RefreshBot refetches one bot
func (c *Client) RefreshBot(ctx context.Context, id int64) (bdom.Bot, error) {
	var out bdom.Bot
	err := c.refresh(ctx, BotPath(id), &out)
	return out, err
}

// BotConfigs returns the channel configs of one bot
func (c *Client) BotConfigs(ctx context.Context, id int64) ([]chdom.Config, error) {
	var out []chdom.Config
	err := c.get(ctx, BotConfigsPath(id), &out)
	return out, err
}

// RefreshBotConfigs refetches the channel configs of one bot
func (c *Client) RefreshBotConfigs(ctx context.Context, id int64) ([]chdom.Config, error) {
	var out []chdom.Config
	err := c.refresh(ctx, BotConfigsPath(id), &out)
	return out, err
}

// CreateBot registers a bot
func (c *Client) CreateBot(ctx context.Context, in bdom.CreateInput) (bdom.Bot, error) {
	var out bdom.Bot
	err := c.do(ctx, "POST", BotsPath, in, &out)
	return out, err
}

// UpdateBot edits a bot; an empty token keeps the stored one
func (c *Client) UpdateBot(ctx context.Context, id int64, in bdom.UpdateInput) (bdom.Bot, error) {
	var out bdom.Bot
	err := c.do(ctx, "PATCH", BotPath(id), in, &out)
	return out, err
}

// RotateToken replaces the stored bot token
func (c *Client) RotateToken(ctx context.Context, id int64, token string) (bdom.Bot, error) {
	var out bdom.Bot
	err := c.do(ctx, "PUT", BotPath(id)+"/token", bdom.RotateInput{Token: token}, &out)
	return out, err
}

// DeleteBot removes a bot with its channel configs
func (c *Client) DeleteBot(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", BotPath(id), nil, nil)
}

// SetBotEnabled flips one bot on or off, leaving its name and token as they are
func (c *Client) SetBotEnabled(ctx context.Context, bot bdom.Bot, enabled bool) (bdom.Bot, error) {
	return c.UpdateBot(ctx, bot.ID, bdom.UpdateInput{Name: bot.Name, Enabled: enabled})
}
