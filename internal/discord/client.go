// Package discord binds the bot to Discord: it translates gateway events
// into router events and implements the Platform interface over discordgo.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/sa-community/sabot/internal/bot"
)

// readyTimeout bounds how long Open waits for the gateway ready event.
const readyTimeout = 30 * time.Second

// Compile-time check that the client satisfies the router's contract.
var _ bot.Platform = (*Client)(nil)

// Client wraps a discordgo session.
type Client struct {
	session *discordgo.Session
	logger  *slog.Logger
	ready   chan struct{}
}

// NewClient creates a Discord client with the gateway intents the bot
// needs: guilds, guild messages and message content.
func NewClient(token string, logger *slog.Logger) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	c := &Client{
		session: session,
		logger:  logger,
		ready:   make(chan struct{}),
	}

	session.AddHandlerOnce(func(_ *discordgo.Session, r *discordgo.Ready) {
		c.logger.Info("discord gateway ready",
			"bot_user", r.User.Username,
			"guilds", len(r.Guilds))
		close(c.ready)
	})

	return c, nil
}

// Open connects to the gateway and waits for the ready event.
func (c *Client) Open(ctx context.Context) error {
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	select {
	case <-c.ready:
		return nil
	case <-time.After(readyTimeout):
		return fmt.Errorf("timed out waiting for gateway ready")
	case <-ctx.Done():
		return fmt.Errorf("canceled waiting for gateway ready: %w", ctx.Err())
	}
}

// Close disconnects from the gateway.
func (c *Client) Close() error {
	if err := c.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}
	return nil
}

// botUserID returns the connected bot identity; empty before ready.
func (c *Client) botUserID() string {
	if c.session.State != nil && c.session.State.User != nil {
		return c.session.State.User.ID
	}
	return ""
}

// rawInteraction extracts the discordgo handle an event carried in.
func rawInteraction(i bot.Interaction) (*discordgo.Interaction, error) {
	raw, ok := i.Raw.(*discordgo.Interaction)
	if !ok {
		return nil, fmt.Errorf("interaction carries no discord handle")
	}
	return raw, nil
}

// Respond implements bot.Platform.
func (c *Client) Respond(ctx context.Context, i bot.Interaction, r bot.Response) error {
	raw, err := rawInteraction(i)
	if err != nil {
		return err
	}

	data := &discordgo.InteractionResponseData{
		Content:    r.Content,
		Embeds:     toMessageEmbeds(r.Embeds),
		Components: toComponents(r.Buttons),
	}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	if err := c.session.InteractionRespond(raw, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to respond to interaction: %w", err)
	}
	return nil
}

// Defer implements bot.Platform.
func (c *Client) Defer(ctx context.Context, i bot.Interaction) error {
	raw, err := rawInteraction(i)
	if err != nil {
		return err
	}

	if err := c.session.InteractionRespond(raw, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to defer interaction: %w", err)
	}
	return nil
}

// EditDeferred implements bot.Platform.
func (c *Client) EditDeferred(ctx context.Context, i bot.Interaction, content string) error {
	raw, err := rawInteraction(i)
	if err != nil {
		return err
	}

	if _, err := c.session.InteractionResponseEdit(raw, &discordgo.WebhookEdit{
		Content: &content,
	}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to edit deferred reply: %w", err)
	}
	return nil
}

// FollowUp implements bot.Platform.
func (c *Client) FollowUp(ctx context.Context, i bot.Interaction, content string) error {
	raw, err := rawInteraction(i)
	if err != nil {
		return err
	}

	if _, err := c.session.FollowupMessageCreate(raw, true, &discordgo.WebhookParams{
		Content: content,
	}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send follow-up: %w", err)
	}
	return nil
}

// UpdateMessage implements bot.Platform.
func (c *Client) UpdateMessage(ctx context.Context, i bot.Interaction, r bot.Response) error {
	raw, err := rawInteraction(i)
	if err != nil {
		return err
	}

	if err := c.session.InteractionRespond(raw, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    r.Content,
			Embeds:     toMessageEmbeds(r.Embeds),
			Components: toComponents(r.Buttons),
		},
	}, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}
	return nil
}

// ReplyToMessage implements bot.Platform.
func (c *Client) ReplyToMessage(ctx context.Context, channelID, messageID string, r bot.Response) error {
	send := &discordgo.MessageSend{
		Content:    r.Content,
		Embeds:     toMessageEmbeds(r.Embeds),
		Components: toComponents(r.Buttons),
		Reference: &discordgo.MessageReference{
			MessageID: messageID,
			ChannelID: channelID,
		},
	}

	if _, err := c.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to reply in channel %s: %w", channelID, err)
	}
	return nil
}

// SendToChannel implements bot.Platform.
func (c *Client) SendToChannel(ctx context.Context, channelID string, r bot.Response) error {
	send := &discordgo.MessageSend{
		Content:    r.Content,
		Embeds:     toMessageEmbeds(r.Embeds),
		Components: toComponents(r.Buttons),
	}

	if _, err := c.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send to channel %s: %w", channelID, err)
	}
	return nil
}

// CreateConversationChannel implements bot.Platform. Visibility is locked
// down to the owner and the bot; @everyone is denied outright.
func (c *Client) CreateConversationChannel(ctx context.Context, guildID, name, ownerID string) (string, error) {
	viewAndSend := int64(discordgo.PermissionViewChannel | discordgo.PermissionSendMessages)

	overwrites := []*discordgo.PermissionOverwrite{
		{
			// The @everyone role id equals the guild id.
			ID:   guildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: int64(discordgo.PermissionViewChannel),
		},
		{
			ID:    ownerID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: viewAndSend,
		},
		{
			ID:    c.botUserID(),
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: viewAndSend,
		},
	}

	channel, err := c.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		PermissionOverwrites: overwrites,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to create channel %q: %w", name, err)
	}
	return channel.ID, nil
}

// DeleteChannel implements bot.Platform.
func (c *Client) DeleteChannel(ctx context.Context, channelID string) error {
	if _, err := c.session.ChannelDelete(channelID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete channel %s: %w", channelID, err)
	}
	return nil
}

// RoleByName implements bot.Platform.
func (c *Client) RoleByName(ctx context.Context, guildID, name string) (string, error) {
	roles, err := c.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to list roles: %w", err)
	}

	for _, role := range roles {
		if role.Name == name {
			return role.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", bot.ErrRoleNotFound, name)
}

// AddRole implements bot.Platform.
func (c *Client) AddRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := c.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to add role: %w", err)
	}
	return nil
}

// RemoveRole implements bot.Platform.
func (c *Client) RemoveRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := c.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to remove role: %w", err)
	}
	return nil
}

// Ban implements bot.Platform.
func (c *Client) Ban(ctx context.Context, guildID, userID, reason string) error {
	if err := c.session.GuildBanCreateWithReason(guildID, userID, reason, 0, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to ban member: %w", err)
	}
	return nil
}

// Unban implements bot.Platform.
func (c *Client) Unban(ctx context.Context, guildID, userID string) error {
	if err := c.session.GuildBanDelete(guildID, userID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to unban user: %w", err)
	}
	return nil
}

// Member implements bot.Platform.
func (c *Client) Member(ctx context.Context, guildID, userID string) (*bot.Member, error) {
	member, err := c.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}

	info := &bot.Member{
		ID:       userID,
		Nickname: member.Nick,
		JoinedAt: member.JoinedAt,
	}
	if member.User != nil {
		info.AvatarURL = member.User.AvatarURL("")
	}
	return info, nil
}

// toMessageEmbeds converts router embeds to discordgo embeds.
func toMessageEmbeds(embeds []bot.Embed) []*discordgo.MessageEmbed {
	if len(embeds) == 0 {
		return nil
	}

	out := make([]*discordgo.MessageEmbed, 0, len(embeds))
	for _, e := range embeds {
		embed := &discordgo.MessageEmbed{
			Title:       e.Title,
			Description: e.Description,
			Color:       0x000000,
			Timestamp:   time.Now().Format(time.RFC3339),
		}
		if e.Thumbnail != "" {
			embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.Thumbnail}
		}
		for _, f := range e.Fields {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   f.Name,
				Value:  f.Value,
				Inline: f.Inline,
			})
		}
		out = append(out, embed)
	}
	return out
}

// toComponents renders buttons as a single action row.
func toComponents(buttons []bot.ButtonSpec) []discordgo.MessageComponent {
	if len(buttons) == 0 {
		return nil
	}

	row := discordgo.ActionsRow{}
	for _, b := range buttons {
		row.Components = append(row.Components, discordgo.Button{
			CustomID: b.CustomID,
			Label:    b.Label,
			Style:    toButtonStyle(b.Style),
		})
	}
	return []discordgo.MessageComponent{row}
}

func toButtonStyle(style bot.ButtonStyle) discordgo.ButtonStyle {
	switch style {
	case bot.StyleSecondary:
		return discordgo.SecondaryButton
	case bot.StyleDanger:
		return discordgo.DangerButton
	case bot.StylePrimary:
		return discordgo.PrimaryButton
	default:
		return discordgo.PrimaryButton
	}
}
