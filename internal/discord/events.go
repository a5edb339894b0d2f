package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/sa-community/sabot/internal/bot"
)

// BindRouter registers gateway handlers that translate discordgo events
// into router events. Call before Open.
func (c *Client) BindRouter(router *bot.Router) {
	c.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		c.onMessageCreate(router, m)
	})
	c.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		c.onInteractionCreate(router, i)
	})
}

func (c *Client) onMessageCreate(router *bot.Router, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}

	router.HandleMessage(context.Background(), bot.Message{
		MessageID:   m.ID,
		ChannelID:   m.ChannelID,
		AuthorID:    m.Author.ID,
		AuthorIsBot: m.Author.Bot,
		Content:     m.Content,
	})
}

func (c *Client) onInteractionCreate(router *bot.Router, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		router.HandleCommand(context.Background(), c.toCommand(i))
	case discordgo.InteractionMessageComponent:
		router.HandleButton(context.Background(), bot.Button{
			Interaction: c.toInteraction(i),
			CustomID:    i.MessageComponentData().CustomID,
		})
	default:
		c.logger.Debug("ignoring interaction", "type", i.Type)
	}
}

// toInteraction extracts the common fields every interaction carries.
func (c *Client) toInteraction(i *discordgo.InteractionCreate) bot.Interaction {
	out := bot.Interaction{
		ChannelID: i.ChannelID,
		GuildID:   i.GuildID,
		Raw:       i.Interaction,
	}

	user := i.User
	if i.Member != nil {
		user = i.Member.User
		out.IsAdmin = i.Member.Permissions&discordgo.PermissionAdministrator != 0
	}
	if user != nil {
		out.UserID = user.ID
		out.Username = user.Username
	}

	if created, err := discordgo.SnowflakeTimestamp(i.ID); err == nil {
		out.CreatedAt = created
	}

	return out
}

func (c *Client) toCommand(i *discordgo.InteractionCreate) bot.Command {
	data := i.ApplicationCommandData()

	cmd := bot.Command{
		Interaction: c.toInteraction(i),
		Name:        data.Name,
		Options:     make(map[string]string),
	}

	for _, opt := range data.Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionString:
			cmd.Options[opt.Name] = opt.StringValue()
		case discordgo.ApplicationCommandOptionUser:
			if user := opt.UserValue(c.session); user != nil {
				cmd.TargetUserID = user.ID
				cmd.TargetName = user.Username
			}
		default:
			c.logger.Debug("ignoring command option",
				"command", data.Name, "option", opt.Name, "type", opt.Type)
		}
	}

	return cmd
}
