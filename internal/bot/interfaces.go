// Package bot routes inbound platform events to the conversation registry,
// the generative relay, the reminder scheduler and the moderation handlers,
// and renders every reply.
package bot

import (
	"context"

	"github.com/sa-community/sabot/internal/conversation"
)

// Platform abstracts the chat-platform operations the router performs.
// The discord package implements it for production; tests use a mock.
type Platform interface {
	// Respond replies to an interaction.
	Respond(ctx context.Context, i Interaction, r Response) error

	// Defer acknowledges an interaction whose reply will take longer than
	// interactive latency allows.
	Defer(ctx context.Context, i Interaction) error

	// EditDeferred fills in a previously deferred reply.
	EditDeferred(ctx context.Context, i Interaction, content string) error

	// FollowUp sends an additional message tied to an interaction.
	FollowUp(ctx context.Context, i Interaction, content string) error

	// UpdateMessage rewrites the message a button was attached to.
	UpdateMessage(ctx context.Context, i Interaction, r Response) error

	// ReplyToMessage replies to a plain channel message.
	ReplyToMessage(ctx context.Context, channelID, messageID string, r Response) error

	// SendToChannel posts into a channel without a reply reference.
	SendToChannel(ctx context.Context, channelID string, r Response) error

	// CreateConversationChannel creates a private text channel visible only
	// to the owner and the bot, returning its id.
	CreateConversationChannel(ctx context.Context, guildID, name, ownerID string) (string, error)

	// DeleteChannel removes a channel.
	DeleteChannel(ctx context.Context, channelID string) error

	// RoleByName resolves a role id by exact display-name match. It returns
	// an error wrapping ErrRoleNotFound when the guild has no such role.
	RoleByName(ctx context.Context, guildID, name string) (string, error)

	// AddRole grants a role to a member.
	AddRole(ctx context.Context, guildID, userID, roleID string) error

	// RemoveRole revokes a role from a member.
	RemoveRole(ctx context.Context, guildID, userID, roleID string) error

	// Ban bans a member.
	Ban(ctx context.Context, guildID, userID, reason string) error

	// Unban lifts a ban by user id.
	Unban(ctx context.Context, guildID, userID string) error

	// Member fetches member details for display.
	Member(ctx context.Context, guildID, userID string) (*Member, error)
}

// Generator is the stateless relay to the generative backend. A nil
// history answers a standalone prompt with no context.
type Generator interface {
	Generate(ctx context.Context, prompt string, history []conversation.Turn) (string, error)
}
