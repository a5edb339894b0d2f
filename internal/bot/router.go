package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sa-community/sabot/internal/conversation"
	"github.com/sa-community/sabot/internal/scheduler"
)

// Router classifies each inbound event into exactly one handling path.
// Event-level failures become user-visible replies; nothing propagates far
// enough to take down the event stream.
type Router struct {
	platform        Platform
	generator       Generator
	registry        *conversation.Registry
	scheduler       *scheduler.Scheduler
	logger          *slog.Logger
	muteRoleName    string
	isolateRoleName string
	allowedChannels map[string]struct{}
}

// Option configures the router.
type Option func(*Router)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithRoleNames configures the moderation role display names.
func WithRoleNames(mute, isolate string) Option {
	return func(r *Router) {
		r.muteRoleName = mute
		r.isolateRoleName = isolate
	}
}

// WithAllowedChannels sets the channels where the "ayuda" keyword replies.
func WithAllowedChannels(channelIDs []string) Option {
	return func(r *Router) {
		for _, id := range channelIDs {
			r.allowedChannels[id] = struct{}{}
		}
	}
}

// NewRouter creates an interaction router.
func NewRouter(platform Platform, generator Generator, registry *conversation.Registry, sched *scheduler.Scheduler, opts ...Option) (*Router, error) {
	if platform == nil {
		return nil, fmt.Errorf("platform is required")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if sched == nil {
		return nil, fmt.Errorf("scheduler is required")
	}

	r := &Router{
		platform:        platform,
		generator:       generator,
		registry:        registry,
		scheduler:       sched,
		logger:          slog.Default(),
		allowedChannels: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// HandleMessage processes a plain text message.
func (r *Router) HandleMessage(ctx context.Context, msg Message) {
	defer r.recoverPanic(ctx, "message")

	if msg.AuthorIsBot {
		return
	}

	if r.registry.IsConversationChannel(msg.ChannelID) {
		r.handleConversationMessage(ctx, msg)
		return
	}

	if _, allowed := r.allowedChannels[msg.ChannelID]; allowed &&
		strings.EqualFold(strings.TrimSpace(msg.Content), "ayuda") {
		if err := r.platform.ReplyToMessage(ctx, msg.ChannelID, msg.MessageID, Response{Embeds: helpEmbeds()}); err != nil {
			r.logger.ErrorContext(ctx, "failed to send help reply", "channel_id", msg.ChannelID, "error", err)
		}
	}
}

// HandleCommand processes a slash command invocation.
func (r *Router) HandleCommand(ctx context.Context, cmd Command) {
	defer r.recoverPanic(ctx, "command "+cmd.Name)

	switch cmd.Name {
	case "help":
		r.respond(ctx, cmd.Interaction, Response{Embeds: helpEmbeds()})
	case "ping":
		r.handlePing(ctx, cmd)
	case "prompt", "solicitud":
		r.handlePrompt(ctx, cmd)
	case "reminder":
		r.handleReminder(ctx, cmd)
	case "empezar":
		r.handleStartCommand(ctx, cmd)
	case "salirsa":
		r.handleExitMenu(ctx, cmd)
	case "userinfo":
		r.handleUserInfo(ctx, cmd)
	case "mute":
		r.handleMute(ctx, cmd)
	case "unmute":
		r.handleUnmute(ctx, cmd)
	case "ban":
		r.handleBan(ctx, cmd)
	case "unban":
		r.handleUnban(ctx, cmd)
	case "aislar":
		r.handleIsolate(ctx, cmd)
	case "unaislar":
		r.handleUnisolate(ctx, cmd)
	default:
		r.logger.DebugContext(ctx, "ignoring unknown command", "command", cmd.Name)
	}
}

// HandleButton processes a button press.
func (r *Router) HandleButton(ctx context.Context, btn Button) {
	defer r.recoverPanic(ctx, "button "+btn.CustomID)

	switch btn.CustomID {
	case ButtonStartConversation:
		r.handleOpenConversation(ctx, btn)
	case ButtonCloseConversation:
		r.handleCloseRequest(ctx, btn)
	case ButtonConfirmClose:
		r.handleConfirmClose(ctx, btn)
	case ButtonCancelClose:
		r.handleCancelClose(ctx, btn)
	default:
		r.logger.DebugContext(ctx, "ignoring unknown button", "custom_id", btn.CustomID)
	}
}

// respond sends an interaction reply, logging delivery failures.
func (r *Router) respond(ctx context.Context, i Interaction, resp Response) {
	if err := r.platform.Respond(ctx, i, resp); err != nil {
		r.logger.ErrorContext(ctx, "failed to respond to interaction",
			"user_id", i.UserID,
			"channel_id", i.ChannelID,
			"error", err)
	}
}

// respondText is the shorthand for a plain text reply.
func (r *Router) respondText(ctx context.Context, i Interaction, text string) {
	r.respond(ctx, i, Response{Content: text})
}

// respondEphemeral is the shorthand for an ephemeral text reply.
func (r *Router) respondEphemeral(ctx context.Context, i Interaction, text string) {
	r.respond(ctx, i, Response{Content: text, Ephemeral: true})
}

// recoverPanic keeps a misbehaving handler from killing the event stream.
func (r *Router) recoverPanic(ctx context.Context, event string) {
	if rec := recover(); rec != nil {
		r.logger.ErrorContext(ctx, "recovered panic in event handler",
			"event", event,
			"panic", rec)
	}
}
