package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/sa-community/sabot/internal/conversation"
)

// User-facing conversation strings, in deployment locale.
const (
	msgAlreadyOpen      = "Ya tienes una conversación abierta. No puedes crear más de una."
	msgChannelCreated   = "He creado un canal para ti: <#%s>"
	msgCreateFailed     = "Hubo un error al crear el canal."
	msgNotYourChannel   = "No puedes cerrar este canal."
	msgConfirmClose     = "¿Estás seguro de que quieres salir de la conversación?"
	msgCloseCancelled   = "La conversación no se ha cerrado."
	msgDeleteFailed     = "Hubo un error al eliminar el canal."
	msgExitMenuBadPlace = "No puedes desplegar el menú de salida de conversación en este canal."
	msgGenerationFailed = "Hubo un error al generar la respuesta. Inténtalo de nuevo más tarde."
)

// handleConversationMessage runs one conversation turn: append the user
// message, relay the accumulated history, append and send the reply. The
// per-channel lock keeps history order equal to arrival order even when
// generative calls overlap.
func (r *Router) handleConversationMessage(ctx context.Context, msg Message) {
	unlock := r.registry.LockChannel(msg.ChannelID)
	defer unlock()

	// Snapshot the prior turns before appending; the new message travels
	// as the prompt, not as history.
	history, err := r.registry.HistoryOf(msg.ChannelID)
	if err != nil {
		// The conversation closed while this message waited for the lock.
		return
	}

	if err = r.registry.AppendUserTurn(msg.ChannelID, msg.Content); err != nil {
		return
	}

	reply, err := r.generator.Generate(ctx, msg.Content, history)
	if err != nil {
		// The user turn already appended stays; history is not rolled back.
		r.logger.ErrorContext(ctx, "generative call failed",
			"channel_id", msg.ChannelID,
			"error", err)
		if sendErr := r.platform.ReplyToMessage(ctx, msg.ChannelID, msg.MessageID, Response{Content: msgGenerationFailed}); sendErr != nil {
			r.logger.ErrorContext(ctx, "failed to send error reply", "channel_id", msg.ChannelID, "error", sendErr)
		}
		return
	}

	reply = Truncate(reply)
	if err = r.registry.AppendModelTurn(msg.ChannelID, reply); err != nil {
		r.logger.ErrorContext(ctx, "failed to record model turn", "channel_id", msg.ChannelID, "error", err)
		return
	}

	if err = r.platform.ReplyToMessage(ctx, msg.ChannelID, msg.MessageID, Response{Content: reply}); err != nil {
		r.logger.ErrorContext(ctx, "failed to send conversation reply", "channel_id", msg.ChannelID, "error", err)
	}
}

// handleStartCommand shows the open-conversation menu for /empezar.
func (r *Router) handleStartCommand(ctx context.Context, cmd Command) {
	if r.registry.HasConversation(cmd.UserID) {
		r.respondEphemeral(ctx, cmd.Interaction, msgAlreadyOpen)
		return
	}

	r.respond(ctx, cmd.Interaction, Response{
		Embeds: []Embed{startConversationEmbed()},
		Buttons: []ButtonSpec{
			{CustomID: ButtonStartConversation, Label: "Crear Conversación 💭", Style: StylePrimary},
		},
	})
}

// handleExitMenu shows the close menu for /salirsa, only valid inside a
// conversation channel.
func (r *Router) handleExitMenu(ctx context.Context, cmd Command) {
	if !r.registry.IsConversationChannel(cmd.ChannelID) {
		r.respondEphemeral(ctx, cmd.Interaction, msgExitMenuBadPlace)
		return
	}

	resp := closePromptResponse()
	resp.Ephemeral = true
	r.respond(ctx, cmd.Interaction, resp)
}

// handleOpenConversation reserves the user's slot, creates the private
// channel and binds the two. The reservation is atomic, so two rapid
// presses cannot both create a channel; the loser gets the already-open
// notice before any external call is made.
func (r *Router) handleOpenConversation(ctx context.Context, btn Button) {
	if err := r.registry.TryOpen(btn.UserID); err != nil {
		if errors.Is(err, conversation.ErrAlreadyOpen) {
			r.respondEphemeral(ctx, btn.Interaction, msgAlreadyOpen)
			return
		}
		r.logger.ErrorContext(ctx, "failed to reserve conversation", "user_id", btn.UserID, "error", err)
		r.respondEphemeral(ctx, btn.Interaction, msgCreateFailed)
		return
	}

	name := conversationChannelPrefix + btn.Username
	channelID, err := r.platform.CreateConversationChannel(ctx, btn.GuildID, name, btn.UserID)
	if err != nil {
		// Give the slot back so the user is not stuck as a ghost owner.
		r.registry.Release(btn.UserID)
		r.logger.ErrorContext(ctx, "failed to create conversation channel",
			"user_id", btn.UserID,
			"error", err)
		r.respondEphemeral(ctx, btn.Interaction, msgCreateFailed)
		return
	}

	if err = r.registry.Bind(btn.UserID, channelID); err != nil {
		r.logger.ErrorContext(ctx, "failed to bind conversation channel",
			"user_id", btn.UserID,
			"channel_id", channelID,
			"error", err)
		r.respondEphemeral(ctx, btn.Interaction, msgCreateFailed)
		return
	}

	if err = r.platform.SendToChannel(ctx, channelID, closePromptResponse()); err != nil {
		r.logger.ErrorContext(ctx, "failed to post close prompt", "channel_id", channelID, "error", err)
	}

	r.respondEphemeral(ctx, btn.Interaction, fmt.Sprintf(msgChannelCreated, channelID))

	r.logger.InfoContext(ctx, "conversation opened",
		"user_id", btn.UserID,
		"channel_id", channelID)
}

// handleCloseRequest asks for confirmation; no state changes yet.
func (r *Router) handleCloseRequest(ctx context.Context, btn Button) {
	if !r.registry.Owns(btn.UserID, btn.ChannelID) {
		r.respondEphemeral(ctx, btn.Interaction, msgNotYourChannel)
		return
	}

	r.respond(ctx, btn.Interaction, Response{
		Content: msgConfirmClose,
		Buttons: []ButtonSpec{
			{CustomID: ButtonConfirmClose, Label: "Sí", Style: StyleDanger},
			{CustomID: ButtonCancelClose, Label: "No", Style: StyleSecondary},
		},
		Ephemeral: true,
	})
}

// handleConfirmClose tears the conversation down: registry first, external
// channel second. A failed external delete is reported but the registry
// entries stay removed; the channel is logically gone either way.
func (r *Router) handleConfirmClose(ctx context.Context, btn Button) {
	if err := r.registry.Close(btn.UserID, btn.ChannelID); err != nil {
		r.respondEphemeral(ctx, btn.Interaction, msgNotYourChannel)
		return
	}

	if err := r.platform.DeleteChannel(ctx, btn.ChannelID); err != nil {
		r.logger.ErrorContext(ctx, "failed to delete conversation channel",
			"user_id", btn.UserID,
			"channel_id", btn.ChannelID,
			"error", err)
		r.respondEphemeral(ctx, btn.Interaction, msgDeleteFailed)
		return
	}

	r.logger.InfoContext(ctx, "conversation closed",
		"user_id", btn.UserID,
		"channel_id", btn.ChannelID)
}

// handleCancelClose rewrites the confirmation prompt; pure UI, no state.
func (r *Router) handleCancelClose(ctx context.Context, btn Button) {
	if err := r.platform.UpdateMessage(ctx, btn.Interaction, Response{Content: msgCloseCancelled, Ephemeral: true}); err != nil {
		r.logger.ErrorContext(ctx, "failed to update cancel prompt", "channel_id", btn.ChannelID, "error", err)
	}
}
