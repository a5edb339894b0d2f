package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/sa-community/sabot/internal/timespec"
)

const (
	msgBadTimeFormat = "Formato de tiempo no válido. Usa m para minutos, h para horas, d para días."
	msgReminderSet   = "Recordatorio configurado para %s desde ahora."
	msgReminderFired = "Recordatorio: %s"
)

// handlePing reports the command round-trip latency.
func (r *Router) handlePing(ctx context.Context, cmd Command) {
	latency := time.Since(cmd.CreatedAt).Milliseconds()
	r.respondText(ctx, cmd.Interaction, fmt.Sprintf("Pong! Latencia: %dms", latency))
}

// handlePrompt answers a standalone /prompt or /solicitud with no prior
// context. The reply is deferred because the backend round trip routinely
// exceeds interactive latency.
func (r *Router) handlePrompt(ctx context.Context, cmd Command) {
	input := cmd.Options["input"]

	if err := r.platform.Defer(ctx, cmd.Interaction); err != nil {
		r.logger.ErrorContext(ctx, "failed to defer reply", "command", cmd.Name, "error", err)
		return
	}

	reply, err := r.generator.Generate(ctx, input, nil)
	if err != nil {
		r.logger.ErrorContext(ctx, "generative call failed", "command", cmd.Name, "error", err)
		if editErr := r.platform.EditDeferred(ctx, cmd.Interaction, msgGenerationFailed); editErr != nil {
			r.logger.ErrorContext(ctx, "failed to edit deferred reply", "error", editErr)
		}
		return
	}

	if err = r.platform.EditDeferred(ctx, cmd.Interaction, Truncate(reply)); err != nil {
		r.logger.ErrorContext(ctx, "failed to edit deferred reply", "error", err)
	}
}

// handleReminder schedules a one-shot follow-up. There is no cancellation;
// the reminder fires unless the process exits first.
func (r *Router) handleReminder(ctx context.Context, cmd Command) {
	token := cmd.Options["time"]
	text := cmd.Options["message"]

	delay, err := timespec.Parse(token)
	if err != nil {
		r.respondText(ctx, cmd.Interaction, msgBadTimeFormat)
		return
	}

	interaction := cmd.Interaction
	jobID := r.scheduler.After(delay, func() {
		// The triggering context is long gone when the timer fires.
		if followErr := r.platform.FollowUp(context.Background(), interaction, fmt.Sprintf(msgReminderFired, text)); followErr != nil {
			r.logger.Error("failed to deliver reminder",
				"user_id", interaction.UserID,
				"error", followErr)
		}
	})

	r.logger.InfoContext(ctx, "reminder scheduled",
		"user_id", cmd.UserID,
		"job_id", jobID,
		"delay", delay)

	r.respondText(ctx, cmd.Interaction, fmt.Sprintf(msgReminderSet, token))
}
