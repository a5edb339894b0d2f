package bot

import (
	"context"
	"fmt"
)

// Moderation replies, in deployment locale.
const (
	msgNoPermission  = "No tienes permisos para usar este comando."
	msgRoleNotFound  = `No se encontró el rol "%s".`
	msgRoleFailed    = "Hubo un error al aplicar el cambio de rol."
	msgBanFailed     = "Hubo un error al banear al usuario."
	msgUnbanFailed   = "Hubo un error al intentar desbanear al usuario. Asegúrate de que la ID es correcta."
	msgNoReason      = "No se especificó motivo"
	msgUserInfoError = "Hubo un error al obtener la información del usuario."
)

// Every moderation command follows the same shape: permission check,
// target resolution, external mutation, confirmation reply. A failed
// permission check performs no mutation at all.

// requireAdmin gates privileged commands; it replies with the denial
// itself and reports whether the handler may proceed.
func (r *Router) requireAdmin(ctx context.Context, cmd Command) bool {
	if cmd.IsAdmin {
		return true
	}
	r.respondText(ctx, cmd.Interaction, msgNoPermission)
	return false
}

// resolveRole turns a configured role display name into a role id,
// replying with the not-found message on failure.
func (r *Router) resolveRole(ctx context.Context, cmd Command, name string) (string, bool) {
	roleID, err := r.platform.RoleByName(ctx, cmd.GuildID, name)
	if err != nil {
		r.logger.WarnContext(ctx, "role lookup failed", "role", name, "error", err)
		r.respondText(ctx, cmd.Interaction, fmt.Sprintf(msgRoleNotFound, name))
		return "", false
	}
	return roleID, true
}

func reasonOrDefault(reason string) string {
	if reason == "" {
		return msgNoReason
	}
	return reason
}

func (r *Router) handleMute(ctx context.Context, cmd Command) {
	if !r.requireAdmin(ctx, cmd) {
		return
	}
	roleID, ok := r.resolveRole(ctx, cmd, r.muteRoleName)
	if !ok {
		return
	}

	if err := r.platform.AddRole(ctx, cmd.GuildID, cmd.TargetUserID, roleID); err != nil {
		r.logger.ErrorContext(ctx, "failed to add mute role", "target", cmd.TargetUserID, "error", err)
		r.respondText(ctx, cmd.Interaction, msgRoleFailed)
		return
	}

	reason := reasonOrDefault(cmd.Options["reason"])
	r.respondText(ctx, cmd.Interaction, fmt.Sprintf("%s ha sido muteado. Motivo: %s", cmd.TargetName, reason))
}

func (r *Router) handleUnmute(ctx context.Context, cmd Command) {
	if !r.requireAdmin(ctx, cmd) {
		return
	}
	roleID, ok := r.resolveRole(ctx, cmd, r.muteRoleName)
	if !ok {
		return
	}

	if err := r.platform.RemoveRole(ctx, cmd.GuildID, cmd.TargetUserID, roleID); err != nil {
		r.logger.ErrorContext(ctx, "failed to remove mute role", "target", cmd.TargetUserID, "error", err)
		r.respondText(ctx, cmd.Interaction, msgRoleFailed)
		return
	}

	r.respondText(ctx, cmd.Interaction, fmt.Sprintf("%s ha sido desmuteado.", cmd.TargetName))
}

func (r *Router) handleIsolate(ctx context.Context, cmd Command) {
	if !r.requireAdmin(ctx, cmd) {
		return
	}
	roleID, ok := r.resolveRole(ctx, cmd, r.isolateRoleName)
	if !ok {
		return
	}

	if err := r.platform.AddRole(ctx, cmd.GuildID, cmd.TargetUserID, roleID); err != nil {
		r.logger.ErrorContext(ctx, "failed to add isolate role", "target", cmd.TargetUserID, "error", err)
		r.respondText(ctx, cmd.Interaction, msgRoleFailed)
		return
	}

	reason := reasonOrDefault(cmd.Options["reason"])
	r.respondText(ctx, cmd.Interaction, fmt.Sprintf("%s ha sido aislado. Motivo: %s", cmd.TargetName, reason))
}

func (r *Router) handleUnisolate(ctx context.Context, cmd Command) {
	if !r.requireAdmin(ctx, cmd) {
		return
	}
	roleID, ok := r.resolveRole(ctx, cmd, r.isolateRoleName)
	if !ok {
		return
	}

	if err := r.platform.RemoveRole(ctx, cmd.GuildID, cmd.TargetUserID, roleID); err != nil {
		r.logger.ErrorContext(ctx, "failed to remove isolate role", "target", cmd.TargetUserID, "error", err)
		r.respondText(ctx, cmd.Interaction, msgRoleFailed)
		return
	}

	r.respondText(ctx, cmd.Interaction, fmt.Sprintf("%s ha sido desaislado.", cmd.TargetName))
}

func (r *Router) handleBan(ctx context.Context, cmd Command) {
	if !r.requireAdmin(ctx, cmd) {
		return
	}

	reason := reasonOrDefault(cmd.Options["reason"])
	if err := r.platform.Ban(ctx, cmd.GuildID, cmd.TargetUserID, reason); err != nil {
		r.logger.ErrorContext(ctx, "failed to ban member", "target", cmd.TargetUserID, "error", err)
		r.respondText(ctx, cmd.Interaction, msgBanFailed)
		return
	}

	r.respondText(ctx, cmd.Interaction, fmt.Sprintf("%s ha sido baneado. Motivo: %s", cmd.TargetName, reason))
}

func (r *Router) handleUnban(ctx context.Context, cmd Command) {
	if !r.requireAdmin(ctx, cmd) {
		return
	}

	userID := cmd.Options["userid"]
	if err := r.platform.Unban(ctx, cmd.GuildID, userID); err != nil {
		r.logger.ErrorContext(ctx, "failed to unban user", "target", userID, "error", err)
		r.respondText(ctx, cmd.Interaction, msgUnbanFailed)
		return
	}

	r.respondText(ctx, cmd.Interaction, fmt.Sprintf("El usuario con ID %s ha sido desbaneado.", userID))
}

func (r *Router) handleUserInfo(ctx context.Context, cmd Command) {
	if !r.requireAdmin(ctx, cmd) {
		return
	}

	member, err := r.platform.Member(ctx, cmd.GuildID, cmd.TargetUserID)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to fetch member", "target", cmd.TargetUserID, "error", err)
		r.respondText(ctx, cmd.Interaction, msgUserInfoError)
		return
	}

	r.respond(ctx, cmd.Interaction, Response{Embeds: []Embed{userInfoEmbed(member)}})
}
