package bot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa-community/sabot/internal/bot"
	"github.com/sa-community/sabot/internal/mocks"
)

func adminCommand(name, target string) bot.Command {
	i := interactionFor("admin", "lobby")
	i.IsAdmin = true
	return bot.Command{
		Interaction:  i,
		Name:         name,
		Options:      map[string]string{},
		TargetUserID: target,
		TargetName:   target,
	}
}

func TestRouter_ModerationDeniesNonAdmins(t *testing.T) {
	commands := []string{"mute", "unmute", "ban", "unban", "aislar", "unaislar", "userinfo"}

	for _, name := range commands {
		t.Run(name, func(t *testing.T) {
			platform := mocks.NewMockPlatform()
			platform.Roles["Muted"] = "role-muted"
			platform.Roles["Isolated"] = "role-isolated"
			router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

			cmd := adminCommand(name, "target-1")
			cmd.IsAdmin = false
			router.HandleCommand(context.Background(), cmd)

			// Denial reply, and no mutation of any kind reached the platform.
			last := platform.LastResponse()
			require.NotNil(t, last)
			assert.Equal(t, "No tienes permisos para usar este comando.", last.Content)
			assert.Empty(t, platform.RoleMutations)
			assert.Empty(t, platform.Banned)
			assert.Empty(t, platform.Unbanned)
		})
	}
}

func TestRouter_MuteAddsConfiguredRole(t *testing.T) {
	platform := mocks.NewMockPlatform()
	platform.Roles["Muted"] = "role-muted"
	router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

	cmd := adminCommand("mute", "target-1")
	cmd.Options["reason"] = "spam"
	router.HandleCommand(context.Background(), cmd)

	require.Len(t, platform.RoleMutations, 1)
	mutation := platform.RoleMutations[0]
	assert.Equal(t, "add", mutation.Op)
	assert.Equal(t, "target-1", mutation.UserID)
	assert.Equal(t, "role-muted", mutation.RoleID)

	last := platform.LastResponse()
	require.NotNil(t, last)
	assert.Contains(t, last.Content, "ha sido muteado")
	assert.Contains(t, last.Content, "spam")
}

func TestRouter_MuteWithoutReasonUsesDefault(t *testing.T) {
	platform := mocks.NewMockPlatform()
	platform.Roles["Muted"] = "role-muted"
	router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

	router.HandleCommand(context.Background(), adminCommand("mute", "target-1"))

	last := platform.LastResponse()
	require.NotNil(t, last)
	assert.Contains(t, last.Content, "No se especificó motivo")
}

func TestRouter_MuteRoleMissing(t *testing.T) {
	platform := mocks.NewMockPlatform() // no roles configured
	router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

	router.HandleCommand(context.Background(), adminCommand("mute", "target-1"))

	last := platform.LastResponse()
	require.NotNil(t, last)
	assert.Contains(t, last.Content, `No se encontró el rol "Muted"`)
	assert.Empty(t, platform.RoleMutations)
}

func TestRouter_UnmuteRemovesRole(t *testing.T) {
	platform := mocks.NewMockPlatform()
	platform.Roles["Muted"] = "role-muted"
	router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

	router.HandleCommand(context.Background(), adminCommand("unmute", "target-1"))

	require.Len(t, platform.RoleMutations, 1)
	assert.Equal(t, "remove", platform.RoleMutations[0].Op)
}

func TestRouter_IsolateUsesIsolateRole(t *testing.T) {
	platform := mocks.NewMockPlatform()
	platform.Roles["Isolated"] = "role-isolated"
	router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

	router.HandleCommand(context.Background(), adminCommand("aislar", "target-1"))

	require.Len(t, platform.RoleMutations, 1)
	assert.Equal(t, "role-isolated", platform.RoleMutations[0].RoleID)

	router.HandleCommand(context.Background(), adminCommand("unaislar", "target-1"))
	require.Len(t, platform.RoleMutations, 2)
	assert.Equal(t, "remove", platform.RoleMutations[1].Op)
}

func TestRouter_BanAndUnban(t *testing.T) {
	platform := mocks.NewMockPlatform()
	router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

	cmd := adminCommand("ban", "target-1")
	cmd.Options["reason"] = "trolling"
	router.HandleCommand(context.Background(), cmd)

	assert.Equal(t, []string{"target-1"}, platform.Banned)
	last := platform.LastResponse()
	require.NotNil(t, last)
	assert.Contains(t, last.Content, "ha sido baneado")

	unban := adminCommand("unban", "")
	unban.Options["userid"] = "target-1"
	router.HandleCommand(context.Background(), unban)

	assert.Equal(t, []string{"target-1"}, platform.Unbanned)
	last = platform.LastResponse()
	require.NotNil(t, last)
	assert.Contains(t, last.Content, "ha sido desbaneado")
}

func TestRouter_UserInfo(t *testing.T) {
	platform := mocks.NewMockPlatform()
	joined := time.Date(2023, 5, 17, 0, 0, 0, 0, time.UTC)
	platform.Members["target-1"] = &bot.Member{
		ID:       "target-1",
		Nickname: "apodo",
		JoinedAt: joined,
	}
	router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

	router.HandleCommand(context.Background(), adminCommand("userinfo", "target-1"))

	last := platform.LastResponse()
	require.NotNil(t, last)
	require.Len(t, last.Response.Embeds, 1)
	embed := last.Response.Embeds[0]
	assert.Equal(t, "Información del Usuario", embed.Title)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "target-1", embed.Fields[0].Value)
	assert.Equal(t, "apodo", embed.Fields[1].Value)
	assert.Equal(t, "17/05/2023", embed.Fields[2].Value)
}

func TestRouter_UserInfoUnknownMember(t *testing.T) {
	platform := mocks.NewMockPlatform()
	router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

	router.HandleCommand(context.Background(), adminCommand("userinfo", "missing"))

	last := platform.LastResponse()
	require.NotNil(t, last)
	assert.Contains(t, last.Content, "error al obtener la información")
}
