package bot_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sa-community/sabot/internal/bot"
	"github.com/sa-community/sabot/internal/mocks"
)

func TestRouter_HelpCommand(t *testing.T) {
	platform := mocks.NewMockPlatform()
	router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

	router.HandleCommand(context.Background(), bot.Command{
		Interaction: interactionFor("userA", "lobby"),
		Name:        "help",
	})

	last := platform.LastResponse()
	require.NotNil(t, last)
	require.Len(t, last.Response.Embeds, 2)
	assert.Equal(t, "Comandos S.A", last.Response.Embeds[0].Title)
	assert.NotEmpty(t, last.Response.Embeds[0].Fields)
}

func TestRouter_PingCommand(t *testing.T) {
	platform := mocks.NewMockPlatform()
	router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

	cmd := bot.Command{Interaction: interactionFor("userA", "lobby"), Name: "ping"}
	cmd.CreatedAt = time.Now().Add(-25 * time.Millisecond)
	router.HandleCommand(context.Background(), cmd)

	last := platform.LastResponse()
	require.NotNil(t, last)
	assert.Contains(t, last.Content, "Pong!")
}

func TestRouter_PromptCommand(t *testing.T) {
	platform := mocks.NewMockPlatform()
	gen := mocks.NewScriptedGenerator("la respuesta")
	router, _ := newTestRouter(t, platform, gen)

	router.HandleCommand(context.Background(), bot.Command{
		Interaction: interactionFor("userA", "lobby"),
		Name:        "prompt",
		Options:     map[string]string{"input": "una pregunta"},
	})

	// The reply is deferred, then edited in with the result.
	require.Len(t, platform.Responses, 2)
	assert.Equal(t, "defer", platform.Responses[0].Kind)
	assert.Equal(t, "edit", platform.Responses[1].Kind)
	assert.Equal(t, "la respuesta", platform.Responses[1].Content)

	// Standalone prompts carry no conversation context.
	calls := gen.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "una pregunta", calls[0].Prompt)
	assert.Empty(t, calls[0].History)
}

func TestRouter_PromptCommandTruncates(t *testing.T) {
	platform := mocks.NewMockPlatform()
	gen := mocks.NewScriptedGenerator(strings.Repeat("y", 2100))
	router, _ := newTestRouter(t, platform, gen)

	router.HandleCommand(context.Background(), bot.Command{
		Interaction: interactionFor("userA", "lobby"),
		Name:        "solicitud",
		Options:     map[string]string{"input": "algo largo"},
	})

	require.Len(t, platform.Responses, 2)
	edited := platform.Responses[1].Content
	assert.Len(t, []rune(edited), 2000)
	assert.True(t, strings.HasSuffix(edited, "..."))
}

func TestRouter_PromptCommandBackendFailure(t *testing.T) {
	platform := mocks.NewMockPlatform()
	gen := mocks.NewScriptedGenerator()
	gen.SetError(errors.New("backend down"))
	router, _ := newTestRouter(t, platform, gen)

	router.HandleCommand(context.Background(), bot.Command{
		Interaction: interactionFor("userA", "lobby"),
		Name:        "prompt",
		Options:     map[string]string{"input": "una pregunta"},
	})

	require.Len(t, platform.Responses, 2)
	assert.Equal(t, "edit", platform.Responses[1].Kind)
	assert.Contains(t, platform.Responses[1].Content, "error al generar la respuesta")
}

func TestRouter_ReminderCommand(t *testing.T) {
	platform := mocks.NewMockPlatform()
	router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

	router.HandleCommand(context.Background(), bot.Command{
		Interaction: interactionFor("userA", "lobby"),
		Name:        "reminder",
		Options:     map[string]string{"time": "10m", "message": "sacar la basura"},
	})

	last := platform.LastResponse()
	require.NotNil(t, last)
	assert.Contains(t, last.Content, "Recordatorio configurado para 10m")
}

func TestRouter_ReminderCommandMalformedTime(t *testing.T) {
	platform := mocks.NewMockPlatform()
	router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

	router.HandleCommand(context.Background(), bot.Command{
		Interaction: interactionFor("userA", "lobby"),
		Name:        "reminder",
		Options:     map[string]string{"time": "10x", "message": "nada"},
	})

	last := platform.LastResponse()
	require.NotNil(t, last)
	assert.Contains(t, last.Content, "Formato de tiempo no válido")
}

func TestRouter_ReminderFires(t *testing.T) {
	platform := mocks.NewMockPlatform()
	router, _ := newTestRouter(t, platform, mocks.NewScriptedGenerator("ok"))

	// 0m is syntactically valid and fires almost immediately.
	router.HandleCommand(context.Background(), bot.Command{
		Interaction: interactionFor("userA", "lobby"),
		Name:        "reminder",
		Options:     map[string]string{"time": "0m", "message": "ping"},
	})

	deadline := time.After(time.Second)
	for {
		last := platform.LastResponse()
		if last != nil && last.Kind == "followup" {
			assert.Equal(t, "Recordatorio: ping", last.Content)
			return
		}
		select {
		case <-deadline:
			t.Fatal("reminder follow-up never arrived")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
