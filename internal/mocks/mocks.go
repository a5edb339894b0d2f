// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/sa-community/sabot/internal/bot"
	"github.com/sa-community/sabot/internal/conversation"
)

// Compile-time checks to ensure mocks implement their interfaces.
var (
	_ bot.Platform  = (*MockPlatform)(nil)
	_ bot.Generator = (*ScriptedGenerator)(nil)
)

// RecordedResponse captures one interaction reply.
type RecordedResponse struct {
	Kind     string // "respond", "defer", "edit", "followup", "update"
	UserID   string
	Response bot.Response
	Content  string
}

// RecordedSend captures one channel message.
type RecordedSend struct {
	ChannelID string
	MessageID string
	Response  bot.Response
}

// RoleMutation captures one role add/remove.
type RoleMutation struct {
	Op      string // "add" or "remove"
	GuildID string
	UserID  string
	RoleID  string
}

// MockPlatform is a test implementation of the Platform interface. It
// records every call and returns configurable errors.
type MockPlatform struct {
	mu sync.Mutex

	Responses     []RecordedResponse
	Sends         []RecordedSend
	RoleMutations []RoleMutation
	Banned        []string
	Unbanned      []string
	Deleted       []string
	Created       []string

	// Roles maps display names to role ids for RoleByName.
	Roles map[string]string
	// Members maps user ids to member details.
	Members map[string]*bot.Member

	// NextChannelID is returned by the next CreateConversationChannel call.
	NextChannelID string

	CreateErr  error
	DeleteErr  error
	RespondErr error
}

// NewMockPlatform creates an empty mock platform.
func NewMockPlatform() *MockPlatform {
	return &MockPlatform{
		Roles:         make(map[string]string),
		Members:       make(map[string]*bot.Member),
		NextChannelID: "mock-channel",
	}
}

func (m *MockPlatform) record(rec RecordedResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RespondErr != nil {
		return m.RespondErr
	}
	m.Responses = append(m.Responses, rec)
	return nil
}

// Respond implements bot.Platform.
func (m *MockPlatform) Respond(_ context.Context, i bot.Interaction, r bot.Response) error {
	return m.record(RecordedResponse{Kind: "respond", UserID: i.UserID, Response: r, Content: r.Content})
}

// Defer implements bot.Platform.
func (m *MockPlatform) Defer(_ context.Context, i bot.Interaction) error {
	return m.record(RecordedResponse{Kind: "defer", UserID: i.UserID})
}

// EditDeferred implements bot.Platform.
func (m *MockPlatform) EditDeferred(_ context.Context, i bot.Interaction, content string) error {
	return m.record(RecordedResponse{Kind: "edit", UserID: i.UserID, Content: content})
}

// FollowUp implements bot.Platform.
func (m *MockPlatform) FollowUp(_ context.Context, i bot.Interaction, content string) error {
	return m.record(RecordedResponse{Kind: "followup", UserID: i.UserID, Content: content})
}

// UpdateMessage implements bot.Platform.
func (m *MockPlatform) UpdateMessage(_ context.Context, i bot.Interaction, r bot.Response) error {
	return m.record(RecordedResponse{Kind: "update", UserID: i.UserID, Response: r, Content: r.Content})
}

// ReplyToMessage implements bot.Platform.
func (m *MockPlatform) ReplyToMessage(_ context.Context, channelID, messageID string, r bot.Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sends = append(m.Sends, RecordedSend{ChannelID: channelID, MessageID: messageID, Response: r})
	return nil
}

// SendToChannel implements bot.Platform.
func (m *MockPlatform) SendToChannel(_ context.Context, channelID string, r bot.Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sends = append(m.Sends, RecordedSend{ChannelID: channelID, Response: r})
	return nil
}

// CreateConversationChannel implements bot.Platform.
func (m *MockPlatform) CreateConversationChannel(_ context.Context, _, name, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.Created = append(m.Created, name)
	return m.NextChannelID, nil
}

// DeleteChannel implements bot.Platform.
func (m *MockPlatform) DeleteChannel(_ context.Context, channelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, channelID)
	return nil
}

// RoleByName implements bot.Platform.
func (m *MockPlatform) RoleByName(_ context.Context, _, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	roleID, ok := m.Roles[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", bot.ErrRoleNotFound, name)
	}
	return roleID, nil
}

// AddRole implements bot.Platform.
func (m *MockPlatform) AddRole(_ context.Context, guildID, userID, roleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RoleMutations = append(m.RoleMutations, RoleMutation{Op: "add", GuildID: guildID, UserID: userID, RoleID: roleID})
	return nil
}

// RemoveRole implements bot.Platform.
func (m *MockPlatform) RemoveRole(_ context.Context, guildID, userID, roleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RoleMutations = append(m.RoleMutations, RoleMutation{Op: "remove", GuildID: guildID, UserID: userID, RoleID: roleID})
	return nil
}

// Ban implements bot.Platform.
func (m *MockPlatform) Ban(_ context.Context, _, userID, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Banned = append(m.Banned, userID)
	return nil
}

// Unban implements bot.Platform.
func (m *MockPlatform) Unban(_ context.Context, _, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Unbanned = append(m.Unbanned, userID)
	return nil
}

// Member implements bot.Platform.
func (m *MockPlatform) Member(_ context.Context, _, userID string) (*bot.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.Members[userID]
	if !ok {
		return nil, fmt.Errorf("member %s not found", userID)
	}
	return member, nil
}

// LastResponse returns the most recent recorded response, or nil.
func (m *MockPlatform) LastResponse() *RecordedResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Responses) == 0 {
		return nil
	}
	rec := m.Responses[len(m.Responses)-1]
	return &rec
}

// ResponseCount returns how many interaction replies were recorded.
func (m *MockPlatform) ResponseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Responses)
}

// GeneratorCall records one call to the scripted generator.
type GeneratorCall struct {
	Prompt  string
	History []conversation.Turn
}

// ScriptedGenerator implements the Generator interface with queued
// responses for testing.
type ScriptedGenerator struct {
	responses []string
	calls     []GeneratorCall
	err       error
	mu        sync.Mutex

	// GenerateFunc overrides the scripted behavior when set.
	GenerateFunc func(ctx context.Context, prompt string, history []conversation.Turn) (string, error)
}

// NewScriptedGenerator creates a generator that replays responses in order,
// repeating the last one when the script runs out.
func NewScriptedGenerator(responses ...string) *ScriptedGenerator {
	return &ScriptedGenerator{responses: responses}
}

// SetError makes every subsequent call fail with err.
func (s *ScriptedGenerator) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Generate implements the Generator interface.
func (s *ScriptedGenerator) Generate(ctx context.Context, prompt string, history []conversation.Turn) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, GeneratorCall{Prompt: prompt, History: history})
	fn := s.GenerateFunc
	err := s.err
	var response string
	if len(s.responses) > 0 {
		response = s.responses[0]
		if len(s.responses) > 1 {
			s.responses = s.responses[1:]
		}
	}
	s.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt, history)
	}
	if err != nil {
		return "", err
	}
	return response, nil
}

// Calls returns a copy of the recorded generator calls.
func (s *ScriptedGenerator) Calls() []GeneratorCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := make([]GeneratorCall, len(s.calls))
	copy(calls, s.calls)
	return calls
}
