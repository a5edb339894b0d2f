// Package gemini adapts the Gemini SDK into the stateless generative relay
// used by the interaction router. The relay carries no state of its own;
// conversation context arrives as an explicit turn history on every call.
package gemini

import (
	"context"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/sa-community/sabot/internal/config"
	"github.com/sa-community/sabot/internal/conversation"
)

// DefaultTimeout bounds a single generative call when the caller's context
// carries no deadline.
const DefaultTimeout = 60 * time.Second

// Client is the relay to the Gemini generative backend.
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithTimeout overrides the default per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient creates a relay for the given model with the configured
// sampling profile.
func NewClient(ctx context.Context, apiKey, modelName string, gen config.Generation, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, &BackendError{Op: "create client", Err: errMissingAPIKey}
	}
	if modelName == "" {
		return nil, &BackendError{Op: "create client", Err: errMissingModel}
	}

	inner, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &BackendError{Op: "create client", Err: err}
	}

	model := inner.GenerativeModel(modelName)
	model.SetTemperature(gen.Temperature)
	model.SetTopK(gen.TopK)
	model.SetTopP(gen.TopP)
	model.SetMaxOutputTokens(gen.MaxOutputTokens)

	c := &Client{
		client:  inner,
		model:   model,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Generate sends prompt to the backend, seeding the chat session with the
// prior turn history (nil for standalone prompts). It returns the generated
// text untruncated; display ceilings are the caller's concern.
func (c *Client) Generate(ctx context.Context, prompt string, history []conversation.Turn) (string, error) {
	if prompt == "" {
		return "", &BackendError{Op: "generate", Err: errEmptyPrompt}
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	chat := c.model.StartChat()
	chat.History = toContents(history)

	resp, err := chat.SendMessage(callCtx, genai.Text(prompt))
	if err != nil {
		return "", &BackendError{Op: "generate", Err: err}
	}

	text := responseText(resp)
	if text == "" {
		return "", &BackendError{Op: "generate", Err: errEmptyResponse}
	}
	return text, nil
}

// Close releases the underlying SDK client.
func (c *Client) Close() error {
	if err := c.client.Close(); err != nil {
		return &BackendError{Op: "close", Err: err}
	}
	return nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// toContents converts registry turns into SDK chat history, preserving
// append order.
func toContents(history []conversation.Turn) []*genai.Content {
	if len(history) == 0 {
		return nil
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		contents = append(contents, &genai.Content{
			Role:  string(turn.Role),
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}
	return contents
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
