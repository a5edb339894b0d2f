package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"

	"github.com/sa-community/sabot/internal/conversation"
)

func TestToContents(t *testing.T) {
	history := []conversation.Turn{
		{Role: conversation.RoleUser, Text: "hola"},
		{Role: conversation.RoleModel, Text: "hola, humano"},
	}

	contents := toContents(history)
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}

	if contents[0].Role != "user" {
		t.Errorf("expected role user, got %q", contents[0].Role)
	}
	if contents[1].Role != "model" {
		t.Errorf("expected role model, got %q", contents[1].Role)
	}

	text, ok := contents[0].Parts[0].(genai.Text)
	if !ok {
		t.Fatalf("expected text part, got %T", contents[0].Parts[0])
	}
	if string(text) != "hola" {
		t.Errorf("expected text hola, got %q", text)
	}
}

func TestToContents_EmptyHistory(t *testing.T) {
	if contents := toContents(nil); contents != nil {
		t.Errorf("expected nil contents for empty history, got %v", contents)
	}
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text("primera "), genai.Text("segunda")},
				},
			},
		},
	}

	if got := responseText(resp); got != "primera segunda" {
		t.Errorf("expected concatenated parts, got %q", got)
	}
}

func TestResponseText_Empty(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{name: "nil response", resp: nil},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}},
		{name: "nil content", resp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := responseText(tt.resp); got != "" {
				t.Errorf("expected empty text, got %q", got)
			}
		})
	}
}

func TestCallContext_AddsDefaultTimeout(t *testing.T) {
	c := &Client{timeout: time.Minute}

	ctx, cancel := c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline on the call context")
	}
	if remaining := time.Until(deadline); remaining > time.Minute {
		t.Errorf("deadline too far in the future: %v", remaining)
	}
}

func TestCallContext_KeepsCallerDeadline(t *testing.T) {
	c := &Client{timeout: time.Minute}

	parent, parentCancel := context.WithTimeout(context.Background(), time.Second)
	defer parentCancel()

	ctx, cancel := c.callContext(parent)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected the caller's deadline to survive")
	}
	if time.Until(deadline) > time.Second {
		t.Error("caller deadline must not be extended")
	}
}

func TestBackendError(t *testing.T) {
	cause := errors.New("boom")
	err := &BackendError{Op: "generate", Err: cause}

	if !IsBackendError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsBackendError should see through wrapping")
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
	if IsBackendError(errors.New("other")) {
		t.Error("IsBackendError must reject unrelated errors")
	}
}
