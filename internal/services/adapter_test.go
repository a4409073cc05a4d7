package services

import (
	"context"
	"errors"
	"testing"
)

// ─── Fake provider clients ───

// fullClient exposes every call convention and counts invocations.
type fullClient struct {
	chatCalls     int
	responseCalls int
	generateCalls int
}

func (c *fullClient) CreateChat(ctx context.Context, model, conversationID string, messages []Message) (interface{}, error) {
	c.chatCalls++
	return map[string]interface{}{"content": "chat reply"}, nil
}

func (c *fullClient) CreateResponse(ctx context.Context, model, input string) (interface{}, error) {
	c.responseCalls++
	return map[string]interface{}{"output": "responses reply"}, nil
}

func (c *fullClient) Generate(ctx context.Context, model, prompt string) (interface{}, error) {
	c.generateCalls++
	return map[string]interface{}{"output": "generate reply"}, nil
}

// generateOnlyClient exposes only the bare-generate convention.
type generateOnlyClient struct {
	calls int
	raw   interface{}
}

func (c *generateOnlyClient) Generate(ctx context.Context, model, prompt string) (interface{}, error) {
	c.calls++
	return c.raw, nil
}

// brokenResponsesClient fails inside the responses convention while also
// exposing bare-generate.
type brokenResponsesClient struct {
	generateCalls int
}

func (c *brokenResponsesClient) CreateResponse(ctx context.Context, model, input string) (interface{}, error) {
	return nil, errors.New("boom during extraction")
}

func (c *brokenResponsesClient) Generate(ctx context.Context, model, prompt string) (interface{}, error) {
	c.generateCalls++
	return map[string]interface{}{"output": "never reached"}, nil
}

// emptyClient exposes none of the conventions.
type emptyClient struct{}

// ─── Adapter chain tests ───

func TestReplyPrefersChatCreate(t *testing.T) {
	client := &fullClient{}
	adapter := NewAdapter(client, "test-model")

	result, err := adapter.Reply(context.Background(), "hello", "conv-1")
	if err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}

	if result.Reply != "chat reply" {
		t.Errorf("Expected reply from chat convention, got %q", result.Reply)
	}
	if client.chatCalls != 1 {
		t.Errorf("Expected 1 chat call, got %d", client.chatCalls)
	}
	if client.responseCalls != 0 || client.generateCalls != 0 {
		t.Errorf("Lower-priority conventions were invoked: responses=%d generate=%d",
			client.responseCalls, client.generateCalls)
	}
}

func TestReplyFallsThroughToGenerate(t *testing.T) {
	client := &generateOnlyClient{raw: map[string]interface{}{"output": "bare text"}}
	adapter := NewAdapter(client, "test-model")

	result, err := adapter.Reply(context.Background(), "hello", "")
	if err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}

	if result.Reply != "bare text" {
		t.Errorf("Expected %q, got %q", "bare text", result.Reply)
	}
	if client.calls != 1 {
		t.Errorf("Expected 1 generate call, got %d", client.calls)
	}
}

func TestReplyErrorShortCircuitsChain(t *testing.T) {
	client := &brokenResponsesClient{}
	adapter := NewAdapter(client, "test-model")

	_, err := adapter.Reply(context.Background(), "hello", "")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if err.Error() != "boom during extraction" {
		t.Errorf("Expected raised message, got %q", err.Error())
	}
	if client.generateCalls != 0 {
		t.Errorf("Generate was attempted after a runtime failure: %d calls", client.generateCalls)
	}
}

func TestReplyNilClient(t *testing.T) {
	adapter := NewAdapter(nil, "test-model")

	_, err := adapter.Reply(context.Background(), "hello", "")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}
	if err.Error() != "Generative AI SDK unavailable or API key not set." {
		t.Errorf("Unavailable message drifted: %q", err.Error())
	}
}

func TestReplyNoSupportedConvention(t *testing.T) {
	adapter := NewAdapter(emptyClient{}, "test-model")

	_, err := adapter.Reply(context.Background(), "hello", "")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}
}

// ─── Extraction tests ───

type lastTexter struct{ text string }

func (l lastTexter) LastText() string { return l.text }

func TestChatReplyText(t *testing.T) {
	tests := []struct {
		name     string
		raw      interface{}
		expected string
	}{
		{"last text accessor", lastTexter{text: "  hi there  "}, "hi there"},
		{"content key", map[string]interface{}{"content": "from content"}, "from content"},
		{"output key", map[string]interface{}{"output": "from output"}, "from output"},
		{"stringify fallback", 42, "42"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := chatReplyText(tc.raw); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestResponseReplyTextConcatenatesParts(t *testing.T) {
	raw := map[string]interface{}{
		"output": []interface{}{
			map[string]interface{}{"content": "part one, "},
			map[string]interface{}{"content": "part two"},
		},
	}

	if got := responseReplyText(raw); got != "part one, part two" {
		t.Errorf("Expected concatenated parts, got %q", got)
	}
}

func TestResponseReplyTextScalarOutput(t *testing.T) {
	raw := map[string]interface{}{"output": 7}
	if got := responseReplyText(raw); got != "7" {
		t.Errorf("Expected stringified scalar, got %q", got)
	}
}

func TestGenerateReplyText(t *testing.T) {
	tests := []struct {
		name     string
		raw      interface{}
		expected string
	}{
		{"text output returned directly", map[string]interface{}{"output": "plain"}, "plain"},
		{"non-text output serialized", map[string]interface{}{"output": map[string]interface{}{"k": "v"}}, `{"k":"v"}`},
		{"missing output stringified", map[string]interface{}{"other": 1}, "map[other:1]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := generateReplyText(tc.raw); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}
