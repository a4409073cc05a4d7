package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"google.golang.org/api/option"
)

// Message is a single provider-agnostic chat message.
type Message struct {
	Role string
	Text string
}

// The provider client surface has shipped under several incompatible call
// conventions. Each convention is modelled as its own capability interface;
// the adapter probes for them in priority order (see strategy.go). Raw
// responses are returned as opaque values and decoded per convention.

// ConversationalClient creates a reply from a structured message list,
// optionally tagged with a conversation id.
type ConversationalClient interface {
	CreateChat(ctx context.Context, model, conversationID string, messages []Message) (interface{}, error)
}

// ResponsesClient creates a reply from a single input string.
type ResponsesClient interface {
	CreateResponse(ctx context.Context, model, input string) (interface{}, error)
}

// GenerateClient is the bare prompt-in, output-out convention.
type GenerateClient interface {
	Generate(ctx context.Context, model, prompt string) (interface{}, error)
}

// GeminiClient wraps the official Gemini SDK behind the conversational and
// bare-generate conventions.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// CreateChat replays all but the last message as chat history and sends the
// last one. The conversation id has no Gemini-side meaning; it only scopes
// our own log.
func (c *GeminiClient) CreateChat(ctx context.Context, model, conversationID string, messages []Message) (interface{}, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages to send")
	}

	m := c.client.GenerativeModel(model)
	m.SetTemperature(0.7)

	cs := m.StartChat()
	for _, msg := range messages[:len(messages)-1] {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(messages[len(messages)-1].Text))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	return &geminiResponse{resp: resp}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, model, prompt string) (interface{}, error) {
	m := c.client.GenerativeModel(model)
	m.SetTemperature(0.7)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	return &geminiResponse{resp: resp}, nil
}

// geminiResponse carries the untouched SDK response and exposes the text
// accessors the extraction code probes for.
type geminiResponse struct {
	resp *genai.GenerateContentResponse
}

// LastText concatenates the text parts of every candidate.
func (r *geminiResponse) LastText() string {
	var text strings.Builder
	for _, cand := range r.resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

func (r *geminiResponse) Output() interface{} {
	return r.LastText()
}
