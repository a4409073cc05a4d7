package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// strategy is one call convention against the provider client. supports
// reports whether the client exposes the convention at all; invoke performs
// the call and decodes the reply. An error from invoke is terminal for the
// request: the chain only falls through past conventions the client does not
// expose, never after a runtime failure.
type strategy interface {
	supports(client interface{}) bool
	invoke(ctx context.Context, client interface{}, req request) (Result, error)
}

type request struct {
	prompt         string
	conversationID string
	model          string
}

// chatCreateStrategy sends a structured message list.
type chatCreateStrategy struct{}

func (chatCreateStrategy) supports(client interface{}) bool {
	_, ok := client.(ConversationalClient)
	return ok
}

func (chatCreateStrategy) invoke(ctx context.Context, client interface{}, req request) (Result, error) {
	messages := []Message{{Role: "user", Text: req.prompt}}
	raw, err := client.(ConversationalClient).CreateChat(ctx, req.model, req.conversationID, messages)
	if err != nil {
		return Result{}, err
	}
	return Result{Reply: chatReplyText(raw), Raw: raw}, nil
}

// responsesStrategy sends the prompt as a single input.
type responsesStrategy struct{}

func (responsesStrategy) supports(client interface{}) bool {
	_, ok := client.(ResponsesClient)
	return ok
}

func (responsesStrategy) invoke(ctx context.Context, client interface{}, req request) (Result, error) {
	raw, err := client.(ResponsesClient).CreateResponse(ctx, req.model, req.prompt)
	if err != nil {
		return Result{}, err
	}
	return Result{Reply: responseReplyText(raw), Raw: raw}, nil
}

// generateStrategy is the bare prompt call.
type generateStrategy struct{}

func (generateStrategy) supports(client interface{}) bool {
	_, ok := client.(GenerateClient)
	return ok
}

func (generateStrategy) invoke(ctx context.Context, client interface{}, req request) (Result, error) {
	raw, err := client.(GenerateClient).Generate(ctx, req.model, req.prompt)
	if err != nil {
		return Result{}, err
	}
	return Result{Reply: generateReplyText(raw), Raw: raw}, nil
}

// Reply extraction. Responses are opaque and shape varies between client
// versions, so each convention pattern-matches what it knows and falls back
// to stringifying the whole value.

// chatReplyText prefers a last-response text accessor, then dict-like
// content/output keys.
func chatReplyText(raw interface{}) string {
	if r, ok := raw.(interface{ LastText() string }); ok {
		if text := strings.TrimSpace(r.LastText()); text != "" {
			return text
		}
	}
	if m, ok := raw.(map[string]interface{}); ok {
		if text, ok := m["content"].(string); ok && text != "" {
			return text
		}
		if text, ok := m["output"].(string); ok && text != "" {
			return text
		}
	}
	return stringify(raw)
}

// responseReplyText concatenates content parts from a list-shaped output
// field, or stringifies a scalar one.
func responseReplyText(raw interface{}) string {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return stringify(raw)
	}

	switch output := m["output"].(type) {
	case []interface{}:
		var b strings.Builder
		for _, item := range output {
			if part, ok := item.(map[string]interface{}); ok {
				if content, ok := part["content"].(string); ok {
					b.WriteString(content)
					continue
				}
			}
			b.WriteString(stringify(item))
		}
		return b.String()
	case nil:
		return stringify(raw)
	default:
		return stringify(output)
	}
}

// generateReplyText returns an output field directly when it is already
// text, serializes it as JSON when it is not.
func generateReplyText(raw interface{}) string {
	var output interface{}
	switch r := raw.(type) {
	case interface{ Output() interface{} }:
		output = r.Output()
	case map[string]interface{}:
		var ok bool
		if output, ok = r["output"]; !ok {
			return stringify(raw)
		}
	default:
		return stringify(raw)
	}

	if text, ok := output.(string); ok {
		return text
	}
	if data, err := json.Marshal(output); err == nil {
		return string(data)
	}
	return stringify(output)
}

func stringify(v interface{}) string {
	return fmt.Sprintf("%v", v)
}
