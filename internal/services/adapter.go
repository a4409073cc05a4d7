package services

import (
	"context"
	"errors"
	"strings"
)

// ErrUnavailable is returned when no provider client is configured, or the
// configured client exposes none of the known call conventions. The exact
// text is part of the API surface (it reaches end users verbatim).
var ErrUnavailable = errors.New("Generative AI SDK unavailable or API key not set.")

// Result is a successful provider reply. Raw is the untouched provider
// response, kept for diagnostics only and never parsed downstream.
type Result struct {
	Reply string
	Raw   interface{}
}

// Adapter turns a text prompt into a provider call and the heterogeneous
// provider response back into plain text. It walks an ordered chain of call
// conventions and uses the first one the client supports; it performs no
// retries and holds no state between calls.
type Adapter struct {
	client     interface{}
	model      string
	strategies []strategy
}

// NewAdapter wires the fallback chain in priority order. A nil client is
// allowed and makes every call report ErrUnavailable.
func NewAdapter(client interface{}, model string) *Adapter {
	return &Adapter{
		client: client,
		model:  model,
		strategies: []strategy{
			chatCreateStrategy{},
			responsesStrategy{},
			generateStrategy{},
		},
	}
}

// Reply sends prompt through the first supported call convention.
// An error raised inside a convention is returned as-is; later conventions
// are only reached when earlier ones are absent on the client.
func (a *Adapter) Reply(ctx context.Context, prompt, conversationID string) (Result, error) {
	if a.client == nil {
		return Result{}, ErrUnavailable
	}

	req := request{
		prompt:         strings.TrimSpace(prompt),
		conversationID: conversationID,
		model:          a.model,
	}

	for _, s := range a.strategies {
		if !s.supports(a.client) {
			continue
		}
		return s.invoke(ctx, a.client, req)
	}

	return Result{}, ErrUnavailable
}
