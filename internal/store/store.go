package store

import "context"

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message recorded in a conversation. Immutable once appended.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ConversationLog records turns per conversation, insertion order preserved.
// The service only ever writes to it; Get exists for the conversation export
// endpoint and for tests. Passing several turns to one Append call appends
// them as a unit, so a user/assistant pair can never be half-recorded.
type ConversationLog interface {
	Append(ctx context.Context, conversationID string, turns ...Turn) error
	Get(ctx context.Context, conversationID string) ([]Turn, error)
}
