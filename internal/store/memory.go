package store

import (
	"context"
	"sync"
)

// MemoryLog keeps conversations in process memory. Unbounded and lost on
// restart, which is the intended lifetime for this service.
type MemoryLog struct {
	mu            sync.Mutex
	conversations map[string][]Turn
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{
		conversations: make(map[string][]Turn),
	}
}

func (l *MemoryLog) Append(ctx context.Context, conversationID string, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.conversations[conversationID] = append(l.conversations[conversationID], turns...)
	return nil
}

func (l *MemoryLog) Get(ctx context.Context, conversationID string) ([]Turn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	turns := l.conversations[conversationID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}
