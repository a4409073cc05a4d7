package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisLog keeps each conversation as a Redis list of JSON-encoded turns.
// Same best-effort contract as MemoryLog, just survives our own restarts.
type RedisLog struct {
	client *redis.Client
}

func NewRedisLog(client *redis.Client) *RedisLog {
	return &RedisLog{client: client}
}

func conversationKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s", conversationID)
}

func (l *RedisLog) Append(ctx context.Context, conversationID string, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to encode turn: %w", err)
		}
		values = append(values, string(data))
	}

	// Single RPUSH keeps the pair atomic on the Redis side too.
	if err := l.client.RPush(ctx, conversationKey(conversationID), values...).Err(); err != nil {
		return fmt.Errorf("failed to append turns: %w", err)
	}
	return nil
}

func (l *RedisLog) Get(ctx context.Context, conversationID string) ([]Turn, error) {
	entries, err := l.client.LRange(ctx, conversationKey(conversationID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation: %w", err)
	}

	turns := make([]Turn, 0, len(entries))
	for _, entry := range entries {
		var t Turn
		if err := json.Unmarshal([]byte(entry), &t); err != nil {
			return nil, fmt.Errorf("failed to decode turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}
