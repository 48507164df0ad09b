package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodforms/questionnaire/internal/core/domain"
)

// flashTTL bounds how long an unread message survives an abandoned visit.
const flashTTL = 10 * time.Minute

// FlashStore keeps one-shot messages in a Redis list per visitor.
// Key format: flash:<visitor_id>
type FlashStore struct {
	client *redis.Client
}

func NewFlashStore(client *redis.Client) *FlashStore {
	return &FlashStore{client: client}
}

func (s *FlashStore) Push(ctx context.Context, visitorID string, msg domain.FlashMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode flash: %w", err)
	}

	key := flashKey(visitorID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.Expire(ctx, key, flashTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("push flash: %w", err)
	}
	return nil
}

// Drain reads and deletes the queue in one transaction.
func (s *FlashStore) Drain(ctx context.Context, visitorID string) ([]domain.FlashMessage, error) {
	key := flashKey(visitorID)

	var rng *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		rng = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("drain flash: %w", err)
	}

	raw := rng.Val()
	msgs := make([]domain.FlashMessage, 0, len(raw))
	for _, item := range raw {
		var msg domain.FlashMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func flashKey(visitorID string) string {
	return "flash:" + visitorID
}
