package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revocations stores logged-out session token ids.
// Key format: revoked:<token_id>
type Revocations struct {
	client *redis.Client
}

func NewRevocations(client *redis.Client) *Revocations {
	return &Revocations{client: client}
}

// Revoke blocks tokenID until ttl elapses, which should match the token's
// remaining lifetime.
func (r *Revocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return r.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

func (r *Revocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func revokedKey(tokenID string) string {
	return "revoked:" + tokenID
}
