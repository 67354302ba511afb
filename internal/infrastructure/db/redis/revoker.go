package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/job-marketplace/internal/core/domain"
)

const revokedKeyPrefix = "session:revoked:"

// SessionRevoker stores revoked session token ids in Redis.
// Key format: session:revoked:<token_id>, expiring with the token itself.
type SessionRevoker struct {
	client *redis.Client
}

// NewSessionRevoker creates a SessionRevoker wrapping the given Redis client.
func NewSessionRevoker(client *redis.Client) *SessionRevoker {
	return &SessionRevoker{client: client}
}

// Revoke marks tokenID as ended until expiresAt. Tokens already past their
// expiry are rejected by signature checks and need no entry.
func (r *SessionRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (r *SessionRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w: %v", domain.ErrStoreUnavailable, err)
	}
	return n > 0, nil
}

func key(tokenID string) string {
	return revokedKeyPrefix + tokenID
}
