package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

const revokerCleanupInterval = 10 * time.Minute

// SessionRevoker remembers revoked token ids in a TTL cache; entries vanish
// once the token would have expired anyway.
type SessionRevoker struct {
	revoked *cache.Cache
}

func NewSessionRevoker() *SessionRevoker {
	return &SessionRevoker{revoked: cache.New(cache.NoExpiration, revokerCleanupInterval)}
}

func (r *SessionRevoker) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	r.revoked.Set(tokenID, struct{}{}, ttl)
	return nil
}

func (r *SessionRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, found := r.revoked.Get(tokenID)
	return found, nil
}
