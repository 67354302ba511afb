package ports

import (
	"context"
	"time"
)

// SessionRevoker remembers logged-out session token ids until they would
// have expired anyway.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
