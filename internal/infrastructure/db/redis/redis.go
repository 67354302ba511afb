// Package redis keeps the revoked-session list in Redis so logouts hold
// across every API instance sharing the same server.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	// Revocation is checked on every authenticated request.
	defaultCallTimeout = time.Second
)

// Config holds the revocation store settings. Zero timeouts take the
// defaults above.
type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
	CallTimeout time.Duration
}

func clientOptions(cfg Config) *redis.Options {
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	call := cfg.CallTimeout
	if call <= 0 {
		call = defaultCallTimeout
	}
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dial,
		ReadTimeout:  call,
		WriteTimeout: call,
	}
}

// Connect opens the revocation store and pings it once so a bad address
// fails at startup rather than on the first logout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := clientOptions(cfg)
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
