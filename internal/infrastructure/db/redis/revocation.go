package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocationList marks logged-out tokens until their natural expiry.
// Key format: revoked:<sha256(token)> — the raw token never touches Redis.
type TokenRevocationList struct {
	client *redis.Client
}

// NewTokenRevocationList creates a TokenRevocationList wrapping the given
// Redis client.
func NewTokenRevocationList(client *redis.Client) *TokenRevocationList {
	return &TokenRevocationList{client: client}
}

// IsRevoked reports whether the token has been revoked.
func (l *TokenRevocationList) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

// Revoke records the token as revoked; the key expires with the token.
func (l *TokenRevocationList) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return l.client.Set(ctx, l.key(token), "1", ttl).Err()
}

func (l *TokenRevocationList) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}
