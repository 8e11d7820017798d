package tokenstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// RevocationStore tracks tokens invalidated before their natural expiry.
// Entries only need to live as long as the token would have.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// hashToken keeps raw bearer tokens out of the store.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
