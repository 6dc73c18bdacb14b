package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores chunk summaries so repeated requests skip the model call.
type Cache interface {
	// GetSummary returns the cached summary for key. ok is false on a miss.
	GetSummary(ctx context.Context, key string) (summary string, ok bool, err error)

	// SetSummary stores a summary with TTL
	SetSummary(ctx context.Context, key, summary string, ttl time.Duration) error

	// Close closes the cache connection
	Close() error
}

// Key derives the cache key for one chunk under one prompt. Identical text
// summarised with a different template or model gets a different key.
func Key(model, summaryType, chunk string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(summaryType))
	h.Write([]byte{0})
	h.Write([]byte(chunk))
	return hex.EncodeToString(h.Sum(nil))
}
