// Package answercache caches rendered answers in the KV store. A miss or
// a backend failure is never an error for the caller: the engine simply
// recomputes the answer.
package answercache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oic-analytics/adeidex/internal/db"
)

// Cache stores rendered answers keyed by a digest of (query, k).
type Cache struct {
	kv     db.KVStore
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a cache on top of a KV store.
func New(kv db.KVStore, prefix string, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{kv: kv, prefix: prefix, ttl: ttl, logger: logger}
}

// Get returns the cached payload for (query, k), or ok=false on a miss.
func (c *Cache) Get(ctx context.Context, query string, k int) ([]byte, bool) {
	data, err := c.kv.Get(ctx, c.key(query, k))
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("answer cache read failed", zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set stores the payload for (query, k). Failures are logged and swallowed.
func (c *Cache) Set(ctx context.Context, query string, k int, payload []byte) {
	if err := c.kv.SetWithTTL(ctx, c.key(query, k), payload, c.ttl); err != nil {
		c.logger.Warn("answer cache write failed", zap.Error(err))
	}
}

func (c *Cache) key(query string, k int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", query, k)))
	return c.prefix + "answer:" + hex.EncodeToString(sum[:])
}
