package textfeat

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Persister writes cache entries through to durable storage. Write failures
// are logged only; they never affect the returned features.
type Persister interface {
	UpsertTextFeatureCache(ctx context.Context, hash string, features TextFeatures) error
}

// Cache is a content-addressed read-through cache for extraction results.
// Entries never expire: the key is a hash of the input text, so a changed
// input simply misses. Concurrent callers may race to populate the same
// entry, which is safe because the computed value is deterministic for the
// same input.
type Cache struct {
	mu        sync.RWMutex
	items     map[string]TextFeatures
	hits      int64 // atomic
	misses    int64 // atomic
	persister Persister
}

// NewCache creates a cache. The persister may be nil for a purely in-memory
// cache.
func NewCache(persister Persister) *Cache {
	return &Cache{
		items:     make(map[string]TextFeatures),
		persister: persister,
	}
}

// ContentHash computes the stable cache key for an input pair.
func ContentHash(title, text string) string {
	sum := sha256.Sum256([]byte(title + "\n" + text))
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached result by content hash.
func (c *Cache) Get(hash string) (TextFeatures, bool) {
	c.mu.RLock()
	item, ok := c.items[hash]
	c.mu.RUnlock()

	if ok {
		atomic.AddInt64(&c.hits, 1)
	} else {
		atomic.AddInt64(&c.misses, 1)
	}

	return item, ok
}

// Set stores a result and writes it through to the persister without
// blocking the caller.
func (c *Cache) Set(hash string, features TextFeatures) {
	c.mu.Lock()
	c.items[hash] = features
	c.mu.Unlock()

	if c.persister == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.persister.UpsertTextFeatureCache(ctx, hash, features); err != nil {
			slog.Warn("Failed to persist text feature cache entry",
				"hash", hash[:8]+"...",
				"error", err)
		}
	}()
}

// Warm preloads an entry, used at startup to restore persisted results.
func (c *Cache) Warm(hash string, features TextFeatures) {
	c.mu.Lock()
	c.items[hash] = features
	c.mu.Unlock()
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns cache statistics.
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"entries": len(c.items),
		"hits":    atomic.LoadInt64(&c.hits),
		"misses":  atomic.LoadInt64(&c.misses),
	}
}
