package cache

import (
	"context"
	"encoding/json"
	"time"
)

// KV is the subset of a session store the cache needs. It matches the
// session package's Storage interface, so a session store can back a
// cache directly and the cached count survives whatever the store
// survives - a process for a memory store, an invocation for a file store.
type KV interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
}

// StorageCache is a Cache over a session key/value store. The store has no
// notion of expiry, so the TTL is carried in an envelope next to the value
// and enforced when the entry is read back.
type StorageCache struct {
	kv KV
}

// storedEntry is the at-rest envelope for one cached value.
type storedEntry struct {
	Value     []byte    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewStorageCache creates a cache backed by kv.
func NewStorageCache(kv KV) *StorageCache {
	return &StorageCache{kv: kv}
}

// Get retrieves a value. Returns (nil, false) on miss, expiry, or an
// unreadable envelope. Expired and unreadable entries are removed.
func (c *StorageCache) Get(_ context.Context, key string) ([]byte, bool) {
	data, ok := c.kv.Get(key)
	if !ok {
		return nil, false
	}

	var entry storedEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = c.kv.Delete(key)
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = c.kv.Delete(key)
		return nil, false
	}

	return entry.Value, true
}

// Set stores a value with the given TTL. TTL=0 means immediate expiry (no caching).
func (c *StorageCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	// TTL=0 means don't cache
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(storedEntry{
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		return err
	}
	return c.kv.Set(key, data)
}

// Delete removes a value. Idempotent - no error on miss.
func (c *StorageCache) Delete(_ context.Context, key string) error {
	return c.kv.Delete(key)
}

// Ensure StorageCache implements Cache
var _ Cache = (*StorageCache)(nil)
