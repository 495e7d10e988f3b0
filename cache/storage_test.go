package cache

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"
)

// mapKV is a minimal KV for tests, shaped like a session store.
type mapKV struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMapKV() *mapKV {
	return &mapKV{values: make(map[string][]byte)}
}

func (m *mapKV) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *mapKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *mapKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func TestStorageCache_GetSetDelete(t *testing.T) {
	kv := newMapKV()
	cache := NewStorageCache(kv)
	ctx := context.Background()

	// Miss on empty store
	if _, ok := cache.Get(ctx, "cart_count_cache"); ok {
		t.Error("Get on empty store should return ok=false")
	}

	value := []byte(`{"count":3,"timestamp":1700000000000}`)
	if err := cache.Set(ctx, "cart_count_cache", value, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := cache.Get(ctx, "cart_count_cache")
	if !ok {
		t.Fatal("Get after Set should return ok=true")
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Get returned %q, want %q", got, value)
	}

	if err := cache.Delete(ctx, "cart_count_cache"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := cache.Get(ctx, "cart_count_cache"); ok {
		t.Error("Get after Delete should return ok=false")
	}
}

func TestStorageCache_ExpiryEnforcedAtRead(t *testing.T) {
	kv := newMapKV()
	cache := NewStorageCache(kv)
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), 30*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, ok := cache.Get(ctx, "key"); !ok {
		t.Error("Get before expiry should return ok=true")
	}

	time.Sleep(60 * time.Millisecond)

	if _, ok := cache.Get(ctx, "key"); ok {
		t.Error("Get after expiry should return ok=false")
	}
	// Expired entry is removed from the backing store
	if _, ok := kv.Get("key"); ok {
		t.Error("expired entry should be removed from the store")
	}
}

func TestStorageCache_ZeroTTL(t *testing.T) {
	kv := newMapKV()
	cache := NewStorageCache(kv)
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set with TTL=0 failed: %v", err)
	}
	if _, ok := kv.Get("key"); ok {
		t.Error("Set with TTL=0 should not store")
	}
}

func TestStorageCache_UnreadableEnvelope(t *testing.T) {
	kv := newMapKV()
	cache := NewStorageCache(kv)
	ctx := context.Background()

	// Something else wrote raw bytes under the key
	_ = kv.Set("key", []byte("not an envelope"))

	if _, ok := cache.Get(ctx, "key"); ok {
		t.Error("unreadable envelope should read as a miss")
	}
	if _, ok := kv.Get("key"); ok {
		t.Error("unreadable envelope should be removed")
	}
}

func TestStorageCache_CountsOverStorage(t *testing.T) {
	// The full stack a command-line client uses: a typed count cache over
	// a storage-backed byte cache.
	kv := newMapKV()
	counts := NewCounts(NewStorageCache(kv), "", DefaultPolicy())
	ctx := context.Background()

	if err := counts.Put(ctx, 5); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if got, ok := counts.Get(ctx); !ok || got != 5 {
		t.Errorf("Get = (%d, %v), want (5, true)", got, ok)
	}

	// A second cache over the same store sees the same count
	other := NewCounts(NewStorageCache(kv), "", DefaultPolicy())
	if got, ok := other.Get(ctx); !ok || got != 5 {
		t.Errorf("Get via second cache = (%d, %v), want (5, true)", got, ok)
	}
}
