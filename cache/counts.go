package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Entry is one cached cart count together with its fetch time. It is
// stored as {"count": n, "timestamp": ms}, the shape the storefront's
// page helper kept under the same key.
type Entry struct {
	Count     int   `json:"count"`
	Timestamp int64 `json:"timestamp"` // unix milliseconds
}

// NewEntry builds an entry for a count fetched at the given instant.
func NewEntry(count int, at time.Time) Entry {
	return Entry{
		Count:     count,
		Timestamp: at.UnixMilli(),
	}
}

// FetchedAt returns the fetch instant recorded in the entry.
func (e Entry) FetchedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Fresh reports whether the entry is still inside the freshness window at
// now. A window of zero or less is never fresh.
func (e Entry) Fresh(now time.Time, window time.Duration) bool {
	if window <= 0 {
		return false
	}
	return now.Sub(e.FetchedAt()) < window
}

// Counts memoizes the storefront's cart item count behind a Cache.
//
// Contract:
// - Concurrency: safe for concurrent use when the backing Cache is.
// - Freshness: an entry is served only while younger than the policy's
//   effective TTL; the entry's own timestamp is authoritative.
// - Failures are never stored: callers only Put counts the server
//   actually returned.
type Counts struct {
	cache  Cache
	key    string
	policy Policy
}

// NewCounts creates a count cache over c. An empty key selects
// CountCacheKey, the default storefront's key.
func NewCounts(c Cache, key string, policy Policy) *Counts {
	if key == "" {
		key = CountCacheKey
	}
	return &Counts{
		cache:  c,
		key:    key,
		policy: policy,
	}
}

// Key returns the storage key this count cache writes under.
func (s *Counts) Key() string {
	return s.key
}

// Get returns the cached count if one is stored and still fresh.
// Unreadable or nonsensical entries are dropped and read as a miss.
func (s *Counts) Get(ctx context.Context) (int, bool) {
	if s == nil || s.cache == nil || !s.policy.ShouldCache() {
		return 0, false
	}

	data, ok := s.cache.Get(ctx, s.key)
	if !ok {
		return 0, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Count < 0 {
		_ = s.cache.Delete(ctx, s.key)
		return 0, false
	}

	if !entry.Fresh(time.Now(), s.policy.EffectiveTTL(0)) {
		return 0, false
	}

	return entry.Count, true
}

// Put stores a freshly fetched count. Negative counts are clamped to zero.
func (s *Counts) Put(ctx context.Context, count int) error {
	if s == nil || s.cache == nil || !s.policy.ShouldCache() {
		return nil
	}
	if count < 0 {
		count = 0
	}

	data, err := json.Marshal(NewEntry(count, time.Now()))
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.key, data, s.policy.EffectiveTTL(0))
}

// Invalidate drops the cached count so the next lookup refetches.
// Idempotent - no error when nothing is cached.
func (s *Counts) Invalidate(ctx context.Context) error {
	if s == nil || s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, s.key)
}
