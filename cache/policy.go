package cache

import "time"

// Policy configures how long a fetched count stays fresh.
type Policy struct {
	// DefaultTTL is the freshness window to use when none is specified.
	// If zero, caching is disabled by default.
	DefaultTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Override TTLs are clamped to this.
	// If zero, no maximum is enforced.
	MaxTTL time.Duration
}

// DefaultPolicy returns the default count-cache policy.
// DefaultTTL: 5 seconds, MaxTTL: 1 minute.
//
// Five seconds is deliberate: long enough to absorb a burst of count
// lookups from one page of activity, short enough that a cart changed in
// another tab shows up almost immediately.
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL: 5 * time.Second,
		MaxTTL:     1 * time.Minute,
	}
}

// NoCachePolicy returns a policy that disables caching entirely.
func NoCachePolicy() Policy {
	return Policy{
		DefaultTTL: 0,
		MaxTTL:     0,
	}
}

// ShouldCache returns true if caching is enabled by this policy.
func (p Policy) ShouldCache() bool {
	return p.DefaultTTL > 0
}

// EffectiveTTL returns the TTL to use, applying defaults and clamping.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	// Use default if no override (or negative override)
	ttl := override
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}

	// Clamp to MaxTTL if set
	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}

	return ttl
}
