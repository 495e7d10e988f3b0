package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// CountCacheKey is the storage key for the count cache of the default
// storefront. It matches the key the storefront's page helper used, so a
// store shared with other tooling stays readable.
const CountCacheKey = "cart_count_cache"

// Keyer derives count-cache keys.
//
// Contract:
// - Determinism: the same store URL must produce the same key, however it
//   was spelled (case, default ports, trailing slashes).
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// CountKey returns the count-cache key for the given storefront URL.
	CountKey(storeURL string) string
}

// DefaultKeyer scopes count-cache keys by storefront.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// CountKey returns the count-cache key for storeURL.
// An empty URL maps to the bare CountCacheKey. Otherwise the key carries a
// short hash of the normalized URL so two storefronts sharing one session
// store cannot read each other's counts.
// Format: cart_count_cache:<hash> where hash is 16 hex chars of SHA-256.
func (k *DefaultKeyer) CountKey(storeURL string) string {
	normalized := NormalizeStoreURL(storeURL)
	if normalized == "" {
		return CountCacheKey
	}

	sum := sha256.Sum256([]byte(normalized))
	return CountCacheKey + ":" + hex.EncodeToString(sum[:8])
}

// NormalizeStoreURL canonicalizes a storefront base URL for keying:
// scheme and host are lowercased, default ports and trailing slashes are
// stripped. Text that does not parse as a URL is keyed as its trimmed self
// so keying stays total.
func NormalizeStoreURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.TrimRight(raw, "/")
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}

	path := strings.TrimRight(u.Path, "/")
	return scheme + "://" + host + path
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
