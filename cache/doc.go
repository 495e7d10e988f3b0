// Package cache memoizes the storefront's cart item count so repeated
// lookups inside a short window skip the network.
//
// It provides a Cache interface with in-memory and session-storage backed
// implementations, per-store key derivation, and a freshness policy with a
// five second default window. The typed Counts layer stores entries in the
// same {count, timestamp} shape the storefront's page helper used.
package cache
