package session

import "sync"

// Storage is the interface for per-session key/value state.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Get never errors; it returns (nil, false) on miss.
//   Delete is idempotent - no error on miss.
// - Blocking: implementations must not block on the network.
type Storage interface {
	// Get retrieves a stored value. Returns (nil, false) on miss.
	Get(key string) ([]byte, bool)

	// Set stores a value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes a stored value. Idempotent - no error on miss.
	Delete(key string) error
}

// MemoryStore is an in-memory session store. It is the default backing for
// clients that live and die with one process, the way a browser tab's
// session scope lives and dies with the tab.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

// Get retrieves a stored value. Returns (nil, false) on miss.
func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	value, ok := s.values[key]
	s.mu.RUnlock()
	return value, ok
}

// Set stores a value under key, replacing any previous value.
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// Delete removes a stored value. Idempotent - no error on miss.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

// Ensure MemoryStore implements Storage
var _ Storage = (*MemoryStore)(nil)
