package flight

import (
	"errors"
	"sync"
)

// ErrInFlight is returned by Start when the key is already claimed.
var ErrInFlight = errors.New("flight: request already in flight")

// Group tracks which logical operations are currently running.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Start never blocks; a duplicate claim fails fast with ErrInFlight.
// - A claim is held until its release function runs, success or failure.
type Group struct {
	mu      sync.Mutex
	pending map[string]*claim
}

type claim struct {
	once sync.Once
}

// NewGroup creates an empty flight group.
func NewGroup() *Group {
	return &Group{
		pending: make(map[string]*claim),
	}
}

// Start claims key for the caller. The returned release function settles
// the claim and must be called when the operation finishes, however it
// finishes. Release is idempotent, and a late duplicate release cannot
// free a newer claim on the same key.
//
// If key is already claimed, Start returns (nil, ErrInFlight).
func (g *Group) Start(key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.pending[key]; held {
		return nil, ErrInFlight
	}

	c := &claim{}
	g.pending[key] = c

	release := func() {
		c.once.Do(func() {
			g.mu.Lock()
			if current, ok := g.pending[key]; ok && current == c {
				delete(g.pending, key)
			}
			g.mu.Unlock()
		})
	}
	return release, nil
}

// InFlight reports whether key is currently claimed.
func (g *Group) InFlight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, held := g.pending[key]
	return held
}

// Len returns the number of keys currently claimed.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}
