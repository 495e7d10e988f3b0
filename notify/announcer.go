package notify

import (
	"context"
	"sync"
)

// Announcer pushes cart count changes to display sinks and publishes a
// cart-updated event for each change. Announcing the same count twice in
// a row is a no-op, so callers can announce freely after every operation
// without causing duplicate events.
type Announcer struct {
	mu        sync.Mutex
	displays  *Registry
	bus       *Bus
	last      int
	announced bool
}

// NewAnnouncer creates an announcer feeding the given registry and bus.
// Either may be nil, in which case that half of the fan-out is skipped.
func NewAnnouncer(displays *Registry, bus *Bus) *Announcer {
	return &Announcer{
		displays: displays,
		bus:      bus,
	}
}

// Announce pushes count to every sink and publishes one cart-updated
// event, unless count matches the previous announcement. Negative counts
// are treated as zero. It reports whether an announcement went out.
//
// The fan-out runs synchronously under the announcer's lock; that is
// what guarantees one event per distinct value even with concurrent
// callers. Sinks and subscribers must not block.
func (a *Announcer) Announce(ctx context.Context, count int) bool {
	if count < 0 {
		count = 0
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.announced && a.last == count {
		return false
	}

	if a.displays != nil {
		a.displays.Update(ctx, count)
	}
	if a.bus != nil {
		a.bus.Publish(Event{Name: EventCartUpdated, Count: count})
	}

	a.last = count
	a.announced = true
	return true
}

// Last returns the most recently announced count. The second return is
// false before the first announcement.
func (a *Announcer) Last() (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last, a.announced
}

// Reset forgets the last announcement, so the next Announce always goes
// out. Useful when a display surface is rebuilt and needs a fresh push.
func (a *Announcer) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.announced = false
	a.last = 0
}
