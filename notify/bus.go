package notify

import (
	"sync"
	"time"
)

// EventCartUpdated names the event published after the cart count
// changes. Subscribers match on Event.Name so more event kinds can share
// the bus later.
const EventCartUpdated = "cart-updated"

// Event is one broadcast delivered to bus subscribers.
type Event struct {
	Name  string
	Count int
	At    time.Time
}

// Bus broadcasts events to subscribers over channels.
//
// Publish never blocks: a subscriber whose channel buffer is full misses
// that event. Subscribers that care about every event size their buffer
// accordingly, or drain promptly.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

// NewBus creates a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]chan Event),
	}
}

// Subscribe registers a new subscriber and returns its event channel
// along with a cancel function. buffer sets the channel capacity; values
// below 1 are raised to 1. Cancel closes the channel and may be called
// more than once.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers event to every current subscriber without blocking.
// A zero At is stamped with the current time.
func (b *Bus) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribers returns the current subscriber count.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
