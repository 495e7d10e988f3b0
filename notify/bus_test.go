package notify

import (
	"testing"
	"time"
)

func TestBus_PublishReachesSubscriber(t *testing.T) {
	bus := NewBus()
	events, cancel := bus.Subscribe(1)
	defer cancel()

	bus.Publish(Event{Name: EventCartUpdated, Count: 4})

	select {
	case ev := <-events:
		if ev.Name != EventCartUpdated {
			t.Errorf("Name = %q, want %q", ev.Name, EventCartUpdated)
		}
		if ev.Count != 4 {
			t.Errorf("Count = %d, want 4", ev.Count)
		}
		if ev.At.IsZero() {
			t.Error("At is zero, want stamped time")
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestBus_FullSubscriberDropsEvent(t *testing.T) {
	bus := NewBus()
	events, cancel := bus.Subscribe(1)
	defer cancel()

	bus.Publish(Event{Name: EventCartUpdated, Count: 1})
	bus.Publish(Event{Name: EventCartUpdated, Count: 2}) // buffer full, dropped

	ev := <-events
	if ev.Count != 1 {
		t.Errorf("Count = %d, want 1", ev.Count)
	}

	select {
	case ev := <-events:
		t.Errorf("unexpected second event: %+v", ev)
	default:
	}
}

func TestBus_CancelStopsDeliveryAndClosesChannel(t *testing.T) {
	bus := NewBus()
	events, cancel := bus.Subscribe(4)

	cancel()
	bus.Publish(Event{Name: EventCartUpdated, Count: 9})

	if _, open := <-events; open {
		t.Error("channel still open after cancel")
	}
	if got := bus.Subscribers(); got != 0 {
		t.Errorf("Subscribers() = %d, want 0", got)
	}
}

func TestBus_CancelIsIdempotent(t *testing.T) {
	bus := NewBus()
	_, cancel := bus.Subscribe(1)

	cancel()
	cancel()

	if got := bus.Subscribers(); got != 0 {
		t.Errorf("Subscribers() = %d, want 0", got)
	}
}

func TestBus_IndependentSubscribers(t *testing.T) {
	bus := NewBus()
	first, cancelFirst := bus.Subscribe(1)
	second, cancelSecond := bus.Subscribe(1)
	defer cancelFirst()
	defer cancelSecond()

	bus.Publish(Event{Name: EventCartUpdated, Count: 6})

	for i, events := range []<-chan Event{first, second} {
		select {
		case ev := <-events:
			if ev.Count != 6 {
				t.Errorf("subscriber %d: Count = %d, want 6", i, ev.Count)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: no event received", i)
		}
	}
}

func TestBus_SubscribeRaisesTinyBuffer(t *testing.T) {
	bus := NewBus()
	events, cancel := bus.Subscribe(0)
	defer cancel()

	// A zero buffer would make every publish a drop; it is raised to one.
	bus.Publish(Event{Name: EventCartUpdated, Count: 3})

	select {
	case ev := <-events:
		if ev.Count != 3 {
			t.Errorf("Count = %d, want 3", ev.Count)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}
