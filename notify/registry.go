package notify

import (
	"context"
	"sync"
)

// Registry holds named sinks and pushes count updates to all of them.
// Sinks are updated in registration order. Registering a name twice
// replaces the earlier sink but keeps its position.
type Registry struct {
	mu    sync.RWMutex
	sinks map[string]Sink
	order []string
}

// NewRegistry creates an empty sink registry.
func NewRegistry() *Registry {
	return &Registry{
		sinks: make(map[string]Sink),
	}
}

// Register adds a sink under the given name. A nil sink is ignored.
func (r *Registry) Register(name string, sink Sink) {
	if sink == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sinks[name]; !exists {
		r.order = append(r.order, name)
	}
	r.sinks[name] = sink
}

// Unregister removes the named sink. Unknown names are a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sinks[name]; !exists {
		return
	}
	delete(r.sinks, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Names returns the registered sink names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered sinks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sinks)
}

// Update pushes count to every registered sink in registration order.
// Sinks registered or removed during an update do not affect the set
// being walked.
func (r *Registry) Update(ctx context.Context, count int) {
	r.mu.RLock()
	sinks := make([]Sink, 0, len(r.order))
	for _, name := range r.order {
		sinks = append(sinks, r.sinks[name])
	}
	r.mu.RUnlock()

	for _, sink := range sinks {
		sink.UpdateCount(ctx, count)
	}
}
