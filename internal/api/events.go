package api

import "sync"

// ChangeRegistry is the process-wide "task data changed" subscription point.
// The client notifies it after every successful mutating call; observers (the
// notification badge, list views) subscribe independently of each other.
type ChangeRegistry struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
}

// NewChangeRegistry creates an empty registry.
func NewChangeRegistry() *ChangeRegistry {
	return &ChangeRegistry{
		listeners: make(map[int]func()),
	}
}

// Subscribe registers fn to run on every data change and returns a function
// that removes the subscription.
func (r *ChangeRegistry) Subscribe(fn func()) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.listeners[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Notify invokes every current subscriber.
func (r *ChangeRegistry) Notify() {
	r.mu.Lock()
	fns := make([]func(), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
