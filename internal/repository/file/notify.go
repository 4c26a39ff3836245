package file

import "sync"

// Event identifies which durable document changed.
type Event string

const (
	EventSchema Event = "schema"
	EventConfig Event = "config"
)

// Notifier is an in-process, best-effort change signal. Callbacks run
// synchronously on the writing goroutine; this is not a durable event log.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

// NewNotifier creates an empty subscriber registry.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Event))}
}

// Subscribe registers a callback and returns a function that removes it.
func (n *Notifier) Subscribe(fn func(Event)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Notify invokes every subscriber with the event.
func (n *Notifier) Notify(ev Event) {
	n.mu.Lock()
	callbacks := make([]func(Event), 0, len(n.subs))
	for _, fn := range n.subs {
		callbacks = append(callbacks, fn)
	}
	n.mu.Unlock()

	for _, fn := range callbacks {
		fn(ev)
	}
}
