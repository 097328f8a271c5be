package events

import "sync"

// Handler receives the payload documented for the event type it subscribed to.
type Handler func(payload any)

type subscriber struct {
	id int
	fn Handler
}

// Bus is a process-wide synchronous publish/subscribe channel. Emit calls the
// listeners registered for that type, in registration order, before it
// returns. Nothing is durable: persistence belongs to the store, not the bus.
//
// Registration is mutex-guarded so a TUI goroutine can subscribe while the
// engine emits; delivery itself stays synchronous on the emitter's goroutine.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Type][]subscriber
}

func NewBus() *Bus {
	return &Bus{subs: map[Type][]subscriber{}}
}

// Subscribe registers fn for events of type t and returns the unsubscribe
// handle. Listeners must not assume ordering relative to listeners of other
// event types.
func (b *Bus) Subscribe(t Type, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[t] = append(b.subs[t], subscriber{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[t]
		for i := range list {
			if list[i].id == id {
				b.subs[t] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers payload to every current listener for t, synchronously and in
// registration order.
func (b *Bus) Emit(t Type, payload any) {
	b.mu.Lock()
	list := make([]subscriber, len(b.subs[t]))
	copy(list, b.subs[t])
	b.mu.Unlock()

	for _, s := range list {
		s.fn(payload)
	}
}
