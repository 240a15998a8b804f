package event

// Handler consumes one domain event. Handlers run synchronously on the
// simulation goroutine and must not block.
type Handler func(Event)

// Bus dispatches domain events to registered handlers in subscription order.
//
// The bus is not internally locked: like the rest of the core it belongs to
// a single match and is driven from one goroutine at a time (the match's
// concurrency discipline, not the bus's).
type Bus struct {
	nextID   int
	order    []int
	handlers map[int]Handler
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers h and returns a token for Unsubscribe.
//
// Precondition: h must not be nil. Panics with "event: nil handler" otherwise.
func (b *Bus) Subscribe(h Handler) int {
	if h == nil {
		panic("event: nil handler")
	}
	b.nextID++
	id := b.nextID
	b.handlers[id] = h
	b.order = append(b.order, id)
	return id
}

// Unsubscribe removes the handler registered under token. Unknown tokens are
// a no-op, so double-unsubscribe is safe.
func (b *Bus) Unsubscribe(token int) {
	if _, ok := b.handlers[token]; !ok {
		return
	}
	delete(b.handlers, token)
	for i, id := range b.order {
		if id == token {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Publish delivers ev to every handler in subscription order. Handlers may
// unsubscribe themselves (or others) during delivery: delivery walks a copy
// of the order taken at publish time, and the handler map lookup skips
// entries removed mid-publish.
func (b *Bus) Publish(ev Event) {
	order := make([]int, len(b.order))
	copy(order, b.order)
	for _, id := range order {
		if h, ok := b.handlers[id]; ok {
			h(ev)
		}
	}
}

// SubscriberCount returns the number of registered handlers.
func (b *Bus) SubscriberCount() int {
	return len(b.handlers)
}
