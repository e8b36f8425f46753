package page

// Handler receives page events.
type Handler func(Event)

// Bus fans page events out to subscribers on the caller's goroutine. It is
// not safe for concurrent use; callers serialize access per page.
type Bus struct {
	next     int
	handlers map[int]Handler
	order    []int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers h and returns a func that removes it. The returned
// func is safe to call more than once.
func (b *Bus) Subscribe(h Handler) func() {
	id := b.next
	b.next++
	b.handlers[id] = h
	b.order = append(b.order, id)
	return func() {
		if _, ok := b.handlers[id]; !ok {
			return
		}
		delete(b.handlers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers ev to every subscriber in subscription order.
func (b *Bus) Publish(ev Event) {
	for _, id := range append([]int(nil), b.order...) {
		if h, ok := b.handlers[id]; ok {
			h(ev)
		}
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int { return len(b.handlers) }
