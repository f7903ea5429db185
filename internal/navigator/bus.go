package navigator

// Bus is an in-process Events implementation. Emit runs the listeners of a
// kind synchronously, in registration order.
type Bus struct {
	next      int
	listeners map[EventKind]map[int]func()
	order     map[EventKind][]int
}

// NewBus returns an empty event bus.
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventKind]map[int]func()),
		order:     make(map[EventKind][]int),
	}
}

func (b *Bus) Subscribe(kind EventKind, fn func()) func() {
	id := b.next
	b.next++
	if b.listeners[kind] == nil {
		b.listeners[kind] = make(map[int]func())
	}
	b.listeners[kind][id] = fn
	b.order[kind] = append(b.order[kind], id)

	return func() {
		delete(b.listeners[kind], id)
		ids := b.order[kind]
		for i, v := range ids {
			if v == id {
				b.order[kind] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers an event to every listener of kind.
func (b *Bus) Emit(kind EventKind) {
	for _, id := range append([]int(nil), b.order[kind]...) {
		if fn, ok := b.listeners[kind][id]; ok {
			fn()
		}
	}
}

// Listeners returns the number of registered listeners for kind.
func (b *Bus) Listeners(kind EventKind) int {
	return len(b.listeners[kind])
}
