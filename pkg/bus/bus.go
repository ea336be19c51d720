// Package bus provides a small typed publish/subscribe primitive for
// cross-component signaling.
//
// Delivery is fire-and-forget and at-most-once per publish: subscribers are
// invoked synchronously in subscription order, so delivery within one topic
// is ordered. Nothing is guaranteed across distinct topics.
package bus

import "sync"

// Topic is a typed event channel. The zero value is not usable; create
// topics with NewTopic.
type Topic[T any] struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(T)
	// order preserves subscription order for deterministic delivery.
	order []int
}

// NewTopic creates an empty topic.
func NewTopic[T any]() *Topic[T] {
	return &Topic[T]{subs: make(map[int]func(T))}
}

// Subscribe registers a handler and returns a function that removes it.
// Unsubscribing twice is safe.
func (t *Topic[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	t.mu.Lock()
	id := t.next
	t.next++
	t.subs[id] = fn
	t.order = append(t.order, id)
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subs, id)
	}
}

// Publish delivers v to every current subscriber, in subscription order.
// Handlers run on the caller's goroutine.
func (t *Topic[T]) Publish(v T) {
	t.mu.RLock()
	handlers := make([]func(T), 0, len(t.subs))
	for _, id := range t.order {
		if fn, ok := t.subs[id]; ok {
			handlers = append(handlers, fn)
		}
	}
	t.mu.RUnlock()

	for _, fn := range handlers {
		fn(v)
	}
}

// Len returns the number of active subscribers.
func (t *Topic[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subs)
}
