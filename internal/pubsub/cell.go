// Package pubsub provides a replay-latest value cell with synchronous subscribers.
package pubsub

import "sync"

// Cell holds a single value and notifies subscribers whenever it changes.
// New subscribers immediately receive the current value.
//
// Notifications are delivered synchronously, in the order the changes were
// applied. Subscribers must not call Set or Update on the same cell.
type Cell[T any] struct {
	value       T
	subscribers []subscriber[T]
	nextID      uint64
	publishMu   sync.Mutex
	mu          sync.RWMutex
}

type subscriber[T any] struct {
	fn func(T)
	id uint64
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the value and notifies subscribers.
func (c *Cell[T]) Set(v T) {
	c.Update(func(T) T { return v })
}

// Update applies fn to the current value atomically and notifies subscribers
// with the result.
func (c *Cell[T]) Update(fn func(T) T) T {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	c.mu.Lock()
	c.value = fn(c.value)
	next := c.value
	listeners := make([]subscriber[T], len(c.subscribers))
	copy(listeners, c.subscribers)
	c.mu.Unlock()

	for _, s := range listeners {
		s.fn(next)
	}
	return next
}

// Subscribe registers fn, calls it with the current value, and returns a
// function that removes the subscription.
func (c *Cell[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subscribers = append(c.subscribers, subscriber[T]{id: id, fn: fn})
	current := c.value
	c.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, s := range c.subscribers {
				if s.id == id {
					c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}
