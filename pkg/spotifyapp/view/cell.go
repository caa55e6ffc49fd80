package view

import (
	"sort"
	"sync"
)

// Cell is a reactive value. Observers are notified synchronously by Set,
// and only when the new value differs from the current one.
type Cell[T comparable] struct {
	mu        sync.Mutex
	value     T
	observers map[uint64]func(T)
	nextID    uint64
}

// NewCell creates a Cell holding value.
func NewCell[T comparable](value T) *Cell[T] {
	return &Cell[T]{value: value}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set stores value and notifies observers if it changed.
// Returns true if the value changed.
func (c *Cell[T]) Set(value T) bool {
	c.mu.Lock()
	if c.value == value {
		c.mu.Unlock()
		return false
	}
	c.value = value
	observers := c.snapshot()
	c.mu.Unlock()

	for _, fn := range observers {
		fn(value)
	}
	return true
}

// Update applies fn to the current value and stores the result.
func (c *Cell[T]) Update(fn func(T) T) bool {
	return c.Set(fn(c.Get()))
}

// Subscribe registers fn to be called with every new value.
// The returned function removes the subscription.
func (c *Cell[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.observers == nil {
		c.observers = make(map[uint64]func(T))
	}
	id := c.nextID
	c.nextID++
	c.observers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// snapshot returns observers in subscription order. Caller holds c.mu.
func (c *Cell[T]) snapshot() []func(T) {
	if len(c.observers) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(c.observers))
	for id := range c.observers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]func(T), len(ids))
	for i, id := range ids {
		out[i] = c.observers[id]
	}
	return out
}
