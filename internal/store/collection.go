package store

import "sync"

// NextID returns the id for the next record given the ids already in use:
// one more than the largest, or 1 when there are none.
func NextID(ids []int) int {
	next := 1
	for _, id := range ids {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// Collection is an ordered, in-memory list of records. All methods are safe
// for concurrent use; inserts are serialized so two records never share an id.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T

	idOf  func(T) int
	setID func(*T, int)
}

// NewCollection creates a collection holding a copy of seed. idOf and setID
// read and assign the record's numeric id.
func NewCollection[T any](idOf func(T) int, setID func(*T, int), seed []T) *Collection[T] {
	items := make([]T, len(seed))
	copy(items, seed)
	return &Collection[T]{items: items, idOf: idOf, setID: setID}
}

// Insert assigns the next id to rec, appends it and returns the stored record.
func (c *Collection[T]) Insert(rec T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]int, len(c.items))
	for i, it := range c.items {
		ids[i] = c.idOf(it)
	}
	c.setID(&rec, NextID(ids))
	c.items = append(c.items, rec)
	return rec
}

// All returns a copy of every record in insertion order. The result is never nil.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// FindOne returns the first record for which match reports true.
func (c *Collection[T]) FindOne(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, it := range c.items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// OneOrNone wraps a lookup result the way lookups are reported: a
// one-element slice when found, an empty slice otherwise.
func OneOrNone[T any](v T, ok bool) []T {
	if !ok {
		return []T{}
	}
	return []T{v}
}
