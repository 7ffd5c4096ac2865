// Package deque provides a growable FIFO queue implemented using a ring buffer.
package deque

import "github.com/couchbase/priority-store/ringbuf"

const (
	// defaultInitialCapacity defines the initial capacity of the ringbuf.
	defaultInitialCapacity = 4

	// growthFactor is the factor by which the ringbuf capacity increases when we have to grow it.
	growthFactor = 2
)

// IterFunc is a function which will be executed for every element in the deque.
type IterFunc[T any] func(v T)

// Deque is a queue with constant time push to the back and pop from the front, growing as required.
//
// NOTE: It is currently implemented as a circular buffer but this detail should not be relied on.
type Deque[T any] struct {
	rb ringbuf.Ringbuf[T]
}

// NewDeque creates a deque of Ts with a default capacity.
func NewDeque[T any]() *Deque[T] {
	return NewDequeWithCapacity[T](defaultInitialCapacity)
}

// NewDequeWithCapacity creates a new deque of Ts with the given initial capacity.
func NewDequeWithCapacity[T any](capacity int) *Deque[T] {
	return &Deque[T]{rb: ringbuf.NewRingbuf[T](max(capacity, 1))}
}

// Len returns the number of items currently in the deque.
func (d *Deque[T]) Len() int {
	return d.rb.Len()
}

// Empty returns whether the deque contains no items.
func (d *Deque[T]) Empty() bool {
	return d.rb.Empty()
}

// growIfFull copies the existing items into a ringbuf grown by growthFactor when the current one is full.
func (d *Deque[T]) growIfFull() {
	if !d.rb.Full() {
		return
	}

	grown := ringbuf.NewRingbuf[T](d.rb.Cap() * growthFactor)

	d.rb.Iter(func(v T) { grown.PushBack(v) })

	d.rb = grown
}

// PushBack adds v to the end of the deque.
func (d *Deque[T]) PushBack(v T) {
	d.growIfFull()
	d.rb.PushBack(v)
}

// PopFront pops an item from the front of the deque, returning the default value and false if it is empty.
func (d *Deque[T]) PopFront() (T, bool) {
	return d.rb.PopFront()
}

// PopFrontN removes up to n items from the front of the deque appending them, in order, to dst. The extended slice is
// returned along with the number of items removed.
func (d *Deque[T]) PopFrontN(dst []T, n int) ([]T, int) {
	var popped int

	for ; popped < n; popped++ {
		v, ok := d.PopFront()
		if !ok {
			break
		}

		dst = append(dst, v)
	}

	return dst, popped
}

// Clear removes all items from the deque.
func (d *Deque[T]) Clear() {
	d.rb = ringbuf.NewRingbuf[T](defaultInitialCapacity)
}

// Iter calls fn on each item in the deque, starting from the front.
func (d *Deque[T]) Iter(fn IterFunc[T]) {
	d.rb.Iter(ringbuf.IterFunc[T](fn))
}
