// Package ringbuf provides a fixed capacity circular buffer.
package ringbuf

// mod returns numerator % denominator where the result is always non-negative, which is the useful definition when
// wrapping indexes.
func mod(numerator, denominator int) int {
	m := numerator % denominator
	if m < 0 {
		m += denominator
	}

	return m
}

// IterFunc is a function which will be executed for every element in the Ringbuf.
type IterFunc[T any] func(v T)

// Ringbuf is a circular buffer of items with type T, items are pushed at the back and popped from the front.
type Ringbuf[T any] struct {
	// head points to the first element in the ringbuf.
	head int

	// tail points to the next free slot at the end of the ringbuf.
	tail int

	items []T
}

// NewRingbuf creates a Ringbuf of T which is able to hold the given number of items.
func NewRingbuf[T any](capacity int) Ringbuf[T] {
	// NOTE: An empty ringbuf is represented by head == tail, so there is always one unused slot.
	return Ringbuf[T]{items: make([]T, capacity+1)}
}

// Full returns whether or not it is possible to push another item.
func (r *Ringbuf[T]) Full() bool {
	return r.Len() >= r.Cap()
}

// Empty returns whether or not there are no items in the ringbuf.
func (r *Ringbuf[T]) Empty() bool {
	return r.head == r.tail
}

// Cap returns the capacity of the ringbuf.
func (r *Ringbuf[T]) Cap() int {
	return len(r.items) - 1
}

// Len returns the number of items in the ringbuf currently.
func (r *Ringbuf[T]) Len() int {
	// The buffer has wrapped, count from head to the end of the slice then from the start of the slice up to tail.
	if r.head > r.tail {
		return len(r.items) - r.head + r.tail
	}

	return r.tail - r.head
}

// PushBack adds v to the back of the ringbuf, returning false if the ringbuf is full.
func (r *Ringbuf[T]) PushBack(v T) bool {
	if r.Full() {
		return false
	}

	r.items[r.tail] = v
	r.tail = mod(r.tail+1, len(r.items))

	return true
}

// PopFront returns the value at the front of the ringbuf and removes it. If the ringbuf is empty then it returns the
// default value and false.
//
// NOTE: The vacated slot is zeroed so the ringbuf does not keep popped values reachable.
func (r *Ringbuf[T]) PopFront() (T, bool) {
	if r.Empty() {
		return *new(T), false
	}

	v := r.items[r.head]

	r.items[r.head] = *new(T)
	r.head = mod(r.head+1, len(r.items))

	return v, true
}

// Iter calls fn on every element in the Ringbuf, from front to back.
func (r *Ringbuf[T]) Iter(fn IterFunc[T]) {
	end := r.tail

	if r.head > r.tail {
		end = len(r.items)
	}

	for i := r.head; i < end; i++ {
		fn(r.items[i])
	}

	if r.tail >= r.head {
		return
	}

	for i := 0; i < r.tail; i++ {
		fn(r.items[i])
	}
}
