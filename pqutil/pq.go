// Package pqutil exposes a generic priority queue implemented using a heap.
package pqutil

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

// PriorityQueue is a max priority queue which accepts a generic payload with an ordered priority.
type PriorityQueue[P constraints.Ordered, T any] struct {
	inner maxHeap[P, T]
}

// NewPriorityQueue creates a new priority queue where the underlying capacity is set to the given value.
//
// NOTE: The 'PriorityQueue' capacity has the same behavior as a slices capacity meaning it may grow beyond the given
// capacity, the capacity is there for performance optimizations.
func NewPriorityQueue[P constraints.Ordered, T any](capacity int) *PriorityQueue[P, T] {
	return &PriorityQueue[P, T]{inner: make(maxHeap[P, T], 0, capacity)}
}

// Enqueue adds the given item to the priority queue.
func (p *PriorityQueue[P, T]) Enqueue(item Item[P, T]) {
	heap.Push(&p.inner, item)
}

// Peek returns the item with the highest priority without removing it, the boolean is false when the queue is empty.
func (p *PriorityQueue[P, T]) Peek() (Item[P, T], bool) {
	if p.Len() == 0 {
		return Item[P, T]{}, false
	}

	return p.inner[0], true
}

// Dequeue removes and returns the item with the highest priority, the boolean is false when the queue is empty.
//
// NOTE: Where multiple items have the same priority, they're returned in an arbitrary order.
func (p *PriorityQueue[P, T]) Dequeue() (Item[P, T], bool) {
	if p.Len() == 0 {
		return Item[P, T]{}, false
	}

	return heap.Pop(&p.inner).(Item[P, T]), true
}

// Len returns the number of items in the priority queue.
func (p *PriorityQueue[P, T]) Len() int {
	return p.inner.Len()
}

// Drain removes all items from the queue running the given function on each item. In the event of an error, dequeuing
// stops early, and returns the error.
func (p *PriorityQueue[P, T]) Drain(fn func(item Item[P, T]) error) error {
	for {
		item, ok := p.Dequeue()
		if !ok {
			return nil
		}

		if err := fn(item); err != nil {
			return err
		}
	}
}
