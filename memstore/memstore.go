// Package memstore implements an in-memory priority store which keeps a FIFO bucket per priority.
package memstore

import (
	"context"

	"golang.org/x/exp/slices"

	"github.com/couchbase/priority-store/deque"
	"github.com/couchbase/priority-store/maputil"
	"github.com/couchbase/priority-store/pqutil"
	"github.com/couchbase/priority-store/storage"
)

// bucket holds the items pushed with a single priority, in insertion order.
type bucket = deque.Deque[storage.Item]

// Store is an in-memory 'storage.Storage' where each priority maps to a bucket of items.
//
// NOTE: A priority is indexed in 'occupied' if, and only if, its bucket is non-empty which allows finding the highest
// priority without scanning every bucket.
type Store struct {
	buckets  map[storage.Priority]*bucket
	occupied *pqutil.PriorityQueue[storage.Priority, *bucket]
	length   int
}

var _ storage.Storage = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		buckets:  make(map[storage.Priority]*bucket),
		occupied: pqutil.NewPriorityQueue[storage.Priority, *bucket](0),
	}
}

// Push appends the payload to the bucket for the given priority, creating the bucket if required.
//
// NOTE: The payload is not copied, callers must not modify it once pushed.
func (s *Store) Push(priority storage.Priority, payload []byte) {
	b, ok := s.buckets[priority]
	if !ok {
		b = deque.NewDeque[storage.Item]()
		s.buckets[priority] = b
	}

	if b.Empty() {
		s.occupied.Enqueue(pqutil.Item[storage.Priority, *bucket]{Payload: b, Priority: priority})
	}

	b.PushBack(storage.Item{Priority: priority, Payload: payload})

	s.length++
}

// Pop removes up to count items by repeatedly draining the front of the highest priority non-empty bucket.
//
// NOTE: Fewer than count items is not an error; the boolean is only false when nothing was removed.
func (s *Store) Pop(count int) ([]storage.Item, bool) {
	if count <= 0 || s.length == 0 {
		return nil, false
	}

	items := make([]storage.Item, 0, min(count, s.length))

	for len(items) < count {
		top, ok := s.occupied.Peek()
		if !ok {
			break
		}

		var popped int

		items, popped = top.Payload.PopFrontN(items, count-len(items))
		s.length -= popped

		if !top.Payload.Empty() {
			continue
		}

		s.occupied.Dequeue()
		delete(s.buckets, top.Priority)
	}

	return items, len(items) > 0
}

// MaxPriority returns the highest priority which currently has at least one item.
func (s *Store) MaxPriority() (storage.Priority, bool) {
	top, ok := s.occupied.Peek()
	if !ok {
		return 0, false
	}

	return top.Priority, true
}

// Len returns the total number of items across all the buckets.
func (s *Store) Len() int {
	return s.length
}

// Iter visits every item, without removing it, in the order they would be popped.
func (s *Store) Iter(fn storage.IterFunc) {
	priorities := maputil.Keys(s.buckets, func(_ storage.Priority, b *bucket) bool { return !b.Empty() })

	slices.Sort(priorities)

	for i := len(priorities) - 1; i >= 0; i-- {
		s.buckets[priorities[i]].Iter(deque.IterFunc[storage.Item](fn))
	}
}

// Clear discards every bucket.
//
// NOTE: Every bucket in the map is indexed, so draining the index visits all of them.
func (s *Store) Clear() {
	_ = s.occupied.Drain(func(item pqutil.Item[storage.Priority, *bucket]) error {
		item.Payload.Clear()
		delete(s.buckets, item.Priority)

		return nil
	})

	s.length = 0
}

// Persist is a no-op, the in-memory store has no durable medium.
func (s *Store) Persist(_ context.Context) error {
	return nil
}

// Restore is a no-op, the in-memory store has no durable medium.
func (s *Store) Restore(_ context.Context) error {
	return nil
}
