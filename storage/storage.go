// Package storage defines the contract shared by every priority ordered item store.
//
// A store buffers opaque payloads tagged with a priority and hands them back highest priority first; payloads with
// the same priority are returned in the order they were pushed.
package storage

import "context"

// Priority denotes retrieval precedence, higher values are popped first.
type Priority = uint16

// Item pairs a payload with the priority it was pushed with.
type Item struct {
	Priority Priority
	Payload  []byte
}

// IterFunc is a function which will be executed for every item visited by a store.
type IterFunc func(item Item)

// Storage is implemented by all the priority store backends, callers should depend on this interface rather than any
// concrete backend.
//
// NOTE: Implementations are not safe for concurrent use, see 'Synchronized'.
type Storage interface {
	// Push appends the payload to the back of the queue for the given priority.
	Push(priority Priority, payload []byte)

	// Pop removes up to count items, ordered by descending priority and then by insertion. The boolean is false when
	// no items were removed, which includes a count of zero (or less).
	Pop(count int) ([]Item, bool)

	// MaxPriority returns the highest priority for which there is at least one item.
	MaxPriority() (Priority, bool)

	// Len returns the number of stored items.
	Len() int

	// Clear discards all the stored items.
	Clear()

	// Persist records the current items in the backends durable medium, the items remain available to 'Pop'.
	Persist(ctx context.Context) error

	// Restore replaces the current items with those last recorded by 'Persist'.
	Restore(ctx context.Context) error
}

// Drain pops items, in batches of the given size, until the store is empty returning them in the order they were
// popped.
func Drain(s Storage, batch int) []Item {
	if batch <= 0 {
		batch = 1
	}

	var drained []Item

	for {
		items, ok := s.Pop(batch)
		if !ok {
			return drained
		}

		drained = append(drained, items...)
	}
}
