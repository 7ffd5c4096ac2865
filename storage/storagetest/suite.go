// Package storagetest provides a behavioural test suite which every 'storage.Storage' implementation should pass.
package storagetest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/couchbase/priority-store/storage"
)

// Factory returns a new, empty, store.
type Factory func(t *testing.T) storage.Storage

// Medium prepares a durable medium for a single test, returning a function which opens a new store instance backed by
// that medium each time it's called.
type Medium func(t *testing.T) func() storage.Storage

// item is a readability helper for building expected results.
func item(priority storage.Priority, payload ...byte) storage.Item {
	return storage.Item{Priority: priority, Payload: payload}
}

// Run runs the ordering, batching and reset tests against stores created by the given factory.
func Run(t *testing.T, factory Factory) {
	t.Run("PopEmpty", func(t *testing.T) {
		store := factory(t)

		for _, count := range []int{-1, 0, 1, 100} {
			items, ok := store.Pop(count)
			require.False(t, ok, "count %d", count)
			require.Empty(t, items)
		}
	})

	t.Run("PopZero", func(t *testing.T) {
		store := factory(t)
		store.Push(1, []byte{1})

		items, ok := store.Pop(0)
		require.False(t, ok)
		require.Empty(t, items)
		require.Equal(t, 1, store.Len())
	})

	t.Run("SingleItem", func(t *testing.T) {
		store := factory(t)
		store.Push(10, []byte{2})

		items, ok := store.Pop(1)
		require.True(t, ok)
		require.Equal(t, []storage.Item{item(10, 2)}, items)
	})

	t.Run("DescendingPriority", func(t *testing.T) {
		store := factory(t)
		store.Push(2, []byte{1})
		store.Push(10, []byte{2})

		items, ok := store.Pop(2)
		require.True(t, ok)
		require.Equal(t, []storage.Item{item(10, 2), item(2, 1)}, items)
	})

	t.Run("PartialFulfillment", func(t *testing.T) {
		store := factory(t)
		store.Push(2, []byte{1})

		items, ok := store.Pop(100)
		require.True(t, ok)
		require.Equal(t, []storage.Item{item(2, 1)}, items)

		_, ok = store.Pop(100)
		require.False(t, ok)
	})

	t.Run("FIFOWithinPriority", func(t *testing.T) {
		store := factory(t)
		store.Push(2, []byte{1})
		store.Push(2, []byte{2})
		store.Push(2, []byte{3})
		store.Push(4, []byte{4})

		items, ok := store.Pop(4)
		require.True(t, ok)
		require.Equal(t, []storage.Item{item(4, 4), item(2, 1), item(2, 2), item(2, 3)}, items)
	})

	t.Run("BatchesSpanBuckets", func(t *testing.T) {
		store := factory(t)

		for i := byte(0); i < 3; i++ {
			store.Push(1, []byte{10 + i})
			store.Push(5, []byte{50 + i})
			store.Push(3, []byte{30 + i})
		}

		batches := [][]storage.Item{
			{item(5, 50), item(5, 51)},
			{item(5, 52), item(3, 30), item(3, 31), item(3, 32)},
			{item(1, 10)},
			{item(1, 11), item(1, 12)},
		}

		for i, size := range []int{2, 4, 1, 10} {
			items, ok := store.Pop(size)
			require.True(t, ok)
			require.Equal(t, batches[i], items, "batch %d", i)
		}

		require.Zero(t, store.Len())
	})

	t.Run("PushBetweenPops", func(t *testing.T) {
		store := factory(t)
		store.Push(3, []byte{1})
		store.Push(3, []byte{2})

		items, ok := store.Pop(1)
		require.True(t, ok)
		require.Equal(t, []storage.Item{item(3, 1)}, items)

		store.Push(7, []byte{3})
		store.Push(3, []byte{4})

		items, ok = store.Pop(3)
		require.True(t, ok)
		require.Equal(t, []storage.Item{item(7, 3), item(3, 2), item(3, 4)}, items)
	})

	t.Run("EdgeValues", func(t *testing.T) {
		store := factory(t)
		store.Push(0, nil)
		store.Push(65535, []byte{})
		store.Push(0, []byte{0})

		priority, ok := store.MaxPriority()
		require.True(t, ok)
		require.Equal(t, storage.Priority(65535), priority)

		items, ok := store.Pop(3)
		require.True(t, ok)
		require.Len(t, items, 3)
		require.Equal(t, []storage.Priority{65535, 0, 0}, priorities(items))
		require.Empty(t, items[0].Payload)
		require.Empty(t, items[1].Payload)
		require.Equal(t, []byte{0}, items[2].Payload)
	})

	t.Run("MaxPriority", func(t *testing.T) {
		store := factory(t)

		_, ok := store.MaxPriority()
		require.False(t, ok)

		for _, priority := range []storage.Priority{10, 2, 11, 3, 0} {
			store.Push(priority, []byte{1})
		}

		for i := 0; i < 3; i++ {
			priority, ok := store.MaxPriority()
			require.True(t, ok)
			require.Equal(t, storage.Priority(11), priority)
		}

		_, ok = store.Pop(2)
		require.True(t, ok)

		priority, ok := store.MaxPriority()
		require.True(t, ok)
		require.Equal(t, storage.Priority(3), priority)

		storage.Drain(store, 2)

		_, ok = store.MaxPriority()
		require.False(t, ok)
	})

	t.Run("Clear", func(t *testing.T) {
		store := factory(t)
		store.Push(10, []byte{1})
		store.Clear()

		_, ok := store.Pop(1)
		require.False(t, ok)

		_, ok = store.MaxPriority()
		require.False(t, ok)
		require.Zero(t, store.Len())

		store.Push(1, []byte{2})

		items, ok := store.Pop(1)
		require.True(t, ok)
		require.Equal(t, []storage.Item{item(1, 2)}, items)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		var (
			store  = factory(t)
			pushed = pushMany(store, 500)
		)

		require.Equal(t, len(pushed), store.Len())

		drained := storage.Drain(store, 7)
		require.ElementsMatch(t, pushed, drained)
		requirePopOrder(t, drained)
		require.Zero(t, store.Len())
	})
}

// RunDurable runs the persistence tests against stores opened on the given medium.
func RunDurable(t *testing.T, medium Medium) {
	ctx := context.Background()

	t.Run("RestoreWithoutPersist", func(t *testing.T) {
		store := medium(t)()
		store.Push(1, []byte{1})

		require.NoError(t, store.Restore(ctx))
		require.Zero(t, store.Len())
	})

	t.Run("PersistDoesNotMutate", func(t *testing.T) {
		store := medium(t)()
		store.Push(1, []byte{1})
		store.Push(9, []byte{9})

		require.NoError(t, store.Persist(ctx))
		require.Equal(t, 2, store.Len())

		items, ok := store.Pop(2)
		require.True(t, ok)
		require.Equal(t, []storage.Item{item(9, 9), item(1, 1)}, items)
	})

	t.Run("PersistClearRestore", func(t *testing.T) {
		var (
			store  = medium(t)()
			pushed = pushMany(store, 200)
		)

		require.NoError(t, store.Persist(ctx))

		store.Clear()
		store.Push(42, []byte("discarded by restore"))

		require.NoError(t, store.Restore(ctx))
		require.Equal(t, len(pushed), store.Len())

		drained := storage.Drain(store, 16)
		require.ElementsMatch(t, pushed, drained)
		requirePopOrder(t, drained)
	})

	t.Run("RestoreInNewInstance", func(t *testing.T) {
		open := medium(t)

		first := open()
		first.Push(2, []byte{1})
		first.Push(2, []byte{2})
		first.Push(7, []byte{3})
		first.Push(2, []byte{4})

		require.NoError(t, first.Persist(ctx))

		second := open()
		require.NoError(t, second.Restore(ctx))

		items, ok := second.Pop(10)
		require.True(t, ok)
		require.Equal(t, []storage.Item{item(7, 3), item(2, 1), item(2, 2), item(2, 4)}, items)
	})

	t.Run("PersistReplacesPrevious", func(t *testing.T) {
		store := medium(t)()
		store.Push(1, []byte{1})
		store.Push(2, []byte{2})

		require.NoError(t, store.Persist(ctx))

		_, ok := store.Pop(1)
		require.True(t, ok)

		require.NoError(t, store.Persist(ctx))
		require.NoError(t, store.Restore(ctx))

		items, ok := store.Pop(10)
		require.True(t, ok)
		require.Equal(t, []storage.Item{item(1, 1)}, items)
	})

	t.Run("PersistEmpty", func(t *testing.T) {
		store := medium(t)()
		store.Push(1, []byte{1})

		require.NoError(t, store.Persist(ctx))

		store.Clear()

		require.NoError(t, store.Persist(ctx))

		store.Push(5, []byte{5})

		require.NoError(t, store.Restore(ctx))
		require.Zero(t, store.Len())
	})
}

// pushMany pushes n items with priorities spread over a small range, so that buckets hold multiple items, returning
// the items in the order they were pushed.
func pushMany(store storage.Storage, n int) []storage.Item {
	pushed := make([]storage.Item, 0, n)

	for i := 0; i < n; i++ {
		it := storage.Item{Priority: storage.Priority((i * 7) % 13), Payload: []byte(fmt.Sprintf("item-%d", i))}

		store.Push(it.Priority, it.Payload)

		pushed = append(pushed, it)
	}

	return pushed
}

// requirePopOrder asserts that the given items are ordered by descending priority, and that items with equal
// priorities are in the order 'pushMany' produced them.
func requirePopOrder(t *testing.T, items []storage.Item) {
	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]

		require.GreaterOrEqual(t, prev.Priority, cur.Priority, "index %d", i)

		if prev.Priority != cur.Priority {
			continue
		}

		var prevSeq, curSeq int

		_, err := fmt.Sscanf(string(prev.Payload), "item-%d", &prevSeq)
		require.NoError(t, err)

		_, err = fmt.Sscanf(string(cur.Payload), "item-%d", &curSeq)
		require.NoError(t, err)

		require.Less(t, prevSeq, curSeq, "index %d", i)
	}
}

func priorities(items []storage.Item) []storage.Priority {
	result := make([]storage.Priority, 0, len(items))

	for _, it := range items {
		result = append(result, it.Priority)
	}

	return result
}
