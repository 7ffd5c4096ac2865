package pqutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriorityQueue(t *testing.T) {
	actual := NewPriorityQueue[int, string](42)
	require.Equal(t, 0, actual.Len())
	require.Equal(t, 42, cap(actual.inner))
}

func TestPriorityQueueEnqueueDequeueWithPriority(t *testing.T) {
	queue := NewPriorityQueue[uint16, int](5)

	for _, i := range []int{2, 0, 4, 1, 3} {
		queue.Enqueue(Item[uint16, int]{Payload: i, Priority: uint16(i)})
	}

	require.Equal(t, 5, queue.Len())

	var (
		expected = []int{4, 3, 2, 1, 0}
		actual   = make([]int, 0, 5)
	)

	require.NoError(t, queue.Drain(func(item Item[uint16, int]) error {
		actual = append(actual, item.Payload)
		return nil
	}))

	require.Equal(t, expected, actual)
}

func TestPriorityQueuePeek(t *testing.T) {
	queue := NewPriorityQueue[int, string](0)

	_, ok := queue.Peek()
	require.False(t, ok)

	queue.Enqueue(Item[int, string]{Payload: "low", Priority: 1})
	queue.Enqueue(Item[int, string]{Payload: "high", Priority: 10})
	queue.Enqueue(Item[int, string]{Payload: "mid", Priority: 5})

	for i := 0; i < 3; i++ {
		item, ok := queue.Peek()
		require.True(t, ok)
		require.Equal(t, "high", item.Payload)
		require.Equal(t, 3, queue.Len())
	}

	item, ok := queue.Dequeue()
	require.True(t, ok)
	require.Equal(t, 10, item.Priority)

	item, ok = queue.Peek()
	require.True(t, ok)
	require.Equal(t, "mid", item.Payload)
}

func TestPriorityQueueDequeueEmpty(t *testing.T) {
	queue := NewPriorityQueue[int, int](1)

	item, ok := queue.Dequeue()
	require.False(t, ok)
	require.Zero(t, item)
}

func TestPriorityQueueDrainNoItems(t *testing.T) {
	queue := NewPriorityQueue[int, int](5)

	var run bool

	require.NoError(t, queue.Drain(func(item Item[int, int]) error { run = true; return nil }))
	require.False(t, run)
}

func TestPriorityQueueDrainWithError(t *testing.T) {
	queue := NewPriorityQueue[int, int](5)

	for i := 0; i < 5; i++ {
		queue.Enqueue(Item[int, int]{Payload: i})
	}

	var run int

	err := queue.Drain(func(item Item[int, int]) error { run++; return assert.AnError })
	require.ErrorIs(t, err, assert.AnError)
	require.Equal(t, 1, run)
	require.Equal(t, 4, queue.Len())
}
