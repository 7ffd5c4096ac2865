package deque

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDequeGrow(t *testing.T) {
	d := NewDequeWithCapacity[int](2)
	require.Equal(t, 0, d.Len())
	require.True(t, d.Empty())

	for i := 1; i <= 9; i++ {
		d.PushBack(i)
	}

	require.Equal(t, 9, d.Len())

	for i := 1; i <= 9; i++ {
		v, ok := d.PopFront()
		require.True(t, ok)
		require.Equal(t, i, v)
	}

	require.True(t, d.Empty())
}

func TestDequeGrowAfterWrap(t *testing.T) {
	d := NewDequeWithCapacity[int](3)

	d.PushBack(0)
	d.PushBack(1)

	v, ok := d.PopFront()
	require.True(t, ok)
	require.Equal(t, 0, v)

	// The following pushes wrap the underlying ringbuf before it has to grow.
	for i := 2; i <= 6; i++ {
		d.PushBack(i)
	}

	var actual []int

	d.Iter(func(v int) { actual = append(actual, v) })
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, actual)
}

func TestDequeZeroCapacity(t *testing.T) {
	d := NewDequeWithCapacity[string](0)

	d.PushBack("a")
	d.PushBack("b")

	require.Equal(t, 2, d.Len())

	front, ok := d.PopFront()
	require.True(t, ok)
	require.Equal(t, "a", front)
}

func TestDequePopFrontN(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		expected  []int
		remaining int
	}{
		{
			name:      "None",
			n:         0,
			remaining: 5,
		},
		{
			name:      "Some",
			n:         3,
			expected:  []int{0, 1, 2},
			remaining: 2,
		},
		{
			name:     "Exact",
			n:        5,
			expected: []int{0, 1, 2, 3, 4},
		},
		{
			name:     "MoreThanAvailable",
			n:        100,
			expected: []int{0, 1, 2, 3, 4},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := NewDeque[int]()

			for i := 0; i < 5; i++ {
				d.PushBack(i)
			}

			actual, popped := d.PopFrontN(nil, test.n)
			require.Equal(t, test.expected, actual)
			require.Equal(t, len(test.expected), popped)
			require.Equal(t, test.remaining, d.Len())
		})
	}
}

func TestDequePopFrontNAppends(t *testing.T) {
	d := NewDeque[int]()
	d.PushBack(3)
	d.PushBack(4)

	actual, popped := d.PopFrontN([]int{1, 2}, 5)
	require.Equal(t, []int{1, 2, 3, 4}, actual)
	require.Equal(t, 2, popped)
}

func TestDequeClear(t *testing.T) {
	d := NewDeque[int]()

	for i := 0; i < 10; i++ {
		d.PushBack(i)
	}

	d.Clear()
	require.Equal(t, 0, d.Len())

	_, ok := d.PopFront()
	require.False(t, ok)
}

func TestDequeIter(t *testing.T) {
	d := NewDeque[int]()

	for i := 0; i < 10; i++ {
		d.PushBack(i)
	}

	i := 0

	d.Iter(func(v int) {
		require.Equal(t, i, v)
		i++
	})

	require.Equal(t, 10, i)
}
