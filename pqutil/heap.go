package pqutil

import "golang.org/x/exp/constraints"

// maxHeap implements 'heap.Interface' ordering items so that the greatest priority is at the root.
type maxHeap[P constraints.Ordered, T any] []Item[P, T]

func (h maxHeap[P, T]) Len() int {
	return len(h)
}

func (h maxHeap[P, T]) Less(i, j int) bool {
	return h[i].Priority > h[j].Priority
}

func (h maxHeap[P, T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *maxHeap[P, T]) Push(x any) {
	*h = append(*h, x.(Item[P, T]))
}

func (h *maxHeap[P, T]) Pop() any {
	old := *h
	x := old[len(old)-1]

	// Zero the vacated slot so the payload is not kept alive by the backing array.
	old[len(old)-1] = Item[P, T]{}
	*h = old[:len(old)-1]

	return x
}
