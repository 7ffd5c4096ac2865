package pqutil

import "golang.org/x/exp/constraints"

// Item encapsulates a payload and the priority it was enqueued with.
type Item[P constraints.Ordered, T any] struct {
	Payload  T
	Priority P
}
