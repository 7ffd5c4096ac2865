package storage

import (
	"context"
	"sync"
)

// Synchronized wraps a store, serializing access to it using a single lock so that it may be shared between multiple
// producers/consumers.
//
// NOTE: 'Persist' and 'Restore' hold the lock for the duration of the I/O they perform.
type Synchronized struct {
	lock  sync.Mutex
	inner Storage
}

// NewSynchronized returns a store which serializes all access to the given store.
func NewSynchronized(inner Storage) *Synchronized {
	return &Synchronized{inner: inner}
}

func (s *Synchronized) Push(priority Priority, payload []byte) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.inner.Push(priority, payload)
}

func (s *Synchronized) Pop(count int) ([]Item, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.inner.Pop(count)
}

func (s *Synchronized) MaxPriority() (Priority, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.inner.MaxPriority()
}

func (s *Synchronized) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.inner.Len()
}

func (s *Synchronized) Clear() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.inner.Clear()
}

func (s *Synchronized) Persist(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.inner.Persist(ctx)
}

func (s *Synchronized) Restore(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.inner.Restore(ctx)
}
