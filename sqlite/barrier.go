package sqlite

// initBarrier wraps around a channel which allows exactly one goroutine at a time to attempt initialization; once
// initialization succeeds every waiting goroutine is released.
type initBarrier chan struct{}

func newInitBarrier() initBarrier {
	barrier := make(initBarrier, 1)
	barrier <- struct{}{}

	return barrier
}

// wait blocks until the caller either becomes the initializing goroutine (returns true) or initialization has already
// completed successfully (returns false).
func (i initBarrier) wait() bool {
	_, ok := <-i

	return ok
}

// failed allows another goroutine to attempt initialization.
func (i initBarrier) failed() {
	i <- struct{}{}
}

// success unblocks all current, and future, waiters.
func (i initBarrier) success() {
	close(i)
}
