// Package semaphore bounds the number of goroutines working on a batch at once.
package semaphore

import "context"

// Semaphore is a simple counting semaphore for limiting concurrency
type Semaphore struct {
	ch chan struct{}
}

// New creates a new semaphore with the given capacity. Capacities below one are raised to one.
func New(capacity int) *Semaphore {
	if capacity < 1 {
		capacity = 1
	}
	return &Semaphore{
		ch: make(chan struct{}, capacity),
	}
}

// Acquire acquires a slot, blocking until one is free or ctx is done
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release releases a slot
func (s *Semaphore) Release() {
	<-s.ch
}
