package xsem

import (
	"context"
	"sync"
	"time"
)

// Semaphore is a counting semaphore supporting bounded-wait acquire,
// permit handoff on release, dynamic resize, and close. The zero value is
// not usable; construct with New.
type Semaphore struct {
	mu        sync.Mutex
	available int
	max       int
	closed    bool
	waiters   []chan struct{}
}

// New creates a Semaphore with the given number of initially-available
// permits. Negative capacities are clamped to zero.
func New(capacity int) *Semaphore {
	if capacity < 0 {
		capacity = 0
	}
	return &Semaphore{available: capacity, max: capacity}
}

// TryAcquire attempts a non-blocking acquire. It returns ErrClosed if the
// semaphore has been closed, or (nil, nil) if no permit is currently
// available — callers distinguish "would block" from error by checking for
// a nil Permit with a nil error.
func (s *Semaphore) TryAcquire() (*Permit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.available <= 0 {
		return nil, nil
	}
	s.available--
	return newPermit(s), nil
}

// Acquire blocks until a permit is available, the semaphore is closed, or
// ctx is done. A nil ctx is caller error and returns ErrLock.
func (s *Semaphore) Acquire(ctx context.Context) (*Permit, error) {
	if ctx == nil {
		return nil, ErrLock
	}
	return s.acquire(ctx, nil)
}

// AcquireTimeout blocks up to d for a permit to become available. d <= 0
// behaves like TryAcquire's non-blocking check but still returns ErrTimeout
// (rather than a nil/nil pair) when no permit is free, since a caller who
// asked for a bounded wait expects a definite outcome.
func (s *Semaphore) AcquireTimeout(ctx context.Context, d time.Duration) (*Permit, error) {
	if ctx == nil {
		return nil, ErrLock
	}
	if d <= 0 {
		p, err := s.TryAcquire()
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrTimeout
		}
		return p, nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	return s.acquire(ctx, timer.C)
}

// acquire is the shared blocking path for Acquire and AcquireTimeout.
// deadline, if non-nil, additionally bounds the wait and yields ErrTimeout.
func (s *Semaphore) acquire(ctx context.Context, deadline <-chan time.Time) (*Permit, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if s.available > 0 {
		s.available--
		s.mu.Unlock()
		return newPermit(s), nil
	}

	wait := make(chan struct{})
	s.waiters = append(s.waiters, wait)
	s.mu.Unlock()

	select {
	case <-wait:
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return nil, ErrClosed
		}
		// A permit was handed directly to this waiter by release/AddPermits.
		return newPermit(s), nil
	case <-deadline: // nil deadline blocks forever in a select, i.e. no timeout
		s.reclaimLostWaiter(wait)
		return nil, ErrTimeout
	case <-ctx.Done():
		s.reclaimLostWaiter(wait)
		return nil, ctx.Err()
	}
}

// removeWaiter drops wait from the waiter list if it is still queued,
// returning true if it did. It returns false if wait was already popped by
// a concurrent release/AddPermits handoff that raced with this timeout or
// cancellation — the caller must then reclaim and return that permit.
func (s *Semaphore) removeWaiter(wait chan struct{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.waiters {
		if w == wait {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			return true
		}
	}
	return false
}

// reclaimLostWaiter handles the race where a timeout/cancellation fires at
// the same moment a handoff (release or AddPermits) or Close targets the
// same waiter. If removeWaiter lost the race, wait is already closed: a
// Close wakeup needs nothing further, but a permit handoff must be given
// back since this acquire is abandoning the wait.
func (s *Semaphore) reclaimLostWaiter(wait chan struct{}) {
	if s.removeWaiter(wait) {
		return
	}
	<-wait
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if !closed {
		s.release()
	}
}

// release returns one permit to the semaphore, handing it directly to the
// oldest queued waiter if one exists (permit handoff), else incrementing
// the available count.
func (s *Semaphore) release() {
	s.mu.Lock()
	if len(s.waiters) > 0 {
		w := s.waiters[0]
		s.waiters = s.waiters[1:]
		s.mu.Unlock()
		close(w)
		return
	}
	s.available++
	s.mu.Unlock()
}

// AddPermits increases the semaphore's capacity by n, handing permits
// directly to any queued waiters before adding the remainder to the
// available count. n <= 0 is a no-op.
func (s *Semaphore) AddPermits(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	s.max += n
	remaining := n
	for remaining > 0 && len(s.waiters) > 0 {
		w := s.waiters[0]
		s.waiters = s.waiters[1:]
		remaining--
		s.mu.Unlock()
		close(w)
		s.mu.Lock()
	}
	s.available += remaining
	s.mu.Unlock()
}

// RemovePermits decreases the semaphore's available count by up to n,
// never driving it below zero; permits already held by callers are
// unaffected (they still release normally). n <= 0 is a no-op.
func (s *Semaphore) RemovePermits(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dec := n
	if dec > s.available {
		dec = s.available
	}
	s.available -= dec
	s.max -= n
	if s.max < 0 {
		s.max = 0
	}
}

// Close wakes every blocked waiter with ErrClosed and causes all future
// acquires to fail immediately. Calling Close more than once is a no-op.
func (s *Semaphore) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	waiters := s.waiters
	s.waiters = nil
	s.mu.Unlock()

	for _, w := range waiters {
		close(w)
	}
}

// Available reports the current count of free permits not handed to a
// queued waiter. Intended for diagnostics/tests; the value may be stale
// immediately after it is read under concurrent use.
func (s *Semaphore) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

// Max reports the semaphore's current total capacity.
func (s *Semaphore) Max() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.max
}
