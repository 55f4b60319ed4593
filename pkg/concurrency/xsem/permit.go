package xsem

import "sync/atomic"

// Permit is a handle to one acquired slot of a Semaphore's capacity.
// Release must be called exactly once per acquired Permit; calling it more
// than once is safe (idempotent) so it can be used unconditionally from a
// defer alongside explicit error-path releases.
type Permit struct {
	sem      *Semaphore
	released atomic.Bool
}

func newPermit(sem *Semaphore) *Permit {
	return &Permit{sem: sem}
}

// Release returns the permit to its Semaphore. Safe to call from a
// deferred function even on a panicking goroutine, and safe to call more
// than once.
func (p *Permit) Release() {
	if p == nil || p.released.Swap(true) {
		return
	}
	p.sem.release()
}
