// Package xsem implements a counting semaphore with bounded-wait acquire,
// permit handoff, dynamic resize, and close semantics.
//
// It backs admission control for the connection pool (pkg/pool): one
// Semaphore per device bounds how many live SSH sessions that device may
// have open concurrently. TryAcquire is non-blocking, Acquire blocks until a
// permit is available or ctx is done, AcquireTimeout bounds the wait to a
// duration. Permits returned by a successful acquire release exactly once
// via Permit.Release, safe to call from a defer even on a panicking path.
//
// Close wakes every blocked waiter with ErrClosed; acquires issued after
// Close fail immediately. FIFO ordering among waiters is not guaranteed —
// only that no waiter starves indefinitely while permits keep being
// released, which the Go scheduler's runtime fairness provides.
package xsem
