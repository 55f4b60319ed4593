package xsem

import "errors"

var (
	// ErrTimeout is returned by AcquireTimeout when no permit became
	// available before the deadline elapsed.
	ErrTimeout = errors.New("xsem: acquire timed out")

	// ErrClosed is returned by any operation attempted on, or blocked on, a
	// closed Semaphore.
	ErrClosed = errors.New("xsem: semaphore is closed")

	// ErrLock is returned by Acquire and AcquireTimeout for a nil context,
	// which indicates caller misuse rather than contention. (New clamps a
	// negative capacity to zero instead of failing.)
	ErrLock = errors.New("xsem: invalid semaphore operation")
)
