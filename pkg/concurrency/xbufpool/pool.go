package xbufpool

import "sync"

// Pool is a bounded FIFO of reusable byte buffers, keyed by capacity class.
// A capacity class is the buffer's cap() value; Acquire looks for the
// smallest retained buffer whose capacity is >= the requested minimum.
type Pool struct {
	mu      sync.Mutex
	classes map[int][][]byte // capacity -> FIFO of buffers
	count   int              // total buffers currently pooled
	opts    options
}

// New creates a Pool. opts customize MaxBuffers / ReuseThreshold; the
// defaults (32 buffers, 16KiB reuse threshold) match the values PTY read
// loops in this module are tuned for.
func New(opts ...Option) *Pool {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Pool{
		classes: make(map[int][][]byte),
		opts:    o,
	}
}

// Acquire returns a buffer with cap() >= minCapacity, len() == 0.
// It prefers the smallest retained buffer that satisfies minCapacity;
// if none exists, it allocates a new one sized exactly to minCapacity.
func (p *Pool) Acquire(minCapacity int) []byte {
	if minCapacity < 0 {
		minCapacity = 0
	}

	p.mu.Lock()
	bestCap := -1
	for capacity := range p.classes {
		if capacity < minCapacity {
			continue
		}
		if bestCap == -1 || capacity < bestCap {
			bestCap = capacity
		}
	}
	if bestCap == -1 {
		p.mu.Unlock()
		return make([]byte, 0, minCapacity)
	}

	bucket := p.classes[bestCap]
	buf := bucket[0]
	bucket = bucket[1:]
	if len(bucket) == 0 {
		delete(p.classes, bestCap)
	} else {
		p.classes[bestCap] = bucket
	}
	p.count--
	p.mu.Unlock()

	return buf[:0]
}

// Release returns buf to the pool for future Acquire calls. Buffers whose
// capacity exceeds ReuseThreshold, or that would push the pool beyond
// MaxBuffers, are dropped (left for the garbage collector) instead of
// retained — this keeps the pool itself from becoming an unbounded cache.
func (p *Pool) Release(buf []byte) {
	capacity := cap(buf)
	if capacity == 0 || capacity > p.opts.reuseThreshold {
		return
	}
	buf = buf[:0]

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.count >= p.opts.maxBuffers {
		return
	}
	p.classes[capacity] = append(p.classes[capacity], buf)
	p.count++
}

// Len returns the number of buffers currently retained by the pool.
// Intended for tests and diagnostics.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}
