// Package xbufpool provides a bounded, capacity-classed pool of reusable
// byte buffers.
//
// PTY reads happen in tight loops against noisy device output; without
// reuse, every read loop iteration allocates a fresh buffer. Pool amortizes
// that cost by keeping a small set of previously-used buffers around,
// bucketed by capacity class, and handing back the smallest one that still
// satisfies a requested minimum capacity.
//
// Buffers released back to the pool are truncated to zero length but keep
// their backing array; buffers whose capacity exceeds ReuseThreshold are
// dropped rather than retained, since holding on to oversized buffers would
// make the pool itself a memory leak. Cardinality beyond MaxBuffers is
// dropped for the same reason.
//
// Pool is safe for concurrent use.
package xbufpool
