// Package xsessionlog implements the append-only per-session transcript
// writer described by the device automation core: one line per logged
// event, format "timestamp level direction text", UTF-8, binary payloads
// opt-in.
//
// A Writer wraps either a plain file handle or, when WithRotation is
// supplied, an xrotate.Rotator backed by lumberjack — size-based rotation
// is an operator opt-in, not a default, since rotation policy is
// explicitly unspecified by the core (operators are expected to manage it
// externally unless they ask for it here). Writes are serialized so a
// single session's lines never interleave, matching the ordering
// guarantee the Base Connection relies on when a transcript is replayed
// for diagnostics.
package xsessionlog
