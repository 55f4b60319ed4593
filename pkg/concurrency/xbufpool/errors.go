package xbufpool

import "errors"

var (
	// ErrInvalidCapacity names an invalid capacity configuration. New does
	// not return it: WithMaxBuffers and WithReuseThreshold ignore
	// non-positive values and keep the defaults.
	ErrInvalidCapacity = errors.New("xbufpool: invalid capacity configuration")
)
