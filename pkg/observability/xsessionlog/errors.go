package xsessionlog

import "errors"

var (
	// ErrEmptyPath is returned by New when the session log path is empty.
	ErrEmptyPath = errors.New("xsessionlog: path is required")

	// ErrClosed is returned by Write after Close.
	ErrClosed = errors.New("xsessionlog: writer is closed")
)
