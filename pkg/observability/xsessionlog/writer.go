package xsessionlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/netdevssh/netdevssh/pkg/observability/xrotate"
)

// Writer is an append-only per-session transcript writer. One line is
// emitted per call to Write, in the format:
//
//	timestamp level direction text
//
// Writer is safe for concurrent use; callers normally hold one Writer per
// Connection and never share it across Connections.
type Writer struct {
	mu     sync.Mutex
	out    io.WriteCloser
	opts   options
	closed bool
}

// compile-time check that an xrotate.Rotator also satisfies io.WriteCloser.
var _ io.WriteCloser = xrotate.Rotator(nil)

// New opens (creating if necessary, append mode) the session log file at
// path. With WithRotation, the file is instead backed by an
// xrotate.Rotator so it participates in size-based rotation.
func New(path string, opts ...Option) (*Writer, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.nowFunc == nil {
		o.nowFunc = func() string { return time.Now().UTC().Format(time.RFC3339Nano) }
	}

	var out io.WriteCloser
	if o.rotate {
		r, err := xrotate.NewLumberjack(path, o.rotateOpts...)
		if err != nil {
			return nil, fmt.Errorf("xsessionlog: open rotated log %q: %w", path, err)
		}
		out = r
	} else {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("xsessionlog: open log %q: %w", path, err)
		}
		out = f
	}

	return &Writer{out: out, opts: o}, nil
}

// Write appends one transcript line for the given direction. text is
// sanitized to valid UTF-8 unless WithBinaryData was requested.
func (w *Writer) Write(level Level, dir Direction, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	payload := text
	if !w.opts.logBinaryData && !utf8.ValidString(text) {
		payload = sanitizeUTF8(text)
	}

	line := fmt.Sprintf("%s %s %s %s\n", w.opts.nowFunc(), level, dir, payload)
	_, err := io.WriteString(w.out, line)
	if err != nil {
		return fmt.Errorf("xsessionlog: write: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file or rotator. Safe to call
// more than once.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.out.Close()
}

// sanitizeUTF8 replaces ill-formed byte sequences with the Unicode
// replacement character, so a transcript line is always valid UTF-8 even
// when the device echoed binary garbage mid-stream.
func sanitizeUTF8(s string) string {
	clean, _, err := transform.String(unicode.UTF8.NewDecoder(), s)
	if err != nil {
		return string(utf8.RuneError)
	}
	return clean
}
