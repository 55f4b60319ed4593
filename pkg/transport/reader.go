package transport

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/netdevssh/netdevssh/pkg/concurrency/xbufpool"
)

const (
	defaultReadBufferSize = 65536
	defaultSilenceTimeout = 10 * time.Second
)

// ReadOptions configures one Channel Reader pass.
type ReadOptions struct {
	// Prompt is the regex anchoring the device's base prompt (plus
	// terminator); reading stops once the accumulated, normalized body
	// matches it.
	Prompt *regexp.Regexp

	// Expect, if set, overrides Prompt as the termination pattern for
	// this call (caller-supplied expect-string).
	Expect *regexp.Regexp

	// ReadTimeout bounds silence between bytes; zero uses
	// defaultSilenceTimeout.
	ReadTimeout time.Duration

	// PatternTimeout bounds the total call regardless of silence; zero
	// means unbounded (only ctx and ReadTimeout apply).
	PatternTimeout time.Duration

	// Command, if non-empty with StripCommand, is matched against and
	// removed from the leading echoed line of the response.
	Command      string
	StripCommand bool

	// StripPrompt removes a trailing line matching Prompt (or Expect)
	// from the returned body.
	StripPrompt bool
}

// ChannelReader reads from a Connection's stream until a prompt
// pattern, an explicit expect-string, or silence/timeout is reached.
// All intermediate chunk buffers are drawn from a Buffer Pool.
type ChannelReader struct {
	pool *xbufpool.Pool
}

// NewChannelReader constructs a ChannelReader backed by pool.
func NewChannelReader(pool *xbufpool.Pool) *ChannelReader {
	return &ChannelReader{pool: pool}
}

// Read accumulates bytes from s until termination. On TimeoutError the
// partial accumulated body is returned alongside the error for
// diagnostics, per the core's error-propagation policy. Bytes read past
// a matched terminator, if any arrived in the same chunk, are not
// retained for the next call — callers that need strict framing rely on
// the device pausing output at its prompt, as the vendor state machines
// assume.
func (r *ChannelReader) Read(ctx context.Context, s *stream, opts ReadOptions) (string, error) {
	if opts.PatternTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.PatternTimeout)
		defer cancel()
	}

	silence := opts.ReadTimeout
	if silence <= 0 {
		silence = defaultSilenceTimeout
	}
	timer := time.NewTimer(silence)
	defer timer.Stop()

	var accumulated strings.Builder
	for {
		select {
		case res := <-s.chunks:
			if len(res.data) > 0 {
				accumulated.Write(res.data)
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(silence)
			}
			body := normalize(accumulated.String())
			if t := terminator(opts); t != nil && t.MatchString(body) {
				return r.finish(body, opts), nil
			}
			if res.err != nil {
				return accumulated.String(), &ReadError{Cause: res.err}
			}
		case <-timer.C:
			return accumulated.String(), &TimeoutError{Action: "silence", Partial: accumulated.String()}
		case <-ctx.Done():
			return accumulated.String(), &TimeoutError{Action: "pattern-match", Partial: accumulated.String()}
		}
	}
}

// terminator returns the effective termination pattern for a call,
// preferring an explicit expect-string over the base prompt.
func terminator(opts ReadOptions) *regexp.Regexp {
	if opts.Expect != nil {
		return opts.Expect
	}
	return opts.Prompt
}

func (r *ChannelReader) finish(body string, opts ReadOptions) string {
	if opts.StripCommand {
		body = stripCommand(body, opts.Command)
	}
	if opts.StripPrompt {
		if t := terminator(opts); t != nil {
			body = stripPrompt(body, t)
		}
	}
	return body
}
