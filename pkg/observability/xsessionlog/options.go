package xsessionlog

import "github.com/netdevssh/netdevssh/pkg/observability/xrotate"

type options struct {
	logBinaryData bool
	rotateOpts    []xrotate.LumberjackOption
	rotate        bool
	nowFunc       func() string
}

// Option configures a Writer.
type Option func(*options)

func defaultOptions() options {
	return options{logBinaryData: false}
}

// WithBinaryData controls whether non-UTF-8 payloads are logged verbatim
// (raw bytes, unescaped) or have each ill-formed sequence replaced with
// U+FFFD. Defaults to false, matching the core's log_binary_data default.
func WithBinaryData(enabled bool) Option {
	return func(o *options) { o.logBinaryData = enabled }
}

// WithRotation backs the session log with an xrotate.Rotator (lumberjack)
// instead of a plain append-only file handle. Rotation policy is an
// explicit operator opt-in; the default Writer never rotates on its own.
func WithRotation(opts ...xrotate.LumberjackOption) Option {
	return func(o *options) {
		o.rotate = true
		o.rotateOpts = opts
	}
}

// withNowFunc overrides the timestamp source; used by tests.
func withNowFunc(f func() string) Option {
	return func(o *options) { o.nowFunc = f }
}
