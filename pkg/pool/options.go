package pool

import (
	"time"

	"github.com/netdevssh/netdevssh/pkg/context/xctx"
	"github.com/netdevssh/netdevssh/pkg/device"
	"github.com/netdevssh/netdevssh/pkg/observability/xmetrics"
	"github.com/netdevssh/netdevssh/pkg/observability/xsampling"
)

// options holds Pool construction parameters.
type options struct {
	maxPerDevice  int
	idleTimeout   time.Duration
	sweepInterval time.Duration
	connectFn     connectFunc
	observer      xmetrics.Observer
	sampler       xsampling.Sampler
	identity      xctx.Identity
}

func defaultOptions() options {
	return options{
		maxPerDevice:  5,
		idleTimeout:   300 * time.Second,
		sweepInterval: 60 * time.Second,
		connectFn:     device.Connect,
		observer:      xmetrics.NoopObserver{},
		sampler:       xsampling.Always(),
	}
}

// WithIdentity tags every log line this Pool emits with a platform/tenant
// identity, for operators running one process against multiple tenants'
// device fleets (see pkg/observability/xlog's automatic xctx enrichment).
// Zero-value fields are left unset rather than injected as empty strings.
func WithIdentity(id xctx.Identity) Option {
	return func(opts *options) {
		opts.identity = id
	}
}

// WithObserver wires a metrics/tracing Observer around Acquire. The
// default NoopObserver makes every span a no-op until a caller supplies
// a real one (e.g. an OpenTelemetry-backed xmetrics.NewOTelObserver).
func WithObserver(o xmetrics.Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

// WithDialLogSampler controls how often a successful dial is logged at
// Debug level. Pools managing many short-lived devices can generate one
// such log line per dial; WithDialLogSampler(xsampling.NewRateSampler(...))
// thins that volume without touching Warn-level failure logs.
func WithDialLogSampler(s xsampling.Sampler) Option {
	return func(opts *options) {
		if s != nil {
			opts.sampler = s
		}
	}
}

// Option configures a Pool.
type Option func(*options)

// WithMaxPerDevice bounds the number of simultaneously live connections
// per device. Values <= 0 are ignored.
func WithMaxPerDevice(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPerDevice = n
		}
	}
}

// WithIdleTimeout sets how long an idle connection may sit unused before
// the sweeper closes it. Values <= 0 are ignored.
func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.idleTimeout = d
		}
	}
}

// WithSweepInterval sets how often the background sweeper scans for
// expired idle connections. Values <= 0 are ignored.
func WithSweepInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.sweepInterval = d
		}
	}
}

// withConnectFunc overrides the dial function; used by tests to avoid a
// real SSH dial.
func withConnectFunc(fn connectFunc) Option {
	return func(o *options) { o.connectFn = fn }
}
