package xbufpool

// options holds Pool construction parameters.
type options struct {
	maxBuffers    int
	reuseThreshold int
}

// Option configures a Pool.
type Option func(*options)

func defaultOptions() options {
	return options{
		maxBuffers:     32,
		reuseThreshold: 16384,
	}
}

// WithMaxBuffers bounds how many buffers the pool retains across all
// capacity classes combined. Values <= 0 are ignored.
func WithMaxBuffers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBuffers = n
		}
	}
}

// WithReuseThreshold sets the capacity above which a released buffer is
// dropped instead of retained. Values <= 0 are ignored.
func WithReuseThreshold(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.reuseThreshold = n
		}
	}
}
