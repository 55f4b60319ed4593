package device

import (
	"context"
	"fmt"
	"log/slog"
	"net/netip"

	"golang.org/x/crypto/ssh"

	"github.com/netdevssh/netdevssh/pkg/concurrency/xbufpool"
	"github.com/netdevssh/netdevssh/pkg/observability/xlog"
	"github.com/netdevssh/netdevssh/pkg/observability/xmetrics"
	"github.com/netdevssh/netdevssh/pkg/observability/xsessionlog"
	"github.com/netdevssh/netdevssh/pkg/transport"
	"github.com/netdevssh/netdevssh/pkg/util/xfile"
	"github.com/netdevssh/netdevssh/pkg/util/xkeylock"
	"github.com/netdevssh/netdevssh/pkg/util/xnet"
	"github.com/netdevssh/netdevssh/pkg/vendor"
)

// sharedBufferPool is reused across connections created through this
// factory; it is safe for concurrent use (see xbufpool).
var sharedBufferPool = xbufpool.New()

// dialLocks serializes concurrent Connect calls to the same Host: the
// pool (pkg/pool) already admission-controls per registered device, but
// a caller dialing the same physical box directly and concurrently
// (outside the pool, e.g. from a fan-out CLI command) can otherwise open
// a burst of sessions that exceeds the device's VTY/session capacity.
var dialLocks = xkeylock.New()

// ConnectObserver is overridden by callers that want Connect's dial and
// session-preparation work wrapped in a real xmetrics.Observer span
// (e.g. an OpenTelemetry-backed one); it defaults to a no-op.
var ConnectObserver xmetrics.Observer = xmetrics.NoopObserver{}

// Connect dials Descriptor and returns the DeviceConnection for its
// Family, having already run session preparation (prompt discovery,
// privilege elevation, paging disable, terminal width). Unknown
// families fail fast with UnsupportedDevice before any dial is
// attempted.
func Connect(ctx context.Context, d Descriptor) (DeviceConnection, error) {
	if _, ok := constructors[d.Family]; !ok {
		return nil, &UnsupportedDevice{Family: d.Family}
	}

	ctx, span := xmetrics.Start(ctx, ConnectObserver, xmetrics.SpanOptions{
		Component: "device",
		Operation: "connect",
		Kind:      xmetrics.KindClient,
		Attrs:     []xmetrics.Attr{{Key: "host", Value: d.Host}, {Key: "family", Value: string(d.Family)}},
	})
	dc, err := connectLocked(ctx, d)
	span.End(xmetrics.Result{Err: err})
	return dc, err
}

// connectLocked holds dialLocks[d.Host] for the duration of the dial so
// concurrent Connect calls to the same host queue instead of racing the
// SSH handshake together.
func connectLocked(ctx context.Context, d Descriptor) (DeviceConnection, error) {
	lock, err := dialLocks.Acquire(ctx, d.Host)
	if err != nil {
		return nil, fmt.Errorf("device: acquiring dial lock for %s: %w", d.Host, err)
	}
	defer func() { _ = lock.Unlock() }()

	logHostClassification(ctx, d.Host)

	cfg, err := transportConfig(d)
	if err != nil {
		return nil, err
	}

	conn, err := transport.Dial(ctx, cfg)
	if err != nil {
		xlog.Warn(ctx, "device: dial failed", slog.String("host", d.Host), slog.String("family", string(d.Family)), slog.Any("err", err))
		return nil, err
	}

	dc := constructors[d.Family](conn, d.EnableSecret)
	if err := dc.SessionPreparation(ctx); err != nil {
		_ = dc.Close()
		xlog.Warn(ctx, "device: session preparation failed", slog.String("host", d.Host), slog.Any("err", err))
		return nil, err
	}
	xlog.Info(ctx, "device: connected", slog.String("host", d.Host), slog.String("family", string(d.Family)))
	return dc, nil
}

// logHostClassification logs, at Debug level, whether d.Host parses as a
// private/loopback/link-local address — useful for operators diagnosing
// why a "device" is unexpectedly routed over a lab-only network segment.
// Hostnames that do not parse as literal IPs are silently skipped.
func logHostClassification(ctx context.Context, host string) {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return
	}
	xlog.Debug(ctx, "device: host classification", slog.String("host", host), slog.String("class", xnet.Classify(addr).String()))
}

var constructors = map[Family]func(conn *transport.Connection, enableSecret string) DeviceConnection{
	FamilyIOS:   func(c *transport.Connection, secret string) DeviceConnection { return vendor.NewIOS(c, secret) },
	FamilyNXOS:  func(c *transport.Connection, secret string) DeviceConnection { return vendor.NewNXOS(c, secret) },
	FamilyASA:   func(c *transport.Connection, secret string) DeviceConnection { return vendor.NewASA(c, secret) },
	FamilyIOSXR: func(c *transport.Connection, _ string) DeviceConnection { return vendor.NewIOSXR(c) },
	FamilyJunos: func(c *transport.Connection, _ string) DeviceConnection { return vendor.NewJunos(c) },
}

func transportConfig(d Descriptor) (transport.Config, error) {
	cfg := transport.Config{
		Host:                d.Host,
		Port:                d.Port,
		Username:            d.Username,
		Password:            d.Password,
		ConnectTimeout:      d.ConnectTimeout,
		ReadTimeout:         d.ReadTimeout,
		PatternMatchTimeout: d.PatternMatchTimeout,
		BlockingTimeout:     d.BlockingTimeout,
		CommandExecDelay:    d.CommandExecDelay,
		RetryCount:          d.RetryCount,
		RetryDelay:          d.RetryDelay,
		KeepAliveInterval:   d.KeepAliveInterval,
		BufferPool:          sharedBufferPool,
	}

	if len(d.PrivateKeyPEM) > 0 {
		signer, err := ssh.ParsePrivateKey(d.PrivateKeyPEM)
		if err != nil {
			return transport.Config{}, fmt.Errorf("device: parsing private key: %w", err)
		}
		cfg.Signer = signer
	}

	if d.SessionLogPath != "" {
		if err := xfile.EnsureDir(d.SessionLogPath); err != nil {
			return transport.Config{}, fmt.Errorf("device: preparing session log directory: %w", err)
		}
		opts := []xsessionlog.Option{xsessionlog.WithBinaryData(d.LogBinaryData)}
		w, err := xsessionlog.New(d.SessionLogPath, opts...)
		if err != nil {
			return transport.Config{}, fmt.Errorf("device: opening session log: %w", err)
		}
		cfg.SessionLog = w
	}

	return cfg, nil
}
