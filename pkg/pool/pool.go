package pool

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/netdevssh/netdevssh/pkg/concurrency/xsem"
	"github.com/netdevssh/netdevssh/pkg/context/xctx"
	"github.com/netdevssh/netdevssh/pkg/device"
	"github.com/netdevssh/netdevssh/pkg/lifecycle/xrun"
	"github.com/netdevssh/netdevssh/pkg/observability/xlog"
	"github.com/netdevssh/netdevssh/pkg/observability/xmetrics"
	"github.com/netdevssh/netdevssh/pkg/resilience/xbreaker"
	"github.com/netdevssh/netdevssh/pkg/util/xid"
	"github.com/netdevssh/netdevssh/pkg/util/xsys"
)

// connectFunc matches device.Connect's signature; overridable for tests.
type connectFunc func(ctx context.Context, d device.Descriptor) (device.DeviceConnection, error)

// pooledConn is one live connection and the bookkeeping the pool needs
// to decide whether it is still fresh enough to reuse.
type pooledConn struct {
	id       string
	conn     device.DeviceConnection
	permit   *xsem.Permit
	lastUsed time.Time
}

// deviceEntry is everything the pool tracks for one registered device.
// Its breaker trips independently of its neighbors: a device that is
// unreachable stops accumulating dial attempts without affecting other
// registered devices sharing the same Pool.
type deviceEntry struct {
	descriptor device.Descriptor
	sem        *xsem.Semaphore
	breaker    *xbreaker.Breaker

	mu   sync.Mutex
	idle []*pooledConn
}

// Pool multiplexes DeviceConnections across callers, bounding the number
// of simultaneously live connections per device and reusing idle ones.
type Pool struct {
	opts options

	mu      sync.Mutex
	devices map[string]*deviceEntry

	group    *xrun.Group
	groupCtx context.Context
}

// New constructs a Pool and starts its background sweeper under an
// xrun.Group, so sweeper shutdown goes through the same cancel-then-wait
// lifecycle as any other supervised service.
func New(opts ...Option) *Pool {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	group, groupCtx := xrun.NewGroup(context.Background(), xrun.WithName("device-pool"))
	p := &Pool{
		opts:     o,
		devices:  make(map[string]*deviceEntry),
		group:    group,
		groupCtx: groupCtx,
	}
	logOpenFileLimit(groupCtx)
	p.group.GoWithName("sweeper", p.sweepLoop)
	return p
}

// logOpenFileLimit records the process's current RLIMIT_NOFILE so an
// operator sizing max_per_device across many registered devices can see
// whether the platform's file-descriptor ceiling is the binding
// constraint. A no-op (logged at Debug, never fatal) on platforms where
// xsys has no rlimit concept.
func logOpenFileLimit(ctx context.Context) {
	soft, hard, err := xsys.GetFileLimit()
	if err != nil {
		xlog.Debug(ctx, "pool: file descriptor limit unavailable on this platform", slog.Any("err", err))
		return
	}
	if soft < 256 {
		xlog.Warn(ctx, "pool: low open-file soft limit may bound total pooled connections",
			slog.Uint64("soft", soft), slog.Uint64("hard", hard))
		return
	}
	xlog.Debug(ctx, "pool: open-file limit", slog.Uint64("soft", soft), slog.Uint64("hard", hard))
}

// Register associates deviceID with d, admitting up to max_per_device
// simultaneously live connections for it. Re-registering an existing
// deviceID replaces its descriptor for future dials without disturbing
// connections already pooled.
func (p *Pool) Register(deviceID string, d device.Descriptor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.devices[deviceID]; ok {
		e.descriptor = d
		return
	}
	p.devices[deviceID] = &deviceEntry{
		descriptor: d,
		sem:        xsem.New(p.opts.maxPerDevice),
		breaker: xbreaker.NewBreaker(deviceID, xbreaker.WithOnStateChange(func(name string, from, to xbreaker.State) {
			xlog.Warn(context.Background(), "pool: device breaker state change",
				slog.String("device_id", name), slog.String("from", xbreaker.StateString(from)), slog.String("to", xbreaker.StateString(to)))
		})),
	}
}

// Handle is a checked-out connection. Callers must call Release exactly
// once, typically via defer, to return it to the pool; Release is
// idempotent and safe to call after a panic recovery.
type Handle struct {
	pool     *Pool
	deviceID string
	pc       *pooledConn
	released bool
	mu       sync.Mutex
}

// Conn returns the underlying device connection.
func (h *Handle) Conn() device.DeviceConnection { return h.pc.conn }

// ID returns the correlation identifier minted for this connection when
// it was dialed, stable across its reuse via Release/Acquire cycles.
func (h *Handle) ID() string { return h.pc.id }

// Release returns the connection to its device's idle set, marking it
// available for reuse and refreshing its last-used time. While the device
// is registered it does not close the connection or release its admission
// permit — only eviction (sweeper or explicit Close) does that, since the
// connection remains live and counted against max_per_device while idle.
// If the device is no longer registered (the pool was closed), Release
// releases the permit and closes the connection instead.
func (h *Handle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return
	}
	h.released = true

	h.pool.mu.Lock()
	e := h.pool.devices[h.deviceID]
	h.pool.mu.Unlock()
	if e == nil {
		// Device was deregistered/pool closed underneath us; drop the
		// connection rather than leak its permit.
		h.pc.permit.Release()
		_ = h.pc.conn.Close()
		return
	}

	h.pc.lastUsed = time.Now()
	e.mu.Lock()
	e.idle = append(e.idle, h.pc)
	e.mu.Unlock()
}

// Acquire returns a live, prepared connection for deviceID: an unexpired
// idle connection if one is available, otherwise a freshly dialed one
// admitted through the device's semaphore. It blocks until a permit is
// available, the context is done, or the pool is closed. The dial itself
// runs behind deviceID's circuit breaker, so a device that is already
// failing fast rejects new dial attempts instead of piling up timeouts.
func (p *Pool) Acquire(ctx context.Context, deviceID string) (*Handle, error) {
	if withID, err := xctx.WithIdentity(ctx, p.opts.identity); err == nil {
		ctx = withID
	}
	ctx, span := xmetrics.Start(ctx, p.opts.observer, xmetrics.SpanOptions{
		Component: "pool",
		Operation: "acquire",
		Kind:      xmetrics.KindClient,
		Attrs:     []xmetrics.Attr{{Key: "device_id", Value: deviceID}},
	})
	h, err := p.acquire(ctx, deviceID)
	span.End(xmetrics.Result{Err: err})
	return h, err
}

func (p *Pool) acquire(ctx context.Context, deviceID string) (*Handle, error) {
	p.mu.Lock()
	e := p.devices[deviceID]
	p.mu.Unlock()
	if e == nil {
		return nil, &UnregisteredDeviceError{DeviceID: deviceID}
	}

	if pc := e.popIdle(); pc != nil {
		return &Handle{pool: p, deviceID: deviceID, pc: pc}, nil
	}

	permit, err := e.sem.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	// Another goroutine may have returned a connection to idle while we
	// were blocked acquiring a permit for a brand new one; prefer reuse.
	if pc := e.popIdle(); pc != nil {
		permit.Release()
		return &Handle{pool: p, deviceID: deviceID, pc: pc}, nil
	}

	conn, err := xbreaker.Execute(ctx, e.breaker, func() (device.DeviceConnection, error) {
		return p.opts.connectFn(ctx, e.descriptor)
	})
	if err != nil {
		permit.Release()
		xlog.Warn(ctx, "pool: dial failed", slog.String("device_id", deviceID), slog.Any("err", err))
		return nil, err
	}

	connID, idErr := xid.NewString()
	if idErr != nil {
		connID = deviceID
	}
	if p.opts.sampler.ShouldSample(ctx) {
		xlog.Debug(ctx, "pool: dialed new connection", slog.String("device_id", deviceID), slog.String("conn_id", connID))
	}

	pc := &pooledConn{id: connID, conn: conn, permit: permit, lastUsed: time.Now()}
	return &Handle{pool: p, deviceID: deviceID, pc: pc}, nil
}

func (e *deviceEntry) popIdle() *pooledConn {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.idle)
	if n == 0 {
		return nil
	}
	pc := e.idle[n-1]
	e.idle = e.idle[:n-1]
	return pc
}

// sweepLoop periodically evicts idle connections that have outlived
// idle_timeout, until ctx is done (Close cancels the owning xrun.Group).
func (p *Pool) sweepLoop(ctx context.Context) error {
	ticker := time.NewTicker(p.opts.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.sweep(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

func (p *Pool) sweep(ctx context.Context) {
	p.mu.Lock()
	entries := make([]*deviceEntry, 0, len(p.devices))
	for _, e := range p.devices {
		entries = append(entries, e)
	}
	p.mu.Unlock()

	now := time.Now()
	for _, e := range entries {
		e.mu.Lock()
		var keep []*pooledConn
		var expired []*pooledConn
		for _, pc := range e.idle {
			if now.Sub(pc.lastUsed) > p.opts.idleTimeout {
				expired = append(expired, pc)
			} else {
				keep = append(keep, pc)
			}
		}
		e.idle = keep
		e.mu.Unlock()

		for _, pc := range expired {
			_ = pc.conn.Close()
			pc.permit.Release()
		}
		if len(expired) > 0 {
			xlog.Debug(ctx, "pool: swept idle connections", slog.Int("count", len(expired)))
		}
	}
}

// Close stops the background sweeper and closes every idle pooled
// connection. It closes each device's semaphore, so Acquire calls blocked
// on a permit return xsem.ErrClosed, and forgets every device, so later
// Acquire calls return UnregisteredDeviceError. Connections currently
// checked out are left for their holders to Release, which then closes
// them and releases their permits (see Handle.Release).
func (p *Pool) Close() error {
	p.group.Cancel(nil)
	err := p.group.Wait()

	p.mu.Lock()
	entries := make([]*deviceEntry, 0, len(p.devices))
	for id, e := range p.devices {
		entries = append(entries, e)
		delete(p.devices, id)
	}
	p.mu.Unlock()

	for _, e := range entries {
		e.sem.Close()
		e.mu.Lock()
		idle := e.idle
		e.idle = nil
		e.mu.Unlock()
		for _, pc := range idle {
			_ = pc.conn.Close()
			pc.permit.Release()
		}
	}
	return err
}
