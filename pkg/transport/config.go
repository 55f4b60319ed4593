package transport

import (
	"net"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/netdevssh/netdevssh/pkg/concurrency/xbufpool"
	"github.com/netdevssh/netdevssh/pkg/observability/xsessionlog"
	"github.com/netdevssh/netdevssh/pkg/util/xutil"
)

// Config is everything the Base Connection needs to dial and prepare one
// SSH PTY shell session. It is the transport-level projection of a
// device descriptor; pkg/device builds one of these from the caller's
// DeviceDescriptor.
type Config struct {
	Host     string
	Port     int // defaults to 22
	Username string
	Password string
	// Signer, if set, is tried before Password (public-key auth).
	Signer ssh.Signer

	ConnectTimeout      time.Duration // TCP dial + handshake + auth
	ReadTimeout         time.Duration // Channel Reader silence window
	PatternMatchTimeout time.Duration // Channel Reader total bound
	BlockingTimeout     time.Duration // per-call SSH blocking timeout
	CommandExecDelay    time.Duration // pause between send and first read

	RetryCount int // connection-time retries only
	RetryDelay time.Duration

	KeepAliveInterval time.Duration

	// BufferPool backs the Channel Reader's chunk buffers. Required.
	BufferPool *xbufpool.Pool

	// SessionLog, if non-nil, receives two transcript lines for every
	// SendCommand: the command sent and the response read. The banner,
	// prompt-discovery and echo reads are not logged.
	SessionLog *xsessionlog.Writer
}

func (c Config) addr() string {
	port := xutil.If(c.Port == 0, 22, c.Port)
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}
