package transport

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/netdevssh/netdevssh/pkg/observability/xsessionlog"
	"github.com/netdevssh/netdevssh/pkg/resilience/xretry"
)

// Connection is one live SSH PTY shell session: the unit the vendor
// state machines drive. A Connection must not be used concurrently from
// two goroutines — the pool (pkg/pool) enforces exclusive ownership.
type Connection struct {
	cfg    Config
	client *ssh.Client
	sess   *ssh.Session
	stdin  io.WriteCloser
	stream *stream
	reader *ChannelReader

	mu         sync.Mutex
	basePrompt string
	promptRe   *regexp.Regexp
	inConfig   bool
}

// SendOptions configures one send_command round-trip.
type SendOptions struct {
	ExpectString *regexp.Regexp
	ReadTimeout  time.Duration
	StripPrompt  bool
	StripCommand bool
	Normalize    bool
	CmdVerify    bool
}

// Dial establishes a Connection, retrying connection-time failures up to
// cfg.RetryCount with cfg.RetryDelay between attempts. Command-time
// failures are never retried — that is the caller's decision.
func Dial(ctx context.Context, cfg Config) (*Connection, error) {
	if cfg.BufferPool == nil {
		return nil, fmt.Errorf("transport: Config.BufferPool is required")
	}
	retries := cfg.RetryCount
	if retries < 0 {
		retries = 0
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = time.Second
	}

	retryer := xretry.NewRetryer(
		xretry.WithRetryPolicy(xretry.NewFixedRetry(retries+1)),
		xretry.WithBackoffPolicy(xretry.NewFixedBackoff(delay)),
	)
	return xretry.DoWithResult(ctx, retryer, func(ctx context.Context) (*Connection, error) {
		return dialOnce(ctx, cfg)
	})
}

func dialOnce(ctx context.Context, cfg Config) (*Connection, error) {
	sshCfg := &ssh.ClientConfig{
		User:            cfg.Username,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // network-device management plane; host-key pinning is an operator-supplied concern, not modeled here
		Timeout:         cfg.ConnectTimeout,
	}
	if cfg.Signer != nil {
		sshCfg.Auth = append(sshCfg.Auth, ssh.PublicKeys(cfg.Signer))
	}
	if cfg.Password != "" {
		sshCfg.Auth = append(sshCfg.Auth, ssh.Password(cfg.Password))
	}

	client, err := ssh.Dial("tcp", cfg.addr(), sshCfg)
	if err != nil {
		if isAuthError(err) {
			return nil, &AuthenticationFailedError{Username: cfg.Username, Cause: err}
		}
		return nil, &ConnectionFailedError{Addr: cfg.addr(), Cause: err}
	}

	sess, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, &SSHHandshakeFailedError{Cause: err}
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 115200,
		ssh.TTY_OP_OSPEED: 115200,
	}
	if err := sess.RequestPty("xterm", 200, 512, modes); err != nil {
		sess.Close()
		client.Close()
		return nil, &ChannelFailedError{Msg: "request pty", Cause: err}
	}

	stdin, err := sess.StdinPipe()
	if err != nil {
		sess.Close()
		client.Close()
		return nil, &ChannelFailedError{Msg: "stdin pipe", Cause: err}
	}
	stdout, err := sess.StdoutPipe()
	if err != nil {
		sess.Close()
		client.Close()
		return nil, &ChannelFailedError{Msg: "stdout pipe", Cause: err}
	}
	if err := sess.Shell(); err != nil {
		sess.Close()
		client.Close()
		return nil, &ChannelFailedError{Msg: "request shell", Cause: err}
	}

	c := &Connection{
		cfg:    cfg,
		client: client,
		sess:   sess,
		stdin:  stdin,
		stream: newStream(stdout, cfg.BufferPool),
		reader: NewChannelReader(cfg.BufferPool),
	}

	// Discard the login banner: read until silence, ignore the result.
	_, _ = c.reader.Read(ctx, c.stream, ReadOptions{ReadTimeout: 500 * time.Millisecond})

	return c, nil
}

// isAuthError distinguishes an SSH authentication rejection from a
// transport-level dial failure, both of which ssh.Dial reports as a
// plain error.
func isAuthError(err error) bool {
	return strings.Contains(err.Error(), "unable to authenticate")
}

// SetBasePrompt sends a bare newline and reads one line terminated by
// '>', '#' or '$', storing everything but the terminator as the
// anchoring base prompt for all subsequent reads.
func (c *Connection) SetBasePrompt(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := io.WriteString(c.stdin, "\n"); err != nil {
		return "", &WriteError{Cause: err}
	}
	anyTerminator := regexp.MustCompile(`[>#$]\s*$`)
	body, err := c.reader.Read(ctx, c.stream, ReadOptions{
		Prompt:      anyTerminator,
		ReadTimeout: c.cfg.ReadTimeout,
	})
	if err != nil {
		return "", err
	}

	line := lastNonEmptyLine(body)
	prompt := strings.TrimRight(line, ">#$ \t")
	c.basePrompt = prompt
	c.promptRe = regexp.MustCompile(regexp.QuoteMeta(prompt) + `[>#]\s*$`)
	return prompt, nil
}

// BasePrompt returns the most recently discovered base prompt.
func (c *Connection) BasePrompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.basePrompt
}

// PromptRegexp returns a regexp anchored on the base prompt plus an
// arbitrary terminator suffix (e.g. a config-mode tail), for vendor
// packages that need a bespoke pattern.
func (c *Connection) PromptRegexp(suffix string) *regexp.Regexp {
	c.mu.Lock()
	prompt := c.basePrompt
	c.mu.Unlock()
	return regexp.MustCompile(regexp.QuoteMeta(prompt) + suffix)
}

// SendCommand writes cmd, then reads until the base prompt (or an
// explicit expect-string) is seen.
func (c *Connection) SendCommand(ctx context.Context, cmd string, opts SendOptions) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfg.SessionLog != nil {
		_ = c.cfg.SessionLog.Write(xsessionlog.LevelInfo, xsessionlog.Sent, cmd)
	}

	if c.cfg.CommandExecDelay > 0 {
		time.Sleep(c.cfg.CommandExecDelay)
	}
	if _, err := io.WriteString(c.stdin, cmd+"\n"); err != nil {
		return "", &WriteError{Cause: err}
	}

	if opts.CmdVerify && cmd != "" {
		// Best-effort: wait briefly for the device to echo the command
		// back before reading the real response, tolerating paging
		// headers that may precede it. A miss here is not fatal — the
		// main read below still runs to completion.
		echoRe := regexp.MustCompile(regexp.QuoteMeta(strings.TrimSpace(cmd)))
		_, _ = c.reader.Read(ctx, c.stream, ReadOptions{
			Expect:      echoRe,
			ReadTimeout: 500 * time.Millisecond,
		})
	}

	readOpts := ReadOptions{
		Prompt:         c.promptRe,
		Expect:         opts.ExpectString,
		ReadTimeout:    opts.ReadTimeout,
		PatternTimeout: c.cfg.PatternMatchTimeout,
		Command:        cmd,
		StripCommand:   opts.StripCommand,
		StripPrompt:    opts.StripPrompt,
	}
	if readOpts.ReadTimeout <= 0 {
		readOpts.ReadTimeout = c.cfg.ReadTimeout
	}

	body, err := c.reader.Read(ctx, c.stream, readOpts)
	if c.cfg.SessionLog != nil {
		_ = c.cfg.SessionLog.Write(xsessionlog.LevelInfo, xsessionlog.Recv, body)
	}
	if err != nil {
		return body, err
	}
	return body, nil
}

// Close best-effort tears the channel, session and SSH client down.
// Errors are swallowed by design — a failing close must never block a
// caller that is trying to release a connection.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess != nil {
		_ = c.sess.Close()
	}
	if c.client != nil {
		_ = c.client.Close()
	}
	return nil
}

func lastNonEmptyLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i]
		}
	}
	return ""
}
