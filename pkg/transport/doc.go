// Package transport implements the interactive-shell driver shared by
// every vendor state machine: the Channel Reader (prompt/pattern/silence
// terminated reads over a PTY stream) and the Base Connection (SSH
// handshake, PTY shell allocation, command send, prompt discovery,
// retry, disconnect).
//
// Vendor packages (pkg/vendor/...) compose a *Connection and drive it
// through session preparation, privilege elevation, and configuration
// mode; they never touch the SSH transport directly. A Connection is
// single-threaded per session — the pool (pkg/pool) is what enforces
// exclusive ownership across goroutines.
package transport
