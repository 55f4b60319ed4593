package xsessionlog

// Direction classifies one transcript line relative to the device session.
type Direction string

const (
	// Sent marks bytes written to the PTY (commands, without the
	// trailing newline the Base Connection appends).
	Sent Direction = "SENT"

	// Recv marks bytes read back from the PTY by the Channel Reader.
	Recv Direction = "RECV"

	// System marks lines the core itself emits about the session
	// (connect, prompt discovery, close) rather than device traffic.
	System Direction = "SYS"
)

// Level is a coarse severity tag carried on each transcript line. It is
// independent of the structured xlog logger: the session log is a
// per-device transcript, not an application log stream.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)
