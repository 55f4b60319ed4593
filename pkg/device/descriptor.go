package device

import "time"

// Family is the enumerated device tag the factory dispatches on.
type Family string

const (
	FamilyIOS   Family = "cisco_ios"
	FamilyIOSXR Family = "cisco_xr"
	FamilyNXOS  Family = "cisco_nxos"
	FamilyASA   Family = "cisco_asa"
	FamilyJunos Family = "juniper_junos"
)

// Descriptor is the caller-supplied, immutable description of one
// device: everything the factory needs to dial it and select the right
// vendor state machine. It is never mutated by the core.
type Descriptor struct {
	Family Family

	Host     string
	Port     int // 0 defaults to 22
	Username string
	Password string

	// EnableSecret is used only by families that require privilege
	// elevation (IOS, ASA, NX-OS).
	EnableSecret string

	// PrivateKeyPEM, if set, is tried before Password.
	PrivateKeyPEM []byte

	ConnectTimeout      time.Duration
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	PatternMatchTimeout time.Duration
	BlockingTimeout     time.Duration

	RetryCount int
	RetryDelay time.Duration

	KeepAliveInterval time.Duration
	CommandExecDelay  time.Duration

	// SessionLogPath, if non-empty, enables a transcript log for this
	// connection (see pkg/observability/xsessionlog).
	SessionLogPath string
	LogBinaryData  bool
}
