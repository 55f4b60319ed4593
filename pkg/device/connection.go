package device

import (
	"context"

	"github.com/netdevssh/netdevssh/pkg/transport"
	"github.com/netdevssh/netdevssh/pkg/vendor"
)

// DeviceConnection is the uniform operation surface every vendor family
// exposes once connected: the factory's entire reason for existing is
// to erase the family-specific type behind this interface.
type DeviceConnection interface {
	SendCommand(ctx context.Context, cmd string, opts transport.SendOptions) (string, error)
	SendConfigSet(ctx context.Context, cmds []string, opts transport.SendOptions) (string, error)

	CheckConfigMode(ctx context.Context) (bool, error)
	EnterConfigMode(ctx context.Context, cmd string) (string, error)
	ExitConfigMode(ctx context.Context, cmd string) (string, error)

	SessionPreparation(ctx context.Context) error
	DisablePaging(ctx context.Context) error
	SetTerminalWidth(ctx context.Context, width int) error
	SetBasePrompt(ctx context.Context) (string, error)

	SaveConfiguration(ctx context.Context) (string, error)
	GetDeviceType() string
	GetDeviceInfo(ctx context.Context) (vendor.DeviceInfo, error)

	Close() error
}

var (
	_ DeviceConnection = (*vendor.Base)(nil)
	_ DeviceConnection = (*vendor.IOSXR)(nil)
	_ DeviceConnection = (*vendor.Junos)(nil)
)
