package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/netdevssh/netdevssh/pkg/config"
	"github.com/netdevssh/netdevssh/pkg/device"
	"github.com/netdevssh/netdevssh/pkg/textfsm"
	"github.com/netdevssh/netdevssh/pkg/transport"
	"github.com/netdevssh/netdevssh/pkg/util/xproc"
)

// sendOptionsFromFlags builds the transport.SendOptions every send
// command shares: just the global --timeout for now, matching the
// teacher CLI's single shared --timeout flag.
func sendOptionsFromFlags(cmd *cli.Command) transport.SendOptions {
	return transport.SendOptions{ReadTimeout: cmd.Duration("timeout")}
}

func createCommands() []*cli.Command {
	return []*cli.Command{
		createSendCommandCommand(),
		createSendConfigSetCommand(),
		createInfoCommand(),
		createInteractiveCommand(),
		createBroadcastCommand(),
		createPIDCommand(),
	}
}

// loadSettings applies --config (if given) and wires its TemplateCacheSize
// into the TextFSM compiled-pattern cache — the one process-wide side
// effect a CLI invocation needs before dialing anything.
func loadSettings(cmd *cli.Command) (config.Settings, error) {
	s, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	textfsm.SetCacheCapacity(s.TemplateCacheSize)
	return s, nil
}

// descriptorFromFlags builds a device.Descriptor from global flags and
// settings. The password comes from --password unless --password-env is
// set, in which case that variable's value replaces it; --key-file, when
// given, adds a private key alongside whichever password was resolved.
func descriptorFromFlags(cmd *cli.Command, s config.Settings) (device.Descriptor, error) {
	host := cmd.String("host")
	if host == "" {
		return device.Descriptor{}, fmt.Errorf("--host is required")
	}

	d := device.Descriptor{
		Family:              device.Family(cmd.String("family")),
		Host:                host,
		Port:                cmd.Int("port"),
		Username:            cmd.String("user"),
		Password:            cmd.String("password"),
		EnableSecret:        cmd.String("enable-secret"),
		ConnectTimeout:      s.TCPConnectTimeout(),
		ReadTimeout:         s.TCPReadTimeout(),
		PatternMatchTimeout: s.PatternMatchTimeout(),
		BlockingTimeout:     s.BlockingTimeout(),
		RetryCount:          s.MaxRetryAttempts,
		RetryDelay:          s.RetryDelay(),
		KeepAliveInterval:   s.KeepaliveInterval(),
		CommandExecDelay:    s.CommandExecDelay(),
		SessionLogPath:      cmd.String("session-log"),
	}

	if envVar := cmd.String("password-env"); envVar != "" {
		d.Password = os.Getenv(envVar)
	}

	if keyFile := cmd.String("key-file"); keyFile != "" {
		pem, err := os.ReadFile(keyFile)
		if err != nil {
			return device.Descriptor{}, fmt.Errorf("reading key file: %w", err)
		}
		d.PrivateKeyPEM = pem
	}

	return d, nil
}

func connectFromFlags(ctx context.Context, cmd *cli.Command) (device.DeviceConnection, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	d, err := descriptorFromFlags(cmd, s)
	if err != nil {
		return nil, err
	}
	return device.Connect(ctx, d)
}

func createSendCommandCommand() *cli.Command {
	return &cli.Command{
		Name:      "send-command",
		Usage:     "run one command on the device and print its output",
		ArgsUsage: "<command>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return cli.Exit("send-command requires a command argument", 2)
			}
			conn, err := connectFromFlags(ctx, cmd)
			if err != nil {
				return cli.Exit(err, 1)
			}
			defer func() { _ = conn.Close() }()

			out, err := conn.SendCommand(ctx, cmd.Args().First(), sendOptionsFromFlags(cmd))
			if err != nil {
				return cli.Exit(err, 1)
			}
			printResult(cmd, out)
			return nil
		},
	}
}

func createSendConfigSetCommand() *cli.Command {
	return &cli.Command{
		Name:      "send-config-set",
		Usage:     "push one or more configuration lines",
		ArgsUsage: "<cmd> [cmd...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cmds := cmd.Args().Slice()
			if len(cmds) == 0 {
				return cli.Exit("send-config-set requires at least one config line", 2)
			}
			conn, err := connectFromFlags(ctx, cmd)
			if err != nil {
				return cli.Exit(err, 1)
			}
			defer func() { _ = conn.Close() }()

			out, err := conn.SendConfigSet(ctx, cmds, sendOptionsFromFlags(cmd))
			if err != nil {
				return cli.Exit(err, 1)
			}
			printResult(cmd, out)
			return nil
		},
	}
}

func createInfoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "print get_device_info and get_device_type",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			conn, err := connectFromFlags(ctx, cmd)
			if err != nil {
				return cli.Exit(err, 1)
			}
			defer func() { _ = conn.Close() }()

			info, err := conn.GetDeviceInfo(ctx)
			if err != nil {
				return cli.Exit(err, 1)
			}
			printResult(cmd, struct {
				DeviceType string `json:"device_type"`
				Vendor     string `json:"vendor"`
				Model      string `json:"model"`
				OSVersion  string `json:"os_version"`
				Hostname   string `json:"hostname"`
				Uptime     string `json:"uptime"`
				Serial     string `json:"serial"`
			}{
				DeviceType: conn.GetDeviceType(),
				Vendor:     info.Vendor,
				Model:      info.Model,
				OSVersion:  info.OSVersion,
				Hostname:   info.Hostname,
				Uptime:     info.Uptime,
				Serial:     info.Serial,
			})
			return nil
		},
	}
}

func createPIDCommand() *cli.Command {
	return &cli.Command{
		Name:  "pid",
		Usage: "print this process's PID and name (diagnostics)",
		Action: func(_ context.Context, cmd *cli.Command) error {
			printResult(cmd, struct {
				PID  int    `json:"pid"`
				Name string `json:"name"`
			}{PID: xproc.ProcessID(), Name: xproc.ProcessName()})
			return nil
		},
	}
}
