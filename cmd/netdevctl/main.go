// netdevctl is a command-line client for the netdevssh device-automation
// library: it dials one (or, for broadcast, many) network device(s) over
// SSH and drives send_command/send_config_set/info against it directly,
// without a REST or scheduler layer in front.
//
// Usage:
//
//	netdevctl [global flags] <command> [command args]
//
// Global flags:
//
//	--host, -H         device hostname or IP (required for single-device commands)
//	--port             SSH port (default: 22)
//	--family, -f       cisco_ios|cisco_xr|cisco_nxos|cisco_asa|juniper_junos
//	--user, -u         SSH username
//	--password         SSH password (prefer --password-env for scripting)
//	--password-env     environment variable holding the SSH password
//	--enable-secret    privilege-elevation secret (ios/asa/nxos)
//	--config, -c       path to a settings file (YAML/JSON, see pkg/config)
//	--timeout, -t      per-command timeout (default: 30s)
//	--json             print structured results as pretty JSON
//
// Commands:
//
//	send-command <cmd>            run one command, print its output
//	send-config-set <cmd> [...]   push one or more config lines
//	info                           print get_device_info/get_device_type
//	interactive                    REPL against a single live connection
//	broadcast <cmd>                run one command against --hosts-file concurrently
//	pid                             print this process's PID/name (diagnostics)
//
// Exit codes:
//
//	0: command succeeded
//	1: command failed (connection, command, or template error)
//	2: argument error
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/netdevssh/netdevssh/pkg/util/xjson"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	app := createApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		if ec, ok := err.(cli.ExitCoder); ok {
			return ec.ExitCode()
		}
		fmt.Fprintln(os.Stderr, "netdevctl:", err)
		return 1
	}
	return 0
}

func createApp() *cli.Command {
	return &cli.Command{
		Name:    "netdevctl",
		Usage:   "drive send_command/send_config_set against a network device over SSH",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Aliases: []string{"H"}, Usage: "device hostname or IP"},
			&cli.IntFlag{Name: "port", Usage: "SSH port", Value: 0},
			&cli.StringFlag{Name: "family", Aliases: []string{"f"}, Usage: "cisco_ios|cisco_xr|cisco_nxos|cisco_asa|juniper_junos", Value: "cisco_ios"},
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "SSH username"},
			&cli.StringFlag{Name: "password", Usage: "SSH password"},
			&cli.StringFlag{Name: "password-env", Usage: "environment variable holding the SSH password"},
			&cli.StringFlag{Name: "enable-secret", Usage: "privilege-elevation secret"},
			&cli.StringFlag{Name: "key-file", Usage: "private key path (tried before password)"},
			&cli.StringFlag{Name: "session-log", Usage: "append-only session transcript path"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "settings file (YAML/JSON)"},
			&cli.DurationFlag{Name: "timeout", Aliases: []string{"t"}, Value: 30 * time.Second},
			&cli.BoolFlag{Name: "json", Usage: "print structured results as pretty JSON"},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		Authors:        []any{"netdevssh maintainers"},
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

// printResult renders v either as pretty JSON (--json) or, for a plain
// string result, as-is — matching what an operator piping output into
// another tool expects from either mode.
func printResult(cmd *cli.Command, v any) {
	if cmd.Bool("json") {
		fmt.Println(xjson.Pretty(v))
		return
	}
	if s, ok := v.(string); ok {
		fmt.Println(s)
		return
	}
	fmt.Println(xjson.Pretty(v))
}
