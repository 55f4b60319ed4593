package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/netdevssh/netdevssh/pkg/config"
	"github.com/netdevssh/netdevssh/pkg/device"
	"github.com/netdevssh/netdevssh/pkg/util/xpool"
)

// broadcastResult is one host's outcome from a fan-out run.
type broadcastResult struct {
	Host    string `json:"host"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

func createBroadcastCommand() *cli.Command {
	return &cli.Command{
		Name:      "broadcast",
		Usage:     "run one command against every host in --hosts-file concurrently",
		ArgsUsage: "<command>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "hosts-file", Usage: "newline-separated list of hosts, required", Required: true},
			&cli.IntFlag{Name: "workers", Usage: "concurrent dial/command workers", Value: 8},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return cli.Exit("broadcast requires a command argument", 2)
			}
			command := cmd.Args().First()

			hosts, err := readHosts(cmd.String("hosts-file"))
			if err != nil {
				return cli.Exit(err, 2)
			}
			if len(hosts) == 0 {
				return cli.Exit("hosts file contains no hosts", 2)
			}

			s, err := loadSettings(cmd)
			if err != nil {
				return cli.Exit(err, 1)
			}

			results := runBroadcast(ctx, cmd, s, hosts, command)
			printResult(cmd, results)

			for _, r := range results {
				if !r.Success {
					return cli.Exit("one or more hosts failed", 1)
				}
			}
			return nil
		},
	}
}

// runBroadcast fans command out across hosts using a bounded xpool
// worker pool: dialing every device at once would both blow past any
// per-process file-descriptor budget and hit devices harder than a
// human operator ever would, so workers caps real concurrency the way
// pkg/pool caps it per-device.
func runBroadcast(ctx context.Context, cmd *cli.Command, s config.Settings, hosts []string, command string) []broadcastResult {
	results := make([]broadcastResult, len(hosts))

	pool, err := xpool.New(cmd.Int("workers"), len(hosts), func(i int) {
		results[i] = broadcastOne(ctx, cmd, s, hosts[i], command)
	}, xpool.WithName("netdevctl-broadcast"))
	if err != nil {
		// Invalid --workers: report every host as failed rather than panic.
		for i, h := range hosts {
			results[i] = broadcastResult{Host: h, Error: err.Error()}
		}
		return results
	}

	for i := range hosts {
		_ = pool.Submit(i)
	}
	// Close drains the queue before returning (see pkg/util/xpool), so
	// every result slot above is filled by the time we read results.
	_ = pool.Close()
	return results
}

func broadcastOne(ctx context.Context, cmd *cli.Command, s config.Settings, host, command string) broadcastResult {
	d, err := descriptorFromFlags(cmd, s)
	if err != nil {
		return broadcastResult{Host: host, Error: err.Error()}
	}
	d.Host = host

	conn, err := device.Connect(ctx, d)
	if err != nil {
		return broadcastResult{Host: host, Error: err.Error()}
	}
	defer func() { _ = conn.Close() }()

	out, err := conn.SendCommand(ctx, command, sendOptionsFromFlags(cmd))
	if err != nil {
		return broadcastResult{Host: host, Output: out, Error: err.Error()}
	}
	return broadcastResult{Host: host, Output: out, Success: true}
}

func readHosts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening hosts file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var hosts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts = append(hosts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading hosts file: %w", err)
	}
	return hosts, nil
}
