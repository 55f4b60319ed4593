package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/netdevssh/netdevssh/pkg/device"
	"github.com/netdevssh/netdevssh/pkg/transport"
)

func createInteractiveCommand() *cli.Command {
	return &cli.Command{
		Name:    "interactive",
		Aliases: []string{"i", "repl"},
		Usage:   "REPL against one live connection",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			conn, err := connectFromFlags(ctx, cmd)
			if err != nil {
				return cli.Exit(err, 1)
			}
			defer func() { _ = conn.Close() }()

			fmt.Println("netdevctl interactive mode")
			fmt.Println("enter a command to send; 'config <line>' enters config mode for one line; 'quit' or 'exit' to leave")
			fmt.Println()

			return runREPL(ctx, conn, sendOptionsFromFlags(cmd))
		},
	}
}

// startInputReader runs a cancellable stdin scanner on its own goroutine
// so ctx cancellation (Ctrl+C) can interrupt a REPL blocked on input.
func startInputReader(ctx context.Context) (<-chan string, <-chan error) {
	inputCh := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case inputCh <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case errCh <- err:
			default:
			}
		}
		close(inputCh)
	}()

	return inputCh, errCh
}

func runREPL(ctx context.Context, conn device.DeviceConnection, opts transport.SendOptions) error {
	inputCh, errCh := startInputReader(ctx)

	for {
		fmt.Print("netdevctl> ")

		select {
		case <-ctx.Done():
			fmt.Println("\nbye")
			return nil
		case err := <-errCh:
			return fmt.Errorf("reading input: %w", err)
		case line, ok := <-inputCh:
			if !ok {
				fmt.Println()
				return nil
			}
			line = strings.TrimSpace(line)
			if shouldExit := processLine(ctx, conn, opts, line); shouldExit {
				return nil
			}
		}
	}
}

func processLine(ctx context.Context, conn device.DeviceConnection, opts transport.SendOptions, line string) bool {
	if line == "" {
		return false
	}
	if line == "quit" || line == "exit" {
		fmt.Println("bye")
		return true
	}

	parts := parseCommandLine(line)
	if len(parts) == 0 {
		return false
	}

	executeAndPrint(ctx, conn, opts, parts)
	return false
}

func executeAndPrint(ctx context.Context, conn device.DeviceConnection, opts transport.SendOptions, parts []string) {
	var (
		out string
		err error
	)
	switch parts[0] {
	case "config":
		var lines []string
		if len(parts) > 1 {
			lines = []string{strings.Join(parts[1:], " ")}
		}
		out, err = conn.SendConfigSet(ctx, lines, opts)
	default:
		out, err = conn.SendCommand(ctx, strings.Join(parts, " "), opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if out != "" {
		fmt.Println(out)
	}
	fmt.Println()
}

// parseCommandLine splits line into words, honoring single/double quotes
// and backslash escapes — the same tokenizer shape as the debug CLI's
// REPL, since an interactive network-device shell has the identical
// "quoted argument" problem (e.g. description text with spaces).
func parseCommandLine(line string) []string {
	var parts []string
	var current strings.Builder
	var inQuote bool
	var quoteChar rune
	var escaped bool

	for _, r := range line {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		switch {
		case isQuoteStart(r, inQuote):
			inQuote = true
			quoteChar = r
		case isQuoteEnd(r, quoteChar, inQuote):
			inQuote = false
			quoteChar = 0
		case isWordSeparator(r, inQuote):
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func isQuoteStart(r rune, inQuote bool) bool {
	return (r == '"' || r == '\'') && !inQuote
}

func isQuoteEnd(r, quoteChar rune, inQuote bool) bool {
	return r == quoteChar && inQuote
}

func isWordSeparator(r rune, inQuote bool) bool {
	return r == ' ' && !inQuote
}
