package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errUnknownCommand = errors.New("unknown command")

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	help() []string
	exec(ctx context.Context, cmd string, args []string) error
	settle(ctx context.Context)
}

// runREPL starts a simple read–eval–print loop for the storefront CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches it to a. After every command, queued navigation is applied.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here apart from
// unknown commands; handlers report their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func(context.Context) string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "sf %s> ", statusFn(ctx))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(out, "Available commands:", strings.Join(a.help(), ", "))

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			if err := a.exec(ctx, cmd, args); errors.Is(err, errUnknownCommand) {
				fmt.Fprintln(out, "Unknown command:", cmd)
			}
		}

		a.settle(ctx)

		if ctx.Err() != nil {
			return
		}
	}
}
