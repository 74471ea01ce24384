package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// terminalDialogs renders controller dialogs as plain text prompts.
type terminalDialogs struct {
	reader *bufio.Reader
	out    io.Writer
}

func (d *terminalDialogs) Confirm(_ context.Context, title, text string) bool {
	answer, err := getSimpleText(d.reader, fmt.Sprintf("%s %s [y/N]", title, text), d.out)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (d *terminalDialogs) Success(_ context.Context, title, text string) {
	fmt.Fprintf(d.out, "[ok] %s: %s\n", title, text)
}

func (d *terminalDialogs) Error(_ context.Context, title, text string) {
	fmt.Fprintf(d.out, "[error] %s: %s\n", title, text)
}

func (d *terminalDialogs) ValidationErrors(_ context.Context, title string, messages []string) {
	fmt.Fprintf(d.out, "[error] %s:\n", title)
	for _, m := range messages {
		fmt.Fprintf(d.out, "  - %s\n", m)
	}
}
