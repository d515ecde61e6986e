package util

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/joshleblanc/pi-minimax/internal/minimaxmcp/service/plugin"
	"github.com/joshleblanc/pi-minimax/internal/pkg/json"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	OutputMarkdown = "markdown"
	OutputRaw      = "raw"
	OutputJSON     = "json"
)

// PrintResult writes a tool result to out in the given output format.
// Markdown is rendered with glamour only when out is a terminal.
func PrintResult(out io.Writer, res *plugin.ToolResult, format string) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"text":    res.Text,
			"details": res.Details,
			"isError": res.IsError,
		})
	case OutputRaw:
		_, err := fmt.Fprint(out, res.Text)
		return err
	case OutputMarkdown, "":
		_, err := fmt.Fprint(out, RenderMarkdown(out, res.Text))
		return err
	default:
		return fmt.Errorf("unknown output format %q (must be 'markdown', 'raw' or 'json')", format)
	}
}

// RenderMarkdown renders content for a terminal writer, falling back to the
// plain content for anything else or on renderer failure.
func RenderMarkdown(out io.Writer, content string) string {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return content
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = 100
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithColorProfile(termenv.ANSI256),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// NewConsoleNotifier prints tool progress messages to w.
func NewConsoleNotifier(w io.Writer) plugin.Notifier {
	return plugin.NotifierFunc(func(_ context.Context, level plugin.NotifyLevel, message string) error {
		c := color.New(color.FgCyan)
		switch level {
		case plugin.NotifyWarning:
			c = color.New(color.FgYellow)
		case plugin.NotifyError:
			c = color.New(color.FgRed)
		}
		_, err := c.Fprintln(w, message)
		return err
	})
}

// RunTool calls a tool, prints its result, and returns ErrExit when the
// result is an error.
func RunTool(ctx context.Context, f Factory, streams IOStreams, name string, params map[string]interface{}, format string) error {
	fw, err := f.Framework(NewConsoleNotifier(streams.ErrOut))
	if err != nil {
		return err
	}
	res, err := fw.CallTool(ctx, name, params)
	if err != nil {
		return err
	}

	target := streams.Out
	if res.IsError && format != OutputJSON {
		target = streams.ErrOut
	}
	if err := PrintResult(target, res, format); err != nil {
		return err
	}
	if res.IsError {
		return ErrExit
	}
	return nil
}
