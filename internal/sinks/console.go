package sinks

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sandevgo/meetbot/internal/service/ui"
)

// Console prints replies to the terminal for local runs.
type Console struct {
	out     io.Writer
	botName string
}

func NewConsole(botName string) *Console {
	return &Console{out: os.Stdout, botName: botName}
}

// NewConsoleWriter is used by tests to capture output.
func NewConsoleWriter(botName string, out io.Writer) *Console {
	return &Console{out: out, botName: botName}
}

func (c *Console) Name() string {
	return "console"
}

func (c *Console) Deliver(_ context.Context, text string) error {
	_, err := fmt.Fprintf(c.out, "%s %s\n", ui.BotStyle.Render(c.botName+":"), text)
	return err
}
