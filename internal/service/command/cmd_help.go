package command

import (
	"context"
	"sort"
	"strings"

	"github.com/sandevgo/meetbot/internal/core"
)

type HelpCommand struct {
	router *Router
}

func NewHelpCommand(router *Router) *HelpCommand {
	return &HelpCommand{router: router}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List available commands"
}

func (c *HelpCommand) Execute(_ context.Context, _ []string) (string, error) {
	cmds := c.router.ListCommands()
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })

	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	for _, cmd := range cmds {
		sb.WriteString("/" + cmd.Name() + " - " + cmd.Description() + "\n")
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

var _ core.Command = (*HelpCommand)(nil)
