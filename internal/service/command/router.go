package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/shopdesk/internal/core"
)

var _ core.CmdRouter = (*Router)(nil)

type Router struct {
	commands  map[string]core.Command
	formatter *ResponseFormatter
}

func New(commands []core.Command) *Router {
	c := &Router{
		commands:  make(map[string]core.Command),
		formatter: NewResponseFormatter(),
	}

	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	return c
}

// Execute runs a slash command. The bool is false when input is not a command
// and should go to the assistant instead.
func (c *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	// Telegram appends the bot name in groups: /order@shop_bot 42
	name, _, _ := strings.Cut(strings.TrimPrefix(parts[0], "/"), "@")
	args := parts[1:]

	if name == "help" || name == "start" {
		return c.help(), true
	}

	cmd, ok := c.commands[name]
	if !ok {
		return c.formatter.Combine(
			fmt.Sprintf("Unknown command: /%s", name),
			c.formatter.Tip("Send /help to see the available commands"),
		), true
	}

	result, err := cmd.Execute(ctx, sessionID, args)
	if err != nil {
		var usage *UsageError
		if errors.As(err, &usage) {
			return c.formatter.Usage(usage.Usage), true
		}
		return c.formatter.Error(name, err), true
	}
	return result, true
}

// ListCommands returns commands sorted by name.
func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}

func (c *Router) help() string {
	items := []string{"`/help` - Show this list"}
	for _, cmd := range c.ListCommands() {
		items = append(items, fmt.Sprintf("`/%s` - %s", cmd.Name(), cmd.Description()))
	}
	return c.formatter.Combine(
		c.formatter.Info("Commands"),
		c.formatter.List(items),
		c.formatter.Tip("Anything else you type goes to the support assistant"),
	)
}

// UsageError reports a malformed command invocation.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string { return "usage: " + e.Usage }
