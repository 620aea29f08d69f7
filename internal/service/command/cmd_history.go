package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sandevgo/shopdesk/internal/core"
)

const defaultHistoryLimit = 10

type HistoryCommand struct {
	transcripts core.TranscriptRepository
	formatter   *ResponseFormatter
}

func NewHistoryCommand(transcripts core.TranscriptRepository) *HistoryCommand {
	return &HistoryCommand{
		transcripts: transcripts,
		formatter:   NewResponseFormatter(),
	}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Show recent turns of this conversation"
}

func (c *HistoryCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	limit := defaultHistoryLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return "", &UsageError{Usage: "/history [number of turns]"}
		}
		limit = n
	}

	turns, err := c.transcripts.GetTurns(ctx, sessionID, limit)
	if err != nil {
		return "", err
	}
	if len(turns) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("History"),
			"Nothing recorded for this conversation yet.",
		), nil
	}

	items := make([]string, 0, len(turns))
	for _, t := range turns {
		items = append(items, fmt.Sprintf("**%s**: %s", t.Role, t.Content))
	}
	return c.formatter.Combine(
		c.formatter.Info("History"),
		c.formatter.List(items),
	), nil
}
