package command

import (
	"github.com/sandevgo/shopdesk/internal/core"
)

// NewCommands builds the chat commands; /history is only offered when transcripts are kept.
func NewCommands(
	orders core.OrderRepository,
	sessions SessionLookup,
	transcripts core.TranscriptRepository,
) []core.Command {
	cmds := []core.Command{
		NewOrderCommand(orders),
		NewSessionCommand(sessions),
	}
	if transcripts != nil {
		cmds = append(cmds, NewHistoryCommand(transcripts))
	}
	return cmds
}
