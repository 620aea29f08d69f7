package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sandevgo/shopdesk/pkg/conv"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a single question",
	Example: `  desk ask "What is the return policy for items purchased at our store?"
  desk ask "/order 42"`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		d := newDesk(ctx, true)
		defer func() {
			for _, c := range d.cleanup {
				_ = c.Shutdown(ctx)
			}
		}()

		handler := d.newChat(d.newSessions(ctx))
		reply, err := handler.Reply(ctx, newSessionID("ask"), strings.Join(args, " "))
		if reply != "" {
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(conv.MarkdownToText(reply)))
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
