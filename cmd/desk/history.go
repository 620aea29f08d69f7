package main

import (
	"fmt"

	"github.com/sandevgo/shopdesk/internal/service/ui"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [session]",
	Short: "Show recorded conversations",
	Long:  `Without arguments lists recent session ids. With a session id prints its transcript.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		d := newDesk(ctx, true)
		if d.transcripts == nil {
			return fmt.Errorf("transcripts are disabled, set DESK_ENABLE_TRANSCRIPTS=true")
		}
		defer func() {
			for _, c := range d.cleanup {
				_ = c.Shutdown(ctx)
			}
		}()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			ids, err := d.transcripts.Sessions(ctx, historyLimit)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		}

		turns, err := d.transcripts.GetTurns(ctx, args[0], historyLimit)
		if err != nil {
			return err
		}
		for _, t := range turns {
			fmt.Fprintf(out, "%s %s: %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04:05"), ui.RoleLabel(t.Role), t.Content)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "maximum number of entries")
	rootCmd.AddCommand(historyCmd)
}
