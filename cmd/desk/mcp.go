package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/shopdesk/internal/service/dispatch"
	"github.com/sandevgo/shopdesk/internal/transport/mcp"
	"github.com/sandevgo/shopdesk/pkg/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the support actions over MCP (stdio)",
	Long: `Exposes add_contact and check_order_status as MCP tools on stdin/stdout,
so other agents can register callbacks and check orders. Logs go to stderr.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// stdout carries the protocol
		var flushLog func()
		ctx, flushLog = log.NewContextWithWriter(ctx, debug, os.Stderr)
		defer flushLog()

		d := newDesk(ctx, false)
		server := mcp.NewServer(d.dispatcher, dispatch.Definitions(), os.Stdin, os.Stdout)
		return server.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
