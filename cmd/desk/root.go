package main

import (
	"context"
	"os"

	"github.com/sandevgo/shopdesk/internal/config"
	"github.com/sandevgo/shopdesk/internal/service/ui"
	"github.com/sandevgo/shopdesk/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "desk",
	Short: "ShopDesk, customer support chat for an online store",
	Long: `ShopDesk answers store customers through a hosted assistant. It checks order
status against the orders file and registers callback requests for a human
representative.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	return log.NewContextWithLogger(ctx, debug || config.IsDebug())
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `{{with .Long}}{{StyleDesc .}}
{{end}}
{{StyleTitle "USAGE"}}
  {{StyleUsage .UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableFlags}}{{StyleTitle "FLAGS"}}
{{StyleFlag (.Flags.FlagUsages | trimTrailingWhitespaces)}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}
