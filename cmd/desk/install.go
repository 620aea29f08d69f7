package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/shopdesk/internal/config"
	"github.com/sandevgo/shopdesk/internal/service/installer"
	"github.com/sandevgo/shopdesk/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Configure ShopDesk interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		runtimePath := config.GetRuntimePath()

		state, err := installer.RunWizard(runtimePath)
		if err != nil {
			return err
		}

		// Make sure what was written parses
		envPath := filepath.Join(runtimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().
			Str("runtime", runtimePath).
			Str("channel", state.Channel).
			Msg("installation complete, run 'desk start' to open the support chat")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
