package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"hrportal/internal/platform/config"
	"hrportal/internal/platform/logging"
)

func newRootCmd() *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:          "hrportal",
		Short:        "HR portal API server and maintenance tools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnvFiles(envFiles...)
		},
	}
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "Dotenv files to load before reading the environment")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newTokenCmd())
	return cmd
}

func loadConfig() (config.Config, *slog.Logger) {
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return cfg, logger
}
