package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"hrportal/internal/platform/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := loadConfig()
			pool, err := connectAdmin(cmd, cfg.AdminDatabaseURL())
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			version, err := db.MigrationVersion(cmd.Context(), pool)
			if err != nil {
				return err
			}
			logger.Info("migrations applied", "version", version)
			return nil
		},
	}
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Apply migrations and seed reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := loadConfig()
			pool, err := connectAdmin(cmd, cfg.AdminDatabaseURL())
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			if err := db.Seed(cmd.Context(), pool); err != nil {
				return err
			}
			logger.Info("setup complete")
			return nil
		},
	}
}

func connectAdmin(cmd *cobra.Command, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or SERVICE_DATABASE_URL is required")
	}
	pool, err := db.Connect(cmd.Context(), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(cmd.Context()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}
