package main

import (
	"fmt"

	"github.com/shenikar/emergency_dispatch_system/internal/config"
	"github.com/shenikar/emergency_dispatch_system/pkg/logger"
	"github.com/shenikar/emergency_dispatch_system/pkg/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runMigrate(postgres.MigrateUp)
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Revert all migrations",
		Long: `Revert all migrations.
WARNING: This drops every dispatch table. Pass --yes to confirm.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			yes, err := cmd.Flags().GetBool("yes")
			if err != nil {
				return fmt.Errorf("failed to get yes flag: %w", err)
			}
			if !yes {
				return fmt.Errorf("refusing to migrate down without --yes")
			}
			return runMigrate(postgres.MigrateDown)
		},
	}
	downCmd.Flags().BoolP("yes", "y", false, "Confirm removal of all data")

	migrateCmd.AddCommand(upCmd, downCmd)
	return migrateCmd
}

func runMigrate(direction postgres.MigrateDirection) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	log.WithField("direction", direction).Info("Running database migrations...")
	if err := postgres.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, direction); err != nil {
		return err
	}
	log.WithField("direction", direction).Info("Database migrations applied successfully")
	return nil
}
