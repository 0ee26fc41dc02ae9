package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezkam/listly/internal/config"
	"github.com/rezkam/listly/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/listly/internal/infrastructure/persistence/sqlite"
)

// ErrNoMigrations is returned when the configured backend has no SQL schema.
var ErrNoMigrations = errors.New("migrations apply only to sqlite and postgres storage")

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage SQL schema migrations",
	}

	for _, sub := range []struct {
		direction string
		short     string
	}{
		{"up", "Apply all pending migrations"},
		{"down", "Roll back the most recent migration"},
		{"status", "Show applied and pending migrations"},
	} {
		cmd.AddCommand(&cobra.Command{
			Use:   sub.direction,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMigrate(cmd, sub.direction)
			},
		})
	}

	return cmd
}

func runMigrate(cmd *cobra.Command, direction string) error {
	cfg, err := config.LoadStorageConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	switch cfg.Type {
	case config.StoragePostgres:
		err = postgres.Migrate(ctx, cfg.PostgresDSN, postgres.MigrateDirection(direction))
	case config.StorageSQLite:
		err = sqlite.Migrate(ctx, cfg.SQLitePath, sqlite.MigrateDirection(direction))
	default:
		return fmt.Errorf("%w (LISTLY_STORAGE_TYPE is '%s')", ErrNoMigrations, cfg.Type)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done (%s)\n", direction, cfg.Type)
	return nil
}
