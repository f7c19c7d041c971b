package cmd

import (
	"context"
	"fmt"

	"github.com/vibast-solutions/ms-go-records/app/repository"
	"github.com/vibast-solutions/ms-go-records/config"
	"github.com/vibast-solutions/ms-go-records/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(cmd.Context(), func(m *migrate.Migrate) error {
			if err := migrations.Up(m); err != nil {
				return err
			}
			return printVersion(cmd, m)
		})
	},
}

var migrateDownSteps int

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(cmd.Context(), func(m *migrate.Migrate) error {
			if err := migrations.Down(m, migrateDownSteps); err != nil {
				return err
			}
			return printVersion(cmd, m)
		})
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

func withMigrator(ctx context.Context, fn func(*migrate.Migrate) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := repository.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}

	m, err := migrations.New(db.DB, cfg.Database.Driver)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer m.Close()

	return fn(m)
}

func printVersion(cmd *cobra.Command, m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	if err == migrate.ErrNilVersion {
		fmt.Fprintln(cmd.OutOrStdout(), "schema_version: none")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "schema_version: %d\n", version)
	fmt.Fprintf(cmd.OutOrStdout(), "dirty: %t\n", dirty)
	return nil
}
