package cmd

import (
	"database/sql"
	"fmt"

	"github.com/amirphl/Rentora/migrations"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		migrationCmd("up", "Apply all pending migrations", migrations.Up),
		migrationCmd("down", "Roll back the latest migration", migrations.Down),
		migrationCmd("status", "Print the status of every migration", migrations.Status),
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrationDB(func(db *sql.DB) error {
					v, err := migrations.Version(db)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), v)
					return nil
				})
			},
		},
	)
	return cmd
}

func migrationCmd(use, short string, run func(*sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := withMigrationDB(run); err != nil {
				return err
			}
			log.Info().Str("command", "migrate "+use).Msg("migration command finished")
			return nil
		},
	}
}

func withMigrationDB(fn func(*sql.DB) error) error {
	cfg, _, err := bootstrap()
	if err != nil {
		return err
	}
	db, err := openMigrationDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}
