package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joestump/bookmarks-api/internal/config"
	"github.com/joestump/bookmarks-api/internal/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			driver, dsn, err := config.LoadDB()
			if err != nil {
				return err
			}

			database, err := db.New(driver, dsn)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, driver); err != nil {
				return err
			}

			version, err := db.Status(database, driver)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations complete (version %d)\n", version)
			return nil
		},
	}
}
