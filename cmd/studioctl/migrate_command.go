package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fitstudio/internal/adapters/storage"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.database()
			if err != nil {
				return err
			}
			version, err := storage.SchemaVersion(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema at version %d (latest %d)\n", version, storage.LatestSchemaVersion())
			return nil
		},
	}
}
