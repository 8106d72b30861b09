package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var dbFlag string
	ctx := newCommandContext(&dbFlag)

	rootCmd := &cobra.Command{
		Use:           "studioctl",
		Short:         "Operate the studio site database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	defaultDB := os.Getenv("STUDIO_DB")
	if defaultDB == "" {
		defaultDB = "studio.db"
	}
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", defaultDB, "Path to the SQLite database")

	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newSpamCommand(ctx))
	rootCmd.AddCommand(newOutboxCommand(ctx))
	rootCmd.AddCommand(newInboxCommand(ctx))
	return rootCmd
}
