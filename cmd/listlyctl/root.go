package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Storage settings come from the same
// LISTLY_* environment variables as the server.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "listlyctl",
		Short: "Administer a listly document store",
		Long: `Administer the document store configured through LISTLY_STORAGE_TYPE
and the matching LISTLY_* settings.

Available subcommands:
  migrate - Apply, roll back or inspect SQL schema migrations
  import  - Seed lists and items from a YAML file`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMigrateCmd(), newImportCmd())
	return root
}
