package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quill",
		Short: "A client/server modal text editor engine",
		Long: `quill keeps documents in memory and edits them on behalf of thin display
clients that connect over a Unix socket and exchange JSON lines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (.toml, .yaml or .yml)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newActionsCmd())
	root.AddCommand(newVersionCmd())
	return root
}
