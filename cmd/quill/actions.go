package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/quill/internal/dispatcher"
	"github.com/dshills/quill/internal/editor"
)

func newActionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List the actions clients can send",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range dispatcher.New(editor.New()).Actions() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
