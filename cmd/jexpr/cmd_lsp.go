package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/jexpr/java/codebase"
)

func newLSPCmd() *cobra.Command {
	var watch bool
	var entryName string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server for .jexpr files",
		Long:  "Start a Language Server Protocol server over stdin/stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := lookupEntry(entryName)
			if err != nil {
				return err
			}
			ls := codebase.NewLSPServer(version,
				codebase.WithWatch(watch),
				codebase.WithCodebaseOptions(codebase.WithEntry(entry)))
			return ls.RunStdio()
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "rescan .jexpr files when they change on disk")
	cmd.Flags().StringVar(&entryName, "entry", "expression", "entry production used before any directive")

	return cmd
}
