package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jexpr/java/grammar"
	"github.com/dhamidi/jexpr/java/parser"
)

func newEntriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List the entry productions accepted by --entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, entry := range parser.Entries() {
				fmt.Fprintf(w, "%s\t%s\n", entry, grammar.ProductionFor(entry))
			}
			return w.Flush()
		},
	}

	return cmd
}
