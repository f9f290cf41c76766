package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jexpr/java/codebase"
)

func newCheckCmd() *cobra.Command {
	var entryName string

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Report syntax errors in .jexpr files",
		Long: `Parse every .jexpr file below the given directories, or the given files,
and print one line per syntax error. The exit status is non-zero when any
error is found.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := lookupEntry(entryName)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"."}
			}

			count := 0
			for _, arg := range args {
				diags, err := checkPath(arg, codebase.WithEntry(entry))
				if err != nil {
					return err
				}
				for _, d := range diags {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d: %s\n", d.Path, d.Line, d.Column, d.Message)
				}
				count += len(diags)
			}
			if count > 0 {
				return fmt.Errorf("%d syntax error(s)", count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&entryName, "entry", "expression", "entry production used before any directive")

	return cmd
}

func checkPath(path string, opts ...codebase.Option) ([]codebase.Diagnostic, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if !info.IsDir() {
		c := codebase.New(filepath.Dir(path), opts...)
		if err := c.ScanFile(path); err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return c.Diagnostics(path), nil
	}
	c := codebase.New(path, opts...)
	if err := c.ScanAll(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return c.Diagnostics(""), nil
}
