package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jexpr/format"
	"github.com/dhamidi/jexpr/java/parser"
)

func newParseCmd() *cobra.Command {
	var entryName string
	var outputFormat string
	var expr string
	var includeSpans bool
	var goPackage string
	var goVar string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an expression and dump its syntax tree",
		Long: `Parse a single expression from -e, a file, or standard input.

The whole input must form exactly one instance of the entry production.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := lookupEntry(entryName)
			if err != nil {
				return err
			}

			src, file, err := readSource(expr, args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			node, err := parser.Parse(src, entry, parser.WithFile(file))
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			encoder, err := format.NewEncoder(outputFormat, cmd.OutOrStdout(), format.Options{
				Spans:     includeSpans,
				GoPackage: goPackage,
				GoVar:     goVar,
			})
			if err != nil {
				return err
			}
			if err := encoder.Encode(node); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&entryName, "entry", parser.EntryExpression.String(), "entry production")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree",
		fmt.Sprintf("output format (%s)", strings.Join(format.Formats(), ", ")))
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "expression to parse instead of a file")
	cmd.Flags().BoolVar(&includeSpans, "spans", false, "include source spans in json, line and tree output")
	cmd.Flags().StringVar(&goPackage, "package", "", "package name for go output")
	cmd.Flags().StringVar(&goVar, "var", "", "variable name for go output")

	return cmd
}

func lookupEntry(name string) (parser.Entry, error) {
	entry, ok := parser.LookupEntry(name)
	if !ok {
		return 0, fmt.Errorf("unknown entry: %s (see jexpr entries)", name)
	}
	return entry, nil
}

// readSource picks the expression from -e, the named file, or stdin, in
// that order. The returned file name is used in error positions.
func readSource(expr string, args []string, stdin io.Reader) (string, string, error) {
	if expr != "" {
		if len(args) > 0 {
			return "", "", fmt.Errorf("cannot combine --expr with a file argument")
		}
		return expr, "", nil
	}
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("read file: %w", err)
		}
		return string(data), args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), "<stdin>", nil
}
