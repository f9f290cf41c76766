package main

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jexpr/java/grammar"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar [production]",
		Short: "Print the EBNF grammar or a single production",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(grammar.Source())
				return err
			}
			rule, ok := grammar.Rule(args[0])
			if !ok {
				return fmt.Errorf("unknown production: %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), rule)
			return nil
		},
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarMatchCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check",
		Short:         "Parse and verify the embedded grammar",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := grammar.Verify(startProduction); err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "Expression", "start production for verification")

	return cmd
}

func newGrammarMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <production> <text>",
		Short: "Test text against a lexical production of the grammar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			matched, err := grammar.Match(args[0], args[1])
			if err != nil {
				return err
			}
			if !matched {
				return fmt.Errorf("%q is not a %s", args[1], args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	return cmd
}

// printErrors prints each error of an ebnf error list on its own line.
func printErrors(w io.Writer, err error) {
	if inner := errors.Unwrap(err); inner != nil {
		err = inner
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
