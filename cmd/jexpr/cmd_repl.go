package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jexpr/format"
	"github.com/dhamidi/jexpr/java/parser"
)

const (
	prompt         = "> "
	continuePrompt = ". "
)

func newReplCmd() *cobra.Command {
	var entryName string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read expressions interactively and print their syntax trees",
		Long: `Read expressions from standard input, one at a time.

Input spanning several lines is collected until the expression is complete.
An empty line forces the pending input to be parsed. The commands
":entry <name>" and ":format <name>" switch the entry production and the
output format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := lookupEntry(entryName)
			if err != nil {
				return err
			}
			r := &repl{
				in:     bufio.NewScanner(cmd.InOrStdin()),
				out:    cmd.OutOrStdout(),
				entry:  entry,
				format: outputFormat,
			}
			return r.run()
		},
	}

	cmd.Flags().StringVar(&entryName, "entry", parser.EntryExpression.String(), "entry production")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree",
		fmt.Sprintf("output format (%s)", strings.Join(format.Formats(), ", ")))

	return cmd
}

type repl struct {
	in      *bufio.Scanner
	out     io.Writer
	entry   parser.Entry
	format  string
	pending []string
	start   int
	line    int
}

func (r *repl) run() error {
	fmt.Fprint(r.out, prompt)
	for r.in.Scan() {
		r.line++
		text := r.in.Text()

		if len(r.pending) == 0 {
			if strings.TrimSpace(text) == "" {
				fmt.Fprint(r.out, prompt)
				continue
			}
			if strings.HasPrefix(text, ":") {
				r.command(text)
				fmt.Fprint(r.out, prompt)
				continue
			}
		}

		if strings.TrimSpace(text) == "" {
			r.finish()
			fmt.Fprint(r.out, prompt)
			continue
		}

		if len(r.pending) == 0 {
			r.start = r.line
		}
		r.pending = append(r.pending, text)
		p := r.parser()
		if !p.IsComplete() {
			fmt.Fprint(r.out, continuePrompt)
			continue
		}
		r.print(p.Finish())
		fmt.Fprint(r.out, prompt)
	}
	if err := r.in.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if len(r.pending) > 0 {
		r.finish()
	}
	fmt.Fprintln(r.out)
	return nil
}

func (r *repl) parser() *parser.Parser {
	src := strings.Join(r.pending, "\n")
	return parser.New(strings.NewReader(src), r.entry,
		parser.WithFile("<repl>"),
		parser.WithStartLine(r.start))
}

func (r *repl) finish() {
	r.print(r.parser().Finish())
}

func (r *repl) print(node *parser.Node, err error) {
	r.pending = nil
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	encoder, err := format.NewEncoder(r.format, r.out, format.Options{})
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	if err := encoder.Encode(node); err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
	}
}

func (r *repl) command(text string) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(text, ":"), " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "entry":
		if arg == "" {
			fmt.Fprintln(r.out, r.entry)
			return
		}
		entry, err := lookupEntry(arg)
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
			return
		}
		r.entry = entry
	case "format":
		if arg == "" {
			fmt.Fprintln(r.out, r.format)
			return
		}
		if _, err := format.NewEncoder(arg, io.Discard, format.Options{}); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
			return
		}
		r.format = arg
	default:
		fmt.Fprintf(r.out, "error: unknown command :%s\n", name)
	}
}
