// Package grammar holds the EBNF description of the expression language
// accepted by package parser.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/jexpr/java/parser"
)

// Filename is the name reported in grammar positions.
const Filename = "grammar.ebnf"

//go:embed grammar.ebnf
var source []byte

// Source returns the grammar text.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse(Filename, bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify checks that every production referenced from start is defined
// and that every production is reachable from start.
func Verify(start string) error {
	g, err := Load()
	if err != nil {
		return err
	}
	if err := ebnf.Verify(g, start); err != nil {
		return fmt.Errorf("verify grammar from %s: %w", start, err)
	}
	return nil
}

// Productions returns the production names in sorted order.
func Productions() ([]string, error) {
	g, err := Load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ProductionFor returns the name of the production parsed by entry:
// lambdaExpression becomes LambdaExpression.
func ProductionFor(entry parser.Entry) string {
	name := entry.String()
	if name == "" {
		return ""
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Rule returns the source text of the named production, including any
// continuation lines.
func Rule(name string) (string, bool) {
	var rule []string
	for _, line := range strings.Split(string(source), "\n") {
		if rule == nil {
			if strings.HasPrefix(line, name+" =") {
				rule = append(rule, line)
			}
			continue
		}
		if !strings.HasPrefix(line, "\t") {
			break
		}
		rule = append(rule, line)
	}
	if rule == nil {
		return "", false
	}
	return strings.Join(rule, "\n"), true
}
