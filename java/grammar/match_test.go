package grammar

import (
	"testing"

	"github.com/dhamidi/jexpr/java/parser"
)

var lexicalProductions = map[parser.TokenKind]string{
	parser.TokenIdent:         "identifier",
	parser.TokenIntLiteral:    "int_literal",
	parser.TokenFloatLiteral:  "float_literal",
	parser.TokenCharLiteral:   "char_literal",
	parser.TokenStringLiteral: "string_literal",
	parser.TokenTextBlock:     "text_block",
}

// The lexer and the lexical productions of the grammar must agree.
func TestLexerTokensMatchGrammar(t *testing.T) {
	inputs := []string{
		"abc", "_x1", "$y",
		"0", "123", "1_000_000", "123L", "0x1F", "0xDEAD_BEEF", "0b1010", "017",
		"3.14", "3.14f", "3.14d", ".5", "1e10", "1.5e-10", "1.5E+10",
		`'a'`, `'\''`, `'\\'`,
		`"hello"`, `"hello world"`, `"with \"escapes\""`, `"with\nnewline"`, `""`,
		"\"\"\"\n    hello\n    \"\"\"",
	}

	g, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m := NewMatcher(g)

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tok := parser.NewLexer([]byte(input), "test.java").NextToken()
			if tok.Literal != input {
				t.Fatalf("lexer read %q, want the whole input", tok.Literal)
			}
			production, ok := lexicalProductions[tok.Kind]
			if !ok {
				t.Fatalf("no production for token kind %v", tok.Kind)
			}
			matched, err := m.Match(production, input)
			if err != nil {
				t.Fatal(err)
			}
			if !matched {
				t.Errorf("%s does not match %q", production, input)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		production string
		text       string
		want       bool
	}{
		{"identifier", "a1", true},
		{"identifier", "1a", false},
		{"int_literal", "0b12", false},
		{"float_literal", "1", false},
		{"float_literal", "1f", true},
		{"string_literal", `"a"b"`, false},
		{"char_literal", "''", false},
		{"escape", `\q`, false},
	}

	for _, tt := range tests {
		t.Run(tt.production+" "+tt.text, func(t *testing.T) {
			got, err := Match(tt.production, tt.text)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Match(%s, %q) = %v, want %v", tt.production, tt.text, got, tt.want)
			}
		})
	}

	if _, err := Match("nope", "x"); err == nil {
		t.Error("expected an error for an unknown production")
	}
}

func TestLongest(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m := NewMatcher(g)

	tests := []struct {
		production string
		text       string
		want       int
	}{
		{"identifier", "abc+d", 3},
		{"decimals", "12.5", 2},
		{"float_literal", "1.5e3x", 5},
		{"string_literal", `"a" + "b"`, 3},
		{"identifier", "+", -1},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := m.Longest(tt.production, tt.text); got != tt.want {
				t.Errorf("Longest(%s, %q) = %d, want %d", tt.production, tt.text, got, tt.want)
			}
		})
	}
}
