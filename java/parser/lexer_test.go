package parser

import (
	"testing"
)

// lex returns every token of input except whitespace and comments.
func lex(input string) []Token {
	lexer := NewLexer([]byte(input), "test.java")
	var tokens []Token
	for {
		tok := lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace, TokenComment, TokenLineComment:
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func kindsOf(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func checkKinds(t *testing.T, input string, want ...TokenKind) {
	t.Helper()
	got := kindsOf(lex(input))
	if len(got) != len(want) {
		t.Fatalf("lex(%q) = %v, want %v", input, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("lex(%q) token %d = %v, want %v", input, i, got[i], want[i])
		}
	}
}

// checkSingle lexes input as exactly one token of the given kind.
func checkSingle(t *testing.T, input string, kind TokenKind) {
	t.Helper()
	tok := NewLexer([]byte(input), "test.java").NextToken()
	if tok.Kind != kind {
		t.Errorf("Kind = %v, want %v", tok.Kind, kind)
	}
	if tok.Literal != input {
		t.Errorf("Literal = %q, want %q", tok.Literal, input)
	}
}

func TestLexerSequences(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"this instanceof boolean", []TokenKind{TokenThis, TokenInstanceof, TokenBoolean, TokenEOF}},
		{"B.C::A", []TokenKind{TokenIdent, TokenDot, TokenIdent, TokenColonColon, TokenIdent, TokenEOF}},
		{"@Bean A.class", []TokenKind{TokenAt, TokenIdent, TokenIdent, TokenDot, TokenClass, TokenEOF}},
		{"// comment\nthis", []TokenKind{TokenThis, TokenEOF}},
		{"/* block */ this", []TokenKind{TokenThis, TokenEOF}},
		{"(a) -> {}", []TokenKind{TokenLParen, TokenIdent, TokenRParen, TokenArrow, TokenLBrace, TokenRBrace, TokenEOF}},
		{"a[1].b", []TokenKind{TokenIdent, TokenLBracket, TokenIntLiteral, TokenRBracket, TokenDot, TokenIdent, TokenEOF}},
		{"1..2", []TokenKind{TokenIntLiteral, TokenDot, TokenFloatLiteral, TokenEOF}},
		{"1.f", []TokenKind{TokenIntLiteral, TokenDot, TokenIdent, TokenEOF}},
		{"x-->0", []TokenKind{TokenIdent, TokenDecrement, TokenGT, TokenIntLiteral, TokenEOF}},
		{"a/=b/c", []TokenKind{TokenIdent, TokenSlashAssign, TokenIdent, TokenSlash, TokenIdent, TokenEOF}},
		{"for (;;)", []TokenKind{TokenReserved, TokenLParen, TokenSemicolon, TokenSemicolon, TokenRParen, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checkKinds(t, tt.input, tt.want...)
		})
	}
}

func TestLexerGreaterThanIsNeverJoined(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenKind
	}{
		{">=", []TokenKind{TokenGT, TokenAssign, TokenEOF}},
		{">>", []TokenKind{TokenGT, TokenGT, TokenEOF}},
		{">>>", []TokenKind{TokenGT, TokenGT, TokenGT, TokenEOF}},
		{">>=", []TokenKind{TokenGT, TokenGT, TokenAssign, TokenEOF}},
		{"List<List<A>>", []TokenKind{TokenIdent, TokenLT, TokenIdent, TokenLT, TokenIdent, TokenGT, TokenGT, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checkKinds(t, tt.input, tt.want...)
		})
	}

	toks := lex(">> >")
	if !toks[0].adjacent(toks[1]) {
		t.Error("the two '>' of '>>' should be adjacent")
	}
	if toks[1].adjacent(toks[2]) {
		t.Error("'>' separated by a space should not be adjacent")
	}
}

func TestLexerWords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"class", TokenClass},
		{"instanceof", TokenInstanceof},
		{"void", TokenVoid},
		{"int", TokenInt},
		{"new", TokenNew},
		{"super", TokenSuper},
		{"null", TokenNull},
		{"final", TokenFinal},
		{"return", TokenReserved},
		{"synchronized", TokenReserved},
		{"var", TokenIdent},
		{"record", TokenIdent},
		{"_private", TokenIdent},
		{"$special", TokenIdent},
		{"with123Numbers", TokenIdent},
		{"größe", TokenIdent},
		{"π2", TokenIdent},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checkSingle(t, tt.input, tt.kind)
		})
	}
}

func TestLexerOperators(t *testing.T) {
	for k := operatorsBegin + 1; k < operatorsEnd; k++ {
		text := k.String()
		t.Run(text, func(t *testing.T) {
			checkSingle(t, text, k)
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"0", TokenIntLiteral},
		{"123", TokenIntLiteral},
		{"1_000_000", TokenIntLiteral},
		{"123L", TokenIntLiteral},
		{"0x1F", TokenIntLiteral},
		{"0xDEAD_BEEF", TokenIntLiteral},
		{"0b1010", TokenIntLiteral},
		{"017", TokenIntLiteral},
		{"3.14", TokenFloatLiteral},
		{"3.14f", TokenFloatLiteral},
		{"3.14d", TokenFloatLiteral},
		{"1.", TokenFloatLiteral},
		{".5", TokenFloatLiteral},
		{"1e10", TokenFloatLiteral},
		{"1.5e-10", TokenFloatLiteral},
		{"1.5E+10", TokenFloatLiteral},
		{"10d", TokenFloatLiteral},
		{"0x1.8p1", TokenFloatLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checkSingle(t, tt.input, tt.kind)
		})
	}
}

func TestLexerQuoted(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{`"hello world"`, TokenStringLiteral},
		{`"with \"escapes\""`, TokenStringLiteral},
		{`"with\nnewline"`, TokenStringLiteral},
		{`""`, TokenStringLiteral},
		{`'a'`, TokenCharLiteral},
		{`'\''`, TokenCharLiteral},
		{`'\\'`, TokenCharLiteral},
		{`"unterminated`, TokenError},
		{`"ends in escape\`, TokenError},
		{`'x`, TokenError},
		{"\"\"\"\n    hello\n    \"\"\"", TokenTextBlock},
		{"\"\"\"\n  a \\\"\"\" b\n\"\"\"", TokenTextBlock},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			checkSingle(t, tt.input, tt.kind)
		})
	}
}

func TestLexerStringStopsAtNewline(t *testing.T) {
	toks := lex("\"open\nx")
	if toks[0].Kind != TokenError || toks[0].Literal != `"open` {
		t.Errorf("first token = %v %q, want an error token for the open string", toks[0].Kind, toks[0].Literal)
	}
	if toks[1].Kind != TokenIdent || toks[1].Span.Start.Line != 2 {
		t.Errorf("second token = %v on line %d, want identifier on line 2", toks[1].Kind, toks[1].Span.Start.Line)
	}
}

func TestLexerUnclosed(t *testing.T) {
	tests := []struct {
		input    string
		unclosed bool
	}{
		{"/* open", true},
		{"\"\"\"\nopen", true},
		{`"open`, false},
		{"#", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewLexer([]byte(tt.input), "test.java").NextToken()
			if tok.Kind != TokenError {
				t.Fatalf("Kind = %v, want %v", tok.Kind, TokenError)
			}
			if tok.unclosed() != tt.unclosed {
				t.Errorf("unclosed() = %v, want %v", tok.unclosed(), tt.unclosed)
			}
		})
	}
}

func TestLexerComments(t *testing.T) {
	lexer := NewLexer([]byte("// line\n/* a\n b */"), "test.java")
	want := []struct {
		kind    TokenKind
		literal string
	}{
		{TokenLineComment, "// line"},
		{TokenWhitespace, "\n"},
		{TokenComment, "/* a\n b */"},
		{TokenEOF, ""},
	}
	for i, w := range want {
		tok := lexer.NextToken()
		if tok.Kind != w.kind || tok.Literal != w.literal {
			t.Errorf("token %d = %v %q, want %v %q", i, tok.Kind, tok.Literal, w.kind, w.literal)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	toks := lex("foo\n  bar\nπ + x")

	tests := []struct {
		literal string
		start   Position
		end     Position
	}{
		{"foo", Position{File: "test.java", Offset: 0, Line: 1, Column: 1}, Position{File: "test.java", Offset: 3, Line: 1, Column: 4}},
		{"bar", Position{File: "test.java", Offset: 6, Line: 2, Column: 3}, Position{File: "test.java", Offset: 9, Line: 2, Column: 6}},
		{"π", Position{File: "test.java", Offset: 10, Line: 3, Column: 1}, Position{File: "test.java", Offset: 12, Line: 3, Column: 2}},
		{"+", Position{File: "test.java", Offset: 13, Line: 3, Column: 3}, Position{File: "test.java", Offset: 14, Line: 3, Column: 4}},
	}

	for i, tt := range tests {
		tok := toks[i]
		if tok.Literal != tt.literal {
			t.Fatalf("token %d = %q, want %q", i, tok.Literal, tt.literal)
		}
		if tok.Span.Start != tt.start || tok.Span.End != tt.end {
			t.Errorf("%q spans %v-%v, want %v-%v", tt.literal, tok.Span.Start, tok.Span.End, tt.start, tt.end)
		}
	}

	eof := toks[len(toks)-1]
	if eof.Kind != TokenEOF || eof.Span.Start.Offset != 16 || eof.Span.Start != eof.Span.End {
		t.Errorf("EOF span = %v-%v", eof.Span.Start, eof.Span.End)
	}
}

func TestLexerSetLine(t *testing.T) {
	lexer := NewLexer([]byte("a"), "doc.jexpr")
	lexer.SetLine(7)
	tok := lexer.NextToken()
	if got := tok.Span.Start.String(); got != "doc.jexpr:7:1" {
		t.Errorf("position = %q, want %q", got, "doc.jexpr:7:1")
	}
}

func TestLexerEOFRepeats(t *testing.T) {
	lexer := NewLexer([]byte("a"), "")
	lexer.NextToken()
	for range 3 {
		if tok := lexer.NextToken(); tok.Kind != TokenEOF {
			t.Fatalf("Kind = %v, want %v", tok.Kind, TokenEOF)
		}
	}
}
