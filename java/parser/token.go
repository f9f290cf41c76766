package parser

import (
	"fmt"
	"sort"
	"strings"
)

// Position is a point in the source. Offset counts bytes from the start of
// the input; Line and Column are 1-based, Column counting runes.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is the half-open source range [Start, End) of a token or node.
type Span struct {
	Start Position
	End   Position
}

// Contains reports whether offset falls inside the span. The end is exclusive.
func (s Span) Contains(offset int) bool {
	return s.Start.Offset <= offset && offset < s.End.Offset
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment

	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock

	// TokenReserved is a Java keyword with no role inside an expression,
	// such as for or public. No production accepts it.
	TokenReserved

	keywordsBegin
	TokenTrue
	TokenFalse
	TokenNull
	TokenThis
	TokenSuper
	TokenNew
	TokenClass
	TokenInstanceof
	TokenExtends
	TokenFinal
	TokenVoid
	TokenBoolean
	TokenByte
	TokenChar
	TokenShort
	TokenInt
	TokenLong
	TokenFloat
	TokenDouble
	keywordsEnd

	operatorsBegin
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt
	TokenColonColon
	TokenColon
	TokenQuestion
	TokenArrow

	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement

	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	operatorsEnd
)

// tokenText holds the name of every token class and the spelling of every
// keyword and operator. No entry joins '>' with a following '>' or '=';
// see Lexer.operator.
var tokenText = [...]string{
	TokenEOF:         "EOF",
	TokenError:       "Error",
	TokenWhitespace:  "Whitespace",
	TokenComment:     "Comment",
	TokenLineComment: "LineComment",

	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTextBlock:     "TextBlock",
	TokenReserved:      "Reserved",

	TokenTrue:       "true",
	TokenFalse:      "false",
	TokenNull:       "null",
	TokenThis:       "this",
	TokenSuper:      "super",
	TokenNew:        "new",
	TokenClass:      "class",
	TokenInstanceof: "instanceof",
	TokenExtends:    "extends",
	TokenFinal:      "final",
	TokenVoid:       "void",
	TokenBoolean:    "boolean",
	TokenByte:       "byte",
	TokenChar:       "char",
	TokenShort:      "short",
	TokenInt:        "int",
	TokenLong:       "long",
	TokenFloat:      "float",
	TokenDouble:     "double",

	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenLBrace:     "{",
	TokenRBrace:     "}",
	TokenLBracket:   "[",
	TokenRBracket:   "]",
	TokenSemicolon:  ";",
	TokenComma:      ",",
	TokenDot:        ".",
	TokenEllipsis:   "...",
	TokenAt:         "@",
	TokenColonColon: "::",
	TokenColon:      ":",
	TokenQuestion:   "?",
	TokenArrow:      "->",

	TokenAssign:    "=",
	TokenEQ:        "==",
	TokenNE:        "!=",
	TokenLT:        "<",
	TokenLE:        "<=",
	TokenGT:        ">",
	TokenAnd:       "&&",
	TokenOr:        "||",
	TokenNot:       "!",
	TokenBitAnd:    "&",
	TokenBitOr:     "|",
	TokenBitXor:    "^",
	TokenBitNot:    "~",
	TokenShl:       "<<",
	TokenPlus:      "+",
	TokenMinus:     "-",
	TokenStar:      "*",
	TokenSlash:     "/",
	TokenPercent:   "%",
	TokenIncrement: "++",
	TokenDecrement: "--",

	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenShlAssign:     "<<=",

	operatorsEnd: "",
}

// reservedWords lex as TokenReserved. Contextual keywords (var, yield,
// record, ...) are identifiers in expression position and are not listed.
var reservedWords = strings.Fields(`
	abstract assert break case catch const continue default do else enum
	finally for goto if implements import interface native package private
	protected public return static strictfp switch synchronized throw throws
	transient try volatile while`)

var keywordKinds = func() map[string]TokenKind {
	m := make(map[string]TokenKind)
	for k := keywordsBegin + 1; k < keywordsEnd; k++ {
		m[tokenText[k]] = k
	}
	for _, word := range reservedWords {
		m[word] = TokenReserved
	}
	return m
}()

type operator struct {
	text string
	kind TokenKind
}

// operators is ordered longest first so the first prefix match wins.
var operators = func() []operator {
	var ops []operator
	for k := operatorsBegin + 1; k < operatorsEnd; k++ {
		ops = append(ops, operator{text: tokenText[k], kind: k})
	}
	sort.SliceStable(ops, func(i, j int) bool {
		return len(ops[i].text) > len(ops[j].text)
	})
	return ops
}()

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenText) || tokenText[k] == "" {
		return "Unknown"
	}
	return tokenText[k]
}

// LookupKeyword returns the keyword kind for ident, TokenReserved for a
// keyword that cannot appear in an expression, or TokenIdent.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywordKinds[ident]; ok {
		return kind
	}
	return TokenIdent
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

// describe renders the token for error messages.
func (t Token) describe() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return fmt.Sprintf("identifier %q", t.Literal)
	case TokenReserved:
		return fmt.Sprintf("keyword %q", t.Literal)
	}
	return fmt.Sprintf("%q", t.Literal)
}

// unclosed reports whether t is a text block or block comment that ran
// into the end of input.
func (t Token) unclosed() bool {
	if t.Kind != TokenError {
		return false
	}
	return strings.HasPrefix(t.Literal, `"""`) || strings.HasPrefix(t.Literal, "/*")
}

// adjacent reports whether next starts exactly where t ends.
func (t Token) adjacent(next Token) bool {
	return t.Span.End.Offset == next.Span.Start.Offset
}

func isPrimitiveKind(kind TokenKind) bool {
	return TokenBoolean <= kind && kind <= TokenDouble
}

func isLiteralKind(kind TokenKind) bool {
	switch kind {
	case TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral,
		TokenStringLiteral, TokenTextBlock, TokenTrue, TokenFalse:
		return true
	}
	return false
}
