package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const eof = -1

// cursor is an input offset together with the line and column it maps to.
type cursor struct {
	offset int
	line   int
	column int
}

// Lexer splits source text into tokens, whitespace and comments included.
// Each scan starts at start, reads runes with nextRune until the token is
// complete and then emits the text between start and cur.
type Lexer struct {
	input string
	file  string
	start cursor
	cur   cursor
	prev  cursor
}

func NewLexer(input []byte, file string) *Lexer {
	origin := cursor{line: 1, column: 1}
	return &Lexer{
		input: string(input),
		file:  file,
		start: origin,
		cur:   origin,
		prev:  origin,
	}
}

// SetLine changes the line number reported for the current position.
func (l *Lexer) SetLine(line int) {
	l.cur.line = line
	l.start.line = line
	l.prev.line = line
}

func (l *Lexer) Position() Position {
	return l.position(l.cur)
}

func (l *Lexer) position(c cursor) Position {
	return Position{File: l.file, Offset: c.offset, Line: c.line, Column: c.column}
}

// NextToken returns the next token. At the end of input it returns
// TokenEOF with an empty span, and keeps doing so.
func (l *Lexer) NextToken() Token {
	l.start = l.cur
	r := l.nextRune()
	switch {
	case r == eof:
		return l.emit(TokenEOF)
	case isSpace(r):
		l.acceptRun(isSpace)
		return l.emit(TokenWhitespace)
	case r == '/' && l.accept("/"):
		l.acceptRun(func(r rune) bool { return r != '\n' })
		return l.emit(TokenLineComment)
	case r == '/' && l.accept("*"):
		return l.blockComment()
	case isJavaLetter(r):
		l.acceptRun(isJavaLetterOrDigit)
		return l.emit(LookupKeyword(l.pending()))
	case isDecimal(r), r == '.' && isDecimal(l.peekRune()):
		l.rewind()
		return l.number()
	case r == '\'':
		return l.quoted('\'', TokenCharLiteral)
	case r == '"' && l.lookingAt(`""`):
		l.consume(`""`)
		return l.textBlock()
	case r == '"':
		return l.quoted('"', TokenStringLiteral)
	}
	l.rewind()
	return l.operator()
}

func (l *Lexer) blockComment() Token {
	for {
		switch l.nextRune() {
		case eof:
			return l.emit(TokenError)
		case '*':
			if l.accept("/") {
				return l.emit(TokenComment)
			}
		}
	}
}

// number scans integer and floating-point literals, with '_' allowed
// between digits. A '.' belongs to the literal when a digit follows it, or
// when it ends a literal and is followed by neither a letter nor another
// '.', so a[1].b and 1..2 keep their dots.
func (l *Lexer) number() Token {
	if l.accept("0") {
		switch {
		case l.accept("xX"):
			return l.hexNumber()
		case l.accept("bB"):
			l.acceptRun(isBinaryDigit)
			l.accept("lL")
			return l.emit(TokenIntLiteral)
		}
	}

	float := false
	l.acceptRun(isDecimalDigit)
	if l.lookingAt(".") && l.dotContinuesNumber() {
		l.nextRune()
		l.acceptRun(isDecimalDigit)
		float = true
	}
	if l.accept("eE") {
		l.accept("+-")
		l.acceptRun(isDecimalDigit)
		float = true
	}
	if l.accept("fFdD") {
		float = true
	} else {
		l.accept("lL")
	}

	if float {
		return l.emit(TokenFloatLiteral)
	}
	return l.emit(TokenIntLiteral)
}

func (l *Lexer) dotContinuesNumber() bool {
	next, _ := utf8.DecodeRuneInString(l.input[l.cur.offset+1:])
	if isDecimal(next) {
		return true
	}
	return l.cur.offset > l.start.offset && !isJavaLetter(next) && next != '.'
}

func (l *Lexer) hexNumber() Token {
	l.acceptRun(isHexDigit)
	float := false
	if l.accept(".") {
		l.acceptRun(isHexDigit)
		float = true
	}
	if l.accept("pP") {
		l.accept("+-")
		l.acceptRun(isDecimalDigit)
		float = true
	}
	if float {
		l.accept("fFdD")
		return l.emit(TokenFloatLiteral)
	}
	l.accept("lL")
	return l.emit(TokenIntLiteral)
}

// quoted scans a char or string literal whose opening quote was read. A
// literal cut off by a newline or the end of input becomes TokenError, so
// the parser fails at the literal instead of somewhere past it.
func (l *Lexer) quoted(quote rune, kind TokenKind) Token {
	for {
		switch l.nextRune() {
		case quote:
			return l.emit(kind)
		case '\\':
			if r := l.nextRune(); r != eof && r != '\n' {
				continue
			}
			l.backup()
			return l.emit(TokenError)
		case eof, '\n':
			l.backup()
			return l.emit(TokenError)
		}
	}
}

func (l *Lexer) textBlock() Token {
	for !l.lookingAt(`"""`) {
		switch l.nextRune() {
		case eof:
			return l.emit(TokenError)
		case '\\':
			l.nextRune()
		}
	}
	l.consume(`"""`)
	return l.emit(TokenTextBlock)
}

// operator matches the longest operator or separator at the cursor. '>' is
// never joined with a following '>' or '='. The parser assembles shift and
// comparison operators from adjacent tokens, which lets nested type
// arguments such as List<List<A>> close one '>' at a time.
func (l *Lexer) operator() Token {
	for _, op := range operators {
		if l.lookingAt(op.text) {
			l.consume(op.text)
			return l.emit(op.kind)
		}
	}
	l.nextRune()
	return l.emit(TokenError)
}

func (l *Lexer) emit(kind TokenKind) Token {
	tok := Token{
		Kind:    kind,
		Span:    Span{Start: l.position(l.start), End: l.position(l.cur)},
		Literal: l.pending(),
	}
	l.start = l.cur
	return tok
}

func (l *Lexer) pending() string {
	return l.input[l.start.offset:l.cur.offset]
}

func (l *Lexer) nextRune() rune {
	l.prev = l.cur
	if l.cur.offset >= len(l.input) {
		return eof
	}
	r, width := utf8.DecodeRuneInString(l.input[l.cur.offset:])
	l.cur.offset += width
	if r == '\n' {
		l.cur.line++
		l.cur.column = 1
	} else {
		l.cur.column++
	}
	return r
}

// backup undoes the last nextRune. It cannot be repeated.
func (l *Lexer) backup() {
	l.cur = l.prev
}

// rewind returns to the start of the pending token.
func (l *Lexer) rewind() {
	l.cur = l.start
}

func (l *Lexer) peekRune() rune {
	r := l.nextRune()
	l.backup()
	return r
}

func (l *Lexer) lookingAt(s string) bool {
	return strings.HasPrefix(l.input[l.cur.offset:], s)
}

func (l *Lexer) consume(s string) {
	for range s {
		l.nextRune()
	}
}

func (l *Lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptRun(valid func(rune) bool) {
	for {
		r := l.nextRune()
		if r == eof || !valid(r) {
			l.backup()
			return
		}
	}
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isDecimal(r rune) bool {
	return '0' <= r && r <= '9'
}

func isDecimalDigit(r rune) bool {
	return isDecimal(r) || r == '_'
}

func isHexDigit(r rune) bool {
	return isDecimal(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F' || r == '_'
}

func isBinaryDigit(r rune) bool {
	return r == '0' || r == '1' || r == '_'
}

func isJavaLetter(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isJavaLetterOrDigit(r rune) bool {
	return isJavaLetter(r) || unicode.IsDigit(r)
}
