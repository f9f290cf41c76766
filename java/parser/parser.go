package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithStartLine(line int) Option {
	return func(p *Parser) {
		p.startLine = line
	}
}

// WithLogger replaces the "jexpr.parser" logger.
func WithLogger(logger commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = logger
	}
}

// Parser parses one entry production. All cursor state lives in its
// TokenSource, so independent parsers may run concurrently.
type Parser struct {
	file      string
	startLine int
	log       commonlog.Logger
	reader    io.Reader
	input     []byte
	entry     Entry
	ts        TokenSource
	last      Token
}

func newParser(entry Entry, opts []Option) *Parser {
	p := &Parser{
		startLine: 1,
		log:       commonlog.GetLogger("jexpr.parser"),
		entry:     entry,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// New returns a parser that reads its source from r when Finish or
// IsComplete is first called.
func New(r io.Reader, entry Entry, opts ...Option) *Parser {
	p := newParser(entry, opts)
	p.reader = r
	return p
}

// Parse parses src as entry and requires the whole input to be consumed.
func Parse(src string, entry Entry, opts ...Option) (*Node, error) {
	return New(strings.NewReader(src), entry, opts...).Finish()
}

// ParseFrom parses one entry production from ts and leaves the cursor
// just after it. Trailing tokens are not an error.
func ParseFrom(ts TokenSource, entry Entry, opts ...Option) (*Node, error) {
	p := newParser(entry, opts)
	p.ts = ts
	return p.parseEntry()
}

func (p *Parser) Entry() Entry {
	return p.entry
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// IsComplete reports whether it is safe to call Finish.
// It returns false while the input ends in the middle of a construct, for
// example "1 + " or "(a, b", and true once Finish would either succeed or
// fail for another reason.
func (p *Parser) IsComplete() bool {
	if err := p.readAll(); err != nil {
		return false
	}
	if len(strings.TrimSpace(string(p.input))) == 0 {
		return false
	}
	_, err := p.run()
	return !errors.Is(err, ErrUnterminatedConstruct)
}

func (p *Parser) Finish() (*Node, error) {
	if err := p.readAll(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return p.run()
}

func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.ts = nil
	p.last = Token{}
}

func (p *Parser) run() (*Node, error) {
	lexer := NewLexer(p.input, p.file)
	lexer.SetLine(p.startLine)
	p.ts = Tokenize(lexer)
	p.last = Token{}
	node, err := p.parseEntry()
	if err != nil {
		return nil, err
	}
	if !p.check(TokenEOF) {
		return nil, p.fail("end of input")
	}
	return node, nil
}

func (p *Parser) parseEntry() (*Node, error) {
	fn, ok := entryFuncs[p.entry]
	if !ok {
		return nil, fmt.Errorf("unknown entry production %d", int(p.entry))
	}
	p.log.Debugf("parsing %s at %s", p.entry, p.peek().Span.Start)
	return fn(p)
}

func (p *Parser) peek() Token {
	return p.ts.Peek(0)
}

func (p *Parser) peekN(n int) Token {
	return p.ts.Peek(n)
}

func (p *Parser) advance() Token {
	tok := p.ts.Advance()
	if tok.Kind != TokenEOF {
		p.last = tok
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// accept consumes the current token if it has the given kind.
func (p *Parser) accept(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind, expected string) (Token, error) {
	if !p.check(kind) {
		return Token{}, p.fail(expected)
	}
	return p.advance(), nil
}

// fail reports the current token. Running out of input, including inside
// a text block or comment, is always an unterminated construct.
func (p *Parser) fail(expected string) error {
	tok := p.peek()
	kind := ErrUnexpectedToken
	if tok.Kind == TokenEOF || tok.unclosed() {
		kind = ErrUnterminatedConstruct
	}
	return newSyntaxError(kind, expected, tok)
}

func (p *Parser) start() Position {
	return p.peek().Span.Start
}

// span covers everything consumed since start.
func (p *Parser) span(start Position) Span {
	end := p.last.Span.End
	if end.Offset < start.Offset {
		end = start
	}
	return Span{Start: start, End: end}
}

type savepoint struct {
	mark Mark
	last Token
}

func (p *Parser) save() savepoint {
	return savepoint{mark: p.ts.Mark(), last: p.last}
}

func (p *Parser) restore(sp savepoint) {
	p.ts.Reset(sp.mark)
	p.last = sp.last
}

// speculate runs fn and keeps its result only if it succeeds. On failure
// the cursor is restored exactly and the error is discarded.
func (p *Parser) speculate(what string, fn func() (*Node, error)) (*Node, bool) {
	sp := p.save()
	node, err := fn()
	if err != nil {
		p.log.Debugf("%s not matched at %s: %v", what, p.peek().Span.Start, err)
		p.restore(sp)
		return nil, false
	}
	return node, true
}
