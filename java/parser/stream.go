package parser

// Mark is a saved cursor position of a TokenSource.
type Mark int

// TokenSource is the token stream the parser consumes. Peek never consumes,
// Advance consumes one token, and Reset rewinds to a Mark exactly. Past the
// last token a source keeps returning its TokenEOF token.
type TokenSource interface {
	Peek(offset int) Token
	Advance() Token
	Mark() Mark
	Reset(Mark)
}

// Stream is a TokenSource over a fully lexed, immutable token slice.
type Stream struct {
	tokens []Token
	pos    int
}

// NewStream wraps tokens. Whitespace and comments are dropped and a
// trailing TokenEOF is appended when missing.
func NewStream(tokens []Token) *Stream {
	s := &Stream{tokens: make([]Token, 0, len(tokens)+1)}
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenWhitespace, TokenComment, TokenLineComment:
			continue
		}
		s.tokens = append(s.tokens, tok)
		if tok.Kind == TokenEOF {
			return s
		}
	}
	var end Span
	if n := len(s.tokens); n > 0 {
		end = Span{Start: s.tokens[n-1].Span.End, End: s.tokens[n-1].Span.End}
	}
	s.tokens = append(s.tokens, Token{Kind: TokenEOF, Span: end})
	return s
}

// Tokenize runs l to completion and returns a Stream over its tokens.
func Tokenize(l *Lexer) *Stream {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	return NewStream(tokens)
}

func (s *Stream) Peek(offset int) Token {
	i := s.pos + offset
	if i >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[i]
}

func (s *Stream) Advance() Token {
	tok := s.Peek(0)
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
	return tok
}

func (s *Stream) Mark() Mark {
	return Mark(s.pos)
}

func (s *Stream) Reset(m Mark) {
	s.pos = int(m)
}
