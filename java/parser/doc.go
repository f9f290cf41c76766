// Package parser is a recursive-descent parser for Java expressions.
//
// # Overview
//
// The parser turns source text into a tree of tagged nodes for one entry
// production: an expression, a type, an annotation, and so on. It does not
// recover from errors; a parse either returns a complete tree or the first
// syntax error.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Stream    │
//	│  (bytes)    │     │  (tokens)   │     │ (peek/mark) │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	                                        ┌─────────────┐
//	                                        │   Parser    │
//	                                        │   (*Node)   │
//	                                        └─────────────┘
//
// The parser only talks to a TokenSource:
//
//	type TokenSource interface {
//	    Peek(offset int) Token
//	    Advance() Token
//	    Mark() Mark
//	    Reset(Mark)
//	}
//
// Ambiguous constructs are resolved by marking the source, trying one
// alternative and resetting on failure:
//
//   - ( ... ) followed by -> is a lambda, otherwise a cast is tried before
//     a parenthesized expression
//   - x -> ... is a lambda, x( is a method invocation
//   - a < b is a comparison unless type arguments and :: follow
//
// # Node Shapes
//
// Every node is a *Node with a Tag. The fields that belong to a tag are
// listed by Node.Fields, which also drives JSON encoding, tree dumps and
// structural equality. A few examples:
//
//	this instanceof boolean
//	INSTANCEOF_EXPRESSION
//	  expression: THIS
//	  instanceof: PRIMITIVE_TYPE value="boolean"
//
//	B.C::A
//	QUALIFIED_EXPRESSION
//	  expression: IDENTIFIER value="B"
//	  rest: METHOD_REFERENCE
//	    reference: IDENTIFIER value="C"
//	    name: IDENTIFIER value="A"
//
// Qualified chains nest to the left: a.b.c is
// QUALIFIED_EXPRESSION{QUALIFIED_EXPRESSION{a, b}, c}.
//
// Binary operators all share one right-recursive production, so
// a*b+c is OPERATOR_EXPRESSION{a, *, OPERATOR_EXPRESSION{b, +, c}}.
//
// # Entry Points
//
//	// Parse lexes src and parses one entry production. The whole input
//	// must be consumed.
//	func Parse(src string, entry Entry, opts ...Option) (*Node, error)
//
//	// ParseFrom parses from an existing token source and leaves the
//	// cursor after the production.
//	func ParseFrom(ts TokenSource, entry Entry, opts ...Option) (*Node, error)
//
//	// New reads from r on demand; IsComplete tells a REPL whether more
//	// input is needed before calling Finish.
//	func New(r io.Reader, entry Entry, opts ...Option) *Parser
//
// # Errors
//
// Errors are *SyntaxError values wrapping one of ErrUnexpectedToken,
// ErrUnterminatedConstruct or ErrAmbiguity:
//
//	_, err := parser.Parse("this +", parser.EntryExpression)
//	errors.Is(err, parser.ErrUnterminatedConstruct) // true
//
// # Thread Safety
//
// A Parser is not safe for concurrent use, but parsers with their own
// token sources can run in parallel. The package has no mutable globals.
package parser
