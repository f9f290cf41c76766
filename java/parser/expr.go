package parser

import "strings"

// parseExpression parses a binary chain optionally followed by ?: .
func (p *Parser) parseExpression() (*Node, error) {
	start := p.start()
	cond, err := p.parseBinary()
	if err != nil {
		return nil, err
	}
	if cond.Tag == TagLambdaExpression || !p.accept(TokenQuestion) {
		return cond, nil
	}
	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon, "':'"); err != nil {
		return nil, err
	}
	els, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Node{
		Tag:       TagIfElseExpression,
		Span:      p.span(start),
		Condition: cond,
		Then:      then,
		Else:      els,
	}, nil
}

// parseBinary treats every binary operator alike: the right operand is
// parsed by recursing into parseBinary, so a*b+c nests as a*(b+c).
func (p *Parser) parseBinary() (*Node, error) {
	start := p.start()
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if left.Tag == TagLambdaExpression {
		return left, nil
	}
	for p.accept(TokenInstanceof) {
		typ, err := p.parseTypeType()
		if err != nil {
			return nil, err
		}
		left = &Node{Tag: TagInstanceofExpression, Span: p.span(start), Expression: left, Type: typ}
	}
	op, n := p.binaryOperator()
	if n == 0 {
		return left, nil
	}
	for range n {
		p.advance()
	}
	right, err := p.parseBinary()
	if err != nil {
		return nil, err
	}
	return &Node{
		Tag:      TagOperatorExpression,
		Span:     p.span(start),
		Left:     left,
		Operator: op,
		Right:    right,
	}, nil
}

var binaryOperators = map[TokenKind]bool{
	TokenOr:            true,
	TokenAnd:           true,
	TokenBitOr:         true,
	TokenBitXor:        true,
	TokenBitAnd:        true,
	TokenEQ:            true,
	TokenNE:            true,
	TokenLT:            true,
	TokenLE:            true,
	TokenShl:           true,
	TokenPlus:          true,
	TokenMinus:         true,
	TokenStar:          true,
	TokenSlash:         true,
	TokenPercent:       true,
	TokenAssign:        true,
	TokenPlusAssign:    true,
	TokenMinusAssign:   true,
	TokenStarAssign:    true,
	TokenSlashAssign:   true,
	TokenPercentAssign: true,
	TokenAndAssign:     true,
	TokenOrAssign:      true,
	TokenXorAssign:     true,
	TokenShlAssign:     true,
}

// binaryOperator returns the operator at the cursor and how many tokens it
// spans. The lexer never joins '>', so > >= >> >>= >>> >>>= are assembled
// here from adjacent tokens.
func (p *Parser) binaryOperator() (string, int) {
	tok := p.peek()
	if binaryOperators[tok.Kind] {
		return tok.Literal, 1
	}
	if tok.Kind != TokenGT {
		return "", 0
	}
	op, n := ">", 1
	prev := tok
	for n < 3 {
		next := p.peekN(n)
		if next.Kind != TokenGT || !prev.adjacent(next) {
			break
		}
		op += ">"
		n++
		prev = next
	}
	if next := p.peekN(n); next.Kind == TokenAssign && prev.adjacent(next) {
		op += "="
		n++
	}
	return op, n
}

func (p *Parser) parseUnary() (*Node, error) {
	start := p.start()
	switch p.peek().Kind {
	case TokenPlus, TokenMinus, TokenIncrement, TokenDecrement, TokenBitNot, TokenNot:
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{Tag: TagPrefixExpression, Span: p.span(start), Operator: op.Literal, Expression: operand}, nil
	}
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if primary.Tag == TagLambdaExpression || primary.Tag == TagCastExpression {
		return primary, nil
	}
	expr, err := p.parseChain(primary)
	if err != nil {
		return nil, err
	}
	for p.match(TokenIncrement, TokenDecrement) {
		op := p.advance()
		expr = &Node{Tag: TagPostfixExpression, Span: p.span(start), Operator: op.Literal, Expression: expr}
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (*Node, error) {
	tok := p.peek()
	switch {
	case tok.Kind == TokenThis:
		p.advance()
		return &Node{Tag: TagThis, Span: tok.Span}, nil
	case tok.Kind == TokenSuper:
		p.advance()
		return &Node{Tag: TagSuper, Span: tok.Span}, nil
	case tok.Kind == TokenNull:
		p.advance()
		return &Node{Tag: TagNull, Span: tok.Span}, nil
	case isLiteralKind(tok.Kind):
		p.advance()
		return &Node{Tag: literalTag(tok), Span: tok.Span, Value: tok.Literal}, nil
	case tok.Kind == TokenLParen:
		return p.parseParenthesized()
	case tok.Kind == TokenAt:
		return p.parseAnnotatedTypeReference()
	case tok.Kind == TokenNew:
		return p.parseCreation()
	case isPrimitiveKind(tok.Kind) || tok.Kind == TokenVoid:
		return p.parsePrimitiveTypeReference()
	case tok.Kind == TokenIdent:
		switch p.peekN(1).Kind {
		case TokenArrow:
			return p.parseLambda()
		case TokenLParen:
			return p.parseMethodInvocation(tok.Span.Start, nil)
		}
		p.advance()
		return identifier(tok), nil
	}
	return nil, p.fail("expression")
}

func (p *Parser) parseMethodInvocation(start Position, typeArgs *Node) (*Node, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	return &Node{
		Tag:           TagMethodInvocation,
		Span:          p.span(start),
		Name:          name,
		Arguments:     args,
		TypeArguments: typeArgs,
	}, nil
}

// atTypeSuffix reports whether a type used as an expression is followed by
// .class or ::, the only places such a type may appear.
func (p *Parser) atTypeSuffix() bool {
	return p.check(TokenColonColon) || (p.check(TokenDot) && p.peekN(1).Kind == TokenClass)
}

// parsePrimitiveTypeReference parses int.class, int[].class, void.class
// and int[]::new.
func (p *Parser) parsePrimitiveTypeReference() (*Node, error) {
	start := p.start()
	tok := p.advance()
	value := &Node{Tag: TagPrimitiveType, Span: tok.Span, Value: tok.Literal}
	dims := p.parseDims()
	if !p.atTypeSuffix() {
		return nil, p.fail("'.class' or '::'")
	}
	if dims == 0 {
		return value, nil
	}
	return &Node{Tag: TagTypeType, Span: p.span(start), Type: value, Dimensions: dims}, nil
}

// parseAnnotatedTypeReference parses the type in @A T.class or @A T[]::new.
func (p *Parser) parseAnnotatedTypeReference() (*Node, error) {
	typ, err := p.parseTypeType()
	if err != nil {
		return nil, err
	}
	if !p.atTypeSuffix() {
		return nil, p.fail("'.class' or '::'")
	}
	return typ, nil
}

// parseParenthesized decides between lambda, cast and parenthesized
// expression. A ( ... ) followed by -> is always a lambda; otherwise a cast
// is tried speculatively before falling back to a parenthesized expression.
func (p *Parser) parseParenthesized() (*Node, error) {
	start := p.start()
	closing, err := p.matchingParen()
	if err != nil {
		return nil, err
	}
	if p.peekN(closing+1).Kind == TokenArrow {
		open := p.peek()
		params, ok := p.speculate("lambda parameters", p.parseLambdaParameters)
		if !ok {
			return nil, newSyntaxError(ErrAmbiguity, "lambda parameters or parenthesized expression", open)
		}
		return p.finishLambda(start, params)
	}
	if typ, ok := p.speculate("cast", p.parseCastType); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{Tag: TagCastExpression, Span: p.span(start), Type: typ, Expression: operand}, nil
	}
	p.advance()
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen, "')'"); err != nil {
		return nil, err
	}
	return &Node{Tag: TagParExpression, Span: p.span(start), Expression: inner}, nil
}

// matchingParen returns the lookahead offset of the ')' closing the '(' at
// the cursor. Nothing is consumed.
func (p *Parser) matchingParen() (int, error) {
	var open []TokenKind
	for i := 0; ; i++ {
		tok := p.peekN(i)
		switch tok.Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			open = append(open, tok.Kind)
		case TokenRParen, TokenRBracket, TokenRBrace:
			if open[len(open)-1] != closerOf[tok.Kind] {
				return 0, newSyntaxError(ErrUnexpectedToken, "matching "+closerName(open[len(open)-1]), tok)
			}
			open = open[:len(open)-1]
			if len(open) == 0 {
				return i, nil
			}
		case TokenEOF:
			return 0, newSyntaxError(ErrUnterminatedConstruct, "')'", tok)
		}
	}
}

var closerOf = map[TokenKind]TokenKind{
	TokenRParen:   TokenLParen,
	TokenRBracket: TokenLBracket,
	TokenRBrace:   TokenLBrace,
}

func closerName(open TokenKind) string {
	for closer, opener := range closerOf {
		if opener == open {
			return "'" + closer.String() + "'"
		}
	}
	return ""
}

// parseCastType matches "( type )" followed by a token that can start the
// cast operand. Only primitive casts may be followed by + - ++ --, since
// (a) - b is a subtraction.
func (p *Parser) parseCastType() (*Node, error) {
	p.advance()
	typ, err := p.parseTypeType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen, "')'"); err != nil {
		return nil, err
	}
	kind := p.peek().Kind
	switch {
	case kind == TokenIdent, kind == TokenThis, kind == TokenSuper, kind == TokenNull,
		kind == TokenNew, kind == TokenLParen, kind == TokenNot, kind == TokenBitNot,
		kind == TokenAt, isLiteralKind(kind), isPrimitiveKind(kind):
		return typ, nil
	case kind == TokenPlus, kind == TokenMinus, kind == TokenIncrement, kind == TokenDecrement:
		if typ.Tag == TagPrimitiveType {
			return typ, nil
		}
	}
	return nil, p.fail("cast operand")
}

func (p *Parser) parseLambda() (*Node, error) {
	start := p.start()
	params, err := p.parseLambdaParameters()
	if err != nil {
		return nil, err
	}
	return p.finishLambda(start, params)
}

func (p *Parser) finishLambda(start Position, params *Node) (*Node, error) {
	if _, err := p.expect(TokenArrow, "'->'"); err != nil {
		return nil, err
	}
	var body *Node
	var err error
	if p.check(TokenLBrace) {
		body, err = p.parseBlock()
	} else {
		body, err = p.parseExpression()
	}
	if err != nil {
		return nil, err
	}
	return &Node{Tag: TagLambdaExpression, Span: p.span(start), Parameters: params, Body: body}, nil
}

// parseLambdaParameters normalizes x, () and (x, y) to
// IDENTIFIERS{IDENTIFIER_LIST}; typed lists become FORMAL_PARAMETERS.
func (p *Parser) parseLambdaParameters() (*Node, error) {
	start := p.start()
	if p.check(TokenIdent) {
		name := identifier(p.advance())
		list := &Node{Tag: TagIdentifierList, Span: name.Span, Elements: []*Node{name}}
		return &Node{Tag: TagIdentifiers, Span: name.Span, Identifiers: list}, nil
	}
	if _, err := p.expect(TokenLParen, "'(' or identifier"); err != nil {
		return nil, err
	}
	if p.check(TokenRParen) {
		list := &Node{Tag: TagIdentifierList, Span: Span{Start: p.start(), End: p.start()}, Elements: []*Node{}}
		p.advance()
		return &Node{Tag: TagIdentifiers, Span: p.span(start), Identifiers: list}, nil
	}
	if p.check(TokenIdent) && p.peekIs(1, TokenComma, TokenRParen) {
		list, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen, "')'"); err != nil {
			return nil, err
		}
		return &Node{Tag: TagIdentifiers, Span: p.span(start), Identifiers: list}, nil
	}
	var params []*Node
	for {
		param, err := p.parseFormalParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.accept(TokenComma) {
			break
		}
	}
	if _, err := p.expect(TokenRParen, "')'"); err != nil {
		return nil, err
	}
	return &Node{Tag: TagFormalParameters, Span: p.span(start), Elements: params}, nil
}

// peekIs reports whether the token offset places ahead has one of kinds.
func (p *Parser) peekIs(offset int, kinds ...TokenKind) bool {
	next := p.peekN(offset).Kind
	for _, kind := range kinds {
		if next == kind {
			return true
		}
	}
	return false
}

func (p *Parser) parseFormalParameter() (*Node, error) {
	start := p.start()
	var modifiers []*Node
	for {
		if p.check(TokenFinal) {
			tok := p.advance()
			modifiers = append(modifiers, &Node{Tag: TagModifier, Span: tok.Span, Value: tok.Literal})
			continue
		}
		if p.check(TokenAt) {
			annotation, err := p.parseAnnotation()
			if err != nil {
				return nil, err
			}
			modifiers = append(modifiers, annotation)
			continue
		}
		break
	}
	typ, err := p.parseTypeType()
	if err != nil {
		return nil, err
	}
	dots := p.accept(TokenEllipsis)
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	return &Node{
		Tag:       TagFormalParameter,
		Span:      p.span(start),
		Modifiers: modifiers,
		Type:      typ,
		Dots:      dots,
		Name:      name,
	}, nil
}

// parseBlock parses a lambda body. Statements other than expression
// statements are kept as opaque STATEMENT text.
func (p *Parser) parseBlock() (*Node, error) {
	start := p.start()
	if _, err := p.expect(TokenLBrace, "'{'"); err != nil {
		return nil, err
	}
	statements := []*Node{}
	for !p.check(TokenRBrace) {
		if p.check(TokenEOF) {
			return nil, p.fail("'}'")
		}
		stmt, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	p.advance()
	return &Node{Tag: TagBlock, Span: p.span(start), Elements: statements}, nil
}

func (p *Parser) parseBlockStatement() (*Node, error) {
	start := p.start()
	stmt, ok := p.speculate("expression statement", func() (*Node, error) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenSemicolon, "';'"); err != nil {
			return nil, err
		}
		return &Node{Tag: TagExpressionStatement, Span: p.span(start), Expression: expr}, nil
	})
	if ok {
		return stmt, nil
	}
	return p.skipStatement()
}

// skipStatement consumes tokens up to a ';' or a balanced '}' at nesting
// depth zero.
func (p *Parser) skipStatement() (*Node, error) {
	start := p.start()
	var text []string
	depth := 0
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenEOF:
			return nil, p.fail("'}'")
		case TokenLBrace, TokenLParen, TokenLBracket:
			depth++
		case TokenRBrace, TokenRParen, TokenRBracket:
			if depth == 0 {
				if tok.Kind == TokenRBrace && len(text) > 0 {
					return &Node{Tag: TagStatement, Span: p.span(start), Value: strings.Join(text, " ")}, nil
				}
				return nil, p.fail("statement")
			}
			depth--
		}
		p.advance()
		text = append(text, tok.Literal)
		if depth == 0 && (tok.Kind == TokenSemicolon || tok.Kind == TokenRBrace) {
			return &Node{Tag: TagStatement, Span: p.span(start), Value: strings.Join(text, " ")}, nil
		}
	}
}
