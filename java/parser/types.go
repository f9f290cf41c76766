package parser

func identifier(tok Token) *Node {
	return &Node{Tag: TagIdentifier, Span: tok.Span, Value: tok.Literal}
}

func (p *Parser) parseIdentifier() (*Node, error) {
	tok, err := p.expect(TokenIdent, "identifier")
	if err != nil {
		return nil, err
	}
	return identifier(tok), nil
}

func (p *Parser) parsePrimitiveType() (*Node, error) {
	if !isPrimitiveKind(p.peek().Kind) {
		return nil, p.fail("primitive type")
	}
	tok := p.advance()
	return &Node{Tag: TagPrimitiveType, Span: tok.Span, Value: tok.Literal}, nil
}

// parseTypeType parses annotations, a primitive or class type and any
// number of [] pairs. The result is only wrapped in TYPE_TYPE when an
// annotation or a dimension was written.
func (p *Parser) parseTypeType() (*Node, error) {
	start := p.start()
	var modifiers []*Node
	for p.check(TokenAt) {
		annotation, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}
		modifiers = append(modifiers, annotation)
	}
	var value *Node
	var err error
	if isPrimitiveKind(p.peek().Kind) {
		value, err = p.parsePrimitiveType()
	} else {
		value, err = p.parseClassOrInterfaceType()
	}
	if err != nil {
		return nil, err
	}
	dims := p.parseDims()
	if len(modifiers) == 0 && dims == 0 {
		return value, nil
	}
	return &Node{
		Tag:        TagTypeType,
		Span:       p.span(start),
		Modifiers:  modifiers,
		Type:       value,
		Dimensions: dims,
	}, nil
}

func (p *Parser) parseDims() int {
	n := 0
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
		n++
	}
	return n
}

// parseClassOrInterfaceType returns a bare IDENTIFIER for a simple name.
func (p *Parser) parseClassOrInterfaceType() (*Node, error) {
	start := p.start()
	var elements []*Node
	for {
		elementStart := p.start()
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if p.check(TokenLT) {
			typeArgs, err := p.parseTypeArguments()
			if err != nil {
				return nil, err
			}
			elements = append(elements, &Node{
				Tag:           TagClassOrInterfaceTypeElement,
				Span:          p.span(elementStart),
				Name:          name,
				TypeArguments: typeArgs,
			})
		} else {
			elements = append(elements, name)
		}
		if !p.check(TokenDot) || p.peekN(1).Kind != TokenIdent {
			break
		}
		p.advance()
	}
	if len(elements) == 1 && elements[0].Tag == TagIdentifier {
		return elements[0], nil
	}
	return &Node{Tag: TagClassOrInterfaceType, Span: p.span(start), Elements: elements}, nil
}

// parseTypeArguments accepts the diamond <> as an empty list. Every
// closing > is its own token, so nested lists close one at a time.
func (p *Parser) parseTypeArguments() (*Node, error) {
	start := p.start()
	if _, err := p.expect(TokenLT, "'<'"); err != nil {
		return nil, err
	}
	var args []*Node
	if !p.check(TokenGT) {
		for {
			arg, err := p.parseTypeArgument()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.accept(TokenComma) {
				break
			}
		}
	}
	if _, err := p.expect(TokenGT, "'>'"); err != nil {
		return nil, err
	}
	return &Node{Tag: TagTypeArguments, Span: p.span(start), Elements: args}, nil
}

func (p *Parser) parseTypeArgument() (*Node, error) {
	if !p.check(TokenQuestion) {
		return p.parseTypeType()
	}
	start := p.start()
	p.advance()
	var bound string
	switch p.peek().Kind {
	case TokenExtends, TokenSuper:
		bound = p.advance().Literal
	default:
		return &Node{Tag: TagWildcard, Span: p.span(start)}, nil
	}
	typ, err := p.parseTypeType()
	if err != nil {
		return nil, err
	}
	return &Node{Tag: TagWildcard, Span: p.span(start), Operator: bound, Type: typ}, nil
}

func (p *Parser) parseQualifiedName() (*Node, error) {
	start := p.start()
	first, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	names := []*Node{first}
	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		names = append(names, identifier(p.advance()))
	}
	return &Node{Tag: TagQualifiedName, Span: p.span(start), Elements: names}, nil
}

func (p *Parser) parseIdentifierList() (*Node, error) {
	start := p.start()
	var names []*Node
	for {
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if !p.accept(TokenComma) {
			break
		}
	}
	return &Node{Tag: TagIdentifierList, Span: p.span(start), Elements: names}, nil
}

// parseAnnotation parses @Name, @Name(), @Name(value) and
// @Name(key = value, ...). HasBraces records the parentheses.
func (p *Parser) parseAnnotation() (*Node, error) {
	start := p.start()
	if _, err := p.expect(TokenAt, "'@'"); err != nil {
		return nil, err
	}
	name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if !p.accept(TokenLParen) {
		return &Node{Tag: TagAnnotation, Span: p.span(start), Name: name}, nil
	}
	var value *Node
	if !p.check(TokenRParen) {
		if p.check(TokenIdent) && p.peekN(1).Kind == TokenAssign {
			value, err = p.parseElementValuePairs()
		} else {
			value, err = p.parseElementValue()
		}
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenRParen, "')'"); err != nil {
		return nil, err
	}
	return &Node{
		Tag:       TagAnnotation,
		Span:      p.span(start),
		HasBraces: true,
		Name:      name,
		Element:   value,
	}, nil
}

func (p *Parser) parseElementValuePairs() (*Node, error) {
	start := p.start()
	var pairs []*Node
	for {
		pairStart := p.start()
		key, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenAssign, "'='"); err != nil {
			return nil, err
		}
		value, err := p.parseElementValue()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, &Node{Tag: TagElementValuePair, Span: p.span(pairStart), Name: key, Element: value})
		if !p.accept(TokenComma) {
			break
		}
	}
	return &Node{Tag: TagElementValuePairs, Span: p.span(start), Elements: pairs}, nil
}

func (p *Parser) parseElementValue() (*Node, error) {
	switch p.peek().Kind {
	case TokenAt:
		return p.parseAnnotation()
	case TokenLBrace:
		return p.parseInitializer(TagElementValueArrayInitializer, (*Parser).parseElementValue)
	}
	return p.parseExpression()
}

func (p *Parser) parseArrayInitializer() (*Node, error) {
	return p.parseInitializer(TagArrayInitializer, (*Parser).parseVariableInitializer)
}

func (p *Parser) parseVariableInitializer() (*Node, error) {
	if p.check(TokenLBrace) {
		return p.parseArrayInitializer()
	}
	return p.parseExpression()
}

// parseInitializer parses { a, b, } with an optional trailing comma.
func (p *Parser) parseInitializer(tag Tag, element func(*Parser) (*Node, error)) (*Node, error) {
	start := p.start()
	if _, err := p.expect(TokenLBrace, "'{'"); err != nil {
		return nil, err
	}
	var values []*Node
	for !p.check(TokenRBrace) {
		value, err := element(p)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
		if !p.accept(TokenComma) {
			break
		}
	}
	if _, err := p.expect(TokenRBrace, "'}'"); err != nil {
		return nil, err
	}
	return &Node{Tag: tag, Span: p.span(start), Elements: values}, nil
}

func (p *Parser) parseArguments() ([]*Node, error) {
	if _, err := p.expect(TokenLParen, "'('"); err != nil {
		return nil, err
	}
	args := []*Node{}
	if p.accept(TokenRParen) {
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.accept(TokenComma) {
			break
		}
	}
	if _, err := p.expect(TokenRParen, "')' or ','"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseCreation parses new T(args), new T[n][] and new T[]{...}.
// Anonymous class bodies are not supported.
func (p *Parser) parseCreation() (*Node, error) {
	start := p.start()
	if _, err := p.expect(TokenNew, "'new'"); err != nil {
		return nil, err
	}
	var typeArgs *Node
	if p.check(TokenLT) {
		var err error
		if typeArgs, err = p.parseTypeArguments(); err != nil {
			return nil, err
		}
	}
	if isPrimitiveKind(p.peek().Kind) {
		typ, err := p.parsePrimitiveType()
		if err != nil {
			return nil, err
		}
		if !p.check(TokenLBracket) {
			return nil, p.fail("'['")
		}
		return p.parseArrayCreation(start, typ)
	}
	typ, err := p.parseClassOrInterfaceType()
	if err != nil {
		return nil, err
	}
	if p.check(TokenLBracket) && typeArgs == nil {
		return p.parseArrayCreation(start, typ)
	}
	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	if p.check(TokenLBrace) {
		return nil, p.fail("end of instance creation, class bodies are not supported")
	}
	return &Node{
		Tag:           TagInstanceCreation,
		Span:          p.span(start),
		TypeArguments: typeArgs,
		Type:          typ,
		Arguments:     args,
	}, nil
}

// parseArrayCreation counts the empty [] pairs in Dimensions; sized
// dimensions are kept as expressions. Without sizes an initializer is
// required.
func (p *Parser) parseArrayCreation(start Position, typ *Node) (*Node, error) {
	var sizes []*Node
	for p.check(TokenLBracket) && p.peekN(1).Kind != TokenRBracket {
		p.advance()
		size, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRBracket, "']'"); err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}
	dims := p.parseDims()
	var init *Node
	if len(sizes) == 0 {
		var err error
		if init, err = p.parseArrayInitializer(); err != nil {
			return nil, err
		}
	}
	return &Node{
		Tag:        TagArrayCreation,
		Span:       p.span(start),
		Type:       typ,
		Elements:   sizes,
		Dimensions: dims,
		Element:    init,
	}, nil
}
