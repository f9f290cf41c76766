package parser

import "errors"

// parseChain folds suffixes onto left until none applies. Each . suffix
// wraps the running value in a QUALIFIED_EXPRESSION whose rest is exactly
// that suffix, so a.b.c nests to the left.
func (p *Parser) parseChain(left *Node) (*Node, error) {
	start := left.Span.Start
	for {
		var next *Node
		var ok bool
		var err error
		switch p.peek().Kind {
		case TokenDot:
			var rest *Node
			rest, ok, err = p.suffix("qualified suffix", p.parseDotSuffix)
			if ok {
				next = &Node{Tag: TagQualifiedExpression, Span: p.span(start), Expression: left, Rest: rest}
			}
		case TokenColonColon:
			next, ok, err = p.suffix("method reference", func() (*Node, error) {
				return p.parseMethodReference(left)
			})
		case TokenLBracket:
			if p.peekN(1).Kind == TokenRBracket {
				next, ok, err = p.suffix("array type", func() (*Node, error) {
					return p.parseArrayTypeReference(left)
				})
			} else {
				next, ok, err = p.suffix("index", func() (*Node, error) {
					return p.parseIndex(left)
				})
			}
		case TokenLT:
			if _, isName := nameChain(left); !isName {
				return left, nil
			}
			// a < b is a comparison unless type arguments and :: follow.
			next, ok = p.speculate("generic type reference", func() (*Node, error) {
				return p.parseGenericTypeReference(left)
			})
		default:
			return left, nil
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			return left, nil
		}
		left = next
	}
}

// suffix runs fn speculatively. A suffix that does not match ends the
// chain with the cursor restored; running out of input inside it is an
// error, because no shorter chain can consume the rest.
func (p *Parser) suffix(what string, fn func() (*Node, error)) (*Node, bool, error) {
	sp := p.save()
	node, err := fn()
	if err == nil {
		return node, true, nil
	}
	if errors.Is(err, ErrUnterminatedConstruct) {
		return nil, false, err
	}
	p.log.Debugf("%s not matched at %s: %v", what, sp.last.Span.End, err)
	p.restore(sp)
	return nil, false, nil
}

func (p *Parser) parseDotSuffix() (*Node, error) {
	if _, err := p.expect(TokenDot, "'.'"); err != nil {
		return nil, err
	}
	start := p.start()
	tok := p.peek()
	switch tok.Kind {
	case TokenClass:
		p.advance()
		return &Node{Tag: TagClass, Span: tok.Span}, nil
	case TokenThis:
		p.advance()
		return &Node{Tag: TagThis, Span: tok.Span}, nil
	case TokenSuper:
		p.advance()
		return &Node{Tag: TagSuper, Span: tok.Span}, nil
	case TokenNew:
		return p.parseCreation()
	case TokenLT:
		typeArgs, err := p.parseTypeArguments()
		if err != nil {
			return nil, err
		}
		return p.parseMethodInvocation(start, typeArgs)
	case TokenIdent:
		switch p.peekN(1).Kind {
		case TokenLParen:
			return p.parseMethodInvocation(start, nil)
		case TokenColonColon:
			return p.parseMethodReference(identifier(p.advance()))
		}
		p.advance()
		return identifier(tok), nil
	}
	return nil, p.fail("identifier, 'class', 'this', 'super', 'new' or type arguments")
}

// parseMethodReference parses ":: [typeArgs] name" where name may be new.
func (p *Parser) parseMethodReference(reference *Node) (*Node, error) {
	if _, err := p.expect(TokenColonColon, "'::'"); err != nil {
		return nil, err
	}
	var typeArgs *Node
	if p.check(TokenLT) {
		var err error
		if typeArgs, err = p.parseTypeArguments(); err != nil {
			return nil, err
		}
	}
	var name *Node
	switch tok := p.peek(); tok.Kind {
	case TokenIdent:
		name = identifier(p.advance())
	case TokenNew:
		p.advance()
		name = &Node{Tag: TagNew, Span: tok.Span}
	default:
		return nil, p.fail("method name or 'new'")
	}
	return &Node{
		Tag:           TagMethodReference,
		Span:          p.span(reference.Span.Start),
		Reference:     reference,
		Name:          name,
		TypeArguments: typeArgs,
	}, nil
}

func (p *Parser) parseIndex(left *Node) (*Node, error) {
	if _, err := p.expect(TokenLBracket, "'['"); err != nil {
		return nil, err
	}
	index, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBracket, "']'"); err != nil {
		return nil, err
	}
	return &Node{
		Tag:        TagSquareExpression,
		Span:       p.span(left.Span.Start),
		Expression: left,
		Index:      index,
	}, nil
}

// parseArrayTypeReference turns a name chain followed by [] into the array
// type of String[].class or a.B[]::new.
func (p *Parser) parseArrayTypeReference(left *Node) (*Node, error) {
	names, ok := nameChain(left)
	if !ok {
		return nil, p.fail("index expression")
	}
	dims := p.parseDims()
	if !p.atTypeSuffix() {
		return nil, p.fail("'.class' or '::'")
	}
	return &Node{
		Tag:        TagTypeType,
		Span:       p.span(left.Span.Start),
		Type:       classType(names, nil, left.Span),
		Dimensions: dims,
	}, nil
}

// parseGenericTypeReference parses the type of List<String>::new.
func (p *Parser) parseGenericTypeReference(left *Node) (*Node, error) {
	names, _ := nameChain(left)
	typeArgs, err := p.parseTypeArguments()
	if err != nil {
		return nil, err
	}
	typ := classType(names, typeArgs, p.span(left.Span.Start))
	dims := p.parseDims()
	if !p.check(TokenColonColon) {
		return nil, p.fail("'::'")
	}
	if dims == 0 {
		return typ, nil
	}
	return &Node{Tag: TagTypeType, Span: p.span(left.Span.Start), Type: typ, Dimensions: dims}, nil
}

// nameChain returns the identifiers of a, a.b, a.b.c, ... and false for
// any other expression.
func nameChain(n *Node) ([]*Node, bool) {
	switch n.Tag {
	case TagIdentifier:
		return []*Node{n}, true
	case TagQualifiedExpression:
		if n.Rest.Tag != TagIdentifier {
			return nil, false
		}
		names, ok := nameChain(n.Expression)
		if !ok {
			return nil, false
		}
		return append(names, n.Rest), true
	}
	return nil, false
}

// classType builds the type named by names. The type arguments, if any,
// belong to the last segment.
func classType(names []*Node, typeArgs *Node, span Span) *Node {
	if len(names) == 1 && typeArgs == nil {
		return names[0]
	}
	elements := make([]*Node, len(names))
	copy(elements, names)
	if typeArgs != nil {
		last := names[len(names)-1]
		elements[len(elements)-1] = &Node{
			Tag:           TagClassOrInterfaceTypeElement,
			Span:          Span{Start: last.Span.Start, End: typeArgs.Span.End},
			Name:          last,
			TypeArguments: typeArgs,
		}
	}
	return &Node{Tag: TagClassOrInterfaceType, Span: span, Elements: elements}
}
