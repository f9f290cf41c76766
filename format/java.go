package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jexpr/java/parser"
)

// JavaEncoder prints a tree back as Java source on a single line.
// Parsing the output yields a tree equal to the input.
type JavaEncoder struct {
	w io.Writer
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(n *parser.Node) error {
	text, err := e.MarshalText(n)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JavaEncoder) MarshalText(n *parser.Node) ([]byte, error) {
	p := &javaPrinter{}
	p.print(n)
	if p.err != nil {
		return nil, p.err
	}
	return []byte(p.sb.String()), nil
}

// Java returns the source text of n.
func Java(n *parser.Node) (string, error) {
	text, err := NewJavaEncoder(nil).MarshalText(n)
	return string(text), err
}

type javaPrinter struct {
	sb  strings.Builder
	err error
}

func (p *javaPrinter) write(s string) {
	p.sb.WriteString(s)
}

func (p *javaPrinter) printList(nodes []*parser.Node, sep string) {
	for i, n := range nodes {
		if i > 0 {
			p.write(sep)
		}
		p.print(n)
	}
}

func (p *javaPrinter) print(n *parser.Node) {
	if n == nil || p.err != nil {
		return
	}
	switch n.Tag {
	case parser.TagThis:
		p.write("this")
	case parser.TagSuper:
		p.write("super")
	case parser.TagNull:
		p.write("null")
	case parser.TagClass:
		p.write("class")
	case parser.TagNew:
		p.write("new")
	case parser.TagIdentifier, parser.TagPrimitiveType, parser.TagModifier,
		parser.TagDecimalLiteral, parser.TagHexLiteral, parser.TagOctLiteral,
		parser.TagBinaryLiteral, parser.TagFloatLiteral, parser.TagCharLiteral,
		parser.TagStringLiteral, parser.TagBooleanLiteral, parser.TagStatement:
		p.write(n.Value)
	case parser.TagInstanceofExpression:
		p.print(n.Expression)
		p.write(" instanceof ")
		p.print(n.Type)
	case parser.TagSquareExpression:
		p.print(n.Expression)
		p.write("[")
		p.print(n.Index)
		p.write("]")
	case parser.TagPostfixExpression:
		p.print(n.Expression)
		p.write(n.Operator)
	case parser.TagPrefixExpression:
		p.printPrefix(n)
	case parser.TagIfElseExpression:
		p.print(n.Condition)
		p.write(" ? ")
		p.print(n.Then)
		p.write(" : ")
		p.print(n.Else)
	case parser.TagQualifiedExpression:
		p.print(n.Expression)
		p.write(".")
		p.print(n.Rest)
	case parser.TagMethodInvocation:
		p.print(n.TypeArguments)
		p.print(n.Name)
		p.printArguments(n.Arguments)
	case parser.TagMethodReference:
		p.print(n.Reference)
		p.write("::")
		p.print(n.TypeArguments)
		p.print(n.Name)
	case parser.TagOperatorExpression:
		p.print(n.Left)
		p.write(" " + n.Operator + " ")
		p.print(n.Right)
	case parser.TagParExpression:
		p.write("(")
		p.print(n.Expression)
		p.write(")")
	case parser.TagCastExpression:
		p.write("(")
		p.print(n.Type)
		p.write(") ")
		p.print(n.Expression)
	case parser.TagInstanceCreation:
		p.write("new ")
		p.print(n.TypeArguments)
		p.print(n.Type)
		p.printArguments(n.Arguments)
	case parser.TagArrayCreation:
		p.write("new ")
		p.print(n.Type)
		for _, dim := range n.Elements {
			p.write("[")
			p.print(dim)
			p.write("]")
		}
		p.write(strings.Repeat("[]", n.Dimensions))
		p.print(n.Element)
	case parser.TagArrayInitializer, parser.TagElementValueArrayInitializer:
		p.write("{")
		p.printList(n.Elements, ", ")
		p.write("}")
	case parser.TagLambdaExpression:
		p.print(n.Parameters)
		p.write(" -> ")
		p.print(n.Body)
	case parser.TagIdentifiers:
		p.printLambdaIdentifiers(n.Identifiers)
	case parser.TagIdentifierList:
		p.printList(n.Elements, ", ")
	case parser.TagFormalParameters:
		p.write("(")
		p.printList(n.Elements, ", ")
		p.write(")")
	case parser.TagFormalParameter:
		for _, m := range n.Modifiers {
			p.print(m)
			p.write(" ")
		}
		p.print(n.Type)
		if n.Dots {
			p.write("...")
		}
		p.write(" ")
		p.print(n.Name)
	case parser.TagBlock:
		p.printBlock(n)
	case parser.TagExpressionStatement:
		p.print(n.Expression)
		p.write(";")
	case parser.TagTypeType:
		for _, m := range n.Modifiers {
			p.print(m)
			p.write(" ")
		}
		p.print(n.Type)
		p.write(strings.Repeat("[]", n.Dimensions))
	case parser.TagClassOrInterfaceType, parser.TagQualifiedName:
		p.printList(n.Elements, ".")
	case parser.TagClassOrInterfaceTypeElement:
		p.print(n.Name)
		p.print(n.TypeArguments)
	case parser.TagTypeArguments:
		p.write("<")
		p.printList(n.Elements, ", ")
		p.write(">")
	case parser.TagWildcard:
		p.write("?")
		if n.Operator != "" {
			p.write(" " + n.Operator + " ")
			p.print(n.Type)
		}
	case parser.TagAnnotation:
		p.write("@")
		p.print(n.Name)
		if n.HasBraces {
			p.write("(")
			p.print(n.Element)
			p.write(")")
		}
	case parser.TagElementValuePairs:
		p.printList(n.Elements, ", ")
	case parser.TagElementValuePair:
		p.print(n.Name)
		p.write(" = ")
		p.print(n.Element)
	default:
		p.err = fmt.Errorf("cannot print %s as Java", n.Tag)
	}
}

// printPrefix keeps - -x and + ++x from printing as --x and +++x.
func (p *javaPrinter) printPrefix(n *parser.Node) {
	p.write(n.Operator)
	if operand := n.Expression; operand != nil && operand.Tag == parser.TagPrefixExpression {
		last := n.Operator[len(n.Operator)-1]
		if (last == '+' || last == '-') && operand.Operator[0] == last {
			p.write(" ")
		}
	}
	p.print(n.Expression)
}

func (p *javaPrinter) printArguments(args []*parser.Node) {
	p.write("(")
	p.printList(args, ", ")
	p.write(")")
}

func (p *javaPrinter) printLambdaIdentifiers(list *parser.Node) {
	if list != nil && len(list.Elements) == 1 {
		p.print(list.Elements[0])
		return
	}
	p.write("(")
	p.print(list)
	p.write(")")
}

func (p *javaPrinter) printBlock(n *parser.Node) {
	if len(n.Elements) == 0 {
		p.write("{}")
		return
	}
	p.write("{ ")
	p.printList(n.Elements, " ")
	p.write(" }")
}
