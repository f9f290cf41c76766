package parser

import (
	"fmt"
	"strings"
)

// Node is one tagged record of the syntax tree. Which fields are meaningful
// depends on Tag; Fields lists them. Nodes are built once by the production
// that recognizes them and never modified afterwards.
type Node struct {
	Tag  Tag
	Span Span

	Value    string
	Operator string

	Expression    *Node
	Index         *Node
	Type          *Node
	Condition     *Node
	Then          *Node
	Else          *Node
	Rest          *Node
	Name          *Node
	Reference     *Node
	TypeArguments *Node
	Left          *Node
	Right         *Node
	Parameters    *Node
	Body          *Node
	Identifiers   *Node
	Element       *Node

	Arguments []*Node
	Elements  []*Node
	Modifiers []*Node

	Dimensions int
	HasBraces  bool
	Dots       bool
}

type FieldKind int

const (
	FieldNode FieldKind = iota
	FieldList
	FieldString
	FieldInt
	FieldBool
)

// Field is one tag-specific attribute of a node. Key is the name used in
// the JSON encoding; Name is the Go struct field it is read from.
type Field struct {
	Key  string
	Name string
	Kind FieldKind

	Node *Node
	List []*Node
	Str  string
	Int  int
	Bool bool
}

func nodeField(key, name string, n *Node) Field {
	return Field{Key: key, Name: name, Kind: FieldNode, Node: n}
}

func listField(key, name string, list []*Node) Field {
	return Field{Key: key, Name: name, Kind: FieldList, List: list}
}

func stringField(key, name, s string) Field {
	return Field{Key: key, Name: name, Kind: FieldString, Str: s}
}

// Fields returns the attributes that belong to n's tag, in display order.
func (n *Node) Fields() []Field {
	switch n.Tag {
	case TagIdentifier, TagPrimitiveType,
		TagDecimalLiteral, TagHexLiteral, TagOctLiteral, TagBinaryLiteral,
		TagFloatLiteral, TagCharLiteral, TagStringLiteral, TagBooleanLiteral,
		TagStatement, TagModifier:
		return []Field{stringField("value", "Value", n.Value)}
	case TagInstanceofExpression:
		return []Field{
			nodeField("expression", "Expression", n.Expression),
			nodeField("instanceof", "Type", n.Type),
		}
	case TagSquareExpression:
		return []Field{
			nodeField("expression", "Expression", n.Expression),
			nodeField("squareExpression", "Index", n.Index),
		}
	case TagPostfixExpression:
		return []Field{
			stringField("postfix", "Operator", n.Operator),
			nodeField("expression", "Expression", n.Expression),
		}
	case TagPrefixExpression:
		return []Field{
			stringField("prefix", "Operator", n.Operator),
			nodeField("expression", "Expression", n.Expression),
		}
	case TagIfElseExpression:
		return []Field{
			nodeField("condition", "Condition", n.Condition),
			nodeField("if", "Then", n.Then),
			nodeField("else", "Else", n.Else),
		}
	case TagQualifiedExpression:
		return []Field{
			nodeField("expression", "Expression", n.Expression),
			nodeField("rest", "Rest", n.Rest),
		}
	case TagMethodInvocation:
		return []Field{
			nodeField("name", "Name", n.Name),
			listField("parameters", "Arguments", n.Arguments),
			nodeField("typeArguments", "TypeArguments", n.TypeArguments),
		}
	case TagMethodReference:
		return []Field{
			nodeField("reference", "Reference", n.Reference),
			nodeField("name", "Name", n.Name),
			nodeField("typeArguments", "TypeArguments", n.TypeArguments),
		}
	case TagOperatorExpression:
		return []Field{
			nodeField("left", "Left", n.Left),
			stringField("operator", "Operator", n.Operator),
			nodeField("right", "Right", n.Right),
		}
	case TagParExpression, TagExpressionStatement:
		return []Field{nodeField("expression", "Expression", n.Expression)}
	case TagCastExpression:
		return []Field{
			nodeField("castType", "Type", n.Type),
			nodeField("expression", "Expression", n.Expression),
		}
	case TagInstanceCreation:
		return []Field{
			nodeField("typeArguments", "TypeArguments", n.TypeArguments),
			nodeField("typeType", "Type", n.Type),
			listField("arguments", "Arguments", n.Arguments),
		}
	case TagArrayCreation:
		return []Field{
			nodeField("typeType", "Type", n.Type),
			listField("dimensions", "Elements", n.Elements),
			{Key: "cntSquares", Name: "Dimensions", Kind: FieldInt, Int: n.Dimensions},
			nodeField("initializer", "Element", n.Element),
		}
	case TagArrayInitializer, TagElementValueArrayInitializer:
		return []Field{listField("values", "Elements", n.Elements)}
	case TagLambdaExpression:
		return []Field{
			nodeField("parameters", "Parameters", n.Parameters),
			nodeField("body", "Body", n.Body),
		}
	case TagIdentifiers:
		return []Field{nodeField("identifiers", "Identifiers", n.Identifiers)}
	case TagIdentifierList:
		return []Field{listField("identifiers", "Elements", n.Elements)}
	case TagFormalParameters:
		return []Field{listField("parameters", "Elements", n.Elements)}
	case TagFormalParameter:
		return []Field{
			listField("modifiers", "Modifiers", n.Modifiers),
			nodeField("typeType", "Type", n.Type),
			{Key: "dotDotDot", Name: "Dots", Kind: FieldBool, Bool: n.Dots},
			nodeField("id", "Name", n.Name),
		}
	case TagBlock:
		return []Field{listField("statements", "Elements", n.Elements)}
	case TagTypeType:
		return []Field{
			listField("modifiers", "Modifiers", n.Modifiers),
			nodeField("value", "Type", n.Type),
			{Key: "cntSquares", Name: "Dimensions", Kind: FieldInt, Int: n.Dimensions},
		}
	case TagClassOrInterfaceType:
		return []Field{listField("elements", "Elements", n.Elements)}
	case TagClassOrInterfaceTypeElement:
		return []Field{
			nodeField("name", "Name", n.Name),
			nodeField("typeArguments", "TypeArguments", n.TypeArguments),
		}
	case TagTypeArguments, TagElementValuePairs:
		return []Field{listField("value", "Elements", n.Elements)}
	case TagWildcard:
		return []Field{
			stringField("extendsOrSuper", "Operator", n.Operator),
			nodeField("typeType", "Type", n.Type),
		}
	case TagAnnotation:
		return []Field{
			{Key: "hasBraces", Name: "HasBraces", Kind: FieldBool, Bool: n.HasBraces},
			nodeField("name", "Name", n.Name),
			nodeField("value", "Element", n.Element),
		}
	case TagElementValuePair:
		return []Field{
			nodeField("key", "Name", n.Name),
			nodeField("value", "Element", n.Element),
		}
	case TagQualifiedName:
		return []Field{listField("name", "Elements", n.Elements)}
	}
	return nil
}

// Children returns the direct child nodes in field order.
func (n *Node) Children() []*Node {
	var children []*Node
	for _, f := range n.Fields() {
		switch f.Kind {
		case FieldNode:
			if f.Node != nil {
				children = append(children, f.Node)
			}
		case FieldList:
			children = append(children, f.List...)
		}
	}
	return children
}

// Walk calls fn for n and every descendant, parents first. Returning false
// from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}

// Equal reports whether a and b have the same shape. Spans are ignored and
// a nil list equals an empty one.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag != b.Tag {
		return false
	}
	fa, fb := a.Fields(), b.Fields()
	for i := range fa {
		x, y := fa[i], fb[i]
		switch x.Kind {
		case FieldNode:
			if !Equal(x.Node, y.Node) {
				return false
			}
		case FieldList:
			if len(x.List) != len(y.List) {
				return false
			}
			for j := range x.List {
				if !Equal(x.List[j], y.List[j]) {
					return false
				}
			}
		case FieldString:
			if x.Str != y.Str {
				return false
			}
		case FieldInt:
			if x.Int != y.Int {
				return false
			}
		case FieldBool:
			if x.Bool != y.Bool {
				return false
			}
		}
	}
	return true
}

func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0, false)
	return b.String()
}

func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.write(&b, 0, true)
	return b.String()
}

func (n *Node) write(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(n.Tag.String())
	if showPositions {
		b.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	prefix := strings.Repeat("  ", indent+1)
	var nested []Field
	for _, f := range n.Fields() {
		switch f.Kind {
		case FieldString:
			fmt.Fprintf(b, " %s=%q", f.Key, f.Str)
		case FieldInt:
			fmt.Fprintf(b, " %s=%d", f.Key, f.Int)
		case FieldBool:
			fmt.Fprintf(b, " %s=%t", f.Key, f.Bool)
		default:
			nested = append(nested, f)
		}
	}
	b.WriteString("\n")
	for _, f := range nested {
		switch f.Kind {
		case FieldNode:
			if f.Node == nil {
				continue
			}
			b.WriteString(prefix + f.Key + ": ")
			f.Node.write(b, indent+1, showPositions)
		case FieldList:
			for i, item := range f.List {
				fmt.Fprintf(b, "%s%s[%d]: ", prefix, f.Key, i)
				item.write(b, indent+1, showPositions)
			}
		}
	}
}
