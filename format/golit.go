package format

import (
	"io"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/dhamidi/jexpr/java/parser"
)

const parserPath = "github.com/dhamidi/jexpr/java/parser"

// GoEncoder writes a Go file declaring one variable that holds the tree as
// a *parser.Node composite literal. Spans are left out, so the literal
// compares equal to a fresh parse with parser.Equal.
type GoEncoder struct {
	w       io.Writer
	pkg     string
	varName string
}

func NewGoEncoder(w io.Writer, pkg, varName string) *GoEncoder {
	if pkg == "" {
		pkg = "fixtures"
	}
	if varName == "" {
		varName = "Expr"
	}
	return &GoEncoder{w: w, pkg: pkg, varName: varName}
}

func (e *GoEncoder) Encode(n *parser.Node) error {
	return e.File(n).Render(e.w)
}

// File returns the generated file for n.
func (e *GoEncoder) File(n *parser.Node) *jen.File {
	f := jen.NewFile(e.pkg)
	f.HeaderComment("Code generated by jexpr. DO NOT EDIT.")
	f.ImportName(parserPath, "parser")
	f.Var().Id(e.varName).Op("=").Add(goNode(n))
	return f
}

func goNode(n *parser.Node) *jen.Statement {
	values := jen.Dict{
		jen.Id("Tag"): jen.Qual(parserPath, goTagName(n.Tag)),
	}
	for _, f := range n.Fields() {
		key := jen.Id(f.Name)
		switch f.Kind {
		case parser.FieldNode:
			if f.Node != nil {
				values[key] = goNode(f.Node)
			}
		case parser.FieldList:
			if len(f.List) > 0 {
				items := make([]jen.Code, len(f.List))
				for i, item := range f.List {
					items[i] = goNode(item)
				}
				values[key] = jen.Index().Op("*").Qual(parserPath, "Node").Values(items...)
			}
		case parser.FieldString:
			if f.Str != "" {
				values[key] = jen.Lit(f.Str)
			}
		case parser.FieldInt:
			if f.Int != 0 {
				values[key] = jen.Lit(f.Int)
			}
		case parser.FieldBool:
			if f.Bool {
				values[key] = jen.Lit(true)
			}
		}
	}
	return jen.Op("&").Qual(parserPath, "Node").Values(values)
}

// goTagName turns QUALIFIED_EXPRESSION into TagQualifiedExpression.
func goTagName(tag parser.Tag) string {
	var sb strings.Builder
	sb.WriteString("Tag")
	for _, word := range strings.Split(tag.String(), "_") {
		if word == "" {
			continue
		}
		sb.WriteString(word[:1])
		sb.WriteString(strings.ToLower(word[1:]))
	}
	return sb.String()
}
