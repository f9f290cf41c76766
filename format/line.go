package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jexpr/java/parser"
)

// LineEncoder writes one tab-separated line per node:
//
//	path	TAG	[span]	key=value ...
//
// The path lists the field keys leading to the node, for example
// rest.parameters[0]. The root has the path ".".
type LineEncoder struct {
	w     io.Writer
	spans bool
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(n *parser.Node) error {
	text, err := e.MarshalText(n)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(n *parser.Node) ([]byte, error) {
	var sb strings.Builder
	e.writeNode(&sb, ".", n)
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeNode(sb *strings.Builder, path string, n *parser.Node) {
	fields := []string{path, n.Tag.String()}
	if e.spans {
		fields = append(fields, fmt.Sprintf("%d:%d-%d:%d",
			n.Span.Start.Line, n.Span.Start.Column, n.Span.End.Line, n.Span.End.Column))
	}
	for _, f := range n.Fields() {
		switch f.Kind {
		case parser.FieldString:
			if f.Str != "" {
				fields = append(fields, fmt.Sprintf("%s=%q", f.Key, f.Str))
			}
		case parser.FieldInt:
			fields = append(fields, fmt.Sprintf("%s=%d", f.Key, f.Int))
		case parser.FieldBool:
			fields = append(fields, fmt.Sprintf("%s=%t", f.Key, f.Bool))
		}
	}
	sb.WriteString(strings.Join(fields, "\t"))
	sb.WriteByte('\n')

	for _, f := range n.Fields() {
		switch f.Kind {
		case parser.FieldNode:
			if f.Node != nil {
				e.writeNode(sb, childPath(path, f.Key), f.Node)
			}
		case parser.FieldList:
			for i, item := range f.List {
				e.writeNode(sb, fmt.Sprintf("%s[%d]", childPath(path, f.Key), i), item)
			}
		}
	}
}

func childPath(parent, key string) string {
	if parent == "." {
		return key
	}
	return parent + "." + key
}
