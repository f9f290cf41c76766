package parser

import "encoding/json"

// AsMap returns n as {"type": TAG, key: value, ...} using the keys listed
// by Fields. Absent child nodes are left out; lists are always present.
func (n *Node) AsMap(withSpans bool) map[string]any {
	m := map[string]any{"type": n.Tag.String()}
	if withSpans {
		m["span"] = map[string]any{
			"start": positionMap(n.Span.Start),
			"end":   positionMap(n.Span.End),
		}
	}
	for _, f := range n.Fields() {
		switch f.Kind {
		case FieldNode:
			if f.Node != nil {
				m[f.Key] = f.Node.AsMap(withSpans)
			}
		case FieldList:
			items := make([]any, len(f.List))
			for i, item := range f.List {
				items[i] = item.AsMap(withSpans)
			}
			m[f.Key] = items
		case FieldString:
			m[f.Key] = f.Str
		case FieldInt:
			m[f.Key] = f.Int
		case FieldBool:
			m[f.Key] = f.Bool
		}
	}
	return m
}

func positionMap(pos Position) map[string]any {
	return map[string]any{
		"offset": pos.Offset,
		"line":   pos.Line,
		"column": pos.Column,
	}
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.AsMap(false))
}
