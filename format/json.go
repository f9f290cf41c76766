package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jexpr/java/parser"
)

// JSONEncoder writes {"type": TAG, ...} objects, one per Encode call.
type JSONEncoder struct {
	w     io.Writer
	spans bool
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

// WithSpans adds a "span" object to every node.
func (e *JSONEncoder) WithSpans(spans bool) *JSONEncoder {
	e.spans = spans
	return e
}

func (e *JSONEncoder) Encode(n *parser.Node) error {
	text, err := e.MarshalText(n)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText(n *parser.Node) ([]byte, error) {
	return json.MarshalIndent(n.AsMap(e.spans), "", "  ")
}
