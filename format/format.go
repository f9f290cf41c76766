// Package format writes parse trees as JSON, indented trees, grep-friendly
// lines, Java source or Go composite literals.
package format

import (
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/jexpr/java/parser"
)

type Encoder interface {
	Encode(n *parser.Node) error
}

// Options configures the encoders returned by NewEncoder.
type Options struct {
	// Spans adds source positions to json, tree and line output.
	Spans bool
	// GoPackage and GoVar name the file and variable written by the go format.
	GoPackage string
	GoVar     string
}

var encoders = map[string]func(io.Writer, Options) Encoder{
	"json": func(w io.Writer, o Options) Encoder { return &JSONEncoder{w: w, spans: o.Spans} },
	"tree": func(w io.Writer, o Options) Encoder { return &TreeEncoder{w: w, positions: o.Spans} },
	"line": func(w io.Writer, o Options) Encoder { return &LineEncoder{w: w, spans: o.Spans} },
	"java": func(w io.Writer, o Options) Encoder { return NewJavaEncoder(w) },
	"go": func(w io.Writer, o Options) Encoder {
		return NewGoEncoder(w, o.GoPackage, o.GoVar)
	},
}

// Formats returns the names accepted by NewEncoder.
func Formats() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func NewEncoder(format string, w io.Writer, opts Options) (Encoder, error) {
	newEncoder, ok := encoders[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return newEncoder(w, opts), nil
}

// TreeEncoder writes the indented dump produced by Node.String.
type TreeEncoder struct {
	w         io.Writer
	positions bool
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(n *parser.Node) error {
	text := n.String()
	if e.positions {
		text = n.StringWithPositions()
	}
	_, err := io.WriteString(e.w, text)
	return err
}
