// Package codebase keeps the parsed state of a directory of .jexpr files
// for the language server and the check command.
//
// A .jexpr file holds one expression per line. Blank lines and lines
// starting with // are skipped. A directive line
//
//	//jexpr:entry typeType
//
// switches the entry production used for the lines that follow it.
package codebase

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jexpr/java/parser"
)

// Ext is the extension of files picked up by ScanAll.
const Ext = ".jexpr"

// EntryDirective switches the entry production for the following lines.
const EntryDirective = "//jexpr:entry"

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	entry   parser.Entry
	log     commonlog.Logger
	files   map[string]*Document
}

// Document is one parsed .jexpr file.
type Document struct {
	Path    string
	Content []byte
	Lines   []Line
}

// Line is a single expression line. Exactly one of Node and Err is set.
type Line struct {
	Number int
	Entry  parser.Entry
	Text   string
	Node   *parser.Node
	Err    error
}

// Diagnostic is a syntax error anchored to a line and column range.
type Diagnostic struct {
	Path      string
	Line      int
	Column    int
	EndColumn int
	Kind      error
	Message   string
}

type Option func(*Codebase)

// WithEntry sets the entry production used before any directive.
func WithEntry(entry parser.Entry) Option {
	return func(c *Codebase) {
		c.entry = entry
	}
}

func New(rootDir string, opts ...Option) *Codebase {
	c := &Codebase{
		rootDir: rootDir,
		entry:   parser.EntryExpression,
		log:     commonlog.GetLogger("jexpr.codebase"),
		files:   make(map[string]*Document),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll parses every .jexpr file below the root directory.
func (c *Codebase) ScanAll() error {
	return c.walk(func(path string, _ fs.DirEntry) {
		if err := c.ScanFile(path); err != nil {
			c.log.Warningf("scan %s: %v", path, err)
		}
	})
}

// walk calls fn for every .jexpr file below the root. Directories whose
// name starts with a dot are skipped, as are entries that cannot be read.
func (c *Codebase) walk(fn func(path string, d fs.DirEntry)) error {
	return filepath.WalkDir(c.rootDir, func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return nil
		case d.IsDir():
			if path != c.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
		case filepath.Ext(path) == Ext:
			fn(path, d)
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile reparses content as the new state of path.
func (c *Codebase) UpdateFile(path string, content []byte) *Document {
	doc := c.parseDocument(path, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = doc
	return doc
}

func (c *Codebase) parseDocument(path string, content []byte) *Document {
	doc := &Document{Path: path, Content: content}
	entry := c.entry
	for i, text := range strings.Split(string(content), "\n") {
		text = strings.TrimRight(text, "\r")
		trimmed := strings.TrimSpace(text)
		if name, ok := strings.CutPrefix(trimmed, EntryDirective); ok {
			if e, found := parser.LookupEntry(strings.TrimSpace(name)); found {
				entry = e
			} else {
				c.log.Warningf("%s:%d: unknown entry %q", path, i+1, strings.TrimSpace(name))
			}
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		line := Line{Number: i + 1, Entry: entry, Text: text}
		line.Node, line.Err = parser.Parse(text, entry,
			parser.WithFile(filepath.Base(path)),
			parser.WithStartLine(i+1))
		doc.Lines = append(doc.Lines, line)
	}
	c.log.Debugf("parsed %s: %d lines", path, len(doc.Lines))
	return doc
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns the known paths in sorted order.
func (c *Codebase) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Diagnostics returns the syntax errors of path, or of every file when
// path is empty, ordered by path and line.
func (c *Codebase) Diagnostics(path string) []Diagnostic {
	var paths []string
	if path == "" {
		paths = c.Files()
	} else {
		paths = []string{path}
	}

	var diags []Diagnostic
	for _, p := range paths {
		doc := c.GetFile(p)
		if doc == nil {
			continue
		}
		for _, line := range doc.Lines {
			if line.Err != nil {
				diags = append(diags, diagnosticFor(p, line))
			}
		}
	}
	return diags
}

func diagnosticFor(path string, line Line) Diagnostic {
	d := Diagnostic{
		Path:      path,
		Line:      line.Number,
		Column:    1,
		EndColumn: len(line.Text) + 1,
		Message:   line.Err.Error(),
	}
	var se *parser.SyntaxError
	if errors.As(line.Err, &se) {
		d.Kind = se.Kind
		d.Column = se.Pos.Column
		d.EndColumn = se.Got.Span.End.Column
		if d.EndColumn <= d.Column {
			d.EndColumn = d.Column + 1
		}
		d.Message = se.Kind.Error() + ": got " + describe(se.Got) + ", expected " + se.Expected
	}
	return d
}

func describe(tok parser.Token) string {
	if tok.Kind == parser.TokenEOF {
		return "end of input"
	}
	return "\"" + tok.Literal + "\""
}

// NodeAt returns the nodes from the line's root down to the innermost node
// covering the 1-based column, or nil when nothing is parsed there.
func (c *Codebase) NodeAt(path string, line, column int) []*parser.Node {
	doc := c.GetFile(path)
	if doc == nil {
		return nil
	}
	for _, l := range doc.Lines {
		if l.Number == line && l.Node != nil {
			return parser.Path(l.Node, column-1)
		}
	}
	return nil
}
