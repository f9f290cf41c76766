package codebase

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/jexpr/java/parser"
)

const lsName = "jexpr"

type LSPServer struct {
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
	watch    bool
	watcher  *FileWatcher
	opts     []Option
}

type ServerOption func(*LSPServer)

// WithWatch polls the workspace for changed .jexpr files after
// initialization.
func WithWatch(watch bool) ServerOption {
	return func(ls *LSPServer) {
		ls.watch = watch
	}
}

// WithCodebaseOptions passes opts to the codebase created on initialize.
func WithCodebaseOptions(opts ...Option) ServerOption {
	return func(ls *LSPServer) {
		ls.opts = append(ls.opts, opts...)
	}
}

func NewLSPServer(version string, opts ...ServerOption) *LSPServer {
	ls := &LSPServer{
		version: version,
	}
	for _, opt := range opts {
		opt(ls)
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentHover:      ls.textDocumentHover,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	ls.codebase = New(workspaceRoot(params), ls.opts...)

	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: ptr(true),
		Change:    ptr(protocol.TextDocumentSyncKindFull),
		Save:      &protocol.SaveOptions{IncludeText: ptr(true)},
	}
	capabilities.HoverProvider = true
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{" "},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

// workspaceRoot prefers rootUri over the deprecated rootPath and falls
// back to the working directory.
func workspaceRoot(params *protocol.InitializeParams) string {
	if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			return path
		}
	}
	if params.RootPath != nil && *params.RootPath != "" {
		return *params.RootPath
	}
	return "."
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(); err != nil {
		return err
	}
	if ls.watch {
		ls.watcher = NewFileWatcher(ls.codebase, OnChange(func(paths []string) {
			for _, path := range paths {
				ls.publishDiagnostics(ctx, pathToURI(path), path)
			}
		}))
		ls.watcher.Start()
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// update replaces the document behind uri with text, or rereads it from
// disk when text is nil, and publishes the resulting diagnostics.
func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, text *string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	if text != nil {
		ls.codebase.UpdateFile(path, []byte(*text))
	} else if err := ls.codebase.ScanFile(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		ls.codebase.RemoveFile(path)
	}
	ls.publishDiagnostics(ctx, uri, path)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return ls.update(ctx, params.TextDocument.URI, &params.TextDocument.Text)
}

// textDocumentDidChange only handles full-text sync, so the last change
// holds the whole document.
func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if n := len(params.ContentChanges); n > 0 {
		if whole, ok := params.ContentChanges[n-1].(protocol.TextDocumentContentChangeEventWhole); ok {
			return ls.update(ctx, params.TextDocument.URI, &whole.Text)
		}
	}
	return nil
}

// textDocumentDidClose drops unsaved edits by going back to the file on
// disk.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return ls.update(ctx, params.TextDocument.URI, nil)
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	return ls.update(ctx, params.TextDocument.URI, params.Text)
}

func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, uri string, path string) {
	diagnostics := []protocol.Diagnostic{}
	for _, d := range ls.codebase.Diagnostics(path) {
		diagnostics = append(diagnostics, toProtocolDiagnostic(d))
	}
	ctx.Notify(string(protocol.ServerTextDocumentPublishDiagnostics), protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func toProtocolDiagnostic(d Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	line := protocol.UInteger(d.Line - 1)
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: protocol.UInteger(d.Column - 1)},
			End:   protocol.Position{Line: line, Character: protocol.UInteger(d.EndColumn - 1)},
		},
		Severity: &severity,
		Source:   &source,
		Message:  d.Message,
	}
}

// textDocumentHover shows the chain of node tags under the cursor and the
// subtree of the innermost node.
func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	nodes := ls.codebase.NodeAt(path, int(params.Position.Line)+1, int(params.Position.Character)+1)
	if len(nodes) == 0 {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: hoverText(nodes),
		},
	}, nil
}

func hoverText(nodes []*parser.Node) string {
	tags := make([]string, len(nodes))
	for i, n := range nodes {
		tags[i] = n.Tag.String()
	}
	inner := nodes[len(nodes)-1]
	return fmt.Sprintf("%s\n\n```\n%s```", strings.Join(tags, " › "), inner.String())
}

// textDocumentCompletion offers entry names after the entry directive.
func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	doc := ls.codebase.GetFile(path)
	if doc == nil {
		return nil, nil
	}
	prefix, ok := directivePrefix(doc.Content, int(params.Position.Line), int(params.Position.Character))
	if !ok {
		return nil, nil
	}

	var items []protocol.CompletionItem
	kind := protocol.CompletionItemKindKeyword
	for _, entry := range parser.Entries() {
		name := entry.String()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		detail := "entry production"
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   &kind,
			Detail: &detail,
		})
	}
	return items, nil
}

// directivePrefix returns the partial entry name typed after the entry
// directive on the given 0-based line, up to the 0-based character.
func directivePrefix(content []byte, line, character int) (string, bool) {
	lines := strings.Split(string(content), "\n")
	if line < 0 || line >= len(lines) {
		return "", false
	}
	text := lines[line]
	if character < len(text) {
		text = text[:character]
	}
	rest, ok := strings.CutPrefix(strings.TrimSpace(text), EntryDirective)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func ptr[T any](v T) *T {
	return &v
}
