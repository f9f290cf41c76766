package codebase

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type notification struct {
	method string
	params any
}

func newTestServer(t *testing.T) (*LSPServer, *[]notification, *glsp.Context) {
	t.Helper()
	dir := t.TempDir()
	ls := NewLSPServer("test")
	var sent []notification
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			sent = append(sent, notification{method: method, params: params})
		},
	}
	if _, err := ls.initialize(ctx, &protocol.InitializeParams{RootPath: &dir}); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	return ls, &sent, ctx
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	ls, sent, ctx := newTestServer(t)
	path := filepath.Join(ls.codebase.RootDir(), "open.jexpr")
	uri := "file://" + path

	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "jexpr", Version: 1, Text: "a.b\n(a\n"},
	})
	if err != nil {
		t.Fatalf("didOpen failed: %v", err)
	}
	if len(*sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*sent))
	}
	params, ok := (*sent)[0].params.(protocol.PublishDiagnosticsParams)
	if !ok {
		t.Fatalf("params = %T, want PublishDiagnosticsParams", (*sent)[0].params)
	}
	if params.URI != uri {
		t.Errorf("URI = %q, want %q", params.URI, uri)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("len(Diagnostics) = %d, want 1", len(params.Diagnostics))
	}
	d := params.Diagnostics[0]
	if d.Range.Start.Line != 1 || d.Range.Start.Character != 2 {
		t.Errorf("range start = %d:%d, want 1:2", d.Range.Start.Line, d.Range.Start.Character)
	}
	if !strings.HasPrefix(d.Message, "unterminated construct") {
		t.Errorf("Message = %q", d.Message)
	}
}

func TestHover(t *testing.T) {
	ls, _, ctx := newTestServer(t)
	path := filepath.Join(ls.codebase.RootDir(), "hover.jexpr")
	ls.codebase.UpdateFile(path, []byte("a.b(c)\n"))

	hover, err := ls.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file://" + path},
			Position:     protocol.Position{Line: 0, Character: 4},
		},
	})
	if err != nil || hover == nil {
		t.Fatalf("hover = %v, %v", hover, err)
	}
	content, ok := hover.Contents.(protocol.MarkupContent)
	if !ok {
		t.Fatalf("Contents = %T, want MarkupContent", hover.Contents)
	}
	if !strings.HasPrefix(content.Value, "QUALIFIED_EXPRESSION › METHOD_INVOCATION › IDENTIFIER") {
		t.Errorf("hover text = %q", content.Value)
	}
	if !strings.Contains(content.Value, `IDENTIFIER value="c"`) {
		t.Errorf("hover text lacks the innermost node: %q", content.Value)
	}
}

func TestCompletionOffersEntries(t *testing.T) {
	ls, _, ctx := newTestServer(t)
	path := filepath.Join(ls.codebase.RootDir(), "complete.jexpr")
	ls.codebase.UpdateFile(path, []byte("//jexpr:entry ty\n"))

	result, err := ls.textDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file://" + path},
			Position:     protocol.Position{Line: 0, Character: 16},
		},
	})
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	items, ok := result.([]protocol.CompletionItem)
	if !ok {
		t.Fatalf("result = %T, want []CompletionItem", result)
	}
	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	if got := strings.Join(labels, " "); got != "typeType typeArguments" {
		t.Errorf("labels = %q, want %q", got, "typeType typeArguments")
	}
}

func TestDirectivePrefix(t *testing.T) {
	tests := []struct {
		content   string
		line      int
		character int
		want      string
		ok        bool
	}{
		{"//jexpr:entry ", 0, 14, "", true},
		{"//jexpr:entry lam", 0, 17, "lam", true},
		{"//jexpr:entry lambda", 0, 17, "lam", true},
		{"a.b\n//jexpr:entry b", 1, 15, "b", true},
		{"a.b", 0, 3, "", false},
		{"a.b", 3, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			got, ok := directivePrefix([]byte(tt.content), tt.line, tt.character)
			if got != tt.want || ok != tt.ok {
				t.Errorf("directivePrefix() = %q, %v, want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPathToURI(t *testing.T) {
	uri := pathToURI("/tmp/a b/x.jexpr")
	if uri != "file:///tmp/a%20b/x.jexpr" {
		t.Errorf("pathToURI = %q", uri)
	}
	if got, _ := uriToPath(uri); got != "/tmp/a b/x.jexpr" {
		t.Errorf("uriToPath(pathToURI) = %q", got)
	}
}

func TestURIToPath(t *testing.T) {
	got, err := uriToPath("file:///tmp/a%20b/x.jexpr")
	if err != nil {
		t.Fatalf("uriToPath failed: %v", err)
	}
	if got != "/tmp/a b/x.jexpr" {
		t.Errorf("uriToPath = %q", got)
	}
	if got, _ := uriToPath("untitled:1"); got != "untitled:1" {
		t.Errorf("uriToPath(untitled:1) = %q", got)
	}
}

func TestDidCloseRevertsToDisk(t *testing.T) {
	ls, sent, ctx := newTestServer(t)
	path := filepath.Join(ls.codebase.RootDir(), "saved.jexpr")
	writeFile(t, path, "a + b\n")
	uri := pathToURI(path)

	ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: "a +\n"},
	})
	if err := ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}); err != nil {
		t.Fatalf("didClose failed: %v", err)
	}

	last := (*sent)[len(*sent)-1].params.(protocol.PublishDiagnosticsParams)
	if len(last.Diagnostics) != 0 {
		t.Errorf("diagnostics after close = %+v, want none", last.Diagnostics)
	}

	unsaved := filepath.Join(ls.codebase.RootDir(), "unsaved.jexpr")
	ls.codebase.UpdateFile(unsaved, []byte("(\n"))
	if err := ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: pathToURI(unsaved)},
	}); err != nil {
		t.Fatalf("didClose of an unsaved file failed: %v", err)
	}
	if ls.codebase.GetFile(unsaved) != nil {
		t.Error("unsaved document still present after close")
	}
}
