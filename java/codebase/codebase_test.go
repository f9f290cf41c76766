package codebase

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dhamidi/jexpr/java/parser"
)

const sample = `a.b()

// comment
this +
//jexpr:entry typeType
int[]
`

func TestUpdateFile(t *testing.T) {
	c := New(t.TempDir())
	doc := c.UpdateFile("sample.jexpr", []byte(sample))

	if len(doc.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(doc.Lines))
	}

	tests := []struct {
		number int
		entry  parser.Entry
		tag    parser.Tag
		failed bool
	}{
		{1, parser.EntryExpression, parser.TagQualifiedExpression, false},
		{4, parser.EntryExpression, parser.TagInvalid, true},
		{6, parser.EntryTypeType, parser.TagTypeType, false},
	}
	for i, tt := range tests {
		line := doc.Lines[i]
		if line.Number != tt.number || line.Entry != tt.entry {
			t.Errorf("line %d: got number %d entry %s, want %d %s", i, line.Number, line.Entry, tt.number, tt.entry)
		}
		if tt.failed {
			if line.Err == nil || line.Node != nil {
				t.Errorf("line %d: expected an error only, got node %v err %v", tt.number, line.Node, line.Err)
			}
			continue
		}
		if line.Err != nil {
			t.Errorf("line %d: unexpected error %v", tt.number, line.Err)
			continue
		}
		if line.Node.Tag != tt.tag {
			t.Errorf("line %d: tag = %s, want %s", tt.number, line.Node.Tag, tt.tag)
		}
	}
}

func TestDefaultEntry(t *testing.T) {
	c := New(t.TempDir(), WithEntry(parser.EntryTypeType))
	doc := c.UpdateFile("types.jexpr", []byte("java.util.List<String>\n"))
	if len(doc.Lines) != 1 || doc.Lines[0].Err != nil {
		t.Fatalf("unexpected lines: %+v", doc.Lines)
	}
	if got := doc.Lines[0].Node.Tag; got != parser.TagClassOrInterfaceType {
		t.Errorf("tag = %s, want CLASS_OR_INTERFACE_TYPE", got)
	}
}

func TestUnknownDirectiveKeepsEntry(t *testing.T) {
	c := New(t.TempDir())
	doc := c.UpdateFile("x.jexpr", []byte("//jexpr:entry statement\na + b\n"))
	if len(doc.Lines) != 1 || doc.Lines[0].Entry != parser.EntryExpression {
		t.Fatalf("unexpected lines: %+v", doc.Lines)
	}
}

func TestDiagnostics(t *testing.T) {
	c := New(t.TempDir())
	c.UpdateFile("sample.jexpr", []byte(sample))
	c.UpdateFile("ok.jexpr", []byte("x -> x\n"))

	diags := c.Diagnostics("")
	if len(diags) != 1 {
		t.Fatalf("len(Diagnostics) = %d, want 1: %+v", len(diags), diags)
	}
	d := diags[0]
	if d.Path != "sample.jexpr" || d.Line != 4 || d.Column != 7 || d.EndColumn != 8 {
		t.Errorf("diagnostic at %s:%d:%d-%d, want sample.jexpr:4:7-8", d.Path, d.Line, d.Column, d.EndColumn)
	}
	if !errors.Is(d.Kind, parser.ErrUnterminatedConstruct) {
		t.Errorf("Kind = %v, want unterminated construct", d.Kind)
	}
	want := "unterminated construct: got end of input, expected expression"
	if d.Message != want {
		t.Errorf("Message = %q, want %q", d.Message, want)
	}

	if got := c.Diagnostics("ok.jexpr"); len(got) != 0 {
		t.Errorf("Diagnostics(ok.jexpr) = %+v, want none", got)
	}
}

func TestNodeAt(t *testing.T) {
	c := New(t.TempDir())
	c.UpdateFile("sample.jexpr", []byte(sample))

	nodes := c.NodeAt("sample.jexpr", 1, 3)
	var tags []string
	for _, n := range nodes {
		tags = append(tags, n.Tag.String())
	}
	want := "QUALIFIED_EXPRESSION METHOD_INVOCATION IDENTIFIER"
	if got := strings.Join(tags, " "); got != want {
		t.Errorf("NodeAt(1, 3) = %q, want %q", got, want)
	}

	if got := c.NodeAt("sample.jexpr", 4, 1); got != nil {
		t.Errorf("NodeAt on a failed line = %v, want nil", got)
	}
	if got := c.NodeAt("missing.jexpr", 1, 1); got != nil {
		t.Errorf("NodeAt on a missing file = %v, want nil", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jexpr"), "a\n")
	writeFile(t, filepath.Join(dir, "sub", "b.jexpr"), "b\n")
	writeFile(t, filepath.Join(dir, ".hidden", "c.jexpr"), "c\n")
	writeFile(t, filepath.Join(dir, "d.txt"), "d\n")

	c := New(dir)
	if err := c.ScanAll(); err != nil {
		t.Fatalf("ScanAll failed: %v", err)
	}
	want := []string{filepath.Join(dir, "a.jexpr"), filepath.Join(dir, "sub", "b.jexpr")}
	got := c.Files()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Files() = %v, want %v", got, want)
	}

	c.RemoveFile(want[0])
	if c.GetFile(want[0]) != nil {
		t.Error("file still present after RemoveFile")
	}
}

func TestFileWatcherScan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jexpr")
	writeFile(t, path, "a +\n")

	c := New(dir)
	w := NewFileWatcher(c)

	if changed := w.scan(); len(changed) != 1 {
		t.Fatalf("first scan changed %v, want one file", changed)
	}
	if len(c.Diagnostics(path)) != 1 {
		t.Fatal("expected a diagnostic after the first scan")
	}
	if changed := w.scan(); len(changed) != 0 {
		t.Errorf("second scan changed %v, want nothing", changed)
	}

	writeFile(t, path, "a + b\n")
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if changed := w.scan(); len(changed) != 1 {
		t.Errorf("scan after edit changed %v, want one file", changed)
	}
	if diags := c.Diagnostics(path); len(diags) != 0 {
		t.Errorf("diagnostics after fix = %+v, want none", diags)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if changed := w.scan(); len(changed) != 1 {
		t.Errorf("scan after delete changed %v, want one file", changed)
	}
	if c.GetFile(path) != nil {
		t.Error("deleted file still present")
	}
}

func TestFileWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "w.jexpr")
	writeFile(t, path, "x\n")

	changes := make(chan []string, 4)
	w := NewFileWatcher(New(dir), WithInterval(10*time.Millisecond), OnChange(func(paths []string) {
		changes <- paths
	}))
	w.Start()
	defer w.Stop()

	select {
	case got := <-changes:
		if len(got) != 1 || got[0] != path {
			t.Errorf("changed = %v, want [%s]", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported for the initial scan")
	}
}
