package format

import (
	"bufio"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/jexpr/java/parser"
)

var testcasesDir string

func init() {
	flag.StringVar(&testcasesDir, "testcases", "", "directory of .jexpr files with one expression per line")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

var roundTripInputs = []string{
	"this",
	"abc",
	"this instanceof boolean",
	"this[super]",
	"this++",
	"this ? super : null",
	"this.a()",
	"a.b()",
	"this*super+null",
	"+this",
	"(this)",
	"(a) -> {}",
	"B.C::A",
	"A.class",
	"@Bean A.class",
	"@A(x = 1, y = {1, 2}) B.class",
	"a.b.c.d",
	"a[0][1]++",
	"- -x",
	"+ ++x",
	"-(-x)",
	"(int) -x",
	"(String) s + t",
	"(List<String>) x",
	"(Runnable) () -> {}",
	"List<List<String>>::new",
	"Arrays::<String>asList",
	"String[].class",
	"int[]::new",
	"void.class",
	"a.<T>f(x, y)",
	"new Foo(1, \"two\")",
	"new ArrayList<>()",
	"outer.new Inner()",
	"new int[3][]",
	"new int[][]{{1}, {2, 3}}",
	"(int x, final String... y) -> x",
	"(@A final int x) -> x",
	"(a, b) -> a + b",
	"x -> { a(); return b; }",
	"x -> { if (x) { y(); } }",
	"x -> y -> x",
	"a >>>= b >> c >= d",
	"a < b && c > d",
	"x instanceof Map<? extends K, ? super V>",
	"0x1F + 017 + 0b101 + 1.5f + 'c'",
	"a ? b ? c : d : e",
}

func checkRoundTrip(t *testing.T, input string) {
	t.Helper()
	want, err := parser.Parse(input, parser.EntryExpression)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	src, err := Java(want)
	if err != nil {
		t.Fatalf("Java failed: %v", err)
	}
	got, err := parser.Parse(src, parser.EntryExpression)
	if err != nil {
		t.Fatalf("reparse of %q failed: %v", src, err)
	}
	if !parser.Equal(got, want) {
		t.Errorf("round trip through %q changed the tree:\n%s\nwant\n%s", src, got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, input := range roundTripInputs {
		t.Run(input, func(t *testing.T) {
			checkRoundTrip(t, input)
		})
	}
}

// TestRoundTrip_Testcases round-trips every line of the .jexpr files under
// the -testcases directory.
func TestRoundTrip_Testcases(t *testing.T) {
	if testcasesDir == "" {
		t.Skip("no -testcases directory given")
	}
	files, err := filepath.Glob(filepath.Join(testcasesDir, "*.jexpr"))
	if err != nil {
		t.Fatalf("glob testcases: %v", err)
	}
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			f, err := os.Open(file)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer f.Close()
			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "//") {
					continue
				}
				checkRoundTrip(t, line)
			}
			if err := scanner.Err(); err != nil {
				t.Fatalf("read: %v", err)
			}
		})
	}
}

func TestJavaOutput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"this*super+null", "this * super + null"},
		{"(a) -> {}", "a -> {}"},
		{"() -> 1", "() -> 1"},
		{"(a,b)->a", "(a, b) -> a"},
		{"@Bean() A.class", "@Bean() A.class"},
		{"- -x", "- -x"},
		{"new int[]{1,2,}", "new int[]{1, 2}"},
		{"x -> { return 1; }", "x -> { return 1 ; }"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := parser.Parse(tt.input, parser.EntryExpression)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			got, err := Java(n)
			if err != nil {
				t.Fatalf("Java failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Java() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJavaRejectsInvalidTag(t *testing.T) {
	if _, err := Java(&parser.Node{Tag: parser.TagInvalid}); err == nil {
		t.Error("expected an error for an INVALID node")
	}
}
