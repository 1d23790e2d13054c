package zigsrc

import (
	"errors"
	"strings"
	"testing"

	"github.com/odvcencio/gotreesitter"
)

func TestNewParserResolvesZig(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser returned error: %v", err)
	}
	if got := parser.Language(); got != "zig" {
		t.Fatalf("Language() = %q, want zig", got)
	}
}

func TestParseProducesWalkableTree(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser returned error: %v", err)
	}

	src := []byte("const std = @import(\"std\");\n")
	file, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	defer file.Release()

	if file.Root() == nil {
		t.Fatal("expected a root node")
	}

	var sawIdentifier bool
	gotreesitter.Walk(file.Root(), func(node *gotreesitter.Node, depth int) gotreesitter.WalkAction {
		if file.Kind(node) == "identifier" && file.Text(node) == "std" {
			sawIdentifier = true
			start, end := file.Span(node)
			if string(src[start:end]) != "std" {
				t.Fatalf("span [%d,%d) does not cover the identifier", start, end)
			}
		}
		return gotreesitter.WalkContinue
	})
	if !sawIdentifier {
		t.Fatal("expected to find the std identifier in the tree")
	}
}

func TestSpanWithMultibyteRunes(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser returned error: %v", err)
	}

	// The é before the declaration shifts byte and rune columns apart.
	src := []byte("// café\nconst std = @import(\"std\");\n")
	file, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	defer file.Release()

	var found bool
	gotreesitter.Walk(file.Root(), func(node *gotreesitter.Node, depth int) gotreesitter.WalkAction {
		if file.Kind(node) == "identifier" && file.Text(node) == "std" {
			found = true
			start, end := file.Span(node)
			if string(src[start:end]) != "std" {
				t.Fatalf("span [%d,%d) = %q, want std", start, end, src[start:end])
			}
		}
		return gotreesitter.WalkContinue
	})
	if !found {
		t.Fatal("expected to find the std identifier")
	}
}

func TestPosition(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser returned error: %v", err)
	}

	src := []byte("const a = 1;\nconst b = 2;\n")
	file, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	defer file.Release()

	cases := []struct {
		offset    int
		line, col int
	}{
		{offset: 0, line: 1, col: 0},
		{offset: 6, line: 1, col: 6},
		{offset: 13, line: 2, col: 0},
		{offset: 19, line: 2, col: 6},
		{offset: len(src), line: 3, col: 0},
		{offset: -5, line: 1, col: 0},
	}
	for _, tc := range cases {
		line, col := file.Position(tc.offset)
		if line != tc.line || col != tc.col {
			t.Fatalf("Position(%d) = %d:%d, want %d:%d", tc.offset, line, col, tc.line, tc.col)
		}
	}
}

func TestLineOffsets(t *testing.T) {
	src := []byte("a\nbb\n\nccc")
	got := lineOffsets(src)
	want := []int{0, 2, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("lineOffsets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lineOffsets = %v, want %v", got, want)
		}
	}
}

func TestParseErrorWrapping(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser returned error: %v", err)
	}

	_, parseErr := parser.Parse([]byte(strings.Repeat("\x00", 8)))
	if parseErr == nil {
		t.Skip("grammar tolerated the malformed input")
	}
	if !errors.Is(parseErr, ErrParse) {
		t.Fatalf("parse failures must wrap ErrParse, got %v", parseErr)
	}
}
