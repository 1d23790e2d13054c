package analyze

import "testing"

func TestStatementEnd(t *testing.T) {
	src := []byte(`const a = @import("a");` + "\n")

	// Declaration node already covers the semicolon.
	if got := statementEnd(src, 23); got != 23 {
		t.Fatalf("statementEnd = %d, want 23", got)
	}

	// Declaration node stops before the semicolon.
	if got := statementEnd(src, 22); got != 23 {
		t.Fatalf("statementEnd = %d, want 23", got)
	}

	// No terminator at all: the tentative end stands.
	noSemi := []byte("const a = 1")
	if got := statementEnd(noSemi, len(noSemi)); got != len(noSemi) {
		t.Fatalf("statementEnd = %d, want %d", got, len(noSemi))
	}
}

func TestExtendSpan_AbsorbsOwnNewline(t *testing.T) {
	src := []byte("const a = 1;\nconst b = 2;\n")
	if got := extendSpan(src, 0, 12); got != 13 {
		t.Fatalf("extendSpan = %d, want 13 (statement newline absorbed)", got)
	}
}

func TestExtendSpan_IsolatedParagraphAbsorbsTwo(t *testing.T) {
	src := []byte("const a = 1;\n\nconst b = 2;\n\nconst c = 3;\n")
	start := 14 // const b
	stmtEnd := 26
	if got := extendSpan(src, start, stmtEnd); got != 28 {
		t.Fatalf("extendSpan = %d, want 28 (blank-line paragraph collapsed)", got)
	}
}

func TestExtendSpan_NoBlankBeforeAbsorbsOne(t *testing.T) {
	src := []byte("const a = 1;\nconst b = 2;\n\nconst c = 3;\n")
	start := 13 // const b, directly after a
	stmtEnd := 25
	if got := extendSpan(src, start, stmtEnd); got != 26 {
		t.Fatalf("extendSpan = %d, want 26 (single newline only)", got)
	}
}

func TestExtendSpan_NeverMoreThanTwo(t *testing.T) {
	src := []byte("const a = 1;\n\nconst b = 2;\n\n\n\nconst c = 3;\n")
	start := 14
	stmtEnd := 26
	got := extendSpan(src, start, stmtEnd)
	if got != 28 {
		t.Fatalf("extendSpan = %d, want 28 (at most two newlines absorbed)", got)
	}
}

func TestExtendSpan_AtEOF(t *testing.T) {
	src := []byte("const a = 1;")
	if got := extendSpan(src, 0, 12); got != 12 {
		t.Fatalf("extendSpan = %d, want 12 (nothing to absorb at EOF)", got)
	}
}

func TestPrecededByBlankLine(t *testing.T) {
	src := []byte("x\n\nconst a = 1;\n")
	if !precededByBlankLine(src, 3) {
		t.Fatal("expected blank line before offset 3")
	}
	if precededByBlankLine(src, 2) {
		t.Fatal("offset 2 is preceded by a single newline")
	}
	if precededByBlankLine(src, 0) {
		t.Fatal("start of file has no preceding newlines")
	}
}
