package model

import "testing"

func TestCategoryString(t *testing.T) {
	cases := map[Category]string{
		CategoryBuiltin:    "builtin",
		CategoryLocal:      "local",
		CategorySpecific:   "specific",
		CategoryThirdParty: "third_party",
		Category(99):       "unknown",
	}
	for category, want := range cases {
		if got := category.String(); got != want {
			t.Fatalf("Category(%d).String() = %q, want %q", category, got, want)
		}
	}
}

func TestImportDeclSuffix(t *testing.T) {
	decl := ImportDecl{
		ModulePath:       "baz.zig",
		ModulePathOffset: 9, // @import(" is 9 bytes
		ImportExpr:       `@import("baz.zig").Two`,
	}
	if got := decl.Suffix(); got != `").Two` {
		t.Fatalf("Suffix() = %q, want %q", got, `").Two`)
	}

	bare := ImportDecl{
		ModulePath:       "std",
		ModulePathOffset: 9,
		ImportExpr:       `@import("std")`,
	}
	if got := bare.Suffix(); got != `")` {
		t.Fatalf("Suffix() = %q, want %q", got, `")`)
	}
}

func TestImportDeclSuffix_OutOfRange(t *testing.T) {
	decl := ImportDecl{ModulePath: "longer-than-expr", ModulePathOffset: 9, ImportExpr: "short"}
	if got := decl.Suffix(); got != "" {
		t.Fatalf("Suffix() = %q, want empty for out-of-range cut", got)
	}
}

func TestBlockSpanContains(t *testing.T) {
	block := BlockSpan{Start: 10, End: 20}
	for _, pos := range []int{10, 15, 20} {
		if !block.Contains(pos) {
			t.Fatalf("expected %d inside [%d,%d]", pos, block.Start, block.End)
		}
	}
	for _, pos := range []int{9, 21} {
		if block.Contains(pos) {
			t.Fatalf("expected %d outside [%d,%d]", pos, block.Start, block.End)
		}
	}
}

func TestReportFlags(t *testing.T) {
	var report Report
	if report.HasUnused() || report.HasFailures() {
		t.Fatal("empty report should have no unused imports or failures")
	}

	report.Unused = 2
	report.Failed = 1
	if !report.HasUnused() || !report.HasFailures() {
		t.Fatal("expected unused and failure flags set")
	}
}
