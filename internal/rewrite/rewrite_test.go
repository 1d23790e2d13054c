package rewrite

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/odvcencio/zigimports/internal/model"
)

// declFor builds an ImportDecl for a one-line statement inside src, absorbing
// the statement's own trailing newline the way the classifier does.
func declFor(t *testing.T, src []byte, stmt, name, path string, category model.Category) model.ImportDecl {
	t.Helper()
	start := bytes.Index(src, []byte(stmt))
	if start < 0 {
		t.Fatalf("statement %q not found in fixture", stmt)
	}
	end := start + len(stmt)
	if end < len(src) && src[end] == '\n' {
		end++
	}
	exprStart := strings.Index(stmt, "@import")
	if exprStart < 0 {
		t.Fatalf("statement %q has no import expression", stmt)
	}
	return model.ImportDecl{
		Name:             name,
		StartByte:        start,
		EndByte:          end,
		ModulePath:       path,
		ModulePathOffset: 9,
		Category:         category,
		ImportExpr:       strings.TrimSuffix(stmt[exprStart:], ";"),
	}
}

const fixture = `const std = @import("std");
const zap = @import("zap");
const two = @import("baz.zig").Two;
const one = @import("baz.zig").One;
const bi = @import("builtin");

pub fn main() void {
    std.debug.print("hi\n", .{});
}
`

func fixtureDecls(t *testing.T, src []byte) []model.ImportDecl {
	t.Helper()
	return []model.ImportDecl{
		declFor(t, src, `const std = @import("std");`, "std", "std", model.CategoryBuiltin),
		declFor(t, src, `const zap = @import("zap");`, "zap", "zap", model.CategoryThirdParty),
		declFor(t, src, `const two = @import("baz.zig").Two;`, "two", "baz.zig", model.CategoryLocal),
		declFor(t, src, `const one = @import("baz.zig").One;`, "one", "baz.zig", model.CategoryLocal),
		declFor(t, src, `const bi = @import("builtin");`, "bi", "builtin", model.CategoryBuiltin),
	}
}

func TestRemove_SplicesExactSpans(t *testing.T) {
	src := []byte(fixture)
	decls := fixtureDecls(t, src)

	out, err := Remove(src, decls[1:3])
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	want := `const std = @import("std");
const one = @import("baz.zig").One;
const bi = @import("builtin");

pub fn main() void {
    std.debug.print("hi\n", .{});
}
`
	if string(out) != want {
		t.Fatalf("Remove output mismatch:\n%s", out)
	}
}

func TestRemove_ByteConservation(t *testing.T) {
	src := []byte(fixture)
	decls := fixtureDecls(t, src)

	out, err := Remove(src, decls)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	removedBytes := 0
	for _, decl := range decls {
		removedBytes += decl.EndByte - decl.StartByte
	}
	if len(out)+removedBytes != len(src) {
		t.Fatalf("byte conservation violated: %d out + %d removed != %d in", len(out), removedBytes, len(src))
	}
}

func TestRemove_OrderIndependent(t *testing.T) {
	src := []byte(fixture)
	decls := fixtureDecls(t, src)

	forward, err := Remove(src, decls)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	reversed := make([]model.ImportDecl, 0, len(decls))
	for i := len(decls) - 1; i >= 0; i-- {
		reversed = append(reversed, decls[i])
	}
	backward, err := Remove(src, reversed)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	if !bytes.Equal(forward, backward) {
		t.Fatal("Remove output depends on discovery order")
	}
}

func TestRemove_NoDeclsIsIdentity(t *testing.T) {
	src := []byte(fixture)
	out, err := Remove(src, nil)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Fatal("Remove with no spans must return the input verbatim")
	}
}

func TestRemove_OverlapIsInvariantViolation(t *testing.T) {
	src := []byte(fixture)
	overlapping := []model.ImportDecl{
		{Name: "a", StartByte: 0, EndByte: 30},
		{Name: "b", StartByte: 28, EndByte: 56},
	}

	_, err := Remove(src, overlapping)
	var invariant *InvariantError
	if !errors.As(err, &invariant) {
		t.Fatalf("expected InvariantError, got %v", err)
	}
}

func TestRemove_SpanPastEOFIsInvariantViolation(t *testing.T) {
	src := []byte("short\n")
	_, err := Remove(src, []model.ImportDecl{{Name: "a", StartByte: 0, EndByte: 99}})
	var invariant *InvariantError
	if !errors.As(err, &invariant) {
		t.Fatalf("expected InvariantError, got %v", err)
	}
}

func TestOrganize_GroupsByCategoryWithSeparators(t *testing.T) {
	src := []byte(fixture)
	decls := fixtureDecls(t, src)

	// Display order: builtin group, local group sorted by suffix, third-party.
	sorted := []model.ImportDecl{decls[4], decls[0], decls[3], decls[2], decls[1]}

	out, err := Organize(src, sorted)
	if err != nil {
		t.Fatalf("Organize returned error: %v", err)
	}

	want := `const bi = @import("builtin");
const std = @import("std");

const one = @import("baz.zig").One;
const two = @import("baz.zig").Two;

const zap = @import("zap");

pub fn main() void {
    std.debug.print("hi\n", .{});
}
`
	if string(out) != want {
		t.Fatalf("Organize output mismatch:\n%s", out)
	}
}

func TestOrganize_NoDeclsIsIdentity(t *testing.T) {
	src := []byte(fixture)
	out, err := Organize(src, nil)
	if err != nil {
		t.Fatalf("Organize returned error: %v", err)
	}
	if !bytes.Equal(out, src) {
		t.Fatal("Organize with no declarations must return the input verbatim")
	}
}
