// Package model defines the core data types for import analysis: ImportDecl, BlockSpan, Category, and the per-file report shapes.
package model

// Category is the coarse module-path classification used for grouping and sorting.
// The enumeration order is the sort order.
type Category int

const (
	CategoryBuiltin Category = iota
	CategoryLocal
	CategorySpecific
	CategoryThirdParty
)

func (c Category) String() string {
	switch c {
	case CategoryBuiltin:
		return "builtin"
	case CategoryLocal:
		return "local"
	case CategorySpecific:
		return "specific"
	case CategoryThirdParty:
		return "third_party"
	default:
		return "unknown"
	}
}

// ImportDecl represents one module-level declaration that binds a name to an
// @import expression. Byte offsets index the original file bytes; StartByte/EndByte
// cover the whole removable statement including absorbed trailing newlines.
type ImportDecl struct {
	Name             string   `json:"name"`
	StartByte        int      `json:"start_byte"`
	EndByte          int      `json:"end_byte"`
	Line             int      `json:"line"`
	EndLine          int      `json:"end_line"`
	Column           int      `json:"column"`
	ModulePath       string   `json:"module_path"`
	ModulePathOffset int      `json:"module_path_offset"`
	Category         Category `json:"category"`
	// ImportExpr is the exact source slice from the @import token through the end
	// of the bound expression, captured before any trailing newline absorption.
	ImportExpr string `json:"import_expr"`
	// Excluded marks pub/export/extern declarations: reported, never rewritten.
	Excluded bool `json:"excluded,omitempty"`
}

// Suffix returns the member-access tail of the import expression, the part after
// the closing quote of the module path (for example `").Two` for
// `@import("baz.zig").Two`). Used only as a comparator tie-break.
func (d ImportDecl) Suffix() string {
	cut := d.ModulePathOffset + len(d.ModulePath)
	if cut < 0 || cut > len(d.ImportExpr) {
		return ""
	}
	return d.ImportExpr[cut:]
}

// BlockSpan is the [Start, End] byte interval of one lexical block (function,
// struct, union, enum body). Containment is a closed interval test.
type BlockSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether pos falls inside the block. A position inside a
// nested block is also inside every enclosing block's interval, so no nesting
// relationship needs to be tracked.
func (b BlockSpan) Contains(pos int) bool {
	return pos >= b.Start && pos <= b.End
}

// Finding is one unused import, formatted by the runner as
// "<path>:<line>:<column>: <name> is unused".
type Finding struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Name   string `json:"name"`
}

// FileResult summarizes one file's analysis or fix pass.
type FileResult struct {
	Path     string    `json:"path"`
	Findings []Finding `json:"findings,omitempty"`
	Removed  int       `json:"removed,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Report aggregates per-file results for one runner invocation.
type Report struct {
	Root       string       `json:"root"`
	Files      int          `json:"files"`
	Unused     int          `json:"unused"`
	Removed    int          `json:"removed,omitempty"`
	Failed     int          `json:"failed,omitempty"`
	Results    []FileResult `json:"results,omitempty"`
	FixApplied bool         `json:"fix_applied,omitempty"`
}

// HasUnused reports whether any file still has unused imports.
func (r Report) HasUnused() bool {
	return r.Unused > 0
}

// HasFailures reports whether any file failed to parse or rewrite.
func (r Report) HasFailures() bool {
	return r.Failed > 0
}
