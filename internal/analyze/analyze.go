// Package analyze implements the per-file import analysis: scope extraction,
// import classification, usage scanning, and the fixed-point fix driver.
package analyze

import (
	"github.com/odvcencio/zigimports/internal/model"
	"github.com/odvcencio/zigimports/internal/rewrite"
	"github.com/odvcencio/zigimports/internal/zigsrc"
)

// FileAnalysis is the result of one pass over one buffer. All records are
// rebuilt from scratch per pass and hold no reference to the syntax tree.
type FileAnalysis struct {
	Decls  []model.ImportDecl
	Blocks []model.BlockSpan

	used map[string]bool
}

// File parses src and runs the three traversals: block spans, import
// classification, usage scan. A parse failure wraps zigsrc.ErrParse and
// produces no declarations.
func File(parser *zigsrc.Parser, src []byte) (*FileAnalysis, error) {
	f, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	defer f.Release()

	blocks := extractBlocks(f)
	decls, bindings := classify(f, blocks)
	used := scanUsage(f, decls, bindings)

	return &FileAnalysis{
		Decls:  decls,
		Blocks: blocks,
		used:   used,
	}, nil
}

// Unused returns the removable subset: declarations whose name is never
// referenced and that carry no visibility qualifier, in source order.
func (a *FileAnalysis) Unused() []model.ImportDecl {
	unused := make([]model.ImportDecl, 0, len(a.Decls))
	for _, decl := range a.Decls {
		if decl.Excluded || a.used[decl.Name] {
			continue
		}
		unused = append(unused, decl)
	}
	return unused
}

// Organizable returns the declarations that participate in the organized
// preview, excluding pub/export/extern bindings, which stay in place.
func (a *FileAnalysis) Organizable() []model.ImportDecl {
	kept := make([]model.ImportDecl, 0, len(a.Decls))
	for _, decl := range a.Decls {
		if decl.Excluded {
			continue
		}
		kept = append(kept, decl)
	}
	return kept
}

// Fix repeatedly classifies, scans, and splices src until a pass finds zero
// unused imports, so that removals cascade. Each pass strictly removes at
// least one declaration or stops, so the loop terminates. The returned buffer
// is byte-exact outside the removed spans.
func Fix(parser *zigsrc.Parser, src []byte) ([]byte, int, error) {
	removed := 0
	for {
		analysis, err := File(parser, src)
		if err != nil {
			return nil, removed, err
		}
		unused := analysis.Unused()
		if len(unused) == 0 {
			return src, removed, nil
		}
		src, err = rewrite.Remove(src, unused)
		if err != nil {
			return nil, removed, err
		}
		removed += len(unused)
	}
}
