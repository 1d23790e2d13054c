package analyze

import (
	"github.com/odvcencio/gotreesitter"

	"github.com/odvcencio/zigimports/internal/model"
	"github.com/odvcencio/zigimports/internal/zigsrc"
)

// blockKinds are the grammar node types whose body opens a lexical scope.
// A declaration starting inside any of these spans is not a file-level global.
var blockKinds = map[string]bool{
	"block":                    true,
	"struct_declaration":       true,
	"union_declaration":        true,
	"enum_declaration":         true,
	"opaque_declaration":       true,
	"error_set_declaration":    true,
	"container_declaration":    true,
	"tagged_union_declaration": true,
}

// extractBlocks records the byte interval of every lexical block in one walk.
// Nesting is not tracked: a position inside a nested block is also inside every
// enclosing block's interval, so containment stays a flat interval test.
func extractBlocks(f *zigsrc.File) []model.BlockSpan {
	blocks := make([]model.BlockSpan, 0, 16)
	gotreesitter.Walk(f.Root(), func(node *gotreesitter.Node, depth int) gotreesitter.WalkAction {
		if node == nil || !blockKinds[f.Kind(node)] {
			return gotreesitter.WalkContinue
		}
		start, end := f.Span(node)
		if end > start {
			blocks = append(blocks, model.BlockSpan{Start: start, End: end - 1})
		}
		return gotreesitter.WalkContinue
	})
	return blocks
}

func insideBlock(blocks []model.BlockSpan, pos int) bool {
	for _, block := range blocks {
		if block.Contains(pos) {
			return true
		}
	}
	return false
}
