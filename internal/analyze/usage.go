package analyze

import (
	"github.com/odvcencio/gotreesitter"

	"github.com/odvcencio/zigimports/internal/model"
	"github.com/odvcencio/zigimports/internal/zigsrc"
)

// scanUsage walks the whole tree and flips a declared name to used the first
// time its exact spelling appears as an identifier or as the root of a member
// access chain. Binding occurrences are skipped by byte offset. Flags only
// transition false to true.
//
// Shadowing is not modeled: a block-local variable reusing an import's name
// marks the import used. This is an accepted approximation.
func scanUsage(f *zigsrc.File, decls []model.ImportDecl, bindings map[int]bool) map[string]bool {
	used := make(map[string]bool, len(decls))
	for _, decl := range decls {
		used[decl.Name] = false
	}
	if len(used) == 0 {
		return used
	}

	var visit func(node *gotreesitter.Node)
	visit = func(node *gotreesitter.Node) {
		if node == nil {
			return
		}
		switch f.Kind(node) {
		case "identifier":
			if bindings[f.StartOffset(node)] {
				return
			}
			name := f.Text(node)
			if _, declared := used[name]; declared {
				used[name] = true
			}
		case "field_expression":
			// Only the leftmost operand of a member access chain can
			// reference an import binding.
			children := node.Children()
			if len(children) > 0 {
				visit(children[0])
			}
		default:
			for _, child := range node.Children() {
				visit(child)
			}
		}
	}
	visit(f.Root())

	return used
}
