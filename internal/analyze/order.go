package analyze

import (
	"sort"
	"strings"

	"github.com/odvcencio/zigimports/internal/model"
)

// Less defines the total order used for grouping and display: category, module
// path, member-access suffix, path nesting, path length, then source line. Two
// declarations cannot start on the same line, so the final key breaks all ties.
func Less(a, b model.ImportDecl) bool {
	if a.Category != b.Category {
		return a.Category < b.Category
	}
	if a.ModulePath != b.ModulePath {
		return a.ModulePath < b.ModulePath
	}
	if sa, sb := a.Suffix(), b.Suffix(); sa != sb {
		return sa < sb
	}
	if da, db := strings.Count(a.ModulePath, "."), strings.Count(b.ModulePath, "."); da != db {
		return da < db
	}
	if len(a.ModulePath) != len(b.ModulePath) {
		return len(a.ModulePath) < len(b.ModulePath)
	}
	return a.Line < b.Line
}

// SortDecls returns a copy of decls in display order.
func SortDecls(decls []model.ImportDecl) []model.ImportDecl {
	sorted := append([]model.ImportDecl(nil), decls...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})
	return sorted
}
