package analyze

import (
	"bytes"
	"strings"

	"github.com/odvcencio/gotreesitter"

	"github.com/odvcencio/zigimports/internal/model"
	"github.com/odvcencio/zigimports/internal/zigsrc"
)

const importMarker = "@import"

// builtinModules are the compiler-provided module names.
var builtinModules = map[string]bool{
	"std":     true,
	"root":    true,
	"builtin": true,
}

var visibilityKinds = map[string]bool{
	"pub":    true,
	"export": true,
	"extern": true,
}

// classify finds every file-level variable declaration bound to an @import
// expression and builds its ImportDecl. The second return value is the set of
// byte offsets of the binding identifiers, which the usage scan must not count
// as references. Declarations without an @import marker are ordinary globals
// and are discarded.
func classify(f *zigsrc.File, blocks []model.BlockSpan) ([]model.ImportDecl, map[int]bool) {
	src := f.Source()
	decls := make([]model.ImportDecl, 0, 8)
	bindings := make(map[int]bool, 8)

	gotreesitter.Walk(f.Root(), func(node *gotreesitter.Node, depth int) gotreesitter.WalkAction {
		if node == nil || f.Kind(node) != "variable_declaration" {
			return gotreesitter.WalkContinue
		}

		declStart := f.StartOffset(node)
		if insideBlock(blocks, declStart) {
			return gotreesitter.WalkContinue
		}

		name, nameOffset, ok := declarationName(f, node)
		if !ok {
			return gotreesitter.WalkContinue
		}

		marker := findImportMarker(f, node, nameOffset)
		if marker == nil {
			// Ordinary global, not an import binding.
			return gotreesitter.WalkContinue
		}
		importStart := f.StartOffset(marker)

		pathStart, pathEnd, ok := modulePathLiteral(f, node, importStart)
		if !ok {
			return gotreesitter.WalkContinue
		}
		modulePath := string(src[pathStart:pathEnd])

		_, declEnd := f.Span(node)
		stmtEnd := statementEnd(src, declEnd)
		if stmtEnd <= importStart {
			return gotreesitter.WalkContinue
		}

		// The import expression runs through the end of the bound expression,
		// captured before any trailing newline absorption.
		importExpr := strings.TrimRight(string(src[importStart:stmtEnd-1]), " \t")

		line, column := f.Position(declStart)
		endLine, _ := f.Position(stmtEnd - 1)

		decl := model.ImportDecl{
			Name:             name,
			StartByte:        declStart,
			EndByte:          extendSpan(src, declStart, stmtEnd),
			Line:             line,
			EndLine:          endLine,
			Column:           column,
			ModulePath:       modulePath,
			ModulePathOffset: pathStart - importStart,
			Category:         Categorize(modulePath),
			ImportExpr:       importExpr,
			Excluded:         hasVisibilityModifier(f, node, nameOffset),
		}

		decls = append(decls, decl)
		bindings[nameOffset] = true
		return gotreesitter.WalkContinue
	})

	return decls, bindings
}

// declarationName returns the bound identifier's text and byte offset.
func declarationName(f *zigsrc.File, decl *gotreesitter.Node) (string, int, bool) {
	for _, child := range decl.Children() {
		if f.Kind(child) == "identifier" {
			return f.Text(child), f.StartOffset(child), true
		}
	}
	return "", 0, false
}

// hasVisibilityModifier reports whether the declaration carries a
// pub/export/extern qualifier before its name. Grammars differ on whether the
// qualifier is a child token or sits outside the declaration node, so the
// leading source text is checked as well.
func hasVisibilityModifier(f *zigsrc.File, decl *gotreesitter.Node, nameOffset int) bool {
	for _, child := range decl.Children() {
		if f.StartOffset(child) >= nameOffset {
			break
		}
		if visibilityKinds[f.Kind(child)] || visibilityKinds[f.Text(child)] {
			return true
		}
	}

	declStart := f.StartOffset(decl)
	if declStart >= nameOffset || declStart >= len(f.Source()) {
		return false
	}
	lead := string(f.Source()[declStart:nameOffset])
	for _, field := range strings.Fields(lead) {
		if visibilityKinds[field] {
			return true
		}
	}
	return false
}

// findImportMarker returns the @import token when it is the first token of
// the declaration's bound expression, or nil when the declaration is not an
// import. Requiring first position keeps globals whose initializer merely
// contains an @import somewhere (struct literals, blocks) out of the set.
func findImportMarker(f *zigsrc.File, decl *gotreesitter.Node, nameOffset int) *gotreesitter.Node {
	var marker *gotreesitter.Node
	seenAssign := false
	done := false
	gotreesitter.Walk(decl, func(node *gotreesitter.Node, depth int) gotreesitter.WalkAction {
		if done || node == nil || node.ChildCount() > 0 {
			return gotreesitter.WalkContinue
		}
		if f.StartOffset(node) <= nameOffset {
			return gotreesitter.WalkContinue
		}
		if !seenAssign {
			if f.Text(node) == "=" {
				seenAssign = true
			}
			return gotreesitter.WalkContinue
		}
		// First token of the bound expression.
		done = true
		if f.Text(node) == importMarker {
			marker = node
		}
		return gotreesitter.WalkContinue
	})
	return marker
}

// modulePathLiteral locates the quoted module path argument after the @import
// token and returns the byte range of the path with the quotes stripped.
func modulePathLiteral(f *zigsrc.File, decl *gotreesitter.Node, importStart int) (int, int, bool) {
	src := f.Source()
	var start, end int
	found := false
	gotreesitter.Walk(decl, func(node *gotreesitter.Node, depth int) gotreesitter.WalkAction {
		if found || node == nil || f.Kind(node) != "string" {
			return gotreesitter.WalkContinue
		}
		s, e := f.Span(node)
		if s <= importStart {
			return gotreesitter.WalkContinue
		}
		start, end, found = s, e, true
		return gotreesitter.WalkContinue
	})
	if !found {
		return 0, 0, false
	}
	if start < end && src[start] == '"' {
		start++
	}
	if end > start && src[end-1] == '"' {
		end--
	}
	return start, end, true
}

// statementEnd returns the offset one past the terminating semicolon. Grammars
// differ on whether the terminator belongs to the declaration node, so the
// semicolon is located in the source when the node stops short of it.
func statementEnd(src []byte, declEnd int) int {
	if declEnd > 0 && declEnd <= len(src) && src[declEnd-1] == ';' {
		return declEnd
	}
	if i := bytes.IndexByte(src[declEnd:], ';'); i >= 0 {
		return declEnd + i + 1
	}
	return declEnd
}

// extendSpan absorbs the statement's own line break, plus one more when the
// statement sat as its own blank-line-surrounded paragraph, so deleting it
// leaves no orphan blank line. At most two newlines are absorbed and leading
// whitespace is never touched.
func extendSpan(src []byte, start, stmtEnd int) int {
	end := stmtEnd
	if end < len(src) && src[end] == '\n' {
		end++
		if end < len(src) && src[end] == '\n' && precededByBlankLine(src, start) {
			end++
		}
	}
	return end
}

func precededByBlankLine(src []byte, start int) bool {
	return start >= 2 && src[start-1] == '\n' && src[start-2] == '\n'
}

// Categorize maps a module path to its category. The category is a total
// function of the path string alone.
func Categorize(modulePath string) model.Category {
	switch {
	case builtinModules[modulePath]:
		return model.CategoryBuiltin
	case strings.HasSuffix(modulePath, ".zig"):
		return model.CategoryLocal
	case strings.ContainsAny(modulePath, "./"):
		return model.CategorySpecific
	default:
		return model.CategoryThirdParty
	}
}
