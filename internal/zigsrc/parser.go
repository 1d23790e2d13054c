// Package zigsrc wraps gotreesitter's Zig grammar behind the small surface the
// analysis needs: parse a buffer, walk nodes, and map nodes to byte spans.
package zigsrc

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/odvcencio/gotreesitter"
	"github.com/odvcencio/gotreesitter/grammars"
)

// ErrParse marks malformed source that the grammar could not parse.
var ErrParse = errors.New("parse error")

type Parser struct {
	entry  grammars.LangEntry
	lang   *gotreesitter.Language
	parser *gotreesitter.Parser
}

// NewParser resolves the Zig grammar entry from the registry and prepares a
// reusable parser. A parser is not safe for concurrent use; allocate one per
// worker.
func NewParser() (*Parser, error) {
	entry := grammars.DetectLanguage("main.zig")
	if entry == nil {
		return nil, fmt.Errorf("zig grammar is not registered")
	}

	lang := entry.Language()
	if lang == nil {
		return nil, fmt.Errorf("language loader returned nil for %q", entry.Name)
	}

	return &Parser{
		entry:  *entry,
		lang:   lang,
		parser: gotreesitter.NewParser(lang),
	}, nil
}

// Language returns the registry name of the grammar, "zig".
func (p *Parser) Language() string {
	return p.entry.Name
}

// Parse parses src into a File. The returned File borrows src and must be
// released when the caller is done with the tree.
func (p *Parser) Parse(src []byte) (*File, error) {
	tree, err := p.parseTree(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if tree == nil || tree.RootNode() == nil {
		return nil, fmt.Errorf("%w: no syntax tree produced", ErrParse)
	}

	return &File{
		src:         src,
		tree:        tree,
		lang:        p.lang,
		lineOffsets: lineOffsets(src),
	}, nil
}

func (p *Parser) parseTree(src []byte) (*gotreesitter.Tree, error) {
	if p.entry.TokenSourceFactory != nil {
		ts := p.entry.TokenSourceFactory(src, p.lang)
		if ts != nil {
			return p.parser.ParseWithTokenSource(src, ts)
		}
	}
	return p.parser.Parse(src)
}

// File is one parsed buffer plus the lookup tables needed to turn tree nodes
// into byte spans against the original bytes.
type File struct {
	src         []byte
	tree        *gotreesitter.Tree
	lang        *gotreesitter.Language
	lineOffsets []int
}

func (f *File) Root() *gotreesitter.Node {
	return f.tree.RootNode()
}

func (f *File) Release() {
	if f.tree != nil {
		f.tree.Release()
	}
}

func (f *File) Source() []byte {
	return f.src
}

// Kind returns the grammar node type, or "" for nil nodes.
func (f *File) Kind(node *gotreesitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Type(f.lang)
}

// Text returns the source slice covered by node.
func (f *File) Text(node *gotreesitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Text(f.src)
}

// Span returns the [start, end) byte range of node in the original buffer.
// Node points carry rune columns, so the offset is recovered by advancing
// rune-wise from the line start.
func (f *File) Span(node *gotreesitter.Node) (int, int) {
	if node == nil {
		return 0, 0
	}
	start := f.offsetOfPoint(node.StartPoint())
	end := f.offsetOfPoint(node.EndPoint())
	if end < start {
		end = start
	}
	return start, end
}

// StartOffset returns the byte offset of node's first byte.
func (f *File) StartOffset(node *gotreesitter.Node) int {
	if node == nil {
		return 0
	}
	return f.offsetOfPoint(node.StartPoint())
}

func (f *File) offsetOfPoint(point gotreesitter.Point) int {
	row := int(point.Row)
	if row >= len(f.lineOffsets) {
		return len(f.src)
	}
	offset := f.lineOffsets[row]
	for col := uint32(0); col < point.Column && offset < len(f.src); col++ {
		if f.src[offset] == '\n' {
			break
		}
		_, size := utf8.DecodeRune(f.src[offset:])
		offset += size
	}
	return offset
}

// Position converts a byte offset to a 1-based line and 0-based rune column,
// for diagnostics only.
func (f *File) Position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.src) {
		offset = len(f.src)
	}

	row := sort.Search(len(f.lineOffsets), func(i int) bool {
		return f.lineOffsets[i] > offset
	}) - 1
	if row < 0 {
		row = 0
	}

	column = utf8.RuneCount(f.src[f.lineOffsets[row]:offset])
	return row + 1, column
}

func lineOffsets(src []byte) []int {
	offsets := make([]int, 1, 64)
	offsets[0] = 0
	for i, b := range src {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
