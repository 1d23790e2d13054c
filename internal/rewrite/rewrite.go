// Package rewrite produces new source text from classified declarations: the
// deletion splice for fix mode and the grouped preview for organize mode. Both
// are pure text transforms; callers own all file I/O.
package rewrite

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/odvcencio/zigimports/internal/model"
)

// InvariantError reports overlapping declaration spans reaching the splice.
// That is a classifier bug, not a recoverable input condition; the caller must
// abort the file rather than miswrite it.
type InvariantError struct {
	Prev model.ImportDecl
	Next model.ImportDecl
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("overlapping declaration spans: %s [%d,%d) and %s [%d,%d)",
		e.Prev.Name, e.Prev.StartByte, e.Prev.EndByte,
		e.Next.Name, e.Next.StartByte, e.Next.EndByte)
}

// Remove deletes every declaration's byte range from src and preserves all
// other bytes verbatim. Spans are sorted by start offset, so the result does
// not depend on discovery order.
func Remove(src []byte, decls []model.ImportDecl) ([]byte, error) {
	if len(decls) == 0 {
		return src, nil
	}

	sorted := append([]model.ImportDecl(nil), decls...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartByte < sorted[j].StartByte
	})

	out := make([]byte, 0, len(src))
	cursor := 0
	for i, decl := range sorted {
		var prev model.ImportDecl
		if i > 0 {
			prev = sorted[i-1]
		}
		if i > 0 && prev.EndByte > decl.StartByte {
			return nil, &InvariantError{Prev: prev, Next: decl}
		}
		if decl.StartByte < cursor || decl.EndByte > len(src) || decl.EndByte < decl.StartByte {
			return nil, &InvariantError{Prev: prev, Next: decl}
		}
		out = append(out, src[cursor:decl.StartByte]...)
		cursor = decl.EndByte
	}
	out = append(out, src[cursor:]...)
	return out, nil
}

// Organize renders the diagnostic preview: every declaration's original slice
// in the given order, one blank line between category groups, then the rest of
// the file with the original import statements spliced out. Pass declarations
// already sorted by the display comparator.
func Organize(src []byte, sorted []model.ImportDecl) ([]byte, error) {
	if len(sorted) == 0 {
		return src, nil
	}

	var buf bytes.Buffer
	for i, decl := range sorted {
		if i > 0 && decl.Category != sorted[i-1].Category {
			buf.WriteByte('\n')
		}
		stmt := bytes.TrimRight(src[decl.StartByte:decl.EndByte], "\n")
		buf.Write(stmt)
		buf.WriteByte('\n')
	}

	rest, err := Remove(src, sorted)
	if err != nil {
		return nil, err
	}
	rest = bytes.TrimLeft(rest, "\n")
	if len(rest) > 0 {
		buf.WriteByte('\n')
		buf.Write(rest)
	}
	return buf.Bytes(), nil
}
