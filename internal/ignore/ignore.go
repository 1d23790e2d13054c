// Package ignore implements gitignore-style pattern matching for the
// .zigimportsignore file that filters candidate paths during a run.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the per-project ignore file loaded from the walk root.
const FileName = ".zigimportsignore"

type pattern struct {
	raw     string
	negated bool
	dirOnly bool
	glob    string
}

// Matcher evaluates file paths against a set of gitignore-style patterns.
type Matcher struct {
	patterns []pattern
}

// LoadRoot loads the ignore file from root when present. A missing file
// yields a nil matcher, which never matches.
func LoadRoot(root string) (*Matcher, error) {
	m, err := Load(filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// Load reads patterns from a file, one per line.
func Load(path string) (*Matcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ParsePatterns(lines), nil
}

// ParsePatterns builds a Matcher from raw pattern lines.
func ParsePatterns(lines []string) *Matcher {
	m := &Matcher{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p := pattern{raw: line}

		if strings.HasPrefix(line, "!") {
			p.negated = true
			line = line[1:]
		}

		if strings.HasSuffix(line, "/") {
			p.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}

		p.glob = line
		m.patterns = append(m.patterns, p)
	}
	return m
}

// Match returns true if the given path should be skipped. The path should be
// slash-separated and relative to the walk root; isDir indicates whether it
// refers to a directory.
func (m *Matcher) Match(path string, isDir bool) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}

	path = filepath.ToSlash(path)
	ignored := false

	for _, p := range m.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		if matchPattern(p.glob, path) {
			ignored = !p.negated
		}
	}
	return ignored
}

// matchPattern checks whether a gitignore glob matches the given path.
// Patterns without a slash match the basename and each path component;
// patterns with a slash match the full relative path.
func matchPattern(glob, path string) bool {
	if strings.Contains(glob, "/") {
		matched, _ := filepath.Match(glob, path)
		return matched
	}

	base := filepath.Base(path)
	if matched, _ := filepath.Match(glob, base); matched {
		return true
	}

	for _, part := range strings.Split(path, "/") {
		if matched, _ := filepath.Match(glob, part); matched {
			return true
		}
	}
	return false
}
