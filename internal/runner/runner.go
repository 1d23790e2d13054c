// Package runner walks candidate .zig files and drives the per-file analysis
// across a worker pool. Each file is read, analyzed, and (in fix mode)
// rewritten within one worker with no shared mutable state.
package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/odvcencio/zigimports/internal/analyze"
	"github.com/odvcencio/zigimports/internal/ignore"
	"github.com/odvcencio/zigimports/internal/model"
	"github.com/odvcencio/zigimports/internal/zigsrc"
)

const sourceExt = ".zig"

const cacheSize = 4096

type Options struct {
	Root  string
	Fix   bool
	Debug bool
}

// Runner keeps a bounded cache of check results keyed by absolute path, so
// repeated runs over the same tree (watch mode) only re-analyze files whose
// size or mtime changed. Fix runs bypass and invalidate the cache.
type Runner struct {
	cache *lru.Cache[string, cachedResult]
}

type cachedResult struct {
	sizeBytes       int64
	modTimeUnixNano int64
	result          model.FileResult
}

type candidate struct {
	path            string
	display         string
	sizeBytes       int64
	modTimeUnixNano int64
}

func New() *Runner {
	cache, err := lru.New[string, cachedResult](cacheSize)
	if err != nil {
		panic(err)
	}
	return &Runner{cache: cache}
}

// Run analyzes every candidate file under opts.Root and aggregates the
// per-file results. A single file's failure is recorded and does not abort
// the rest of the run.
func (r *Runner) Run(opts Options) (model.Report, error) {
	target := strings.TrimSpace(opts.Root)
	if target == "" {
		target = "."
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return model.Report{}, err
	}
	target = filepath.Clean(target)

	info, err := os.Stat(target)
	if err != nil {
		return model.Report{}, err
	}

	root := target
	var candidates []candidate
	if info.IsDir() {
		matcher, err := ignore.LoadRoot(target)
		if err != nil {
			return model.Report{}, err
		}
		candidates = collectCandidates(target, matcher, opts.Debug)
	} else {
		root = filepath.Dir(target)
		if strings.EqualFold(filepath.Ext(target), sourceExt) {
			candidates = append(candidates, candidate{
				path:            target,
				display:         filepath.ToSlash(filepath.Base(target)),
				sizeBytes:       info.Size(),
				modTimeUnixNano: info.ModTime().UnixNano(),
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].path < candidates[j].path
	})

	results := r.processCandidates(candidates, opts)

	report := model.Report{
		Root:       root,
		Files:      len(candidates),
		FixApplied: opts.Fix,
	}
	for _, result := range results {
		report.Unused += len(result.Findings)
		report.Removed += result.Removed
		if result.Error != "" {
			report.Failed++
		}
		report.Results = append(report.Results, result)
	}
	return report, nil
}

func (r *Runner) processCandidates(candidates []candidate, opts Options) []model.FileResult {
	if len(candidates) == 0 {
		return nil
	}

	results := make([]model.FileResult, len(candidates))
	workers := workerCount(len(candidates))

	taskCh := make(chan int, len(candidates))
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()

			parser, parserErr := zigsrc.NewParser()
			for idx := range taskCh {
				task := candidates[idx]
				if parserErr != nil {
					results[idx] = model.FileResult{Path: task.display, Error: parserErr.Error()}
					continue
				}
				if opts.Fix {
					r.cache.Remove(task.path)
					results[idx] = fixFile(parser, task)
					continue
				}
				if cached, ok := r.cache.Get(task.path); ok &&
					cached.sizeBytes == task.sizeBytes &&
					cached.modTimeUnixNano == task.modTimeUnixNano {
					results[idx] = cached.result
					continue
				}
				result := checkFile(parser, task)
				if result.Error == "" {
					r.cache.Add(task.path, cachedResult{
						sizeBytes:       task.sizeBytes,
						modTimeUnixNano: task.modTimeUnixNano,
						result:          result,
					})
				}
				results[idx] = result
			}
		}()
	}

	for i := range candidates {
		taskCh <- i
	}
	close(taskCh)
	wg.Wait()
	return results
}

func checkFile(parser *zigsrc.Parser, task candidate) model.FileResult {
	result := model.FileResult{Path: task.display}

	source, err := os.ReadFile(task.path)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	analysis, err := analyze.File(parser, source)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	for _, decl := range analysis.Unused() {
		result.Findings = append(result.Findings, model.Finding{
			Path:   task.display,
			Line:   decl.Line,
			Column: decl.Column,
			Name:   decl.Name,
		})
	}
	return result
}

func fixFile(parser *zigsrc.Parser, task candidate) model.FileResult {
	result := model.FileResult{Path: task.display}

	source, err := os.ReadFile(task.path)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	fixed, removed, err := analyze.Fix(parser, source)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if removed == 0 {
		return result
	}

	// Whole new content in one write; no partial state is ever visible.
	if err := os.WriteFile(task.path, fixed, 0o644); err != nil {
		result.Error = err.Error()
		return result
	}
	result.Removed = removed
	return result
}

func collectCandidates(root string, matcher *ignore.Matcher, debug bool) []candidate {
	files := make([]candidate, 0, 64)
	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable and symlink-broken entries are skipped, not fatal.
			if debug {
				fmt.Fprintf(os.Stderr, "skip %s: %v\n", path, walkErr)
			}
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if entry.IsDir() {
			if path == root {
				return nil
			}
			name := entry.Name()
			if skipDirNames[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if matcher.Match(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), sourceExt) {
			return nil
		}
		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if matcher.Match(relPath, false) {
			return nil
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			if debug {
				fmt.Fprintf(os.Stderr, "skip %s: %v\n", path, infoErr)
			}
			return nil
		}

		files = append(files, candidate{
			path:            path,
			display:         relPath,
			sizeBytes:       info.Size(),
			modTimeUnixNano: info.ModTime().UnixNano(),
		})
		return nil
	})
	return files
}

var skipDirNames = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"zig-cache":    true,
	"zig-out":      true,
}

func workerCount(taskCount int) int {
	if taskCount <= 0 {
		return 0
	}

	if raw := strings.TrimSpace(os.Getenv("ZIGIMPORTS_WORKERS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			if parsed > taskCount {
				return taskCount
			}
			return parsed
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > taskCount {
		workers = taskCount
	}
	return workers
}
