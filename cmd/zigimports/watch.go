package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/odvcencio/zigimports/internal/ignore"
	"github.com/odvcencio/zigimports/internal/runner"
)

func runWatch(args []string) error {
	flags := flag.NewFlagSet("watch", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	args = normalizeFlagArgs(args, map[string]bool{
		"-debounce":  true,
		"--debounce": true,
		"-fix":       false,
		"--fix":      false,
		"-debug":     false,
		"--debug":    false,
	})

	fix := flags.Bool("fix", false, "rewrite files instead of only reporting")
	debounce := flags.Duration("debounce", 250*time.Millisecond, "quiet period before re-running")
	debug := flags.Bool("debug", false, "log skipped paths to stderr")

	if err := flags.Parse(args); err != nil {
		return err
	}

	target := "."
	if flags.NArg() > 0 {
		target = flags.Arg(0)
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	absTarget = filepath.Clean(absTarget)

	matcher, err := ignore.LoadRoot(absTarget)
	if err != nil {
		return err
	}

	run := runner.New()
	opts := runner.Options{Root: absTarget, Fix: *fix, Debug: *debug}

	runOnce := func() {
		report, runErr := run.Run(opts)
		if runErr != nil {
			fmt.Fprintln(os.Stderr, "error:", runErr)
			return
		}
		if *fix {
			printRemovals(report)
		} else {
			printFindings(report)
		}
		printFailures(report)
	}
	runOnce()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return watchLoop(ctx, absTarget, *debounce, matcher, func() {
		runOnce()
	})
}

func watchLoop(ctx context.Context, target string, debounce time.Duration, matcher *ignore.Matcher, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	root := target
	if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
		root = filepath.Dir(target)
	}
	if err := addWatchRecursive(watcher, root, target, matcher); err != nil {
		return err
	}

	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	pending := false

	resetDebounce := func() {
		if pending {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}
		timer.Reset(debounce)
		pending = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			eventPath := filepath.Clean(event.Name)
			if !watchRelevant(root, eventPath, matcher) {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(eventPath); statErr == nil && info.IsDir() {
					_ = addWatchRecursive(watcher, eventPath, target, matcher)
				}
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			resetDebounce()
		case <-timer.C:
			if pending {
				pending = false
				onChange()
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string, projectRoot string, matcher *ignore.Matcher) error {
	root = filepath.Clean(root)
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if shouldSkipWatchDir(projectRoot, path, entry.Name(), matcher) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func shouldSkipWatchDir(root, path, name string, matcher *ignore.Matcher) bool {
	if path == root {
		return false
	}

	switch name {
	case ".git", ".hg", ".svn", "node_modules", "vendor", "zig-cache", "zig-out":
		return true
	}
	if strings.HasPrefix(name, ".") {
		return true
	}

	if relPath, err := filepath.Rel(root, path); err == nil {
		return matcher.Match(filepath.ToSlash(relPath), true)
	}
	return false
}

func watchRelevant(root, path string, matcher *ignore.Matcher) bool {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return !shouldSkipWatchDir(root, path, filepath.Base(path), matcher)
	}
	if !strings.EqualFold(filepath.Ext(path), ".zig") {
		return false
	}
	if relPath, err := filepath.Rel(root, path); err == nil {
		return !matcher.Match(filepath.ToSlash(relPath), false)
	}
	return true
}
