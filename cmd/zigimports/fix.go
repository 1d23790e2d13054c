package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/odvcencio/zigimports/internal/runner"
)

func runFix(args []string) error {
	flags := flag.NewFlagSet("fix", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	args = normalizeFlagArgs(args, map[string]bool{
		"-json":   false,
		"--json":  false,
		"-debug":  false,
		"--debug": false,
	})

	jsonOutput := flags.Bool("json", false, "emit JSON output")
	debug := flags.Bool("debug", false, "log skipped paths to stderr")

	if err := flags.Parse(args); err != nil {
		return err
	}

	target := "."
	if flags.NArg() > 0 {
		target = flags.Arg(0)
	}

	report, err := runner.New().Run(runner.Options{
		Root:  target,
		Fix:   true,
		Debug: *debug,
	})
	if err != nil {
		return err
	}

	if *jsonOutput {
		if err := emitJSON(report); err != nil {
			return err
		}
	} else {
		printRemovals(report)
		printFailures(report)
	}

	if report.HasFailures() {
		return exitCodeError{code: 1, err: fmt.Errorf("%d file%s failed", report.Failed, pluralSuffix(report.Failed))}
	}
	return nil
}
