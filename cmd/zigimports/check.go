package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/odvcencio/zigimports/internal/model"
	"github.com/odvcencio/zigimports/internal/runner"
)

func runCheck(args []string) error {
	flags := flag.NewFlagSet("check", flag.ContinueOnError)
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
		printFindings(report)
		printFailures(report)
	}

	if report.HasUnused() || report.HasFailures() {
		return exitCodeError{code: 1, err: checkSummaryError(report)}
	}
	return nil
}

func checkSummaryError(report model.Report) error {
	if report.HasFailures() {
		return fmt.Errorf("%d unused import%s, %d file%s failed",
			report.Unused, pluralSuffix(report.Unused), report.Failed, pluralSuffix(report.Failed))
	}
	return fmt.Errorf("%d unused import%s", report.Unused, pluralSuffix(report.Unused))
}
