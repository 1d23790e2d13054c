package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/odvcencio/zigimports/internal/model"
)

func emitJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func normalizeFlagArgs(args []string, valueFlags map[string]bool) []string {
	if len(args) == 0 {
		return nil
	}

	flags := make([]string, 0, len(args))
	positionals := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}

		if !strings.HasPrefix(arg, "-") {
			positionals = append(positionals, arg)
			continue
		}

		flags = append(flags, arg)
		if strings.Contains(arg, "=") {
			continue
		}
		if !valueFlags[arg] {
			continue
		}
		if i+1 < len(args) {
			flags = append(flags, args[i+1])
			i++
		}
	}

	return append(flags, positionals...)
}

func printFindings(report model.Report) {
	for _, result := range report.Results {
		for _, finding := range result.Findings {
			fmt.Printf("%s:%d:%d: %s is unused\n", finding.Path, finding.Line, finding.Column, finding.Name)
		}
	}
}

func printRemovals(report model.Report) {
	for _, result := range report.Results {
		if result.Removed == 0 {
			continue
		}
		fmt.Printf("%s - Removed %d unused import%s\n", result.Path, result.Removed, pluralSuffix(result.Removed))
	}
}

func printFailures(report model.Report) {
	for _, result := range report.Results {
		if result.Error == "" {
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", result.Path, result.Error)
	}
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
