package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/odvcencio/zigimports/internal/analyze"
	"github.com/odvcencio/zigimports/internal/model"
	"github.com/odvcencio/zigimports/internal/rewrite"
	"github.com/odvcencio/zigimports/internal/zigsrc"
)

func runOrganize(args []string) error {
	flags := flag.NewFlagSet("organize", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	args = normalizeFlagArgs(args, map[string]bool{
		"-json":  false,
		"--json": false,
	})

	jsonOutput := flags.Bool("json", false, "emit the sorted declarations as JSON")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return errors.New("usage: organize <file>")
	}

	path := flags.Arg(0)
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	parser, err := zigsrc.NewParser()
	if err != nil {
		return err
	}

	analysis, err := analyze.File(parser, source)
	if err != nil {
		return err
	}

	sorted := analyze.SortDecls(analysis.Organizable())

	if *jsonOutput {
		return emitJSON(struct {
			Path  string             `json:"path"`
			Decls []model.ImportDecl `json:"decls"`
		}{Path: path, Decls: sorted})
	}

	organized, err := rewrite.Organize(source, sorted)
	if err != nil {
		return err
	}
	fmt.Print(string(organized))
	return nil
}
