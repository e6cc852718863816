// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/toyc/compiler"
)

var (
	compileCommand = cli.Command{
		Action:    compileFiles,
		Name:      "compile",
		Usage:     "Compile toy sources into the target language",
		ArgsUsage: "<source.toy>...",
		Flags:     []cli.Flag{outputFlag},
		Category:  "COMPILER COMMANDS",
		Description: `
The compile command translates each source file. With a single input the
program is written to --output, or to stdout when no output is given. With
several inputs the files are compiled concurrently and each program is
written as <name><ext> into the --output directory, or next to its source.`,
	}
	checkCommand = cli.Command{
		Action:    checkFiles,
		Name:      "check",
		Usage:     "Report errors without generating code",
		ArgsUsage: "<source.toy>...",
		Category:  "COMPILER COMMANDS",
		Description: `
The check command lexes, parses and analyzes every file and reports all
files that fail.`,
	}
)

func compileFiles(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("no source files given")
	}
	c, err := newCompiler(ctx)
	if err != nil {
		return err
	}
	sources, err := readSources(ctx.Args())
	if err != nil {
		return err
	}
	output := stringFlag(ctx, "output")

	if len(sources) == 1 {
		res, err := c.Compile(sources[0].Name, sources[0].Text)
		if err != nil {
			return report(ctx, sources, err)
		}
		if output == "" {
			_, err = fmt.Fprint(ctx.App.Writer, res.Output)
			return err
		}
		return writeOutput(output, res)
	}

	results, err := c.CompileAll(context.Background(), sources)
	if err != nil {
		return report(ctx, sources, err)
	}
	if output != "" {
		if err := os.MkdirAll(output, 0755); err != nil {
			return err
		}
	}
	for _, res := range results {
		dir := output
		if dir == "" {
			dir = filepath.Dir(res.File)
		}
		if err := writeOutput(filepath.Join(dir, outputName(res.File, c.Target().Ext())), res); err != nil {
			return err
		}
	}
	return nil
}

// outputName replaces the extension of a source file name with ext.
func outputName(file, ext string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

func writeOutput(path string, res *compiler.Result) error {
	if err := os.WriteFile(path, []byte(res.Output), 0644); err != nil {
		return err
	}
	log.Info("Wrote program", "source", res.File, "output", path, "target", res.Target)
	return nil
}

func checkFiles(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("no source files given")
	}
	c, err := newCompiler(ctx)
	if err != nil {
		return err
	}
	sources, err := readSources(ctx.Args())
	if err != nil {
		return err
	}
	failed := false
	for _, src := range sources {
		if _, err := c.Check(src.Name, src.Text); err != nil {
			report(ctx, sources, err)
			failed = true
			continue
		}
		fmt.Fprintf(ctx.App.Writer, "%s: ok\n", src.Name)
	}
	if failed {
		return errFailed
	}
	return nil
}
