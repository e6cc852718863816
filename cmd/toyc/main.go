// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command toyc is the toy language compiler.
//
// Usage:
//
//	toyc [global flags] [command] [flags] <source.toy>...
//
// Without a command the sources are compiled. See toyc help for the list of
// commands.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/toyc/compiler"
	"github.com/probechain/toyc/lang/diagnostic"
)

const version = "0.1.0"

// errFailed is returned by commands after they have printed their
// diagnostics, so main only has to set the exit status.
var errFailed = errors.New("compilation failed")

var (
	targetFlag = cli.StringFlag{
		Name:  "target",
		Usage: "Host language to emit (rust, go)",
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "Number of files compiled at once",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	noColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored diagnostics and logs",
	}
	outputFlag = cli.StringFlag{
		Name:  "output, o",
		Usage: "Output file, or output directory when compiling several files",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "the toy language compiler"
	app.Version = version
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Metadata = make(map[string]interface{})
	app.Flags = []cli.Flag{
		configFileFlag,
		targetFlag,
		workersFlag,
		verbosityFlag,
		noColorFlag,
		outputFlag,
	}
	app.Commands = []cli.Command{
		compileCommand,
		checkCommand,
		tokensCommand,
		astCommand,
		dumpConfigCommand,
		replCommand,
		watchCommand,
	}
	app.ArgsUsage = "<source.toy>..."
	app.Action = compileFiles
	app.Before = func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		ctx.App.Metadata["config"] = cfg
		setupLogging(ctx, cfg.Color)
		return nil
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		if err != errFailed {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// setupLogging installs the root log handler. Colors are only used when
// stderr is a terminal and nothing disabled them.
func setupLogging(ctx *cli.Context, colors bool) {
	var output io.Writer = ctx.App.ErrWriter
	usecolor := colors && ctx.App.ErrWriter == os.Stderr &&
		(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) &&
		os.Getenv("TERM") != "dumb"
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	color.NoColor = !usecolor

	glogger := log.NewGlogHandler(log.StreamHandler(output, log.TerminalFormat(usecolor)))
	glogger.Verbosity(log.Lvl(ctx.GlobalInt(verbosityFlag.Name)))
	log.Root().SetHandler(glogger)
}

// newCompiler builds a compiler from the configuration loaded in Before.
func newCompiler(ctx *cli.Context) (*compiler.Compiler, error) {
	return compiler.New(configFrom(ctx))
}

// report prints the diagnostics for err. sources supplies the text the
// error positions refer to.
func report(ctx *cli.Context, sources []compiler.Source, err error) error {
	var (
		cerr *compiler.Error
		text string
	)
	if errors.As(err, &cerr) {
		for _, src := range sources {
			if src.Name == cerr.File {
				text = src.Text
				break
			}
		}
	}
	diagnostic.Render(ctx.App.ErrWriter, text, err)
	return errFailed
}

// readSources loads the named files.
func readSources(files []string) ([]compiler.Source, error) {
	sources := make([]compiler.Source, 0, len(files))
	for _, file := range files {
		text, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		sources = append(sources, compiler.Source{Name: file, Text: string(text)})
	}
	return sources, nil
}

// stringFlag reads a flag that exists both globally and on a command.
func stringFlag(ctx *cli.Context, name string) string {
	if v := ctx.String(name); v != "" {
		return v
	}
	return ctx.GlobalString(name)
}
