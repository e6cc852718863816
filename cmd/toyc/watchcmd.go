// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/rjeczalik/notify"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/toyc/compiler"
)

var watchCommand = cli.Command{
	Action:    watchFile,
	Name:      "watch",
	Usage:     "Recompile a source file whenever it changes",
	ArgsUsage: "<source.toy>",
	Flags:     []cli.Flag{outputFlag},
	Category:  "COMPILER COMMANDS",
	Description: `
The watch command compiles the file once and then again on every write,
until interrupted. Output goes to --output, or to stdout when not given.`,
}

func watchFile(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("exactly one source file is required")
	}
	path, err := filepath.Abs(ctx.Args().First())
	if err != nil {
		return err
	}
	c, err := newCompiler(ctx)
	if err != nil {
		return err
	}
	output := stringFlag(ctx, "output")
	rebuild := func() {
		if err := recompile(ctx, c, path, output); err != nil && err != errFailed {
			log.Error("Recompilation failed", "file", path, "err", err)
		}
	}

	// Editors often replace files instead of writing them in place, so the
	// directory is watched rather than the file.
	events := make(chan notify.EventInfo, 16)
	if err := notify.Watch(filepath.Dir(path), events, notify.Write, notify.Create, notify.Rename); err != nil {
		return err
	}
	defer notify.Stop(events)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)

	log.Info("Watching source", "file", path)
	rebuild()
	for {
		select {
		case ev := <-events:
			if ev.Path() != path {
				continue
			}
			log.Debug("Source changed", "file", path, "event", ev.Event())
			rebuild()
		case <-sigc:
			return nil
		}
	}
}

// recompile compiles file once and writes the program.
func recompile(ctx *cli.Context, c *compiler.Compiler, file, output string) error {
	text, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	src := compiler.Source{Name: file, Text: string(text)}
	res, err := c.Compile(src.Name, src.Text)
	if err != nil {
		return report(ctx, []compiler.Source{src}, err)
	}
	if output == "" {
		_, err = fmt.Fprint(ctx.App.Writer, res.Output)
		return err
	}
	return writeOutput(output, res)
}
