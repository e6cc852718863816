// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/toyc/compiler"
	"github.com/probechain/toyc/lang/diagnostic"
	"github.com/probechain/toyc/lang/parser"
)

const replFile = "<repl>"

var replCommand = cli.Command{
	Action:   runREPL,
	Name:     "repl",
	Usage:    "Start an interactive compile session",
	Category: "COMPILER COMMANDS",
	Description: `
Each accepted line is appended to the session program and the program
generated so far is printed. A line that leaves a block or statement open
continues on the next line. Rejected input is reported and discarded.`,
}

// session accumulates the statements accepted so far.
type session struct {
	c       *compiler.Compiler
	program string // accepted statements, normalized
	pending string // lines of an unfinished statement
}

// feed adds one line of input. It returns the generated program once the
// input forms complete statements, more=true while a statement is still
// open, or the error that made the input rejected.
func (s *session) feed(line string) (output string, more bool, err error) {
	s.pending += line + "\n"
	src := s.program + s.pending
	res, err := s.c.Compile(replFile, src)
	if err != nil {
		if incomplete(err) {
			return "", true, nil
		}
		s.pending = ""
		return "", false, err
	}
	// Keep the accepted program as a bare statement list, so a braced first
	// entry does not close the session to further statements.
	s.program, s.pending = res.Program.String(), ""
	return res.Output, false, nil
}

// source is the text error positions of the last feed refer to.
func (s *session) source(line string) string {
	return s.program + s.pending + line + "\n"
}

// incomplete reports whether err only says the input ended too early.
func incomplete(err error) bool {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		return false
	}
	return perr.Kind == parser.EndOfFileInBlock || perr.Kind == parser.EndOfFileInStatement
}

func runREPL(ctx *cli.Context) error {
	c, err := newCompiler(ctx)
	if err != nil {
		return err
	}
	s := &session{c: c}

	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	fmt.Fprintf(ctx.App.Writer, "toyc %s, target %s. Ctrl-D to exit.\n", version, c.Target().Name())
	prompt := "> "
	for {
		line, err := state.Prompt(prompt)
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Fprintln(ctx.App.Writer)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" && s.pending == "" {
			continue
		}
		text := s.source(line)
		out, more, err := s.feed(line)
		switch {
		case more:
			prompt = "... "
			continue
		case err != nil:
			diagnostic.Render(ctx.App.ErrWriter, text, err)
		default:
			state.AppendHistory(line)
			fmt.Fprint(ctx.App.Writer, out)
		}
		prompt = "> "
	}
}
