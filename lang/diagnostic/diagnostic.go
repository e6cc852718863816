// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package diagnostic renders compiler errors for humans: a located message,
// the offending source line and a caret under the column.
package diagnostic

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/probechain/toyc/lang/lexer"
	"github.com/probechain/toyc/lang/parser"
	"github.com/probechain/toyc/lang/semantic"
	"github.com/probechain/toyc/lang/token"
)

var (
	locColor   = color.New(color.Bold)
	errorColor = color.New(color.FgRed, color.Bold)
	caretColor = color.New(color.FgGreen, color.Bold)
)

// Diagnostic is one located message.
type Diagnostic struct {
	Pos     token.Position
	Message string
}

// FromError extracts the located diagnostics carried by err. Errors from
// other sources yield nil.
func FromError(err error) []Diagnostic {
	var (
		list lexer.ErrorList
		lerr *lexer.Error
		perr *parser.Error
		serr *semantic.Error
	)
	switch {
	case errors.As(err, &list):
		diags := make([]Diagnostic, len(list))
		for i, e := range list {
			diags[i] = Diagnostic{Pos: e.Pos, Message: e.Msg}
		}
		return diags
	case errors.As(err, &lerr):
		return []Diagnostic{{Pos: lerr.Pos, Message: lerr.Msg}}
	case errors.As(err, &perr):
		return []Diagnostic{{Pos: perr.Token.Pos, Message: perr.Message()}}
	case errors.As(err, &serr):
		return []Diagnostic{{Pos: serr.Pos, Message: serr.Message()}}
	}
	return nil
}

// Render writes err to w. source is the text the error positions refer to.
func Render(w io.Writer, source string, err error) {
	if err == nil {
		return
	}
	diags := FromError(err)
	if len(diags) == 0 {
		fmt.Fprintf(w, "%s %s\n", errorColor.Sprint("error:"), err)
		return
	}
	lines := strings.Split(source, "\n")
	for _, d := range diags {
		fmt.Fprintf(w, "%s %s %s\n", locColor.Sprint(d.Pos.String()+":"), errorColor.Sprint("error:"), d.Message)
		if d.Pos.Line < 1 || d.Pos.Line > len(lines) {
			continue
		}
		line := strings.TrimRight(lines[d.Pos.Line-1], "\r")
		fmt.Fprintf(w, "    %s\n", line)
		fmt.Fprintf(w, "    %s%s\n", padding(line, d.Pos.Column), caretColor.Sprint("^"))
	}
}

// padding returns the whitespace that puts a caret under the given 1-based
// byte column. Tabs are kept so the caret lines up with the echoed line.
func padding(line string, column int) string {
	n := column - 1
	if n < 0 {
		n = 0
	}
	extra := 0
	if n > len(line) {
		extra, n = n-len(line), len(line)
	}
	pad := make([]byte, 0, n+extra)
	for _, r := range line[:n] {
		if r == '\t' {
			pad = append(pad, '\t')
		} else {
			pad = append(pad, ' ')
		}
	}
	for ; extra > 0; extra-- {
		pad = append(pad, ' ')
	}
	return string(pad)
}
