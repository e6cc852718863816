// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package lexer

import (
	"fmt"
	"strings"

	"github.com/probechain/toyc/lang/token"
)

// Error is a single lexical diagnostic.
type Error struct {
	Pos     token.Position
	Literal string // the text that could not be scanned
	Msg     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorList is the set of diagnostics produced by one scan, in source order.
type ErrorList []*Error

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	msgs := make([]string, len(el))
	for i, e := range el {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%s (and %d more errors)\n%s", el[0].Error(), len(el)-1, strings.Join(msgs[1:], "\n"))
}

// Err returns an error equivalent to this list, or nil if it is empty.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}
