// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package parser

import (
	"fmt"
	"strconv"

	"github.com/probechain/toyc/lang/token"
)

// ErrorKind classifies a syntax error by the grammar position that failed.
type ErrorKind int

const (
	ExpectedVariable ErrorKind = iota
	ExpectedEqual
	ExpectedExpression
	ExpectedSemicolon
	ExpectedLBrace
	ExpectedRBrace
	ExpectedLParen
	ExpectedRParen
	ExpectedBooleanExpression
	ExpectedComparison
	ExpectedStatement
	ExpectedEndOfFile
	EndOfFileInStatement
	EndOfFileInBlock
)

var kindNames = [...]string{
	ExpectedVariable:          "expected variable name",
	ExpectedEqual:             "expected '='",
	ExpectedExpression:        "expected expression",
	ExpectedSemicolon:         "expected ';'",
	ExpectedLBrace:            "expected '{'",
	ExpectedRBrace:            "expected '}'",
	ExpectedLParen:            "expected '('",
	ExpectedRParen:            "expected ')'",
	ExpectedBooleanExpression: "expected boolean expression",
	ExpectedComparison:        "expected comparison operator",
	ExpectedStatement:         "expected statement",
	ExpectedEndOfFile:         "expected end of file",
	EndOfFileInStatement:      "unexpected end of file in statement",
	EndOfFileInBlock:          "unexpected end of file in block",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// Error is a syntax error. Token is the token the parser was looking at when
// it gave up; for the end-of-file kinds it is the EOF token.
type Error struct {
	Kind  ErrorKind
	Token token.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Token.Pos, e.Message())
}

// Message is the error text without the position prefix.
func (e *Error) Message() string {
	switch e.Kind {
	case EndOfFileInStatement, EndOfFileInBlock:
		return e.Kind.String()
	}
	return e.Kind.String() + ", found " + describe(e.Token)
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return "identifier " + strconv.Quote(tok.Literal)
	case token.INT:
		return "integer " + tok.Literal
	case token.ILLEGAL:
		return "illegal " + strconv.Quote(tok.Literal)
	}
	return "'" + tok.Type.String() + "'"
}
