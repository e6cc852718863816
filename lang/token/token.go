// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical token types for the toy language.
//
// The language is deliberately small: integer arithmetic, boolean
// conditions, let/assignment, if/else, while and print. Every token carries
// the position it was scanned at so later stages can point at it.
package token

import "fmt"

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}

func (t Token) String() string {
	switch t.Type {
	case IDENT, INT, ILLEGAL:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	}
	return t.Type.String()
}

// Position tracks source location. Line and Column are 1-based.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Type is the set of lexical token types.
type Type int

const (
	// Special tokens
	ILLEGAL Type = iota
	EOF

	// Literals
	IDENT // x, count, n_1
	INT   // 42

	// Arithmetic
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	CARET   // ^ (boolean xor)

	// Comparison
	EQ  // ==
	NEQ // !=
	LT  // <
	GT  // >
	LTE // <=
	GTE // >=

	ASSIGN // =

	// Logical
	BANG // !
	AND  // &&
	OR   // ||

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;

	keywordStart
	IF    // if
	ELSE  // else
	WHILE // while
	LET   // let
	PRINT // print
	TRUE  // true
	FALSE // false
	keywordEnd
)

var tokenNames = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT: "IDENT",
	INT:   "INT",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	CARET:   "^",

	EQ:  "==",
	NEQ: "!=",
	LT:  "<",
	GT:  ">",
	LTE: "<=",
	GTE: ">=",

	ASSIGN: "=",

	BANG: "!",
	AND:  "&&",
	OR:   "||",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	SEMICOLON: ";",

	IF:    "if",
	ELSE:  "else",
	WHILE: "while",
	LET:   "let",
	PRINT: "print",
	TRUE:  "true",
	FALSE: "false",
}

// String returns the string form of a token type.
func (t Type) String() string {
	if t >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// IsKeyword returns true if the token is a keyword.
func (t Type) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsComparison returns true for the six comparison operators. ASSIGN is not
// included even though the parser accepts it as equality in a condition.
func (t Type) IsComparison() bool {
	return t >= EQ && t <= GTE
}

// keywords maps keyword strings to token types.
var keywords map[string]Type

func init() {
	keywords = make(map[string]Type)
	for i := keywordStart + 1; i < keywordEnd; i++ {
		keywords[tokenNames[i]] = i
	}
}

// LookupIdent checks if an identifier is a keyword.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
