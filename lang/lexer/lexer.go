// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass, no-backtracking lexer for the toy
// language.
//
// Design principles:
//   - Runs of letters, digits and '_' form one word; an all-digit word is an
//     integer literal, anything else is a keyword or identifier
//   - Maximal munch for two-character operators (== != <= >= && ||)
//   - Unrecognized characters become ILLEGAL tokens plus a diagnostic and
//     scanning continues, so one run reports every bad character
//   - Support // line comments
package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/probechain/toyc/lang/token"
)

// Lexer holds the state for a single-pass tokenization run.
type Lexer struct {
	filename string
	input    []byte

	// pos is the index into input of the next byte to be loaded into ch.
	// After advance(), ch == input[pos-1] and pos points one past it.
	pos  int
	line int // 1-based current line number
	col  int // 1-based current column number

	ch  byte // current character; 0 when past end
	eof bool // set once advance has run past the last byte

	errors ErrorList
}

// New creates a new Lexer for the given filename and input string.
func New(filename, input string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    []byte(input),
		line:     1,
		col:      0,
	}
	l.advance() // prime l.ch with the first byte
	return l
}

// Tokenize scans source completely. The returned slice always ends with an
// EOF token; the error is a non-nil ErrorList when any character could not
// be scanned.
func Tokenize(filename, source string) ([]token.Token, error) {
	l := New(filename, source)
	toks := l.Tokenize()
	return toks, l.Err()
}

// advance moves to the next byte in the input, updating line/column tracking.
// When the end of input is reached, ch is set to 0.
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	if l.pos >= len(l.input) {
		l.ch = 0
		l.eof = true
		return
	}
	l.ch = l.input[l.pos]
	l.pos++
}

// currentPos returns a token.Position capturing the lexer's state right now.
// Call this before consuming the first character of a token.
func (l *Lexer) currentPos() token.Position {
	offset := l.pos - 1
	if l.eof {
		offset = len(l.input)
	}
	return token.Position{
		File:   l.filename,
		Line:   l.line,
		Column: l.col,
		Offset: offset,
	}
}

// atEnd reports whether every byte of input has been consumed.
func (l *Lexer) atEnd() bool {
	return l.eof
}

func makeToken(typ token.Type, literal string, pos token.Position) token.Token {
	return token.Token{Type: typ, Literal: literal, Pos: pos}
}

// skipWhitespace consumes blanks, newlines and // comments.
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.advance()
		case l.ch == '/' && l.pos < len(l.input) && l.input[l.pos] == '/':
			for l.ch != '\n' && !l.atEnd() {
				l.advance()
			}
		default:
			return
		}
	}
}

// NextToken scans and returns the next token from the input.
// After EOF is reached, subsequent calls continue returning EOF tokens.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := l.currentPos()
	ch := l.ch

	if l.atEnd() {
		return makeToken(token.EOF, "", pos)
	}

	l.advance() // consume ch; from here on, l.ch is the character AFTER ch

	switch {
	case isWordChar(ch):
		return l.readWord(ch, pos)

	case ch == '!':
		if l.ch == '=' {
			l.advance()
			return makeToken(token.NEQ, "!=", pos)
		}
		return makeToken(token.BANG, "!", pos)

	case ch == '=':
		if l.ch == '=' {
			l.advance()
			return makeToken(token.EQ, "==", pos)
		}
		return makeToken(token.ASSIGN, "=", pos)

	case ch == '<':
		if l.ch == '=' {
			l.advance()
			return makeToken(token.LTE, "<=", pos)
		}
		return makeToken(token.LT, "<", pos)

	case ch == '>':
		if l.ch == '=' {
			l.advance()
			return makeToken(token.GTE, ">=", pos)
		}
		return makeToken(token.GT, ">", pos)

	case ch == '&':
		if l.ch == '&' {
			l.advance()
			return makeToken(token.AND, "&&", pos)
		}
		return l.illegal(pos, "&", "unexpected character '&' (did you mean '&&'?)")

	case ch == '|':
		if l.ch == '|' {
			l.advance()
			return makeToken(token.OR, "||", pos)
		}
		return l.illegal(pos, "|", "unexpected character '|' (did you mean '||'?)")

	case ch == '+':
		return makeToken(token.PLUS, "+", pos)
	case ch == '-':
		return makeToken(token.MINUS, "-", pos)
	case ch == '*':
		return makeToken(token.STAR, "*", pos)
	case ch == '/':
		return makeToken(token.SLASH, "/", pos)
	case ch == '%':
		return makeToken(token.PERCENT, "%", pos)
	case ch == '^':
		return makeToken(token.CARET, "^", pos)
	case ch == '(':
		return makeToken(token.LPAREN, "(", pos)
	case ch == ')':
		return makeToken(token.RPAREN, ")", pos)
	case ch == '{':
		return makeToken(token.LBRACE, "{", pos)
	case ch == '}':
		return makeToken(token.RBRACE, "}", pos)
	case ch == ';':
		return makeToken(token.SEMICOLON, ";", pos)
	}

	// Anything else is ILLEGAL. Multi-byte characters are reported once.
	lit := string([]byte{ch})
	if ch >= utf8.RuneSelf {
		r, size := utf8.DecodeRune(l.input[pos.Offset:])
		if r != utf8.RuneError {
			lit = string(r)
			for i := 1; i < size; i++ {
				l.advance()
				l.col--
			}
		}
	}
	return l.illegal(pos, lit, "unexpected character "+strconv.Quote(lit))
}

// Tokenize returns all tokens (including the final EOF) produced by repeated
// calls to NextToken.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

// Errors returns the diagnostics collected so far.
func (l *Lexer) Errors() ErrorList { return l.errors }

// Err returns the collected diagnostics as an error, or nil if there are none.
func (l *Lexer) Err() error { return l.errors.Err() }

// readWord consumes a run of word characters starting with the already
// consumed byte first and classifies it.
func (l *Lexer) readWord(first byte, pos token.Position) token.Token {
	buf := make([]byte, 1, 16)
	buf[0] = first
	digits := isDigit(first)
	for isWordChar(l.ch) {
		digits = digits && isDigit(l.ch)
		buf = append(buf, l.ch)
		l.advance()
	}
	lit := string(buf)

	if digits {
		if _, err := strconv.ParseInt(lit, 10, 32); err != nil {
			return l.illegal(pos, lit, "integer literal "+lit+" does not fit in 32 bits")
		}
		return makeToken(token.INT, lit, pos)
	}
	return makeToken(token.LookupIdent(lit), lit, pos)
}

// illegal records a diagnostic and returns the ILLEGAL token standing in for
// the offending text.
func (l *Lexer) illegal(pos token.Position, lit, msg string) token.Token {
	l.errors = append(l.errors, &Error{Pos: pos, Literal: lit, Msg: msg})
	return makeToken(token.ILLEGAL, lit, pos)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWordChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || isDigit(ch)
}
