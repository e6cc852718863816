// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer_test

import (
	"errors"
	"testing"

	"github.com/probechain/toyc/lang/lexer"
	"github.com/probechain/toyc/lang/token"
)

// tokenCase is a single expected token in a table-driven test.
type tokenCase struct {
	typ     token.Type
	literal string
}

// runTokenize lexes input and checks that it produces exactly the expected
// sequence (plus a final EOF) without diagnostics.
func runTokenize(t *testing.T, name, input string, want []tokenCase) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		toks, err := lexer.Tokenize("test.toy", input)
		if err != nil {
			t.Fatalf("unexpected lexical error: %v", err)
		}
		if len(toks) == 0 {
			t.Fatal("Tokenize returned empty slice")
		}
		last := toks[len(toks)-1]
		if last.Type != token.EOF {
			t.Errorf("last token is %s, want EOF", last.Type)
		}
		body := toks[:len(toks)-1]

		if len(body) != len(want) {
			t.Errorf("got %d tokens (excl. EOF), want %d", len(body), len(want))
			for i, tok := range body {
				t.Logf("  [%d] %s %q", i, tok.Type, tok.Literal)
			}
			return
		}
		for i, w := range want {
			got := body[i]
			if got.Type != w.typ {
				t.Errorf("token[%d]: type = %s, want %s (literal %q)", i, got.Type, w.typ, got.Literal)
			}
			if got.Literal != w.literal {
				t.Errorf("token[%d]: literal = %q, want %q", i, got.Literal, w.literal)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// Single-character operators and delimiters
// ---------------------------------------------------------------------------

func TestSingleCharTokens(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantTyp token.Type
	}{
		{"plus", "+", token.PLUS},
		{"minus", "-", token.MINUS},
		{"star", "*", token.STAR},
		{"slash", "/", token.SLASH},
		{"percent", "%", token.PERCENT},
		{"caret", "^", token.CARET},
		{"bang", "!", token.BANG},
		{"lt", "<", token.LT},
		{"gt", ">", token.GT},
		{"assign", "=", token.ASSIGN},
		{"lparen", "(", token.LPAREN},
		{"rparen", ")", token.RPAREN},
		{"lbrace", "{", token.LBRACE},
		{"rbrace", "}", token.RBRACE},
		{"semicolon", ";", token.SEMICOLON},
	}
	for _, c := range cases {
		runTokenize(t, c.name, c.input, []tokenCase{{c.wantTyp, c.input}})
	}
}

// ---------------------------------------------------------------------------
// Maximal munch
// ---------------------------------------------------------------------------

func TestMultiCharOperators(t *testing.T) {
	runTokenize(t, "EQ", "==", []tokenCase{{token.EQ, "=="}})
	runTokenize(t, "NEQ", "!=", []tokenCase{{token.NEQ, "!="}})
	runTokenize(t, "LTE", "<=", []tokenCase{{token.LTE, "<="}})
	runTokenize(t, "GTE", ">=", []tokenCase{{token.GTE, ">="}})
	runTokenize(t, "AND", "&&", []tokenCase{{token.AND, "&&"}})
	runTokenize(t, "OR", "||", []tokenCase{{token.OR, "||"}})

	// Three '=' are one EQ followed by one ASSIGN, never three ASSIGNs.
	runTokenize(t, "EQ_ASSIGN", "===", []tokenCase{{token.EQ, "=="}, {token.ASSIGN, "="}})
	runTokenize(t, "NOT_NOT", "!!", []tokenCase{{token.BANG, "!"}, {token.BANG, "!"}})
	runTokenize(t, "spaced", "< =", []tokenCase{{token.LT, "<"}, {token.ASSIGN, "="}})
	runTokenize(t, "glued", "x<=y", []tokenCase{
		{token.IDENT, "x"}, {token.LTE, "<="}, {token.IDENT, "y"},
	})
}

// ---------------------------------------------------------------------------
// Words
// ---------------------------------------------------------------------------

func TestKeywords(t *testing.T) {
	runTokenize(t, "all", "if else while let print true false", []tokenCase{
		{token.IF, "if"},
		{token.ELSE, "else"},
		{token.WHILE, "while"},
		{token.LET, "let"},
		{token.PRINT, "print"},
		{token.TRUE, "true"},
		{token.FALSE, "false"},
	})
	runTokenize(t, "prefix_is_ident", "iffy lets", []tokenCase{
		{token.IDENT, "iffy"}, {token.IDENT, "lets"},
	})
}

func TestWords(t *testing.T) {
	runTokenize(t, "ident", "count", []tokenCase{{token.IDENT, "count"}})
	runTokenize(t, "underscore", "_a_1", []tokenCase{{token.IDENT, "_a_1"}})
	runTokenize(t, "int", "42", []tokenCase{{token.INT, "42"}})
	runTokenize(t, "zero", "0", []tokenCase{{token.INT, "0"}})
	runTokenize(t, "max_int32", "2147483647", []tokenCase{{token.INT, "2147483647"}})
	// A run that mixes digits and letters is one identifier.
	runTokenize(t, "digit_led_ident", "1abc", []tokenCase{{token.IDENT, "1abc"}})
	runTokenize(t, "int_then_paren", "12)", []tokenCase{{token.INT, "12"}, {token.RPAREN, ")"}})
}

func TestComments(t *testing.T) {
	runTokenize(t, "line", "x // the rest is ignored ; {\ny", []tokenCase{
		{token.IDENT, "x"}, {token.IDENT, "y"},
	})
	runTokenize(t, "trailing", "x //", []tokenCase{{token.IDENT, "x"}})
}

func TestStatement(t *testing.T) {
	runTokenize(t, "let", "let x = 2 * (y + 1);", []tokenCase{
		{token.LET, "let"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "2"},
		{token.STAR, "*"},
		{token.LPAREN, "("},
		{token.IDENT, "y"},
		{token.PLUS, "+"},
		{token.INT, "1"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
	})
	runTokenize(t, "condition", "if !(a>=1) && b != 2 || c {", []tokenCase{
		{token.IF, "if"},
		{token.BANG, "!"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.GTE, ">="},
		{token.INT, "1"},
		{token.RPAREN, ")"},
		{token.AND, "&&"},
		{token.IDENT, "b"},
		{token.NEQ, "!="},
		{token.INT, "2"},
		{token.OR, "||"},
		{token.IDENT, "c"},
		{token.LBRACE, "{"},
	})
}

// ---------------------------------------------------------------------------
// Positions
// ---------------------------------------------------------------------------

func TestPositions(t *testing.T) {
	src := "{\n  let x = 10;\r\n}"
	toks, err := lexer.Tokenize("pos.toy", src)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		typ       token.Type
		line, col int
		offset    int
	}{
		{token.LBRACE, 1, 1, 0},
		{token.LET, 2, 3, 4},
		{token.IDENT, 2, 7, 8},
		{token.ASSIGN, 2, 9, 10},
		{token.INT, 2, 11, 12},
		{token.SEMICOLON, 2, 13, 14},
		{token.RBRACE, 3, 1, 17},
		{token.EOF, 3, 2, 18},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		got := toks[i]
		if got.Type != w.typ || got.Pos.Line != w.line || got.Pos.Column != w.col || got.Pos.Offset != w.offset {
			t.Errorf("token[%d] = %s at %d:%d (+%d), want %s at %d:%d (+%d)",
				i, got.Type, got.Pos.Line, got.Pos.Column, got.Pos.Offset, w.typ, w.line, w.col, w.offset)
		}
		if got.Pos.File != "pos.toy" {
			t.Errorf("token[%d] file = %q", i, got.Pos.File)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	toks, err := lexer.Tokenize("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Type != token.EOF {
		t.Fatalf("want a single EOF, got %v", toks)
	}
	if toks[0].Pos.Line != 1 || toks[0].Pos.Column != 1 || toks[0].Pos.Offset != 0 {
		t.Errorf("EOF position = %+v", toks[0].Pos)
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := lexer.New("", "x")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != token.EOF {
			t.Fatalf("call %d: got %s, want EOF", i, tok.Type)
		}
	}
}

// ---------------------------------------------------------------------------
// Diagnostics
// ---------------------------------------------------------------------------

func TestIllegalCharacters(t *testing.T) {
	toks, err := lexer.Tokenize("bad.toy", "let a = 1 $ 2;\nb & c | d é")
	if err == nil {
		t.Fatal("expected lexical errors")
	}
	var list lexer.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("error is %T, want lexer.ErrorList", err)
	}
	want := []struct {
		lit       string
		line, col int
	}{
		{"$", 1, 11},
		{"&", 2, 3},
		{"|", 2, 7},
		{"é", 2, 11},
	}
	if len(list) != len(want) {
		t.Fatalf("got %d errors, want %d: %v", len(list), len(want), err)
	}
	for i, w := range want {
		e := list[i]
		if e.Literal != w.lit || e.Pos.Line != w.line || e.Pos.Column != w.col {
			t.Errorf("error[%d] = %q at %d:%d, want %q at %d:%d",
				i, e.Literal, e.Pos.Line, e.Pos.Column, w.lit, w.line, w.col)
		}
	}
	// Scanning continues past bad characters.
	var illegal, idents int
	for _, tok := range toks {
		switch tok.Type {
		case token.ILLEGAL:
			illegal++
		case token.IDENT:
			idents++
		}
	}
	if illegal != 4 {
		t.Errorf("got %d ILLEGAL tokens, want 4", illegal)
	}
	if idents != 4 {
		t.Errorf("got %d IDENT tokens, want 4", idents)
	}
}

func TestIntegerOverflow(t *testing.T) {
	toks, err := lexer.Tokenize("", "2147483648")
	if err == nil {
		t.Fatal("expected an overflow diagnostic")
	}
	if toks[0].Type != token.ILLEGAL || toks[0].Literal != "2147483648" {
		t.Errorf("got %s %q, want ILLEGAL", toks[0].Type, toks[0].Literal)
	}
}

func TestErrorListMessage(t *testing.T) {
	_, err := lexer.Tokenize("m.toy", "$")
	if got, want := err.Error(), `m.toy:1:1: unexpected character "$"`; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
	if lexer.ErrorList(nil).Err() != nil {
		t.Error("empty list should convert to a nil error")
	}
}
