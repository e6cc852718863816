// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package token

import "testing"

func TestLookupIdent(t *testing.T) {
	cases := []struct {
		ident string
		want  Type
	}{
		{"if", IF},
		{"else", ELSE},
		{"while", WHILE},
		{"let", LET},
		{"print", PRINT},
		{"true", TRUE},
		{"false", FALSE},
		{"x", IDENT},
		{"If", IDENT},
		{"printer", IDENT},
		{"not", IDENT},
	}
	for _, c := range cases {
		if got := LookupIdent(c.ident); got != c.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", c.ident, got, c.want)
		}
	}
}

func TestTypeClassification(t *testing.T) {
	for _, typ := range []Type{IF, ELSE, WHILE, LET, PRINT, TRUE, FALSE} {
		if !typ.IsKeyword() {
			t.Errorf("%s should be a keyword", typ)
		}
	}
	for _, typ := range []Type{IDENT, INT, PLUS, LBRACE, EOF} {
		if typ.IsKeyword() {
			t.Errorf("%s should not be a keyword", typ)
		}
	}
	for _, typ := range []Type{EQ, NEQ, LT, GT, LTE, GTE} {
		if !typ.IsComparison() {
			t.Errorf("%s should be a comparison", typ)
		}
	}
	if ASSIGN.IsComparison() {
		t.Error("ASSIGN should not be a comparison")
	}
}

func TestStrings(t *testing.T) {
	if s := Type(999).String(); s != "token(999)" {
		t.Errorf("unknown type string = %q", s)
	}
	tok := Token{Type: IDENT, Literal: "x"}
	if s := tok.String(); s != "IDENT(x)" {
		t.Errorf("token string = %q", s)
	}
	if s := (Token{Type: SEMICOLON, Literal: ";"}).String(); s != ";" {
		t.Errorf("token string = %q", s)
	}
	pos := Position{File: "a.toy", Line: 3, Column: 7}
	if s := pos.String(); s != "a.toy:3:7" {
		t.Errorf("position string = %q", s)
	}
	pos.File = ""
	if s := pos.String(); s != "3:7" {
		t.Errorf("position string = %q", s)
	}
}
