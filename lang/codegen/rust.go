// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package codegen

import (
	"fmt"

	"github.com/probechain/toyc/lang/ast"
)

// Rust emits a single-file Rust program built around fn main.
var Rust Target = rustTarget{}

func init() { register(Rust) }

// rustKeywords are the strict and reserved Rust keywords a toy identifier
// may collide with.
var rustKeywords = map[string]bool{
	"abstract": true, "as": true, "async": true, "await": true, "become": true,
	"box": true, "break": true, "const": true, "continue": true, "do": true,
	"dyn": true, "enum": true, "extern": true, "final": true, "fn": true,
	"for": true, "impl": true, "in": true, "loop": true, "macro": true,
	"match": true, "mod": true, "move": true, "mut": true, "override": true,
	"priv": true, "pub": true, "ref": true, "return": true, "static": true,
	"struct": true, "trait": true, "try": true, "type": true, "typeof": true,
	"unsafe": true, "unsized": true, "use": true, "virtual": true,
	"where": true, "yield": true,
}

// rustPathKeywords cannot be written as raw identifiers.
var rustPathKeywords = map[string]bool{
	"crate": true, "self": true, "Self": true, "super": true,
}

const rustAllow = "#[allow(unused_mut, unused_assignments, unused_variables, unused_parens, while_true)]"

type rustTarget struct{}

func (rustTarget) Name() string { return "rust" }
func (rustTarget) Ext() string  { return ".rs" }

func (t rustTarget) Generate(prog *ast.Program) string {
	g := &rustGen{
		p:      &printer{indent: "    "},
		syntax: syntax{ident: rustIdent, xor: "^"},
	}
	g.p.line(rustAllow)
	g.p.line("fn main() {")
	g.p.depth++
	g.statements(prog.Statements)
	g.p.depth--
	g.p.line("}")
	return g.p.String()
}

func rustIdent(name string) string {
	if rustKeywords[name] {
		return "r#" + name
	}
	return mangle(name, rustPathKeywords[name])
}

type rustGen struct {
	p *printer
	syntax
}

func (g *rustGen) statements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		g.statement(stmt)
	}
}

func (g *rustGen) block(b *ast.Block) {
	g.p.depth++
	g.statements(b.Statements)
	g.p.depth--
}

func (g *rustGen) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		g.p.line("let mut %s: i32 = %s;", g.ident(s.Name.Value), g.expr(s.Value))
	case *ast.AssignStmt:
		g.p.line("%s = %s;", g.ident(s.Name.Value), g.expr(s.Value))
	case *ast.PrintStmt:
		g.p.line(`println!("{}", %s);`, g.expr(s.Value))
	case *ast.IfStmt:
		g.p.line("if %s {", g.cond(s.Condition))
		g.block(s.Body)
		if s.Else != nil {
			g.p.line("} else {")
			g.block(s.Else)
		}
		g.p.line("}")
	case *ast.WhileStmt:
		g.p.line("while %s {", g.cond(s.Condition))
		g.block(s.Body)
		g.p.line("}")
	default:
		panic(fmt.Sprintf("codegen: unexpected statement %T", stmt))
	}
}
