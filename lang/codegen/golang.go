// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package codegen

import (
	"fmt"
	"go/format"

	"github.com/probechain/toyc/lang/ast"
)

// Go emits a gofmt-formatted Go main package.
var Go Target = goTarget{}

func init() { register(Go) }

// goReserved are Go keywords plus the predeclared and imported names the
// generated code itself refers to.
var goReserved = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "import": true, "interface": true,
	"map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
	"fmt": true, "int32": true,
}

type goTarget struct{}

func (goTarget) Name() string { return "go" }
func (goTarget) Ext() string  { return ".go" }

func (t goTarget) Generate(prog *ast.Program) string {
	g := &goGen{
		p:      &printer{indent: "\t"},
		syntax: syntax{ident: goIdent, xor: "!="},
	}
	g.p.line("package main")
	g.p.line("")
	if hasPrint(prog.Statements) {
		g.p.line(`import "fmt"`)
		g.p.line("")
	}
	g.p.line("func main() {")
	g.p.depth++
	g.statements(prog.Statements, make(map[string]bool))
	g.p.depth--
	g.p.line("}")

	src := g.p.String()
	if out, err := format.Source([]byte(src)); err == nil {
		return string(out)
	}
	return src
}

func goIdent(name string) string {
	return mangle(name, goReserved[name])
}

func hasPrint(stmts []ast.Statement) bool {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.PrintStmt:
			return true
		case *ast.IfStmt:
			if hasPrint(s.Body.Statements) || (s.Else != nil && hasPrint(s.Else.Statements)) {
				return true
			}
		case *ast.WhileStmt:
			if hasPrint(s.Body.Statements) {
				return true
			}
		}
	}
	return false
}

type goGen struct {
	p *printer
	syntax
}

// statements prints one block. declared holds the names this block has
// already declared; Go rejects a second declaration in the same block, so a
// repeated let becomes a plain assignment.
func (g *goGen) statements(stmts []ast.Statement, declared map[string]bool) {
	for _, stmt := range stmts {
		g.statement(stmt, declared)
	}
}

func (g *goGen) block(b *ast.Block) {
	g.p.depth++
	g.statements(b.Statements, make(map[string]bool))
	g.p.depth--
}

func (g *goGen) statement(stmt ast.Statement, declared map[string]bool) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		name := g.ident(s.Name.Value)
		if declared[name] {
			g.p.line("%s = %s", name, g.expr(s.Value))
			return
		}
		declared[name] = true
		g.p.line("var %s int32 = %s", name, g.expr(s.Value))
		g.p.line("_ = %s", name)
	case *ast.AssignStmt:
		g.p.line("%s = %s", g.ident(s.Name.Value), g.expr(s.Value))
	case *ast.PrintStmt:
		if constant(s.Value) {
			g.p.line("fmt.Println(int32(%s))", g.expr(s.Value))
		} else {
			g.p.line("fmt.Println(%s)", g.expr(s.Value))
		}
	case *ast.IfStmt:
		g.p.line("if %s {", g.cond(s.Condition))
		g.block(s.Body)
		if s.Else != nil {
			g.p.line("} else {")
			g.block(s.Else)
		}
		g.p.line("}")
	case *ast.WhileStmt:
		g.p.line("for %s {", g.cond(s.Condition))
		g.block(s.Body)
		g.p.line("}")
	default:
		panic(fmt.Sprintf("codegen: unexpected statement %T", stmt))
	}
}

// constant reports whether e mentions no variable. Go evaluates such an
// expression as an untyped constant, which print has to pin to int32.
func constant(e ast.Expression) bool {
	switch e := e.(type) {
	case *ast.IntLiteral:
		return true
	case *ast.ParenExpr:
		return constant(e.Inner)
	case *ast.Additive:
		return constant(e.Left) && constant(e.Right)
	case *ast.Multiplicative:
		return constant(e.Left) && constant(e.Right)
	}
	return false
}
