// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package codegen_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	fuzz "github.com/google/gofuzz"

	"github.com/probechain/toyc/lang/ast"
	"github.com/probechain/toyc/lang/codegen"
	"github.com/probechain/toyc/lang/parser"
	"github.com/probechain/toyc/lang/token"
)

var names = []string{"a", "b", "count", "n_1", "x"}

// treeGen builds random trees that the parser can produce, tier by tier.
type treeGen struct {
	c     fuzz.Continue
	depth int
}

func (g *treeGen) deeper() bool { return g.depth < 4 && g.c.Intn(3) > 0 }

func (g *treeGen) factor() ast.Factor {
	switch n := g.c.Intn(6); {
	case n < 2:
		return &ast.IntLiteral{Value: g.c.Int31()}
	case n < 5 || !g.deeper():
		return &ast.Ident{Value: names[g.c.Intn(len(names))]}
	default:
		g.depth++
		defer func() { g.depth-- }()
		return &ast.ParenExpr{Inner: g.expr()}
	}
}

func (g *treeGen) term() ast.Term {
	left := g.factor()
	if !g.deeper() {
		return left
	}
	g.depth++
	defer func() { g.depth-- }()
	op := ast.Mul
	if g.c.RandBool() {
		op = ast.Div
	}
	return &ast.Multiplicative{Op: op, Left: left, Right: g.term()}
}

func (g *treeGen) expr() ast.Expression {
	left := g.term()
	if !g.deeper() {
		return left
	}
	g.depth++
	defer func() { g.depth-- }()
	op := ast.Add
	if g.c.RandBool() {
		op = ast.Sub
	}
	return &ast.Additive{Op: op, Left: left, Right: g.expr()}
}

func (g *treeGen) unary() ast.BoolExpr {
	g.depth++
	defer func() { g.depth-- }()
	switch n := g.c.Intn(8); {
	case n < 1:
		return &ast.BoolLiteral{Value: g.c.RandBool()}
	case n < 2 && g.depth < 4:
		return &ast.Not{Operand: g.unary()}
	case n < 3 && g.depth < 4:
		return &ast.ParenBool{Inner: g.cond()}
	default:
		return &ast.Comparison{Op: ast.CompareOp(g.c.Intn(6)), Left: g.expr(), Right: g.expr()}
	}
}

// connective builds operand (op self)? for one precedence tier.
func (g *treeGen) connective(op ast.LogicOp, operand func() ast.BoolExpr) ast.BoolExpr {
	left := operand()
	if !g.deeper() {
		return left
	}
	g.depth++
	defer func() { g.depth-- }()
	return &ast.Connective{Op: op, Left: left, Right: g.connective(op, operand)}
}

func (g *treeGen) cond() ast.BoolExpr {
	return g.connective(ast.Or, func() ast.BoolExpr {
		return g.connective(ast.And, func() ast.BoolExpr {
			return g.connective(ast.Xor, g.unary)
		})
	})
}

func (g *treeGen) block() *ast.Block {
	g.depth++
	defer func() { g.depth-- }()
	b := &ast.Block{}
	for i := g.c.Intn(3); i > 0; i-- {
		b.Statements = append(b.Statements, g.statement())
	}
	return b
}

func (g *treeGen) statement() ast.Statement {
	name := &ast.Ident{Value: names[g.c.Intn(len(names))]}
	switch n := g.c.Intn(7); {
	case n < 2:
		return &ast.LetStmt{Name: name, Value: g.expr()}
	case n < 3:
		return &ast.AssignStmt{Name: name, Value: g.expr()}
	case n < 4 || g.depth >= 3:
		return &ast.PrintStmt{Value: g.expr()}
	case n < 6:
		s := &ast.IfStmt{Condition: g.cond(), Body: g.block()}
		if g.c.RandBool() {
			s.Else = g.block()
		}
		return s
	default:
		return &ast.WhileStmt{Condition: g.cond(), Body: g.block()}
	}
}

func newFuzzer(seed int64) *fuzz.Fuzzer {
	return fuzz.NewWithSeed(seed).NilChance(0).Funcs(
		func(p *ast.Program, c fuzz.Continue) {
			g := &treeGen{c: c}
			for i := c.Intn(6); i >= 0; i-- {
				p.Statements = append(p.Statements, g.statement())
			}
		},
	)
}

// Printing a random tree as source and parsing it back yields the same tree
// with real positions, and both generate identical output.
func TestRoundTripDeterminism(t *testing.T) {
	opts := cmp.Options{cmpopts.IgnoreTypes(token.Token{}), cmpopts.EquateEmpty()}
	for seed := int64(0); seed < 200; seed++ {
		var prog ast.Program
		newFuzzer(seed).Fuzz(&prog)

		src := prog.String()
		reparsed, err := parser.ParseSource("fuzz.toy", src)
		if err != nil {
			t.Fatalf("seed %d: reparse failed: %v\n%s", seed, err, src)
		}
		if diff := cmp.Diff(&prog, reparsed, opts); diff != "" {
			t.Fatalf("seed %d: tree changed after reparse (-want +got):\n%s\n%s", seed, diff, src)
		}
		for _, target := range []codegen.Target{codegen.Rust, codegen.Go} {
			first := codegen.Generate(&prog, target)
			if again := codegen.Generate(&prog, target); again != first {
				t.Fatalf("seed %d: %s output is not deterministic", seed, target.Name())
			}
			if other := codegen.Generate(reparsed, target); other != first {
				t.Fatalf("seed %d: %s output depends on positions", seed, target.Name())
			}
		}
	}
}
