// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package codegen translates a checked program tree into source text of a
// host language.
//
// Generation is total: every tree the parser can build has an output and no
// validation happens here. Expressions follow the tree exactly. Parentheses
// are printed where the source had them, plus around the operands of ! and
// xor when the host would otherwise bind them differently.
package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/probechain/toyc/lang/ast"
)

// Target is a host language the generator can emit.
type Target interface {
	// Name is the identifier used on the command line and in configuration.
	Name() string
	// Ext is the conventional file extension, including the dot.
	Ext() string
	// Generate renders prog as a complete host program.
	Generate(prog *ast.Program) string
}

var targets = map[string]Target{}

func register(t Target) { targets[t.Name()] = t }

// Lookup returns the target registered under name.
func Lookup(name string) (Target, error) {
	if t, ok := targets[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unknown target %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names lists the registered targets in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate renders prog for target.
func Generate(prog *ast.Program, target Target) string {
	return target.Generate(prog)
}

// ---------------------------------------------------------------------------
// Output buffer
// ---------------------------------------------------------------------------

// printer accumulates indented lines.
type printer struct {
	buf    strings.Builder
	indent string
	depth  int
}

func (p *printer) line(format string, args ...interface{}) {
	for i := 0; i < p.depth; i++ {
		p.buf.WriteString(p.indent)
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *printer) String() string { return p.buf.String() }

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// syntax holds what differs between hosts when printing expressions.
type syntax struct {
	ident func(name string) string
	xor   string
}

func (s syntax) expr(e ast.Expression) string {
	var b strings.Builder
	s.writeExpr(&b, e)
	return b.String()
}

func (s syntax) writeExpr(b *strings.Builder, e ast.Expression) {
	switch e := e.(type) {
	case *ast.IntLiteral:
		b.WriteString(strconv.FormatInt(int64(e.Value), 10))
	case *ast.Ident:
		b.WriteString(s.ident(e.Value))
	case *ast.ParenExpr:
		b.WriteByte('(')
		s.writeExpr(b, e.Inner)
		b.WriteByte(')')
	case *ast.Additive:
		s.writeExpr(b, e.Left)
		b.WriteString(" " + e.Op.String() + " ")
		s.writeRightOperand(b, e.Op, e.Right)
	case *ast.Multiplicative:
		s.writeExpr(b, e.Left)
		b.WriteString(" " + e.Op.String() + " ")
		s.writeRightOperand(b, e.Op, e.Right)
	default:
		panic(fmt.Sprintf("codegen: unexpected expression %T", e))
	}
}

// writeRightOperand prints the right side of a binary operator. Both hosts
// group - and / chains to the left, so a right-nested chain under a
// non-associative operator keeps its grouping with parentheses.
func (s syntax) writeRightOperand(b *strings.Builder, op ast.ArithOp, right ast.Expression) {
	wrap := false
	switch r := right.(type) {
	case *ast.Additive:
		wrap = op == ast.Sub
	case *ast.Multiplicative:
		wrap = op == ast.Div || (op == ast.Mul && r.Op == ast.Div)
	}
	if wrap {
		b.WriteByte('(')
		s.writeExpr(b, right)
		b.WriteByte(')')
		return
	}
	s.writeExpr(b, right)
}

func (s syntax) cond(c ast.BoolExpr) string {
	var b strings.Builder
	s.writeCond(&b, c)
	return b.String()
}

func (s syntax) writeCond(b *strings.Builder, c ast.BoolExpr) {
	switch c := c.(type) {
	case *ast.BoolLiteral:
		b.WriteString(strconv.FormatBool(c.Value))
	case *ast.Comparison:
		s.writeExpr(b, c.Left)
		b.WriteString(" " + c.Op.String() + " ")
		s.writeExpr(b, c.Right)
	case *ast.Not:
		b.WriteByte('!')
		s.writeAtom(b, c.Operand)
	case *ast.ParenBool:
		b.WriteByte('(')
		s.writeCond(b, c.Inner)
		b.WriteByte(')')
	case *ast.Connective:
		if c.Op == ast.Xor {
			s.writeAtom(b, c.Left)
			b.WriteString(" " + s.xor + " ")
			s.writeAtom(b, c.Right)
			return
		}
		s.writeCond(b, c.Left)
		b.WriteString(" " + c.Op.String() + " ")
		s.writeCond(b, c.Right)
	default:
		panic(fmt.Sprintf("codegen: unexpected condition %T", c))
	}
}

// writeAtom prints c so that it binds as a single operand.
func (s syntax) writeAtom(b *strings.Builder, c ast.BoolExpr) {
	switch c.(type) {
	case *ast.BoolLiteral, *ast.ParenBool, *ast.Not:
		s.writeCond(b, c)
	default:
		b.WriteByte('(')
		s.writeCond(b, c)
		b.WriteByte(')')
	}
}

// mangle makes a toy identifier valid in a host while keeping distinct names
// distinct. Names whose first non-underscore character is a digit gain a
// leading underscore. Names reserved in the host, and names that already end
// in an underscore, gain a trailing one. So 1a, _1a, for, for_ and _ become
// _1a, __1a, for_, for__ and __.
func mangle(name string, reserved bool) string {
	if rest := strings.TrimLeft(name, "_"); rest != "" && rest[0] >= '0' && rest[0] <= '9' {
		name = "_" + name
	}
	if reserved || strings.HasSuffix(name, "_") {
		name += "_"
	}
	return name
}
