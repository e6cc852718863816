// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package semantic checks that every variable is declared before use.
//
// Rules:
//   - let analyzes its value first and only then declares the name, so
//     let x = x + 1; refers to an outer x.
//   - An assignment needs the name to be visible already.
//   - if, else and while bodies each see a copy of the enclosing names;
//     whatever they declare is gone when the block ends.
//
// The first undefined variable stops the analysis.
package semantic

import (
	"fmt"

	"github.com/probechain/toyc/lang/ast"
	"github.com/probechain/toyc/lang/token"
)

// ErrorKind classifies a semantic error.
type ErrorKind int

const (
	UndefinedVariable ErrorKind = iota
)

func (k ErrorKind) String() string {
	if k == UndefinedVariable {
		return "undefined variable"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error reports a name used where no binding is visible.
type Error struct {
	Kind ErrorKind
	Name string
	Pos  token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

// Message is the error text without the position prefix.
func (e *Error) Message() string {
	return fmt.Sprintf("%s %q", e.Kind, e.Name)
}

// Analyze validates prog. It returns nil or a *Error.
func Analyze(prog *ast.Program) error {
	return analyzeStatements(prog.Statements, newScope())
}

func analyzeStatements(stmts []ast.Statement, sc *scope) error {
	for _, stmt := range stmts {
		if err := analyzeStatement(stmt, sc); err != nil {
			return err
		}
	}
	return nil
}

func analyzeBlock(b *ast.Block, parent *scope) error {
	if b == nil {
		return nil
	}
	return analyzeStatements(b.Statements, parent.child())
}

func analyzeStatement(stmt ast.Statement, sc *scope) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		if err := analyzeExpr(s.Value, sc); err != nil {
			return err
		}
		sc.declare(s.Name.Value)
	case *ast.AssignStmt:
		if err := checkName(s.Name, sc); err != nil {
			return err
		}
		return analyzeExpr(s.Value, sc)
	case *ast.PrintStmt:
		return analyzeExpr(s.Value, sc)
	case *ast.IfStmt:
		if err := analyzeBool(s.Condition, sc); err != nil {
			return err
		}
		if err := analyzeBlock(s.Body, sc); err != nil {
			return err
		}
		return analyzeBlock(s.Else, sc)
	case *ast.WhileStmt:
		if err := analyzeBool(s.Condition, sc); err != nil {
			return err
		}
		return analyzeBlock(s.Body, sc)
	default:
		panic(fmt.Sprintf("semantic: unexpected statement %T", stmt))
	}
	return nil
}

func analyzeExpr(e ast.Expression, sc *scope) error {
	switch e := e.(type) {
	case *ast.IntLiteral:
		return nil
	case *ast.Ident:
		return checkName(e, sc)
	case *ast.ParenExpr:
		return analyzeExpr(e.Inner, sc)
	case *ast.Additive:
		if err := analyzeExpr(e.Left, sc); err != nil {
			return err
		}
		return analyzeExpr(e.Right, sc)
	case *ast.Multiplicative:
		if err := analyzeExpr(e.Left, sc); err != nil {
			return err
		}
		return analyzeExpr(e.Right, sc)
	}
	panic(fmt.Sprintf("semantic: unexpected expression %T", e))
}

func analyzeBool(b ast.BoolExpr, sc *scope) error {
	switch b := b.(type) {
	case *ast.BoolLiteral:
		return nil
	case *ast.Comparison:
		if err := analyzeExpr(b.Left, sc); err != nil {
			return err
		}
		return analyzeExpr(b.Right, sc)
	case *ast.Not:
		return analyzeBool(b.Operand, sc)
	case *ast.ParenBool:
		return analyzeBool(b.Inner, sc)
	case *ast.Connective:
		if err := analyzeBool(b.Left, sc); err != nil {
			return err
		}
		return analyzeBool(b.Right, sc)
	}
	panic(fmt.Sprintf("semantic: unexpected condition %T", b))
}

func checkName(id *ast.Ident, sc *scope) error {
	if sc.visible(id.Value) {
		return nil
	}
	return &Error{Kind: UndefinedVariable, Name: id.Value, Pos: id.Token.Pos}
}
