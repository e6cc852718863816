// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the Abstract Syntax Tree for the toy language.
//
// Design overview:
//
//   - All AST nodes implement the Node interface via TokenLiteral and String.
//   - Arithmetic has three tiers. Every Factor is also a Term and every Term
//     is also an Expression, so the tree shape alone encodes precedence: the
//     left operand of an Additive is a Term, the left operand of a
//     Multiplicative is a Factor, and only a ParenExpr can put a lower tier
//     back inside a higher one.
//   - Binary chains are right-recursive: 10 - 3 - 2 is
//     Additive{10, -, Additive{3, -, 2}}.
//   - Boolean conditions are a separate family (BoolExpr) so an integer can
//     never stand where a condition is required.
//   - Each node keeps the token that introduced it for diagnostics only.
package ast

import (
	"strconv"
	"strings"

	"github.com/probechain/toyc/lang/token"
)

// ---------------------------------------------------------------------------
// Core interfaces
// ---------------------------------------------------------------------------

// Node is the base interface that every AST node must implement.
type Node interface {
	// TokenLiteral returns the literal value of the token that originated this
	// node. Used primarily for debugging and testing.
	TokenLiteral() string

	// String returns the node rendered back in toy-language syntax.
	String() string
}

// Expression is the additive tier: a Term, or Term (+|-) Expression.
type Expression interface {
	Node
	expressionNode()
}

// Term is the multiplicative tier: a Factor, or Factor (*|/) Term.
type Term interface {
	Expression
	termNode()
}

// Factor is an integer literal, a variable, or a parenthesized Expression.
type Factor interface {
	Term
	factorNode()
}

// BoolExpr is a boolean condition.
type BoolExpr interface {
	Node
	boolNode()
}

// Statement is a marker interface for all statement nodes.
type Statement interface {
	Node
	statementNode()
}

// ---------------------------------------------------------------------------
// Program and blocks
// ---------------------------------------------------------------------------

// Program is the root block: the ordered top-level statements of a source
// file.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out strings.Builder
	writeStatements(&out, p.Statements, 0)
	return out.String()
}

// Block is a braced statement list and forms one lexical scope.
type Block struct {
	Token      token.Token // '{'
	Statements []Statement
}

func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) String() string {
	var out strings.Builder
	writeBlock(&out, b, 0)
	return out.String()
}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

// ArithOp is a binary arithmetic operator.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	}
	return "ArithOp(" + strconv.Itoa(int(op)) + ")"
}

// CompareOp is a comparison between two integer expressions.
type CompareOp int

const (
	Equal CompareOp = iota
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
)

func (op CompareOp) String() string {
	switch op {
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case Less:
		return "<"
	case LessEqual:
		return "<="
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	}
	return "CompareOp(" + strconv.Itoa(int(op)) + ")"
}

// LogicOp is a binary boolean connective.
type LogicOp int

const (
	And LogicOp = iota
	Or
	Xor
)

func (op LogicOp) String() string {
	switch op {
	case And:
		return "&&"
	case Or:
		return "||"
	case Xor:
		return "^"
	}
	return "LogicOp(" + strconv.Itoa(int(op)) + ")"
}

// ---------------------------------------------------------------------------
// Arithmetic
// ---------------------------------------------------------------------------

// Additive is Left (+|-) Right.
type Additive struct {
	Token token.Token // the operator
	Op    ArithOp
	Left  Term
	Right Expression
}

func (e *Additive) expressionNode()      {}
func (e *Additive) TokenLiteral() string { return e.Token.Literal }
func (e *Additive) String() string {
	return e.Left.String() + " " + e.Op.String() + " " + e.Right.String()
}

// Multiplicative is Left (*|/) Right.
type Multiplicative struct {
	Token token.Token // the operator
	Op    ArithOp
	Left  Factor
	Right Term
}

func (e *Multiplicative) expressionNode()      {}
func (e *Multiplicative) termNode()            {}
func (e *Multiplicative) TokenLiteral() string { return e.Token.Literal }
func (e *Multiplicative) String() string {
	return e.Left.String() + " " + e.Op.String() + " " + e.Right.String()
}

// IntLiteral is a decimal integer constant.
type IntLiteral struct {
	Token token.Token
	Value int32
}

func (e *IntLiteral) expressionNode()      {}
func (e *IntLiteral) termNode()            {}
func (e *IntLiteral) factorNode()          {}
func (e *IntLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *IntLiteral) String() string       { return strconv.FormatInt(int64(e.Value), 10) }

// Ident is a variable reference, and the name in let and assignment.
type Ident struct {
	Token token.Token
	Value string
}

func (e *Ident) expressionNode()      {}
func (e *Ident) termNode()            {}
func (e *Ident) factorNode()          {}
func (e *Ident) TokenLiteral() string { return e.Token.Literal }
func (e *Ident) String() string       { return e.Value }

// ParenExpr is an Expression the source wrapped in parentheses.
type ParenExpr struct {
	Token token.Token // '('
	Inner Expression
}

func (e *ParenExpr) expressionNode()      {}
func (e *ParenExpr) termNode()            {}
func (e *ParenExpr) factorNode()          {}
func (e *ParenExpr) TokenLiteral() string { return e.Token.Literal }
func (e *ParenExpr) String() string       { return "(" + e.Inner.String() + ")" }

// ---------------------------------------------------------------------------
// Boolean conditions
// ---------------------------------------------------------------------------

// BoolLiteral is true or false.
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (b *BoolLiteral) boolNode()            {}
func (b *BoolLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BoolLiteral) String() string       { return strconv.FormatBool(b.Value) }

// Comparison compares two integer expressions.
type Comparison struct {
	Token token.Token // the operator
	Op    CompareOp
	Left  Expression
	Right Expression
}

func (b *Comparison) boolNode()            {}
func (b *Comparison) TokenLiteral() string { return b.Token.Literal }
func (b *Comparison) String() string {
	return b.Left.String() + " " + b.Op.String() + " " + b.Right.String()
}

// Not is logical negation.
type Not struct {
	Token   token.Token // '!'
	Operand BoolExpr
}

func (b *Not) boolNode()            {}
func (b *Not) TokenLiteral() string { return b.Token.Literal }
func (b *Not) String() string       { return "!" + b.Operand.String() }

// Connective joins two conditions with &&, || or ^.
type Connective struct {
	Token token.Token // the operator
	Op    LogicOp
	Left  BoolExpr
	Right BoolExpr
}

func (b *Connective) boolNode()            {}
func (b *Connective) TokenLiteral() string { return b.Token.Literal }
func (b *Connective) String() string {
	return b.Left.String() + " " + b.Op.String() + " " + b.Right.String()
}

// ParenBool is a condition the source wrapped in parentheses.
type ParenBool struct {
	Token token.Token // '('
	Inner BoolExpr
}

func (b *ParenBool) boolNode()            {}
func (b *ParenBool) TokenLiteral() string { return b.Token.Literal }
func (b *ParenBool) String() string       { return "(" + b.Inner.String() + ")" }

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// LetStmt introduces a new binding: let Name = Value;
type LetStmt struct {
	Token token.Token // 'let'
	Name  *Ident
	Value Expression
}

func (s *LetStmt) statementNode()       {}
func (s *LetStmt) TokenLiteral() string { return s.Token.Literal }
func (s *LetStmt) String() string {
	return "let " + s.Name.Value + " = " + s.Value.String() + ";"
}

// AssignStmt mutates an existing binding: Name = Value;
type AssignStmt struct {
	Token token.Token // the variable name
	Name  *Ident
	Value Expression
}

func (s *AssignStmt) statementNode()       {}
func (s *AssignStmt) TokenLiteral() string { return s.Token.Literal }
func (s *AssignStmt) String() string {
	return s.Name.Value + " = " + s.Value.String() + ";"
}

// PrintStmt writes the value of an expression followed by a newline.
type PrintStmt struct {
	Token token.Token // 'print'
	Value Expression
}

func (s *PrintStmt) statementNode()       {}
func (s *PrintStmt) TokenLiteral() string { return s.Token.Literal }
func (s *PrintStmt) String() string       { return "print(" + s.Value.String() + ");" }

// IfStmt is if Condition Body [else Else]. Else is nil when absent.
type IfStmt struct {
	Token     token.Token // 'if'
	Condition BoolExpr
	Body      *Block
	Else      *Block
}

func (s *IfStmt) statementNode()       {}
func (s *IfStmt) TokenLiteral() string { return s.Token.Literal }
func (s *IfStmt) String() string {
	var out strings.Builder
	writeStatement(&out, s, 0)
	return out.String()
}

// WhileStmt is while Condition Body.
type WhileStmt struct {
	Token     token.Token // 'while'
	Condition BoolExpr
	Body      *Block
}

func (s *WhileStmt) statementNode()       {}
func (s *WhileStmt) TokenLiteral() string { return s.Token.Literal }
func (s *WhileStmt) String() string {
	var out strings.Builder
	writeStatement(&out, s, 0)
	return out.String()
}

// ---------------------------------------------------------------------------
// Pretty printing
// ---------------------------------------------------------------------------

func writeStatements(out *strings.Builder, stmts []Statement, depth int) {
	for _, s := range stmts {
		out.WriteString(strings.Repeat("    ", depth))
		writeStatement(out, s, depth)
		out.WriteByte('\n')
	}
}

func writeStatement(out *strings.Builder, s Statement, depth int) {
	switch s := s.(type) {
	case *IfStmt:
		out.WriteString("if " + s.Condition.String() + " ")
		writeBlock(out, s.Body, depth)
		if s.Else != nil {
			out.WriteString(" else ")
			writeBlock(out, s.Else, depth)
		}
	case *WhileStmt:
		out.WriteString("while " + s.Condition.String() + " ")
		writeBlock(out, s.Body, depth)
	default:
		out.WriteString(s.String())
	}
}

func writeBlock(out *strings.Builder, b *Block, depth int) {
	out.WriteString("{\n")
	writeStatements(out, b.Statements, depth+1)
	out.WriteString(strings.Repeat("    ", depth) + "}")
}
