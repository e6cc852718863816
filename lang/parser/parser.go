// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements a recursive-descent parser for the toy language.
//
// Design overview:
//
//   - The parser walks a cursor over an already scanned token slice, so it
//     can rewind. This is only used to tell a parenthesized condition from a
//     parenthesized arithmetic operand.
//   - Binary arithmetic and connectives are right-recursive: the right operand
//     of an operator is parsed by the same rule again.
//   - The first error stops parsing and no partial tree is returned.
package parser

import (
	"strconv"

	"github.com/probechain/toyc/lang/ast"
	"github.com/probechain/toyc/lang/lexer"
	"github.com/probechain/toyc/lang/token"
)

// Parser holds the mutable state for a single parse run.
type Parser struct {
	toks []token.Token // always ends with EOF
	pos  int           // index of the current token
}

// Parse builds the program tree for a token sequence. A missing trailing EOF
// token is synthesized.
func Parse(toks []token.Token) (*ast.Program, error) {
	p := &Parser{toks: withEOF(toks)}
	return p.parseProgram()
}

// ParseSource tokenizes and parses source in one step. Lexical errors are
// returned unchanged.
func ParseSource(filename, source string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(filename, source)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

func withEOF(toks []token.Token) []token.Token {
	if n := len(toks); n > 0 && toks[n-1].Type == token.EOF {
		return toks
	}
	pos := token.Position{Line: 1, Column: 1}
	if n := len(toks); n > 0 {
		last := toks[n-1]
		pos = last.Pos
		pos.Column += len(last.Literal)
		pos.Offset += len(last.Literal)
	}
	out := make([]token.Token, len(toks), len(toks)+1)
	copy(out, toks)
	return append(out, token.Token{Type: token.EOF, Pos: pos})
}

// ---------------------------------------------------------------------------
// Token navigation helpers
// ---------------------------------------------------------------------------

func (p *Parser) cur() token.Token { return p.toks[p.pos] }

func (p *Parser) curIs(typ token.Type) bool { return p.toks[p.pos].Type == typ }

// next consumes the current token. The cursor never moves past EOF.
func (p *Parser) next() token.Token {
	tok := p.toks[p.pos]
	if tok.Type != token.EOF {
		p.pos++
	}
	return tok
}

// fail builds an error at the current token. Running into EOF where
// something else was required is always reported as EndOfFileInStatement.
func (p *Parser) fail(kind ErrorKind) error {
	tok := p.cur()
	if tok.Type == token.EOF && kind != EndOfFileInBlock {
		kind = EndOfFileInStatement
	}
	return &Error{Kind: kind, Token: tok}
}

// expect consumes the current token if it matches typ, otherwise it reports
// kind without consuming anything.
func (p *Parser) expect(typ token.Type, kind ErrorKind) (token.Token, error) {
	if p.curIs(typ) {
		return p.next(), nil
	}
	return token.Token{}, p.fail(kind)
}

// ---------------------------------------------------------------------------
// Program and statements
// ---------------------------------------------------------------------------

// parseProgram accepts both a braced root block and a bare statement list.
func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	if p.curIs(token.LBRACE) {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if !p.curIs(token.EOF) {
			return nil, p.fail(ExpectedEndOfFile)
		}
		prog.Statements = block.Statements
		return prog, nil
	}
	for !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	lbrace, err := p.expect(token.LBRACE, ExpectedLBrace)
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Token: lbrace}
	for {
		switch p.cur().Type {
		case token.RBRACE:
			p.next()
			return block, nil
		case token.EOF:
			return nil, p.fail(EndOfFileInBlock)
		case token.IF, token.WHILE, token.LET, token.PRINT, token.IDENT:
		default:
			// Nothing but a statement or the closing brace may follow.
			return nil, p.fail(ExpectedRBrace)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur().Type {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.LET:
		return p.parseLet()
	case token.PRINT:
		return p.parsePrint()
	case token.IDENT:
		return p.parseAssign()
	}
	return nil, p.fail(ExpectedStatement)
}

func (p *Parser) parseIf() (*ast.IfStmt, error) {
	stmt := &ast.IfStmt{Token: p.next()}
	var err error
	if stmt.Condition, err = p.parseBoolExpr(); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	if p.curIs(token.ELSE) {
		p.next()
		if stmt.Else, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (*ast.WhileStmt, error) {
	stmt := &ast.WhileStmt{Token: p.next()}
	var err error
	if stmt.Condition, err = p.parseBoolExpr(); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseLet() (*ast.LetStmt, error) {
	stmt := &ast.LetStmt{Token: p.next()}
	name, err := p.expect(token.IDENT, ExpectedVariable)
	if err != nil {
		return nil, err
	}
	stmt.Name = &ast.Ident{Token: name, Value: name.Literal}
	if stmt.Value, err = p.parseAssignedValue(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseAssign() (*ast.AssignStmt, error) {
	name := p.next()
	stmt := &ast.AssignStmt{Token: name, Name: &ast.Ident{Token: name, Value: name.Literal}}
	var err error
	if stmt.Value, err = p.parseAssignedValue(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseAssignedValue parses the shared tail of let and assignment: = expr ;
func (p *Parser) parseAssignedValue() (ast.Expression, error) {
	if _, err := p.expect(token.ASSIGN, ExpectedEqual); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, ExpectedSemicolon); err != nil {
		return nil, err
	}
	return value, nil
}

func (p *Parser) parsePrint() (*ast.PrintStmt, error) {
	stmt := &ast.PrintStmt{Token: p.next()}
	if _, err := p.expect(token.LPAREN, ExpectedLParen); err != nil {
		return nil, err
	}
	var err error
	if stmt.Value, err = p.parseExpr(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ExpectedRParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, ExpectedSemicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

// ---------------------------------------------------------------------------
// Arithmetic
// ---------------------------------------------------------------------------

// parseExpr parses term (('+'|'-') expr)?
func (p *Parser) parseExpr() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	var op ast.ArithOp
	switch p.cur().Type {
	case token.PLUS:
		op = ast.Add
	case token.MINUS:
		op = ast.Sub
	default:
		return left, nil
	}
	opTok := p.next()
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Additive{Token: opTok, Op: op, Left: left, Right: right}, nil
}

// parseTerm parses factor (('*'|'/') term)?
func (p *Parser) parseTerm() (ast.Term, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	var op ast.ArithOp
	switch p.cur().Type {
	case token.STAR:
		op = ast.Mul
	case token.SLASH:
		op = ast.Div
	default:
		return left, nil
	}
	opTok := p.next()
	right, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return &ast.Multiplicative{Token: opTok, Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseFactor() (ast.Factor, error) {
	tok := p.cur()
	switch tok.Type {
	case token.INT:
		v, err := strconv.ParseInt(tok.Literal, 10, 32)
		if err != nil {
			return nil, p.fail(ExpectedExpression)
		}
		p.next()
		return &ast.IntLiteral{Token: tok, Value: int32(v)}, nil
	case token.IDENT:
		p.next()
		return &ast.Ident{Token: tok, Value: tok.Literal}, nil
	case token.LPAREN:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ExpectedRParen); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Token: tok, Inner: inner}, nil
	}
	return nil, p.fail(ExpectedExpression)
}

// ---------------------------------------------------------------------------
// Boolean conditions
// ---------------------------------------------------------------------------

var compareOps = map[token.Type]ast.CompareOp{
	token.ASSIGN: ast.Equal,
	token.EQ:     ast.Equal,
	token.NEQ:    ast.NotEqual,
	token.LT:     ast.Less,
	token.LTE:    ast.LessEqual,
	token.GT:     ast.Greater,
	token.GTE:    ast.GreaterEqual,
}

// parseBoolExpr parses boolAnd ('||' boolExpr)?
func (p *Parser) parseBoolExpr() (ast.BoolExpr, error) {
	return p.parseConnective(token.OR, ast.Or, p.parseBoolAnd)
}

// parseBoolAnd parses boolXor ('&&' boolAnd)?
func (p *Parser) parseBoolAnd() (ast.BoolExpr, error) {
	return p.parseConnective(token.AND, ast.And, p.parseBoolXor)
}

// parseBoolXor parses boolUnary ('^' boolXor)?
func (p *Parser) parseBoolXor() (ast.BoolExpr, error) {
	return p.parseConnective(token.CARET, ast.Xor, p.parseBoolUnary)
}

// parseConnective parses operand (typ self)? where self is the rule that
// called it, giving right-recursive chains.
func (p *Parser) parseConnective(typ token.Type, op ast.LogicOp, operand func() (ast.BoolExpr, error)) (ast.BoolExpr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	if !p.curIs(typ) {
		return left, nil
	}
	opTok := p.next()
	right, err := p.parseConnective(typ, op, operand)
	if err != nil {
		return nil, err
	}
	return &ast.Connective{Token: opTok, Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseBoolUnary() (ast.BoolExpr, error) {
	tok := p.cur()
	switch tok.Type {
	case token.BANG:
		p.next()
		operand, err := p.parseBoolUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Not{Token: tok, Operand: operand}, nil
	case token.TRUE, token.FALSE:
		p.next()
		return &ast.BoolLiteral{Token: tok, Value: tok.Type == token.TRUE}, nil
	case token.LPAREN:
		return p.parseParenCondition()
	case token.INT, token.IDENT:
		return p.parseComparison()
	}
	return nil, p.fail(ExpectedBooleanExpression)
}

// parseParenCondition handles a condition that opens with '('. It may be a
// comparison whose left operand is parenthesized, as in (x + 1) > 2, or a
// parenthesized condition, as in (x > 1 || y > 1). The comparison reading
// is tried first; if both fail, the error that got further wins.
func (p *Parser) parseParenCondition() (ast.BoolExpr, error) {
	start := p.pos
	cmp, cmpErr := p.parseComparison()
	if cmpErr == nil {
		return cmp, nil
	}
	cmpAt := p.pos

	p.pos = start
	lparen := p.next()
	inner, err := p.parseBoolExpr()
	if err == nil {
		_, err = p.expect(token.RPAREN, ExpectedRParen)
	}
	if err == nil {
		return &ast.ParenBool{Token: lparen, Inner: inner}, nil
	}
	if cmpAt > p.pos {
		p.pos = cmpAt
		return nil, cmpErr
	}
	return nil, err
}

// parseComparison parses expr cmpOp expr. A lone '=' is accepted as
// equality.
func (p *Parser) parseComparison() (ast.BoolExpr, error) {
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	op, ok := compareOps[p.cur().Type]
	if !ok {
		return nil, p.fail(ExpectedComparison)
	}
	opTok := p.next()
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Comparison{Token: opTok, Op: op, Left: left, Right: right}, nil
}
