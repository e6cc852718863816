// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package compiler drives the toy-language pipeline: lexing, parsing, scope
// analysis and code generation, with a result cache and batch compilation
// on top.
package compiler

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"

	"github.com/probechain/toyc/lang/ast"
	"github.com/probechain/toyc/lang/codegen"
	"github.com/probechain/toyc/lang/lexer"
	"github.com/probechain/toyc/lang/parser"
	"github.com/probechain/toyc/lang/semantic"
	"github.com/probechain/toyc/lang/token"
	"github.com/probechain/toyc/toyconfig"
)

// Stage names a step of the pipeline.
type Stage string

const (
	StageLex     Stage = "lex"
	StageParse   Stage = "parse"
	StageAnalyze Stage = "analyze"
)

// Error records the stage and file a compilation failed in. The wrapped
// error is the stage's own typed error.
type Error struct {
	Stage Stage
	File  string
	Err   error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Result is the output of a successful compilation. Results may be shared
// through the cache and must not be modified.
type Result struct {
	File    string
	Tokens  []token.Token
	Program *ast.Program
	Output  string
	Target  string
}

// Source is one named input of a batch compilation.
type Source struct {
	Name string
	Text string
}

// Compiler runs the pipeline for one target. It is safe for concurrent use.
type Compiler struct {
	target  codegen.Target
	workers int
	cache   *lru.ARCCache // cache key -> *Result, nil when disabled
	log     log.Logger
}

// New creates a compiler for cfg.
func New(cfg toyconfig.Config) (*Compiler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	target, _ := codegen.Lookup(cfg.Target)
	c := &Compiler{
		target:  target,
		workers: cfg.Workers,
		log:     log.New("target", target.Name()),
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.NewARC(cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

// Target returns the host language the compiler emits.
func (c *Compiler) Target() codegen.Target { return c.target }

// cacheKey identifies a compilation. The file name takes part because it is
// recorded in every token position.
func (c *Compiler) cacheKey(filename, source string) [32]byte {
	h := sha3.New256()
	h.Write([]byte(c.target.Name()))
	h.Write([]byte{0})
	h.Write([]byte(filename))
	h.Write([]byte{0})
	h.Write([]byte(source))
	var key [32]byte
	h.Sum(key[:0])
	return key
}

// Compile runs every stage on source and stops at the first failing one.
// Failures are returned as *Error.
func (c *Compiler) Compile(filename, source string) (*Result, error) {
	var key [32]byte
	if c.cache != nil {
		key = c.cacheKey(filename, source)
		if cached, ok := c.cache.Get(key); ok {
			c.log.Debug("Reusing cached compilation", "file", filename)
			return cached.(*Result), nil
		}
	}

	toks, prog, err := c.front(filename, source)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Result{
		File:    filename,
		Tokens:  toks,
		Program: prog,
		Output:  codegen.Generate(prog, c.target),
		Target:  c.target.Name(),
	}
	c.log.Debug("Generated code", "file", filename, "bytes", len(res.Output), "elapsed", time.Since(start))

	if c.cache != nil {
		c.cache.Add(key, res)
	}
	return res, nil
}

// Check runs the lexer, parser and scope analysis without generating code.
func (c *Compiler) Check(filename, source string) (*ast.Program, error) {
	_, prog, err := c.front(filename, source)
	return prog, err
}

// front runs the stages that can reject a program.
func (c *Compiler) front(filename, source string) ([]token.Token, *ast.Program, error) {
	start := time.Now()
	toks, err := lexer.Tokenize(filename, source)
	if err != nil {
		return nil, nil, &Error{Stage: StageLex, File: filename, Err: err}
	}
	c.log.Debug("Tokenized source", "file", filename, "tokens", len(toks), "elapsed", time.Since(start))

	start = time.Now()
	prog, err := parser.Parse(toks)
	if err != nil {
		return nil, nil, &Error{Stage: StageParse, File: filename, Err: err}
	}
	c.log.Debug("Parsed program", "file", filename, "statements", len(prog.Statements), "elapsed", time.Since(start))

	start = time.Now()
	if err := semantic.Analyze(prog); err != nil {
		return nil, nil, &Error{Stage: StageAnalyze, File: filename, Err: err}
	}
	c.log.Debug("Checked scopes", "file", filename, "elapsed", time.Since(start))
	return toks, prog, nil
}

// CompileAll compiles independent sources concurrently, at most Workers at a
// time. Results are in input order. The first failure cancels the sources
// that have not started yet and is returned.
func (c *Compiler) CompileAll(ctx context.Context, sources []Source) ([]*Result, error) {
	results := make([]*Result, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := c.Compile(src.Name, src.Text)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	c.log.Info("Compiled batch", "files", len(sources))
	return results, nil
}
