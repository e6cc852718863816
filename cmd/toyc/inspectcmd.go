// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/toyc/compiler"
	"github.com/probechain/toyc/lang/diagnostic"
	"github.com/probechain/toyc/lang/lexer"
	"github.com/probechain/toyc/lang/parser"
)

var (
	sourceFlag = cli.BoolFlag{
		Name:  "source",
		Usage: "Print the tree as normalized toy source instead of a structure dump",
	}

	tokensCommand = cli.Command{
		Action:    printTokens,
		Name:      "tokens",
		Usage:     "Print the token stream of a source file",
		ArgsUsage: "<source.toy>",
		Category:  "INSPECTION COMMANDS",
	}
	astCommand = cli.Command{
		Action:    printAST,
		Name:      "ast",
		Usage:     "Print the syntax tree of a source file",
		ArgsUsage: "<source.toy>",
		Flags:     []cli.Flag{sourceFlag},
		Category:  "INSPECTION COMMANDS",
	}
)

// astDumper prints trees without pointer addresses so dumps are stable.
// Methods are disabled or nodes would print through their String method.
var astDumper = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func readSingle(ctx *cli.Context) (compiler.Source, error) {
	if ctx.NArg() != 1 {
		return compiler.Source{}, errors.New("exactly one source file is required")
	}
	file := ctx.Args().First()
	text, err := os.ReadFile(file)
	if err != nil {
		return compiler.Source{}, err
	}
	return compiler.Source{Name: file, Text: string(text)}, nil
}

func printTokens(ctx *cli.Context) error {
	src, err := readSingle(ctx)
	if err != nil {
		return err
	}
	toks, lexErr := lexer.Tokenize(src.Name, src.Text)

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"Line", "Col", "Type", "Literal"})
	table.SetAutoFormatHeaders(false)
	for _, tok := range toks {
		table.Append([]string{
			strconv.Itoa(tok.Pos.Line),
			strconv.Itoa(tok.Pos.Column),
			tok.Type.String(),
			tok.Literal,
		})
	}
	table.Render()

	if lexErr != nil {
		diagnostic.Render(ctx.App.ErrWriter, src.Text, lexErr)
		return errFailed
	}
	return nil
}

func printAST(ctx *cli.Context) error {
	src, err := readSingle(ctx)
	if err != nil {
		return err
	}
	prog, err := parser.ParseSource(src.Name, src.Text)
	if err != nil {
		diagnostic.Render(ctx.App.ErrWriter, src.Text, err)
		return errFailed
	}
	if ctx.Bool(sourceFlag.Name) {
		_, err = fmt.Fprint(ctx.App.Writer, prog.String())
		return err
	}
	astDumper.Fdump(ctx.App.Writer, prog)
	return nil
}
