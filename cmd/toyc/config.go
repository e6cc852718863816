// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/toyc/toyconfig"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[file]",
		Category:    "MISCELLANEOUS COMMANDS",
		Description: `The dumpconfig command shows the effective configuration as TOML, optionally writing it to a file.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type toycConfig struct {
	Compiler toyconfig.Config
}

func loadConfig(file string, cfg *toycConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the configuration file, if any, and applies the flags on
// top of it.
func makeConfig(ctx *cli.Context) (toyconfig.Config, error) {
	cfg := toycConfig{Compiler: toyconfig.Defaults}

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return toyconfig.Config{}, err
		}
	}

	if ctx.GlobalIsSet(targetFlag.Name) {
		cfg.Compiler.Target = ctx.GlobalString(targetFlag.Name)
	}
	if ctx.GlobalIsSet(workersFlag.Name) {
		cfg.Compiler.Workers = ctx.GlobalInt(workersFlag.Name)
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		cfg.Compiler.Color = false
	}
	return cfg.Compiler, cfg.Compiler.Validate()
}

// configFrom returns the configuration made by the app's Before hook.
func configFrom(ctx *cli.Context) toyconfig.Config {
	if cfg, ok := ctx.App.Metadata["config"].(toyconfig.Config); ok {
		return cfg
	}
	return toyconfig.Defaults
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg := toycConfig{Compiler: configFrom(ctx)}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	var dump io.Writer = ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}
