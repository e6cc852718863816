// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package toyconfig contains the configuration of the toy compiler.
package toyconfig

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/probechain/toyc/lang/codegen"
)

// Defaults contains default settings for use when no configuration file or
// flag overrides them.
var Defaults = Config{
	Target:    "rust",
	CacheSize: 64,
	Workers:   runtime.NumCPU(),
	Color:     true,
}

// Config contains configuration options for the compiler driver.
type Config struct {
	// Target names the host language to emit, see codegen.Names.
	Target string

	// CacheSize is the number of compiled programs kept in memory.
	// Zero disables caching.
	CacheSize int

	// Workers bounds how many files are compiled at once.
	Workers int

	// Color enables colored diagnostics and log output on terminals.
	Color bool
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if _, err := codegen.Lookup(c.Target); err != nil {
		return err
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("invalid cache size %d", c.CacheSize)
	}
	if c.Workers < 1 {
		return errors.New("at least one worker is required")
	}
	return nil
}
