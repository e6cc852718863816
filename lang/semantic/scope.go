// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package semantic

import mapset "github.com/deckarep/golang-set"

// scope is the set of names visible at one point of a block. A nested block
// works on a clone, so names it declares vanish when it ends.
type scope struct {
	names mapset.Set
}

func newScope() *scope {
	return &scope{names: mapset.NewThreadUnsafeSet()}
}

// child returns a scope that starts with every name visible here.
func (s *scope) child() *scope {
	return &scope{names: s.names.Clone()}
}

func (s *scope) declare(name string) { s.names.Add(name) }

func (s *scope) visible(name string) bool { return s.names.Contains(name) }
