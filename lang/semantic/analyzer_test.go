// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package semantic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/toyc/lang/parser"
)

func analyzeSource(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.ParseSource("scope.toy", src)
	require.NoError(t, err, "source: %s", src)
	return Analyze(prog)
}

func TestAccepted(t *testing.T) {
	tests := []string{
		"",
		"let x = 1; print(x);",
		"{ let x = 2; if x > 1 { print(x); } }",
		// Outer names are visible in nested blocks.
		"let x = 1; if x > 0 { while x < 5 { x = x + 1; if true { print(x); } } }",
		// A let may shadow, and its value sees the previous binding.
		"let x = 1; let x = x + 1; print(x);",
		"let a = 1; if a == 1 { let a = a * 2; print(a); } else { print(a); }",
		"let n = 3; if !(n > 1 && n < 9) ^ false { print(n); }",
	}
	for _, src := range tests {
		assert.NoError(t, analyzeSource(t, src), "source: %s", src)
	}
}

func TestUndefined(t *testing.T) {
	tests := []struct {
		src       string
		name      string
		line, col int
	}{
		{"{ y = 1; }", "y", 1, 3},
		{"print(z);", "z", 1, 7},
		{"let x = x + 1;", "x", 1, 9},
		{"let a = 1; print(a + b * 2);", "b", 1, 22},
		{"if q > 1 { }", "q", 1, 4},
		{"let a = 1; while a < (limit) { }", "limit", 1, 23},
		// Names declared in a block do not leak out of it.
		{"if true { let t = 1; }\nprint(t);", "t", 2, 7},
		{"if true { } else { let e = 1; } e = 2;", "e", 1, 33},
		{"while false { let w = 1; }\nw = 2;", "w", 2, 1},
		// A sibling block does not see the other branch's names.
		{"if true { let s = 1; } else { print(s); }", "s", 1, 37},
	}
	for _, tt := range tests {
		err := analyzeSource(t, tt.src)
		var serr *Error
		if !errors.As(err, &serr) {
			t.Errorf("%q: got %v, want *semantic.Error", tt.src, err)
			continue
		}
		assert.Equal(t, UndefinedVariable, serr.Kind, tt.src)
		assert.Equal(t, tt.name, serr.Name, tt.src)
		assert.Equal(t, tt.line, serr.Pos.Line, tt.src)
		assert.Equal(t, tt.col, serr.Pos.Column, tt.src)
	}
}

func TestFirstErrorWins(t *testing.T) {
	err := analyzeSource(t, "print(a); print(b);")
	var serr *Error
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "a", serr.Name)
	assert.EqualError(t, err, `scope.toy:1:7: undefined variable "a"`)
}

func TestScopeClone(t *testing.T) {
	outer := newScope()
	outer.declare("x")
	inner := outer.child()
	inner.declare("y")
	assert.True(t, inner.visible("x"))
	assert.True(t, inner.visible("y"))
	assert.False(t, outer.visible("y"))
}
