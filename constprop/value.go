// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constprop implements constant propagation as a forward
// dataflow.Analysis over CPFact, a three-valued lattice: every tracked
// variable is either UNDEF (not yet known, the lattice bottom), a known
// 32-bit constant, or NAC ("not a constant", the lattice top).
//
// Grounded on godoctor's analysis/dataflow.ReachingDefinitions for the
// overall gen/kill-over-a-map shape (reaching.go), generalized to a
// three-valued per-variable lattice instead of a bitset of definition
// sites, since plain reachability has no notion of "value" to track.
package constprop

import "fmt"

// valueKind distinguishes the three rows of the lattice.
type valueKind int

const (
	undefKind valueKind = iota
	constKind
	nacKind
)

// Value is one lattice element: Undef, Const(c), or NAC.
type Value struct {
	kind valueKind
	c    int32
}

// Undef returns the lattice bottom.
func Undef() Value { return Value{kind: undefKind} }

// NAC returns the lattice top ("not a constant").
func NAC() Value { return Value{kind: nacKind} }

// Const returns the constant value c.
func Const(c int32) Value { return Value{kind: constKind, c: c} }

func (v Value) IsUndef() bool { return v.kind == undefKind }
func (v Value) IsNAC() bool   { return v.kind == nacKind }
func (v Value) IsConst() bool { return v.kind == constKind }

// AsConstant returns v's constant and true if v is a Const, or
// (0, false) otherwise.
func (v Value) AsConstant() (int32, bool) {
	if v.kind != constKind {
		return 0, false
	}
	return v.c, true
}

func (v Value) String() string {
	switch v.kind {
	case undefKind:
		return "UNDEF"
	case nacKind:
		return "NAC"
	default:
		return fmt.Sprintf("%d", v.c)
	}
}

// Equal reports whether v and other are the same lattice element.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	return v.kind != constKind || v.c == other.c
}

// Meet computes the lattice meet of a and b:
//
//	UNDEF ⊓ x      = x
//	NAC   ⊓ x      = NAC
//	c1    ⊓ c2     = c1      if c1 == c2
//	c1    ⊓ c2     = NAC     if c1 != c2
func Meet(a, b Value) Value {
	if a.IsUndef() {
		return b
	}
	if b.IsUndef() {
		return a
	}
	if a.IsNAC() || b.IsNAC() {
		return NAC()
	}
	if a.c == b.c {
		return a
	}
	return NAC()
}
