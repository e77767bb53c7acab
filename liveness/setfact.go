// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package liveness implements live-variable analysis as a second
// concrete dataflow.Analysis instance, alongside constprop — a backward,
// set-union (may) analysis, in contrast to constprop's forward,
// per-variable lattice. Bundling both is what actually exercises the
// dataflow package's claim to be parametric over direction and fact
// type, rather than merely asserting it against a single analysis.
//
// Grounded on godoctor's analysis/dataflow/live.go (the Dragon Book
// "IN[B] = use[B] ∪ (OUT[B] − def[B])" algorithm), generalized from
// *types.Var/ast.Stmt to this package's own ir.Var/ir.Stmt, and
// simplified by dropping the defer-stack seeding of IN[EXIT] — this IR
// has no defer construct, so the exit boundary fact is simply empty.
package liveness

import (
	"goflow/ir"

	"github.com/bits-and-blooms/bitset"
)

// registry assigns each variable a stable bit index the first time it's
// seen, mirroring live.go's buildDefUse varIndices map. Every SetFact
// produced against the same registry shares its numbering, so set
// operations between facts from different nodes remain meaningful.
type registry struct {
	index map[*ir.Var]uint
	vars  []*ir.Var
}

func newRegistry() *registry {
	return &registry{index: make(map[*ir.Var]uint)}
}

func (r *registry) indexOf(v *ir.Var) uint {
	if i, ok := r.index[v]; ok {
		return i
	}
	i := uint(len(r.vars))
	r.index[v] = i
	r.vars = append(r.vars, v)
	return i
}

// SetFact is a set of live variables, backed by a bitset indexed
// through a shared registry.
type SetFact struct {
	reg  *registry
	bits *bitset.BitSet
}

func newSetFact(reg *registry) *SetFact {
	return &SetFact{reg: reg, bits: new(bitset.BitSet)}
}

// Add marks v live.
func (f *SetFact) Add(v *ir.Var) { f.bits.Set(f.reg.indexOf(v)) }

// Contains reports whether v is live in f.
func (f *SetFact) Contains(v *ir.Var) bool { return f.bits.Test(f.reg.indexOf(v)) }

// Vars returns the variables currently live in f, in registry order.
func (f *SetFact) Vars() []*ir.Var {
	var out []*ir.Var
	for i, e := f.bits.NextSet(0); e; i, e = f.bits.NextSet(i + 1) {
		out = append(out, f.reg.vars[i])
	}
	return out
}

// Equal reports whether f and other hold the same set of variables.
func (f *SetFact) Equal(other *SetFact) bool { return f.bits.Equal(other.bits) }

// Copy returns an independent copy of f.
func (f *SetFact) Copy() *SetFact {
	return &SetFact{reg: f.reg, bits: f.bits.Clone()}
}

// MeetInto unions src into dst in place — liveness is a may-analysis,
// so its meet operator is set union.
func (f *SetFact) MeetInto(src *SetFact) { f.bits.InPlaceUnion(src.bits) }
