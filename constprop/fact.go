// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constprop

import (
	"fmt"
	"sort"

	"goflow/ir"
)

// CPFact maps variables to their known Value. A variable absent from m
// is, by convention, UNDEF — this keeps NewInitialFact() (the empty
// map) distinct from a fact binding every variable to Undef()
// explicitly, and matches godoctor's reaching.go treatment of an
// absent bitset bit as "not yet reached".
type CPFact struct {
	m map[*ir.Var]Value
}

// NewCPFact returns an empty fact (every variable UNDEF).
func NewCPFact() *CPFact {
	return &CPFact{m: make(map[*ir.Var]Value)}
}

// Get returns v's current value, or Undef() if v has no entry.
func (f *CPFact) Get(v *ir.Var) Value {
	if val, ok := f.m[v]; ok {
		return val
	}
	return Undef()
}

// Update sets v's value. Setting it to Undef removes the entry rather
// than storing it explicitly, keeping the map's size proportional to
// the number of variables actually known to be something.
func (f *CPFact) Update(v *ir.Var, val Value) {
	if val.IsUndef() {
		delete(f.m, v)
		return
	}
	f.m[v] = val
}

// Copy returns an independent copy of f.
func (f *CPFact) Copy() *CPFact {
	cp := NewCPFact()
	for v, val := range f.m {
		cp.m[v] = val
	}
	return cp
}

// Equal reports whether f and other bind every variable to the same
// Value (an absent entry compares equal to an explicit Undef()).
func (f *CPFact) Equal(other *CPFact) bool {
	if len(f.m) != len(other.m) {
		// A variable present in one map as non-Undef and absent (i.e.
		// Undef) in the other can only happen if the lengths differ,
		// since Update never stores an explicit Undef.
		return false
	}
	for v, val := range f.m {
		if !other.Get(v).Equal(val) {
			return false
		}
	}
	return true
}

// MeetInto merges src into dst in place: dst[v] = Meet(dst[v], src[v])
// for every variable known to either fact.
func (f *CPFact) MeetInto(src *CPFact) {
	for v, val := range src.m {
		f.Update(v, Meet(f.Get(v), val))
	}
}

// String renders f's bound variables in name order, for debug output
// (cmd/goflow's demo printout).
func (f *CPFact) String() string {
	names := make([]string, 0, len(f.m))
	byName := make(map[string]Value, len(f.m))
	for v, val := range f.m {
		names = append(names, v.Name)
		byName[v.Name] = val
	}
	sort.Strings(names)

	s := "{"
	for i, name := range names {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%s", name, byName[name])
	}
	return s + "}"
}
