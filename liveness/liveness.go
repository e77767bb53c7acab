// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

import (
	"goflow/cfg"
	"goflow/config"
	"goflow/ir"
)

// LiveVariables is the backward dataflow.Analysis[*SetFact] computing,
// for every statement, the variables live immediately before and after
// it. Unlike ConstantPropagation it carries a registry built up front
// from the graph it will run over, since every SetFact involved in a
// single analysis run must share one variable-to-bit-index numbering.
type LiveVariables struct {
	reg  *registry
	conf *config.Config
}

// WithConfig attaches conf to lv and returns lv, for chaining onto
// NewLiveVariables. Never read by the analysis itself — see
// constprop.ConstantPropagation.WithConfig for the same convention.
func (lv *LiveVariables) WithConfig(conf *config.Config) *LiveVariables {
	lv.conf = conf
	return lv
}

// NewLiveVariables scans g once to assign every variable mentioned by a
// def or a use a stable bit index, then returns an analysis ready to
// run over g via dataflow.Solve.
func NewLiveVariables(g cfg.Graph) *LiveVariables {
	reg := newRegistry()
	for _, p := range g.IR().Params() {
		reg.indexOf(p)
	}
	for _, n := range g.Nodes() {
		s := n.Stmt()
		if s == nil {
			continue
		}
		for _, v := range ir.UsedVars(s) {
			reg.indexOf(v)
		}
		if v, ok := ir.DefinedVar(s); ok {
			reg.indexOf(v)
		}
	}
	return &LiveVariables{reg: reg}
}

func (lv *LiveVariables) IsForward() bool { return false }

// NewBoundaryFact is the empty set: OUT[EXIT] has no live variables,
// since nothing after the method's end can observe them. (live.go seeds
// this boundary with each defer's uses; this IR has no defer.)
func (lv *LiveVariables) NewBoundaryFact(cfg.Graph) *SetFact { return newSetFact(lv.reg) }

func (lv *LiveVariables) NewInitialFact() *SetFact { return newSetFact(lv.reg) }

func (lv *LiveVariables) MeetInto(src, dst *SetFact) { dst.MeetInto(src) }

// TransferNode computes IN[n] = use[n] ∪ (OUT[n] − def[n]).
//
// Per dataflow.Analysis's near/far-side convention, for this backward
// analysis "in" is the near side the solver just met together from n's
// successors' IN facts — i.e. OUT[n] — and "out" is the far side this
// method derives — i.e. IN[n].
func (lv *LiveVariables) TransferNode(n cfg.Node, in, out *SetFact) bool {
	next := newSetFact(lv.reg)

	var defined *ir.Var
	if s := n.Stmt(); s != nil {
		for _, v := range ir.UsedVars(s) {
			next.Add(v)
		}
		if v, ok := ir.DefinedVar(s); ok {
			defined = v
		}
	}
	for _, v := range in.Vars() {
		if v == defined {
			continue
		}
		next.Add(v)
	}

	changed := !next.Equal(out)
	out.bits = next.bits
	return changed
}
