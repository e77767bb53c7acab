// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constprop

import (
	"goflow/cfg"
	"goflow/config"
	"goflow/ir"
)

// ConstantPropagation is the forward dataflow.Analysis[*CPFact]: boundary
// facts bind every int-holding parameter to NAC (an incoming argument
// could be anything), all other facts start UNDEF, and each assignment
// updates exactly the variable it defines by evaluating its rvalue
// against the incoming fact.
//
// conf is carried but never read by the analysis itself — it's here
// purely so an enclosing harness has somewhere to pass one.
type ConstantPropagation struct {
	conf *config.Config
}

// WithConfig attaches conf to cp and returns the updated value.
func (cp ConstantPropagation) WithConfig(conf *config.Config) ConstantPropagation {
	cp.conf = conf
	return cp
}

func (ConstantPropagation) IsForward() bool { return true }

// NewBoundaryFact binds every int-holding formal parameter to NAC,
// since the analysis has no caller to learn an actual argument value
// from — the conservative choice at method entry.
func (ConstantPropagation) NewBoundaryFact(g cfg.Graph) *CPFact {
	f := NewCPFact()
	for _, p := range g.IR().Params() {
		if p.HoldsInt() {
			f.Update(p, NAC())
		}
	}
	return f
}

func (ConstantPropagation) NewInitialFact() *CPFact { return NewCPFact() }

func (ConstantPropagation) MeetInto(src, dst *CPFact) { dst.MeetInto(src) }

// TransferNode applies one statement's effect to in, producing out.
//
// This mutates out's contents in place rather than reassigning the
// pointer the solver handed in — out is the very fact stored in
// dataflow.Result, and the solver never compares facts itself: it relies
// on the returned flag alone. Rebinding out to a freshly allocated fact
// would silently detach the result the solver is tracking from what
// TransferNode actually computed, so the changed flag is computed first,
// against a scratch fact, and only then copied over out's map.
func (ConstantPropagation) TransferNode(n cfg.Node, in, out *CPFact) bool {
	next := in.Copy()

	if assign, ok := n.Stmt().(*ir.AssignStmt); ok {
		if v, isVar := assign.Lvalue.(*ir.VarExpr); isVar && v.V.HoldsInt() {
			next.Update(v.V, Evaluate(assign.Rvalue, in))
		}
	} else if def, ok := n.Stmt().(*ir.DefinitionStmt); ok && def.Result != nil && def.Result.HoldsInt() {
		// A captured call result is never evaluated — only ever NAC.
		next.Update(def.Result, NAC())
	}

	changed := !next.Equal(out)
	out.m = next.m
	return changed
}
