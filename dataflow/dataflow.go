// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataflow provides a generic monotone dataflow framework: an
// Analysis contract any forward or backward analysis implements, a
// Result container holding per-node in/out facts, and a worklist Solver
// that drives any Analysis to a fixed point over a cfg.Graph.
//
// Godoctor hand-writes this same worklist shape three separate times —
// analysis/dataflow/reaching.go, analysis/dataflow/live.go, and
// extras/cfg/df.go — once per concrete bitset analysis. This package
// generalizes that shape: one solver, parametric over the fact type and
// the analysis's own meet/transfer/direction, rather than a worklist
// loop copy-pasted per lattice.
package dataflow

import "goflow/cfg"

// Analysis is the capability set the solver needs from a concrete
// dataflow analysis: direction, boundary/initial facts, the meet
// operator, and the per-node transfer function.
//
// TransferNode's "in" and "out" parameters always denote the fact the
// meet step just produced (the near side, relative to the analysis's
// direction) and the fact the transfer function derives from it (the
// far side) — for a forward analysis that's In[n] and Out[n]; for a
// backward analysis (see liveness.LiveVariables) it's Out[n] and In[n].
// TransferNode mutates out in place and returns whether its contents
// changed.
type Analysis[F any] interface {
	IsForward() bool
	NewBoundaryFact(g cfg.Graph) F
	NewInitialFact() F
	MeetInto(src, dst F)
	TransferNode(n cfg.Node, in, out F) bool
}

// Result holds the in and out fact for every node of a solved graph. It
// is built and mutated exclusively by Solve; once returned, callers treat
// it as read-only.
type Result[F any] struct {
	in, out map[cfg.Node]F
}

// InFact returns the fact flowing into n.
func (r *Result[F]) InFact(n cfg.Node) F { return r.in[n] }

// OutFact returns the fact flowing out of n.
func (r *Result[F]) OutFact(n cfg.Node) F { return r.out[n] }

func newResult[F any](g cfg.Graph, a Analysis[F]) *Result[F] {
	r := &Result[F]{in: make(map[cfg.Node]F), out: make(map[cfg.Node]F)}
	boundary := g.Entry()
	if !a.IsForward() {
		boundary = g.Exit()
	}
	for _, n := range g.Nodes() {
		if n == boundary {
			b := a.NewBoundaryFact(g)
			r.in[n] = b
			r.out[n] = b
			continue
		}
		r.in[n] = a.NewInitialFact()
		r.out[n] = a.NewInitialFact()
	}
	return r
}
