// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package deadcode implements a reachability walk: starting at the
// CFG's entry, it prunes branches of If/SwitchStmt whose guard folds to
// a known constant under constant propagation, and flags
// side-effect-free stores to a variable that live-variable analysis
// shows is never read afterward.
//
// Grounded on godoctor's cfg package for the node/edge walk shape, with
// the branch-folding and dead-store logic built fresh — godoctor's CFG
// has no constant-propagation or liveness result to fold against, so
// there's nothing in godoctor itself to adapt there.
package deadcode

import (
	"sort"

	"goflow/cfg"
	"goflow/constprop"
	"goflow/dataflow"
	"goflow/ir"
	"goflow/liveness"
)

// FindDeadStatements walks g from its entry, consuming cp (constant
// propagation) and live (live-variable) results to classify statements
// as live or dead, and returns the dead ones ordered by Index.
func FindDeadStatements(g cfg.Graph, cp *dataflow.Result[*constprop.CPFact], live *dataflow.Result[*liveness.SetFact]) []ir.Stmt {
	liveSet := make(map[cfg.Node]bool)
	// visited guards termination on a CFG with back-edges: a dead store
	// revisited on every loop iteration would otherwise keep re-queuing
	// its successors forever, since it's never added to liveSet.
	visited := make(map[cfg.Node]bool)
	queue := []cfg.Node{g.Entry()}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		if cur.IsExit() {
			liveSet[cur] = true
			continue
		}

		switch s := cur.Stmt().(type) {
		case *ir.If:
			liveSet[cur] = true
			queue = append(queue, foldBranch(g, cur, constprop.Evaluate(s.Cond, cp.InFact(cur)))...)
		case *ir.SwitchStmt:
			liveSet[cur] = true
			queue = append(queue, foldSwitch(g, cur, constprop.Evaluate(s.Tag, cp.InFact(cur)))...)
		case *ir.AssignStmt:
			if !isDeadStore(s, live.OutFact(cur)) {
				liveSet[cur] = true
			}
			queue = append(queue, g.Succs(cur)...)
		default:
			liveSet[cur] = true
			queue = append(queue, g.Succs(cur)...)
		}
	}

	var dead []ir.Stmt
	for _, n := range g.Nodes() {
		if n.IsEntry() || n.IsExit() {
			continue
		}
		if !liveSet[n] {
			dead = append(dead, n.Stmt())
		}
	}
	sort.Slice(dead, func(i, j int) bool { return dead[i].Index() < dead[j].Index() })
	return dead
}

// foldBranch enqueues only the If's taken successor when cond is a
// known constant, or both successors when it isn't.
func foldBranch(g cfg.Graph, cur cfg.Node, cond constprop.Value) []cfg.Node {
	c, ok := cond.AsConstant()
	if !ok {
		return g.Succs(cur)
	}
	wantKind := cfg.IfFalse
	if c != 0 {
		wantKind = cfg.IfTrue
	}
	var targets []cfg.Node
	for _, e := range g.OutEdges(cur) {
		if e.Kind == wantKind {
			targets = append(targets, e.Target)
		}
	}
	return targets
}

// foldSwitch enqueues every matching SwitchCase target when tag folds
// to a constant (falling back to the default target if no case
// matches), or all successors when it doesn't fold.
func foldSwitch(g cfg.Graph, cur cfg.Node, tag constprop.Value) []cfg.Node {
	c, ok := tag.AsConstant()
	if !ok {
		return g.Succs(cur)
	}
	var targets []cfg.Node
	var defaultTarget cfg.Node
	matched := false
	for _, e := range g.OutEdges(cur) {
		switch {
		case e.Kind == cfg.SwitchCase && e.CaseValue == c:
			targets = append(targets, e.Target)
			matched = true
		case e.Kind == cfg.SwitchDefault:
			defaultTarget = e.Target
		}
	}
	if !matched && defaultTarget != nil {
		targets = append(targets, defaultTarget)
	}
	return targets
}

// isDeadStore applies a three-part rule: the rvalue has no side effect,
// the lvalue is a plain local variable, and that variable is not live
// immediately after the statement.
func isDeadStore(s *ir.AssignStmt, outLive *liveness.SetFact) bool {
	if ir.HasSideEffect(s.Rvalue) {
		return false
	}
	v, ok := s.Lvalue.(*ir.VarExpr)
	if !ok {
		return false
	}
	return !outLive.Contains(v.V)
}
