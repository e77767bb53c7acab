// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package deadcode_test

import (
	"testing"

	"goflow/cfg"
	"goflow/constprop"
	"goflow/dataflow"
	"goflow/deadcode"
	"goflow/ir"
	"goflow/liveness"
)

func analyze(g cfg.Graph) (*dataflow.Result[*constprop.CPFact], *dataflow.Result[*liveness.SetFact]) {
	cp := dataflow.Solve[*constprop.CPFact](g, constprop.ConstantPropagation{})
	lv := dataflow.Solve[*liveness.SetFact](g, liveness.NewLiveVariables(g))
	return cp, lv
}

func idx(stmts []ir.Stmt) []int {
	out := make([]int, len(stmts))
	for i, s := range stmts {
		out[i] = s.Index()
	}
	return out
}

// Scenario 7: x = 1; x = 2; use(x); — the first store to x is dead. The
// use is modelled as y = x, and since y is never read afterwards that
// store is dead as well.
func TestDeadFirstStoreIsDead(t *testing.T) {
	x := &ir.Var{Name: "x", T: ir.IntType}
	y := &ir.Var{Name: "y", T: ir.IntType}
	s1 := &ir.AssignStmt{Idx: 1, Lvalue: &ir.VarExpr{V: x}, Rvalue: &ir.IntLiteral{Value: 1}}
	s2 := &ir.AssignStmt{Idx: 2, Lvalue: &ir.VarExpr{V: x}, Rvalue: &ir.IntLiteral{Value: 2}}
	s3 := &ir.AssignStmt{Idx: 3, Lvalue: &ir.VarExpr{V: y}, Rvalue: &ir.VarExpr{V: x}}

	program := ir.NewProgram([]ir.Stmt{s1, s2, s3}, nil)
	b := cfg.NewBuilder(program)
	b.AddEdge(b.Entry(), cfg.FallThrough, s1)
	n1 := b.Node(s1)
	n2 := b.Node(s2)
	n3 := b.Node(s3)
	b.AddEdge(n1, cfg.FallThrough, s2)
	b.AddEdge(n2, cfg.FallThrough, s3)
	b.AddEdgeToExit(n3, cfg.FallThrough)
	g := b.Build()

	cp, lv := analyze(g)
	dead := deadcode.FindDeadStatements(g, cp, lv)
	if got := idx(dead); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("dead = %v, want [1 3]", got)
	}
}

// Scenario 8: if (false) { S1 } else { S2 } — S1 dead, S2 live.
func TestConstantIfPrunesDeadBranch(t *testing.T) {
	s1 := &ir.If{Idx: 1, Cond: &ir.IntLiteral{Value: 0}}
	s2 := &ir.UnclassifiedStmt{Idx: 2} // S1, the then-branch
	s3 := &ir.UnclassifiedStmt{Idx: 3} // S2, the else-branch

	program := ir.NewProgram([]ir.Stmt{s1, s2, s3}, nil)
	b := cfg.NewBuilder(program)
	b.AddEdge(b.Entry(), cfg.FallThrough, s1)
	n1 := b.Node(s1)
	n2 := b.Node(s2)
	n3 := b.Node(s3)
	b.AddEdge(n1, cfg.IfTrue, s2)
	b.AddEdge(n1, cfg.IfFalse, s3)
	b.AddEdgeToExit(n2, cfg.FallThrough)
	b.AddEdgeToExit(n3, cfg.FallThrough)
	g := b.Build()

	cp, lv := analyze(g)
	dead := deadcode.FindDeadStatements(g, cp, lv)
	if got := idx(dead); len(got) != 1 || got[0] != 2 {
		t.Fatalf("dead = %v, want [2] (the then-branch, since cond folds to 0)", got)
	}
}

// Scenario 9: switch(3) { case 1: S1; case 3: S3; default: Sd; } with no
// fall-through — only S3 is reachable.
func TestConstantSwitchPrunesNonMatchingCases(t *testing.T) {
	tag := &ir.Var{Name: "tag", T: ir.IntType}
	s1 := &ir.SwitchStmt{Idx: 1, Tag: &ir.VarExpr{V: tag}}
	s2 := &ir.UnclassifiedStmt{Idx: 2} // S1, case 1
	s3 := &ir.UnclassifiedStmt{Idx: 3} // S3, case 3
	s4 := &ir.UnclassifiedStmt{Idx: 4} // Sd, default

	// tag is assigned the constant 3 before the switch so constprop can fold it.
	assign := &ir.AssignStmt{Idx: 0, Lvalue: &ir.VarExpr{V: tag}, Rvalue: &ir.IntLiteral{Value: 3}}

	program := ir.NewProgram([]ir.Stmt{assign, s1, s2, s3, s4}, nil)
	b := cfg.NewBuilder(program)
	b.AddEdge(b.Entry(), cfg.FallThrough, assign)
	nAssign := b.Node(assign)
	b.AddEdge(nAssign, cfg.FallThrough, s1)
	n1 := b.Node(s1)
	n2 := b.Node(s2)
	n3 := b.Node(s3)
	n4 := b.Node(s4)
	b.AddCaseEdge(n1, 1, s2)
	b.AddCaseEdge(n1, 3, s3)
	b.AddEdge(n1, cfg.SwitchDefault, s4)
	b.AddEdgeToExit(n2, cfg.FallThrough)
	b.AddEdgeToExit(n3, cfg.FallThrough)
	b.AddEdgeToExit(n4, cfg.FallThrough)
	g := b.Build()

	cp, lv := analyze(g)
	dead := deadcode.FindDeadStatements(g, cp, lv)
	got := idx(dead)
	want := []int{2, 4}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("dead = %v, want %v (only the case-3 target, S3, is reachable)", got, want)
	}
}

// Scenario 10: x = new T(); with x unused — not dead, NewExp has a side effect.
func TestNewExpStoreIsNeverDead(t *testing.T) {
	x := &ir.Var{Name: "x", T: ir.RefType}
	s1 := &ir.AssignStmt{Idx: 1, Lvalue: &ir.VarExpr{V: x}, Rvalue: &ir.NewExp{Type: ir.RefType}}

	program := ir.NewProgram([]ir.Stmt{s1}, nil)
	b := cfg.NewBuilder(program)
	b.AddEdge(b.Entry(), cfg.FallThrough, s1)
	n1 := b.Node(s1)
	b.AddEdgeToExit(n1, cfg.FallThrough)
	g := b.Build()

	cp, lv := analyze(g)
	dead := deadcode.FindDeadStatements(g, cp, lv)
	if len(dead) != 0 {
		t.Fatalf("dead = %v, want empty (new T() has a side effect)", idx(dead))
	}
}
