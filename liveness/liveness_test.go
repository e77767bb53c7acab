// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness_test

import (
	"testing"

	"goflow/cfg"
	"goflow/dataflow"
	"goflow/ir"
	"goflow/liveness"
)

// buildDeadStore wires: x = 1; x = 2; use(x)  — x's first store is dead.
func buildDeadStore(t *testing.T) (cfg.Graph, *ir.Var, cfg.Node, cfg.Node, cfg.Node) {
	t.Helper()
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
	return b.Build(), x, n1, n2, n3
}

func TestLiveVariablesDeadFirstStore(t *testing.T) {
	g, x, n1, n2, n3 := buildDeadStore(t)
	lv := liveness.NewLiveVariables(g)
	result := dataflow.Solve[*liveness.SetFact](g, lv)

	if result.OutFact(n1).Contains(x) {
		t.Fatalf("x should not be live after s1: s2 overwrites it before any use")
	}
	if !result.OutFact(n2).Contains(x) {
		t.Fatalf("x should be live after s2: s3 reads it")
	}
	if result.OutFact(n3).Contains(x) {
		t.Fatalf("x should not be live after s3: nothing downstream reads it")
	}
}

func TestLiveVariablesParameterStartsLive(t *testing.T) {
	p := &ir.Var{Name: "p", T: ir.IntType}
	s1 := &ir.UnclassifiedStmt{Idx: 1}
	s2 := &ir.AssignStmt{Idx: 2, Lvalue: &ir.VarExpr{V: &ir.Var{Name: "r", T: ir.IntType}}, Rvalue: &ir.VarExpr{V: p}}

	program := ir.NewProgram([]ir.Stmt{s1, s2}, []*ir.Var{p})
	b := cfg.NewBuilder(program)
	b.AddEdge(b.Entry(), cfg.FallThrough, s1)
	n1 := b.Node(s1)
	n2 := b.Node(s2)
	b.AddEdge(n1, cfg.FallThrough, s2)
	b.AddEdgeToExit(n2, cfg.FallThrough)
	g := b.Build()

	lv := liveness.NewLiveVariables(g)
	result := dataflow.Solve[*liveness.SetFact](g, lv)

	if !result.InFact(n1).Contains(p) {
		t.Fatalf("p should be live at entry: it's read by s2")
	}
}

func TestLiveVariablesExitBoundaryIsEmpty(t *testing.T) {
	g, _, _, _, n3 := buildDeadStore(t)
	lv := liveness.NewLiveVariables(g)
	result := dataflow.Solve[*liveness.SetFact](g, lv)

	if len(result.OutFact(n3).Vars()) != 0 {
		t.Fatalf("OutFact(s3) = %v, want empty (no defers to seed the exit boundary)", result.OutFact(n3).Vars())
	}
}
