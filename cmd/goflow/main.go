// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The goflow command runs constant propagation, live-variable analysis,
// and dead-code detection over one of a handful of built-in example
// CFGs, and prints the per-statement results.
//
// Building a CFG from real source is an enclosing harness's job; this
// command exists only to exercise the core's pipeline end to end on a
// couple of small hand-built fixtures.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"goflow/cfg"
	"goflow/config"
	"goflow/constprop"
	"goflow/dataflow"
	"goflow/deadcode"
	"goflow/ir"
	"goflow/liveness"
)

var (
	exampleFlag = flag.String("example", "deadstore", "which built-in example to run: 'deadstore' or 'ifelse'")
	verboseFlag = flag.Bool("v", false, "pass a verbose AnalysisConfig through to the analyses")
	paramFlag   = flag.String("param", "", "an analysis-specific key=value setting to forward via AnalysisConfig")
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s [-example deadstore|ifelse]

Runs constant propagation, live-variable analysis, and dead-code
detection over a built-in example CFG and prints the results.
`, os.Args[0])
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	g, err := buildExample(*exampleFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	conf := config.New()
	conf.Verbose = *verboseFlag
	paramKey, paramValue, hasParam := strings.Cut(*paramFlag, "=")
	if hasParam {
		conf.Params[paramKey] = paramValue
	}

	cp := dataflow.Solve[*constprop.CPFact](g, constprop.ConstantPropagation{}.WithConfig(conf))
	live := dataflow.Solve[*liveness.SetFact](g, liveness.NewLiveVariables(g).WithConfig(conf))
	dead := deadcode.FindDeadStatements(g, cp, live)

	if conf.Verbose && hasParam {
		if v, ok := conf.Param(paramKey); ok {
			fmt.Printf("param %s=%s\n", paramKey, v)
		}
	}

	for _, n := range g.Nodes() {
		if n.IsEntry() || n.IsExit() {
			continue
		}
		s := n.Stmt()
		fmt.Printf("stmt %d: out=%v\n", s.Index(), cp.OutFact(n))
	}

	fmt.Println("dead statements:")
	for _, s := range dead {
		fmt.Printf("  %d\n", s.Index())
	}
}

// buildExample wires up one of the built-in example CFGs by hand.
func buildExample(name string) (cfg.Graph, error) {
	switch name {
	case "deadstore":
		return buildDeadStoreExample(), nil
	case "ifelse":
		return buildIfElseExample(), nil
	default:
		return nil, fmt.Errorf("unknown example %q (want 'deadstore' or 'ifelse')", name)
	}
}

// buildDeadStoreExample wires: x = 1; x = 2; use(x); — the first store
// to x is dead.
func buildDeadStoreExample() cfg.Graph {
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
	return b.Build()
}

// buildIfElseExample wires: if (false) { x = 1; } else { x = 2; } —
// the then-branch is dead.
func buildIfElseExample() cfg.Graph {
	x := &ir.Var{Name: "x", T: ir.IntType}
	s1 := &ir.If{Idx: 1, Cond: &ir.IntLiteral{Value: 0}}
	s2 := &ir.AssignStmt{Idx: 2, Lvalue: &ir.VarExpr{V: x}, Rvalue: &ir.IntLiteral{Value: 1}}
	s3 := &ir.AssignStmt{Idx: 3, Lvalue: &ir.VarExpr{V: x}, Rvalue: &ir.IntLiteral{Value: 2}}

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
	return b.Build()
}
