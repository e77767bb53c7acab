// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

import "goflow/ir"

// Builder assembles a Graph one statement and edge at a time. Statement
// nodes are memoized by ir.Stmt pointer identity (getVertex in the
// teacher's builder plays the same role for ast.Stmt).
type Builder struct {
	g      *graph
	byStmt map[ir.Stmt]*node
}

// NewBuilder starts a new CFG for the given program, with fresh
// synthetic entry and exit nodes already in place.
func NewBuilder(program *ir.Program) *Builder {
	entry := &node{isEntry: true}
	exit := &node{isExit: true}
	return &Builder{
		g: &graph{
			order:   []Node{entry, exit},
			entry:   entry,
			exit:    exit,
			program: program,
		},
		byStmt: make(map[ir.Stmt]*node),
	}
}

// Entry returns the graph's synthetic entry node.
func (b *Builder) Entry() Node { return b.g.entry }

// Exit returns the graph's synthetic exit node.
func (b *Builder) Exit() Node { return b.g.exit }

// Node returns the (creating if necessary) node for stmt.
func (b *Builder) Node(stmt ir.Stmt) Node {
	return b.nodeFor(stmt)
}

func (b *Builder) nodeFor(stmt ir.Stmt) *node {
	n, ok := b.byStmt[stmt]
	if ok {
		return n
	}
	n = &node{stmt: stmt}
	b.byStmt[stmt] = n
	b.g.order = append(b.g.order, n)
	return n
}

// AddEdge wires a FallThrough/IfTrue/IfFalse/SwitchDefault edge from
// "from" to the node for "to" (to's node is created if this is the
// first time that statement is seen).
func (b *Builder) AddEdge(from Node, kind EdgeKind, to ir.Stmt) *Builder {
	return b.addEdge(from, Edge{Kind: kind, Target: b.nodeFor(to)})
}

// AddEdgeToExit wires an edge from "from" directly to the synthetic exit
// node, used by statements (returns) that leave the method directly.
func (b *Builder) AddEdgeToExit(from Node, kind EdgeKind) *Builder {
	return b.addEdge(from, Edge{Kind: kind, Target: b.g.exit})
}

// AddCaseEdge wires a SwitchCase(caseValue) edge from "from" to the node
// for "to".
func (b *Builder) AddCaseEdge(from Node, caseValue int32, to ir.Stmt) *Builder {
	return b.addEdge(from, Edge{Kind: SwitchCase, Target: b.nodeFor(to), CaseValue: caseValue})
}

func (b *Builder) addEdge(from Node, e Edge) *Builder {
	src := from.(*node)
	dst := e.Target.(*node)
	src.outEdges = append(src.outEdges, e)
	src.succs = append(src.succs, dst)
	dst.preds = append(dst.preds, src)
	return b
}

// Build finalizes and returns the assembled Graph.
func (b *Builder) Build() Graph { return b.g }
