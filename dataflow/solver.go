// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataflow

import "goflow/cfg"

// Solve drives a to a fixed point over g and returns the resulting facts.
// Direction is taken from a.IsForward(); termination follows from the
// analysis's lattice having finite height and the transfer function
// being monotone.
func Solve[F any](g cfg.Graph, a Analysis[F]) *Result[F] {
	result := newResult(g, a)
	if a.IsForward() {
		solveForward(g, a, result)
	} else {
		solveBackward(g, a, result)
	}
	return result
}

// worklist is a simple FIFO queue of nodes with membership tracking, so
// a node already queued isn't queued twice. The worklist data structure
// is deliberately left open ("FIFO, priority by reverse postorder,
// etc.") as long as every node is revisited whenever its input may have
// changed; a deduped FIFO satisfies that with the simplest possible
// bookkeeping.
type worklist struct {
	queue  []cfg.Node
	queued map[cfg.Node]bool
}

func newWorklist(nodes []cfg.Node) *worklist {
	w := &worklist{queue: append([]cfg.Node(nil), nodes...), queued: make(map[cfg.Node]bool, len(nodes))}
	for _, n := range nodes {
		w.queued[n] = true
	}
	return w
}

func (w *worklist) empty() bool { return len(w.queue) == 0 }

func (w *worklist) pop() cfg.Node {
	n := w.queue[0]
	w.queue = w.queue[1:]
	w.queued[n] = false
	return n
}

func (w *worklist) push(n cfg.Node) {
	if !w.queued[n] {
		w.queue = append(w.queue, n)
		w.queued[n] = true
	}
}

func solveForward[F any](g cfg.Graph, a Analysis[F], result *Result[F]) {
	entry := g.Entry()
	var initial []cfg.Node
	for _, n := range g.Nodes() {
		if n != entry {
			initial = append(initial, n)
		}
	}
	w := newWorklist(initial)

	for !w.empty() {
		n := w.pop()
		in := result.in[n]
		for _, p := range g.Preds(n) {
			a.MeetInto(result.out[p], in)
		}
		if a.TransferNode(n, in, result.out[n]) {
			for _, s := range g.Succs(n) {
				w.push(s)
			}
		}
	}
}

func solveBackward[F any](g cfg.Graph, a Analysis[F], result *Result[F]) {
	exit := g.Exit()
	var initial []cfg.Node
	for _, n := range g.Nodes() {
		if n != exit {
			initial = append(initial, n)
		}
	}
	w := newWorklist(initial)

	for !w.empty() {
		n := w.pop()
		out := result.out[n]
		for _, s := range g.Succs(n) {
			a.MeetInto(result.in[s], out)
		}
		if a.TransferNode(n, out, result.in[n]) {
			for _, p := range g.Preds(n) {
				w.push(p)
			}
		}
	}
}
