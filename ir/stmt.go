// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// Stmt is the closed family of IR statements. Every statement carries a
// stable, monotonically increasing Index used to order the live and
// dead sets deterministically.
//
// This mirrors the shape of godoctor's analysis/dataflow def/use
// extraction (dataflow.go's defs/uses switch on ast.Stmt), generalized
// from go/ast nodes to this package's own closed statement family.
type Stmt interface {
	Index() int
	stmtNode()
}

// If is a conditional branch; its two outgoing CFG edges are typed
// IfTrue/IfFalse by the cfg package, not carried on the statement itself.
type If struct {
	Idx  int
	Cond Expr
}

func (s *If) Index() int { return s.Idx }
func (s *If) stmtNode() {}

// SwitchStmt branches on the value of Tag. Case targets are carried as
// typed SwitchCase(k)/SwitchDefault edges in the cfg package.
type SwitchStmt struct {
	Idx int
	Tag Expr
}

func (s *SwitchStmt) Index() int { return s.Idx }
func (s *SwitchStmt) stmtNode() {}

// AssignStmt assigns the value of Rvalue to Lvalue. Lvalue is a VarExpr
// for a plain local assignment, or a FieldAccess/ArrayAccess for a store
// through a field or array element (which defines no local variable at
// all, per DefinedVar).
type AssignStmt struct {
	Idx    int
	Lvalue Expr
	Rvalue Expr
}

func (s *AssignStmt) Index() int { return s.Idx }
func (s *AssignStmt) stmtNode() {}

// DefinitionStmt is any other statement that may define a local variable
// without doing so through a pure Expr rvalue — most commonly a method
// invocation whose return value is captured (e.g. "r = foo(x)"). Calls
// are not part of the Expr family, so their effect on Result is always
// treated conservatively (NAC) rather than evaluated. Result is nil when
// the statement's definition, if any, isn't captured in a local.
type DefinitionStmt struct {
	Idx    int
	Result *Var
}

func (s *DefinitionStmt) Index() int { return s.Idx }
func (s *DefinitionStmt) stmtNode() {}

// UnclassifiedStmt is a statement with no defined lvalue and no branching
// behavior relevant to these analyses (e.g. a bare expression statement
// or a return with no assignment).
type UnclassifiedStmt struct {
	Idx int
}

func (s *UnclassifiedStmt) Index() int { return s.Idx }
func (s *UnclassifiedStmt) stmtNode() {}

// DefinedVar returns the local variable directly defined by s, if any.
// A store through a FieldAccess or ArrayAccess lvalue defines no local
// variable and so is excluded, matching godoctor's defs() treatment of
// *ast.IndexExpr assignment targets in analysis/dataflow/dataflow.go.
func DefinedVar(s Stmt) (*Var, bool) {
	switch st := s.(type) {
	case *AssignStmt:
		if ve, ok := st.Lvalue.(*VarExpr); ok {
			return ve.V, true
		}
	case *DefinitionStmt:
		if st.Result != nil {
			return st.Result, true
		}
	}
	return nil, false
}

// UsedVars returns the variables read by s, for liveness's def/use sets.
// Grounded on godoctor's uses()/extractUseStmtIdents, generalized from
// go/ast expressions to this package's own Expr family.
func UsedVars(s Stmt) []*Var {
	switch st := s.(type) {
	case *If:
		return exprVars(st.Cond)
	case *SwitchStmt:
		return exprVars(st.Tag)
	case *AssignStmt:
		vars := exprVars(st.Rvalue)
		if _, isVar := st.Lvalue.(*VarExpr); !isVar {
			// x[i] = ... and x.f = ... use the base/index expressions.
			vars = append(vars, exprVars(st.Lvalue)...)
		}
		return vars
	default:
		return nil
	}
}

func exprVars(e Expr) []*Var {
	if e == nil {
		return nil
	}
	switch ex := e.(type) {
	case *VarExpr:
		return []*Var{ex.V}
	case *IntLiteral:
		return nil
	case *ArithmeticExp:
		return append(exprVars(ex.A), exprVars(ex.B)...)
	case *ConditionExp:
		return append(exprVars(ex.A), exprVars(ex.B)...)
	case *ShiftExp:
		return append(exprVars(ex.A), exprVars(ex.B)...)
	case *BitwiseExp:
		return append(exprVars(ex.A), exprVars(ex.B)...)
	case *NewExp:
		return nil
	case *CastExp:
		return exprVars(ex.X)
	case *FieldAccess:
		return exprVars(ex.Base)
	case *ArrayAccess:
		return append(exprVars(ex.Base), exprVars(ex.Index)...)
	default:
		return nil
	}
}
