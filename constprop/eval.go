// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constprop

import "goflow/ir"

// Evaluate computes e's abstract Value under the bindings in in.
// VarExpr and IntLiteral are the base cases; the four binary expression
// families share evalBinary's rule ordering.
//
// NewExp/CastExp/FieldAccess/ArrayAccess never fold — they're the
// side-effecting "may trap" expressions ir.HasSideEffect flags, so
// their abstract value is always NAC, matching godoctor's treatment of
// any non-literal, non-identifier expression as unanalyzable.
func Evaluate(e ir.Expr, in *CPFact) Value {
	switch ex := e.(type) {
	case *ir.VarExpr:
		if !ex.V.HoldsInt() {
			return NAC()
		}
		return in.Get(ex.V)
	case *ir.IntLiteral:
		return Const(ex.Value)
	case *ir.ArithmeticExp:
		return evalBinary(ex.Op, Evaluate(ex.A, in), Evaluate(ex.B, in), computeArithmetic)
	case *ir.ConditionExp:
		return evalBinary(ex.Op, Evaluate(ex.A, in), Evaluate(ex.B, in), computeCondition)
	case *ir.ShiftExp:
		return evalBinary(ex.Op, Evaluate(ex.A, in), Evaluate(ex.B, in), computeShift)
	case *ir.BitwiseExp:
		return evalBinary(ex.Op, Evaluate(ex.A, in), Evaluate(ex.B, in), computeBitwise)
	default:
		return NAC()
	}
}

// evalBinary applies one rule ordering across all four binary families:
//
//  1. a trapping divisor (DIV/REM by the constant 0) yields UNDEF, even
//     when the other operand is NAC — this precedence matters because
//     the naive "NAC beats everything but UNDEF" ordering would
//     otherwise mask a guaranteed-to-trap division behind a
//     merely-unknown operand.
//  2. otherwise, either operand NAC makes the result NAC.
//  3. otherwise, either operand UNDEF makes the result UNDEF.
//  4. otherwise both operands are known constants: compute.
func evalBinary[Op comparable](op Op, a, b Value, compute func(op Op, x, y int32) Value) Value {
	if isTrappingDivisor(op, b) {
		return Undef()
	}
	if a.IsNAC() || b.IsNAC() {
		return NAC()
	}
	if a.IsUndef() || b.IsUndef() {
		return Undef()
	}
	ac, _ := a.AsConstant()
	bc, _ := b.AsConstant()
	return compute(op, ac, bc)
}

func isTrappingDivisor(op any, divisor Value) bool {
	arith, ok := op.(ir.ArithOp)
	if !ok || (arith != ir.DIV && arith != ir.REM) {
		return false
	}
	c, isConst := divisor.AsConstant()
	return isConst && c == 0
}

func computeArithmetic(op ir.ArithOp, a, b int32) Value {
	switch op {
	case ir.ADD:
		return Const(a + b)
	case ir.SUB:
		return Const(a - b)
	case ir.MUL:
		return Const(a * b)
	case ir.DIV:
		return Const(a / b)
	case ir.REM:
		return Const(a % b)
	default:
		return NAC()
	}
}

func computeCondition(op ir.CondOp, a, b int32) Value {
	var result bool
	switch op {
	case ir.EQ:
		result = a == b
	case ir.NE:
		result = a != b
	case ir.LT:
		result = a < b
	case ir.GT:
		result = a > b
	case ir.LE:
		result = a <= b
	case ir.GE:
		result = a >= b
	}
	if result {
		return Const(1)
	}
	return Const(0)
}

func computeShift(op ir.ShiftOp, a, b int32) Value {
	shift := uint32(b) & 0x1f // shift amounts are masked to 5 bits
	switch op {
	case ir.SHL:
		return Const(a << shift)
	case ir.SHR:
		return Const(a >> shift) // arithmetic: sign-extends
	case ir.USHR:
		return Const(int32(uint32(a) >> shift)) // logical: zero-fills
	default:
		return NAC()
	}
}

func computeBitwise(op ir.BitwiseOp, a, b int32) Value {
	switch op {
	case ir.OR:
		return Const(a | b)
	case ir.AND:
		return Const(a & b)
	case ir.XOR:
		return Const(a ^ b)
	default:
		return NAC()
	}
}
