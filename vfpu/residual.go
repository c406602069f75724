package vfpu

import "github.com/ajroetker/vectorfpu/hwy"

// This file implements the exact-residual kernels the vector drivers use
// to derive the inexact/underflow flags without a scalar re-execution
// per lane.

// twoSum32 computes the exact rounding error of c = a + b (already
// computed by the caller), returning zero only when c is the exact sum:
// ad = c-b; bd = c-ad; da = ad-a; db = bd-b; r = da+db.
func twoSum32(a, b, c hwy.Vec[float32]) hwy.Vec[float32] {
	ad := hwy.Sub(c, b)
	bd := hwy.Sub(c, ad)
	da := hwy.Sub(ad, a)
	db := hwy.Sub(bd, b)
	return hwy.Add(da, db)
}

func twoSum64(a, b, c hwy.Vec[float64]) hwy.Vec[float64] {
	ad := hwy.Sub(c, b)
	bd := hwy.Sub(c, ad)
	da := hwy.Sub(ad, a)
	db := hwy.Sub(bd, b)
	return hwy.Add(da, db)
}

// fastTwoSum32 is TwoSum's cheaper form, valid only when |a| >= |b|. The
// masked swap below reorders operands per lane, not per vector, so the
// |a| >= |b| precondition holds independently in every lane regardless
// of which operand was actually larger there.
func fastTwoSum32(a, b, c hwy.Vec[float32]) hwy.Vec[float32] {
	aAbs := hwy.Abs(a)
	bAbs := hwy.Abs(b)
	swap := hwy.LessThan(aAbs, bAbs)
	x := hwy.IfThenElse(swap, b, a)
	y := hwy.IfThenElse(swap, a, b)
	return hwy.Sub(hwy.Sub(c, x), y)
}

func fastTwoSum64(a, b, c hwy.Vec[float64]) hwy.Vec[float64] {
	aAbs := hwy.Abs(a)
	bAbs := hwy.Abs(b)
	swap := hwy.LessThan(aAbs, bAbs)
	x := hwy.IfThenElse(swap, b, a)
	y := hwy.IfThenElse(swap, a, b)
	return hwy.Sub(hwy.Sub(c, x), y)
}

// upMul32 computes the exact rounding error of c = a * b (already
// computed by the caller in binary32) by widening both operands and the
// product to binary64, where the binary32 rounding error is always
// exactly representable: r = a64*b64 - c64.
func upMul32(a, b, c hwy.Vec[float32]) hwy.Vec[float64] {
	a64 := hwy.PromoteF32ToF64(a)
	b64 := hwy.PromoteF32ToF64(b)
	c64 := hwy.PromoteF32ToF64(c)
	return hwy.Sub(hwy.Mul(a64, b64), c64)
}

// upMul64 computes the exact rounding error of c = a * b (already
// computed by the caller in binary64) via a single fused multiply-add:
// r = fma(a, b, -c). This requires a true hardware FMA: on hosts
// without one the Mul driver downgrades binary64 to the scalar reference
// instead of calling it (see hardwareFMAAvailable). Even with one, the
// residual is not trusted below magnitude 2**-968, and the Mul driver
// also downgrades any chunk whose product falls there with nonzero
// operands.
func upMul64(a, b, c hwy.Vec[float64]) hwy.Vec[float64] {
	return hwy.FMA(a, b, hwy.Neg(c))
}
