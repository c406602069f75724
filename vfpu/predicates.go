package vfpu

import "github.com/ajroetker/vectorfpu/hwy"

// This file implements the derived lane-wise predicates used by the
// vector operation drivers as true vector operations, so none of them
// fall back to a scalar loop per lane.

// isNaN32 reports, per lane, whether a is NaN: a != a.
func isNaN32(a hwy.Vec[float32]) hwy.Mask[float32] { return hwy.NotEqual(a, a) }
func isNaN64(a hwy.Vec[float64]) hwy.Mask[float64] { return hwy.NotEqual(a, a) }

// isInf32 reports, per lane, whether a is +-infinity:
// (a == a) && ((a - a) != (a - a)). Infinity minus itself is NaN; a
// finite value minus itself is exactly zero; NaN minus itself is NaN
// but already excluded by the first conjunct.
func isInf32(a hwy.Vec[float32]) hwy.Mask[float32] {
	res := hwy.Sub(a, a)
	return hwy.MaskAnd(hwy.Equal(a, a), hwy.NotEqual(res, res))
}
func isInf64(a hwy.Vec[float64]) hwy.Mask[float64] {
	res := hwy.Sub(a, a)
	return hwy.MaskAnd(hwy.Equal(a, a), hwy.NotEqual(res, res))
}

// isInfOrNaN32 reports, per lane, whether a is +-infinity or NaN:
// (a - a) != (a - a). Cheaper than isInf32 || isNaN32 when only the
// disjunction is needed.
func isInfOrNaN32(a hwy.Vec[float32]) hwy.Mask[float32] {
	res := hwy.Sub(a, a)
	return hwy.NotEqual(res, res)
}
func isInfOrNaN64(a hwy.Vec[float64]) hwy.Mask[float64] {
	res := hwy.Sub(a, a)
	return hwy.NotEqual(res, res)
}

// isNonzero32 reports, per lane, whether a is neither NaN nor +-0:
// (a != -a) && (a == a).
func isNonzero32(a hwy.Vec[float32]) hwy.Mask[float32] {
	neg := hwy.Neg(a)
	return hwy.MaskAnd(hwy.NotEqual(a, neg), hwy.Equal(a, a))
}
func isNonzero64(a hwy.Vec[float64]) hwy.Mask[float64] {
	neg := hwy.Neg(a)
	return hwy.MaskAnd(hwy.NotEqual(a, neg), hwy.Equal(a, a))
}

// isZero32 reports, per lane, whether a is +0 or -0: a == -a. NaN fails
// both sides and correctly reports false.
func isZero32(a hwy.Vec[float32]) hwy.Mask[float32] { return hwy.Equal(a, hwy.Neg(a)) }
func isZero64(a hwy.Vec[float64]) hwy.Mask[float64] { return hwy.Equal(a, hwy.Neg(a)) }

// isSNaN32 reports, per lane, whether a is a signaling NaN: exponent
// field all ones, mantissa non-zero, top mantissa bit zero. A
// floating-point comparison cannot distinguish signaling from quiet
// NaN (both fail every ordered comparison identically), so this
// requires inspecting the bit pattern through the integer lanes.
func isSNaN32(a hwy.Vec[float32]) hwy.Mask[float32] {
	bits := hwy.BitCastF32ToU32(a)
	exp := hwy.And(bits, hwy.Set[uint32](exp32Mask))
	mant := hwy.And(bits, hwy.Set[uint32](mantissa32Mask))
	top := hwy.And(bits, hwy.Set[uint32](topBit32))
	expAllOnes := hwy.Equal(exp, hwy.Set[uint32](exp32Mask))
	mantNonzero := hwy.NotEqual(mant, hwy.Zero[uint32]())
	topZero := hwy.Equal(top, hwy.Zero[uint32]())
	m := hwy.MaskAnd(hwy.MaskAnd(expAllOnes, mantNonzero), topZero)
	return reinterpretMaskBits[float32](m)
}

func isSNaN64(a hwy.Vec[float64]) hwy.Mask[float64] {
	bits := hwy.BitCastF64ToU64(a)
	exp := hwy.And(bits, hwy.Set[uint64](exp64Mask))
	mant := hwy.And(bits, hwy.Set[uint64](mantissa64Mask))
	top := hwy.And(bits, hwy.Set[uint64](topBit64))
	expAllOnes := hwy.Equal(exp, hwy.Set[uint64](exp64Mask))
	mantNonzero := hwy.NotEqual(mant, hwy.Zero[uint64]())
	topZero := hwy.Equal(top, hwy.Zero[uint64]())
	m := hwy.MaskAnd(hwy.MaskAnd(expAllOnes, mantNonzero), topZero)
	return reinterpretMaskBits[float64](m)
}

// reinterpretMaskBits carries a mask computed over one lane type (here,
// the unsigned bit-pattern view of a float Vec) back onto another lane
// type: a mask's bits are a plain per-lane boolean sequence independent
// of the lane's element type.
func reinterpretMaskBits[To hwy.Lanes, From hwy.Lanes](m hwy.Mask[From]) hwy.Mask[To] {
	bits := make([]bool, m.NumLanes())
	for i := range bits {
		bits[i] = m.GetBit(i)
	}
	return hwy.MaskFromBits[To](bits)
}
