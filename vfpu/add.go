package vfpu

import "github.com/ajroetker/vectorfpu/hwy"

// VAddF32 computes dst[i] = a[i] + b[i] for i in [0, len(dst)), updating
// sticky flags as the scalar reference would. a, b, and dst may alias.
// Panics if a, b, and dst do not all have the same length: hwy.Add
// itself silently truncates to the shortest input, which would hide a
// caller's length mismatch here.
func (e *Engine) VAddF32(dst, a, b []float32) {
	requireSameLen32("VAddF32", dst, a, b)
	if e.roundingMode != RoundTiesToEven {
		for i := range dst {
			dst[i] = e.scalarAdd32(a[i], b[i])
		}
		return
	}
	hwy.ProcessWithTail[float32](len(dst),
		func(offset int) {
			av := hwy.Load(a[offset:])
			bv := hwy.Load(b[offset:])
			cv := hwy.Add(av, bv)
			e.addSub32SpecialCases(av, bv, &cv)
			if !e.inexact {
				r := fastTwoSum32(av, bv, cv)
				if isNonzero32(r).AnyTrue() {
					e.inexact = true
				}
			}
			hwy.Store(cv, dst[offset:])
		},
		func(offset, count int) {
			for i := 0; i < count; i++ {
				dst[offset+i] = e.scalarAdd32(a[offset+i], b[offset+i])
			}
		},
	)
}

// VAddF64 is the binary64 analogue of VAddF32.
func (e *Engine) VAddF64(dst, a, b []float64) {
	requireSameLen64("VAddF64", dst, a, b)
	if e.roundingMode != RoundTiesToEven {
		for i := range dst {
			dst[i] = e.scalarAdd64(a[i], b[i])
		}
		return
	}
	hwy.ProcessWithTail[float64](len(dst),
		func(offset int) {
			av := hwy.Load(a[offset:])
			bv := hwy.Load(b[offset:])
			cv := hwy.Add(av, bv)
			e.addSub64SpecialCases(av, bv, &cv)
			if !e.inexact {
				r := fastTwoSum64(av, bv, cv)
				if isNonzero64(r).AnyTrue() {
					e.inexact = true
				}
			}
			hwy.Store(cv, dst[offset:])
		},
		func(offset, count int) {
			for i := 0; i < count; i++ {
				dst[offset+i] = e.scalarAdd64(a[offset+i], b[offset+i])
			}
		},
	)
}

// addSub32SpecialCases derives the invalid and overflow flags shared by
// Add and Sub (Sub calls this with b already negated), and canonicalizes
// NaN lanes of *cv to the configured qNaN.
func (e *Engine) addSub32SpecialCases(av, bv hwy.Vec[float32], cv *hwy.Vec[float32]) {
	special := isInfOrNaN32(*cv)
	if !special.AnyTrue() {
		return
	}
	if hwy.MaskAnd(isNaN32(*cv), hwy.MaskAnd(isInf32(av), isInf32(bv))).AnyTrue() {
		e.invalid = true
	}
	if hwy.MaskOr(isSNaN32(av), isSNaN32(bv)).AnyTrue() {
		e.invalid = true
	}
	overflow := hwy.MaskAnd(isInf32(*cv), hwy.MaskAnd(hwy.MaskNot(isInf32(av)), hwy.MaskNot(isInf32(bv))))
	if overflow.AnyTrue() {
		e.overflow = true
		e.inexact = true
	}
	*cv = hwy.IfThenElse(isNaN32(*cv), e.consts.qnan32, *cv)
}

func (e *Engine) addSub64SpecialCases(av, bv hwy.Vec[float64], cv *hwy.Vec[float64]) {
	special := isInfOrNaN64(*cv)
	if !special.AnyTrue() {
		return
	}
	if hwy.MaskAnd(isNaN64(*cv), hwy.MaskAnd(isInf64(av), isInf64(bv))).AnyTrue() {
		e.invalid = true
	}
	if hwy.MaskOr(isSNaN64(av), isSNaN64(bv)).AnyTrue() {
		e.invalid = true
	}
	overflow := hwy.MaskAnd(isInf64(*cv), hwy.MaskAnd(hwy.MaskNot(isInf64(av)), hwy.MaskNot(isInf64(bv))))
	if overflow.AnyTrue() {
		e.overflow = true
		e.inexact = true
	}
	*cv = hwy.IfThenElse(isNaN64(*cv), e.consts.qnan64, *cv)
}

func requireSameLen32(op string, dst, a, b []float32) {
	if len(dst) != len(a) || len(dst) != len(b) {
		panic(op + ": dst, a, and b must have the same length")
	}
}

func requireSameLen64(op string, dst, a, b []float64) {
	if len(dst) != len(a) || len(dst) != len(b) {
		panic(op + ": dst, a, and b must have the same length")
	}
}
