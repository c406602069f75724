package vfpu

import "github.com/ajroetker/vectorfpu/hwy"

// VFmaF32 computes dst[i] = a[i]*b[i] + c[i] with a single rounding,
// updating sticky flags. A cheap residual for Fma exists in principle
// but is out of the fast path here: inexact/underflow determination
// downgrades the chunk to the scalar reference whenever either flag is
// not already set.
func (e *Engine) VFmaF32(dst, a, b, c []float32) {
	requireSameLen32("VFmaF32", dst, a, b)
	if len(dst) != len(c) {
		panic("VFmaF32: dst and c must have the same length")
	}
	if e.roundingMode != RoundTiesToEven {
		for i := range dst {
			dst[i] = e.scalarFma32(a[i], b[i], c[i])
		}
		return
	}
	hwy.ProcessWithTail[float32](len(dst),
		func(offset int) {
			av := hwy.Load(a[offset:])
			bv := hwy.Load(b[offset:])
			cvIn := hwy.Load(c[offset:])
			dv := hwy.FMA(av, bv, cvIn)
			e.fma32SpecialCases(av, bv, cvIn, &dv)
			if !e.inexact || !e.underflow {
				for i := 0; i < len(dv.Data()); i++ {
					e.scalarFma32(a[offset+i], b[offset+i], c[offset+i])
				}
			}
			hwy.Store(dv, dst[offset:])
		},
		func(offset, count int) {
			for i := 0; i < count; i++ {
				dst[offset+i] = e.scalarFma32(a[offset+i], b[offset+i], c[offset+i])
			}
		},
	)
}

// VFmaF64 is the binary64 analogue of VFmaF32.
func (e *Engine) VFmaF64(dst, a, b, c []float64) {
	requireSameLen64("VFmaF64", dst, a, b)
	if len(dst) != len(c) {
		panic("VFmaF64: dst and c must have the same length")
	}
	if e.roundingMode != RoundTiesToEven {
		for i := range dst {
			dst[i] = e.scalarFma64(a[i], b[i], c[i])
		}
		return
	}
	hwy.ProcessWithTail[float64](len(dst),
		func(offset int) {
			av := hwy.Load(a[offset:])
			bv := hwy.Load(b[offset:])
			cvIn := hwy.Load(c[offset:])
			dv := hwy.FMA(av, bv, cvIn)
			e.fma64SpecialCases(av, bv, cvIn, &dv)
			if !e.inexact || !e.underflow {
				for i := 0; i < len(dv.Data()); i++ {
					e.scalarFma64(a[offset+i], b[offset+i], c[offset+i])
				}
			}
			hwy.Store(dv, dst[offset:])
		},
		func(offset, count int) {
			for i := 0; i < count; i++ {
				dst[offset+i] = e.scalarFma64(a[offset+i], b[offset+i], c[offset+i])
			}
		},
	)
}

// fma32SpecialCases derives Fma's invalid/overflow flags and
// canonicalizes NaN output lanes. Invalid fires for an sNaN operand or
// when the result is NaN without any input being NaN (inf*0+finite and
// similar IEEE-invalid forms); the inf*0+qNaN case is additionally
// gated by invalidFMA, per the engine's configured policy.
func (e *Engine) fma32SpecialCases(av, bv, cv hwy.Vec[float32], dv *hwy.Vec[float32]) {
	special := isInfOrNaN32(*dv)
	if !special.AnyTrue() {
		return
	}
	if hwy.MaskOr(isSNaN32(av), hwy.MaskOr(isSNaN32(bv), isSNaN32(cv))).AnyTrue() {
		e.invalid = true
	}
	anyInputNaN := hwy.MaskOr(isNaN32(av), hwy.MaskOr(isNaN32(bv), isNaN32(cv)))
	resultNaNNoInputNaN := hwy.MaskAnd(isNaN32(*dv), hwy.MaskNot(anyInputNaN))
	if resultNaNNoInputNaN.AnyTrue() {
		e.invalid = true
	}
	if e.invalidFMA {
		infTimesZero := hwy.MaskOr(
			hwy.MaskAnd(isInf32(av), isZero32(bv)),
			hwy.MaskAnd(isZero32(av), isInf32(bv)),
		)
		if hwy.MaskAnd(infTimesZero, isNaN32(cv)).AnyTrue() {
			e.invalid = true
		}
	}
	overflow := hwy.MaskAnd(isInf32(*dv), hwy.MaskAnd(hwy.MaskNot(isInf32(av)), hwy.MaskAnd(hwy.MaskNot(isInf32(bv)), hwy.MaskNot(isInf32(cv)))))
	if overflow.AnyTrue() {
		e.overflow = true
		e.inexact = true
	}
	*dv = hwy.IfThenElse(isNaN32(*dv), e.consts.qnan32, *dv)
}

func (e *Engine) fma64SpecialCases(av, bv, cv hwy.Vec[float64], dv *hwy.Vec[float64]) {
	special := isInfOrNaN64(*dv)
	if !special.AnyTrue() {
		return
	}
	if hwy.MaskOr(isSNaN64(av), hwy.MaskOr(isSNaN64(bv), isSNaN64(cv))).AnyTrue() {
		e.invalid = true
	}
	anyInputNaN := hwy.MaskOr(isNaN64(av), hwy.MaskOr(isNaN64(bv), isNaN64(cv)))
	resultNaNNoInputNaN := hwy.MaskAnd(isNaN64(*dv), hwy.MaskNot(anyInputNaN))
	if resultNaNNoInputNaN.AnyTrue() {
		e.invalid = true
	}
	if e.invalidFMA {
		infTimesZero := hwy.MaskOr(
			hwy.MaskAnd(isInf64(av), isZero64(bv)),
			hwy.MaskAnd(isZero64(av), isInf64(bv)),
		)
		if hwy.MaskAnd(infTimesZero, isNaN64(cv)).AnyTrue() {
			e.invalid = true
		}
	}
	overflow := hwy.MaskAnd(isInf64(*dv), hwy.MaskAnd(hwy.MaskNot(isInf64(av)), hwy.MaskAnd(hwy.MaskNot(isInf64(bv)), hwy.MaskNot(isInf64(cv)))))
	if overflow.AnyTrue() {
		e.overflow = true
		e.inexact = true
	}
	*dv = hwy.IfThenElse(isNaN64(*dv), e.consts.qnan64, *dv)
}
