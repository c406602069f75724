package vfpu

import "github.com/ajroetker/vectorfpu/hwy"

// VDivF32 computes dst[i] = a[i] / b[i], updating sticky flags. Inexact
// and underflow cannot be inferred cheaply from a SIMD divide: whenever
// either flag is not already set, the driver downgrades the whole chunk
// by re-invoking the scalar reference on every lane solely to update
// flags; the stored result remains the SIMD-computed value, which is
// bit-identical to the scalar reference for a correctly-rounded divide
// under TiesToEven.
func (e *Engine) VDivF32(dst, a, b []float32) {
	requireSameLen32("VDivF32", dst, a, b)
	if e.roundingMode != RoundTiesToEven {
		for i := range dst {
			dst[i] = e.scalarDiv32(a[i], b[i])
		}
		return
	}
	hwy.ProcessWithTail[float32](len(dst),
		func(offset int) {
			av := hwy.Load(a[offset:])
			bv := hwy.Load(b[offset:])
			cv := hwy.Div(av, bv)
			e.div32SpecialCases(av, bv, &cv)
			if !e.inexact || !e.underflow {
				for i := 0; i < len(cv.Data()); i++ {
					e.scalarDiv32(a[offset+i], b[offset+i])
				}
			}
			hwy.Store(cv, dst[offset:])
		},
		func(offset, count int) {
			for i := 0; i < count; i++ {
				dst[offset+i] = e.scalarDiv32(a[offset+i], b[offset+i])
			}
		},
	)
}

// VDivF64 is the binary64 analogue of VDivF32.
func (e *Engine) VDivF64(dst, a, b []float64) {
	requireSameLen64("VDivF64", dst, a, b)
	if e.roundingMode != RoundTiesToEven {
		for i := range dst {
			dst[i] = e.scalarDiv64(a[i], b[i])
		}
		return
	}
	hwy.ProcessWithTail[float64](len(dst),
		func(offset int) {
			av := hwy.Load(a[offset:])
			bv := hwy.Load(b[offset:])
			cv := hwy.Div(av, bv)
			e.div64SpecialCases(av, bv, &cv)
			if !e.inexact || !e.underflow {
				for i := 0; i < len(cv.Data()); i++ {
					e.scalarDiv64(a[offset+i], b[offset+i])
				}
			}
			hwy.Store(cv, dst[offset:])
		},
		func(offset, count int) {
			for i := 0; i < count; i++ {
				dst[offset+i] = e.scalarDiv64(a[offset+i], b[offset+i])
			}
		},
	)
}

// div32SpecialCases derives Div's invalid/div-by-zero/overflow flags
// and canonicalizes NaN output lanes.
func (e *Engine) div32SpecialCases(av, bv hwy.Vec[float32], cv *hwy.Vec[float32]) {
	special := isInfOrNaN32(*cv)
	if !special.AnyTrue() {
		return
	}
	if hwy.MaskOr(isSNaN32(av), isSNaN32(bv)).AnyTrue() {
		e.invalid = true
	}
	// 0/0 and inf/inf produce NaN from non-NaN operands; they must be
	// caught here because the scalar downgrade below is skipped once
	// inexact and underflow are both already sticky.
	nanFromNonNaN := hwy.MaskAnd(isNaN32(*cv), hwy.MaskAnd(hwy.MaskNot(isNaN32(av)), hwy.MaskNot(isNaN32(bv))))
	if nanFromNonNaN.AnyTrue() {
		e.invalid = true
	}
	divByZero := hwy.MaskAnd(isInf32(*cv), hwy.MaskAnd(hwy.MaskNot(isInf32(av)), isZero32(bv)))
	if divByZero.AnyTrue() {
		e.divByZero = true
	}
	overflow := hwy.MaskAnd(isInf32(*cv), hwy.MaskAnd(hwy.MaskNot(isInf32(av)), hwy.MaskAnd(hwy.MaskNot(isInf32(bv)), hwy.MaskNot(isZero32(bv)))))
	if overflow.AnyTrue() {
		e.overflow = true
		e.inexact = true
	}
	*cv = hwy.IfThenElse(isNaN32(*cv), e.consts.qnan32, *cv)
}

func (e *Engine) div64SpecialCases(av, bv hwy.Vec[float64], cv *hwy.Vec[float64]) {
	special := isInfOrNaN64(*cv)
	if !special.AnyTrue() {
		return
	}
	if hwy.MaskOr(isSNaN64(av), isSNaN64(bv)).AnyTrue() {
		e.invalid = true
	}
	nanFromNonNaN := hwy.MaskAnd(isNaN64(*cv), hwy.MaskAnd(hwy.MaskNot(isNaN64(av)), hwy.MaskNot(isNaN64(bv))))
	if nanFromNonNaN.AnyTrue() {
		e.invalid = true
	}
	divByZero := hwy.MaskAnd(isInf64(*cv), hwy.MaskAnd(hwy.MaskNot(isInf64(av)), isZero64(bv)))
	if divByZero.AnyTrue() {
		e.divByZero = true
	}
	overflow := hwy.MaskAnd(isInf64(*cv), hwy.MaskAnd(hwy.MaskNot(isInf64(av)), hwy.MaskAnd(hwy.MaskNot(isInf64(bv)), hwy.MaskNot(isZero64(bv)))))
	if overflow.AnyTrue() {
		e.overflow = true
		e.inexact = true
	}
	*cv = hwy.IfThenElse(isNaN64(*cv), e.consts.qnan64, *cv)
}
