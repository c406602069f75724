package vfpu

import "github.com/ajroetker/vectorfpu/hwy"

// residualFloor64 bounds the region where the binary64 FMA residual is
// exact: below this magnitude the residual can itself round to zero.
const residualFloor64 = float64(0x1p-968)

// VMulF32 computes dst[i] = a[i] * b[i], updating sticky flags. Invalid
// fires on sNaN operands or 0*inf forms.
func (e *Engine) VMulF32(dst, a, b []float32) {
	requireSameLen32("VMulF32", dst, a, b)
	if e.roundingMode != RoundTiesToEven {
		for i := range dst {
			dst[i] = e.scalarMul32(a[i], b[i])
		}
		return
	}
	hwy.ProcessWithTail[float32](len(dst),
		func(offset int) {
			av := hwy.Load(a[offset:])
			bv := hwy.Load(b[offset:])
			cv := hwy.Mul(av, bv)
			e.mul32SpecialCases(av, bv, &cv)
			if !e.inexact {
				r := upMul32(av, bv, cv)
				if isNonzero64(r).AnyTrue() {
					e.inexact = true
				}
			}
			if !e.underflow {
				isSmall := hwy.LessThan(hwy.Abs(cv), e.consts.vmin32)
				if isSmall.AnyTrue() {
					r := upMul32(av, bv, cv)
					if hwy.MaskAnd(isNonzero64(r), reinterpretMaskBits[float64](isSmall)).AnyTrue() {
						e.underflow = true
					}
				}
			}
			hwy.Store(cv, dst[offset:])
		},
		func(offset, count int) {
			for i := 0; i < count; i++ {
				dst[offset+i] = e.scalarMul32(a[offset+i], b[offset+i])
			}
		},
	)
}

// VMulF64 is the binary64 analogue of VMulF32. Its inexact/underflow
// determination requires a true hardware FMA for UpMul's single-rounding
// residual; on a host without one the whole chunk's flag determination
// downgrades to the scalar reference, though the stored result is still
// the SIMD-computed product.
func (e *Engine) VMulF64(dst, a, b []float64) {
	requireSameLen64("VMulF64", dst, a, b)
	if e.roundingMode != RoundTiesToEven {
		for i := range dst {
			dst[i] = e.scalarMul64(a[i], b[i])
		}
		return
	}
	haveFMA := hardwareFMAAvailable()
	hwy.ProcessWithTail[float64](len(dst),
		func(offset int) {
			av := hwy.Load(a[offset:])
			bv := hwy.Load(b[offset:])
			cv := hwy.Mul(av, bv)
			e.mul64SpecialCases(av, bv, &cv)
			// The FMA residual is exact only while the product stays
			// above 2^-968; deeper in the subnormal range the residual
			// itself can flush to zero and report a rounded product as
			// exact, so those chunks fall back to the scalar reference
			// for flag determination just like hosts without an FMA.
			// Exact-zero products (a zero operand) are excluded: only a
			// product of nonzero operands can land below the floor by
			// rounding.
			belowFloor := hwy.LessThan(hwy.Abs(cv), hwy.Set(residualFloor64))
			residualUntrusted := hwy.MaskAnd(belowFloor, hwy.MaskAnd(isNonzero64(av), isNonzero64(bv))).AnyTrue()
			if !haveFMA || residualUntrusted {
				if !e.inexact || !e.underflow {
					// Discards each call's result: it runs only for
					// scalarMul64's flag side effects.
					for i := 0; i < len(cv.Data()); i++ {
						e.scalarMul64(a[offset+i], b[offset+i])
					}
				}
			} else {
				if !e.inexact {
					r := upMul64(av, bv, cv)
					if isNonzero64(r).AnyTrue() {
						e.inexact = true
					}
				}
				if !e.underflow {
					isSmall := hwy.LessThan(hwy.Abs(cv), e.consts.vmin64)
					if isSmall.AnyTrue() {
						r := upMul64(av, bv, cv)
						if hwy.MaskAnd(isNonzero64(r), isSmall).AnyTrue() {
							e.underflow = true
						}
					}
				}
			}
			hwy.Store(cv, dst[offset:])
		},
		func(offset, count int) {
			for i := 0; i < count; i++ {
				dst[offset+i] = e.scalarMul64(a[offset+i], b[offset+i])
			}
		},
	)
}

// mul32SpecialCases derives Mul's invalid/overflow flags and
// canonicalizes NaN output lanes.
func (e *Engine) mul32SpecialCases(av, bv hwy.Vec[float32], cv *hwy.Vec[float32]) {
	special := isInfOrNaN32(*cv)
	if !special.AnyTrue() {
		return
	}
	if hwy.MaskOr(isSNaN32(av), isSNaN32(bv)).AnyTrue() {
		e.invalid = true
	}
	zeroTimesInf := hwy.MaskOr(
		hwy.MaskAnd(isZero32(av), isInf32(bv)),
		hwy.MaskAnd(isInf32(av), isZero32(bv)),
	)
	if zeroTimesInf.AnyTrue() {
		e.invalid = true
	}
	overflow := hwy.MaskAnd(isInf32(*cv), hwy.MaskAnd(hwy.MaskNot(isInf32(av)), hwy.MaskNot(isInf32(bv))))
	if overflow.AnyTrue() {
		e.overflow = true
		e.inexact = true
	}
	*cv = hwy.IfThenElse(isNaN32(*cv), e.consts.qnan32, *cv)
}

func (e *Engine) mul64SpecialCases(av, bv hwy.Vec[float64], cv *hwy.Vec[float64]) {
	special := isInfOrNaN64(*cv)
	if !special.AnyTrue() {
		return
	}
	if hwy.MaskOr(isSNaN64(av), isSNaN64(bv)).AnyTrue() {
		e.invalid = true
	}
	zeroTimesInf := hwy.MaskOr(
		hwy.MaskAnd(isZero64(av), isInf64(bv)),
		hwy.MaskAnd(isInf64(av), isZero64(bv)),
	)
	if zeroTimesInf.AnyTrue() {
		e.invalid = true
	}
	overflow := hwy.MaskAnd(isInf64(*cv), hwy.MaskAnd(hwy.MaskNot(isInf64(av)), hwy.MaskNot(isInf64(bv))))
	if overflow.AnyTrue() {
		e.overflow = true
		e.inexact = true
	}
	*cv = hwy.IfThenElse(isNaN64(*cv), e.consts.qnan64, *cv)
}
