package vfpu

import "github.com/ajroetker/vectorfpu/hwy"

// VSqrtF32 computes dst[i] = sqrt(a[i]), updating sticky flags. Sqrt can
// neither overflow (a finite input never produces an infinite root) nor
// underflow into subnormal from a non-subnormal input, so only invalid
// and inexact apply. Inexact cannot be cheaply inferred from a SIMD
// sqrt, so the chunk downgrades to the scalar reference whenever
// inexact is not already set.
func (e *Engine) VSqrtF32(dst, a []float32) {
	if len(dst) != len(a) {
		panic("VSqrtF32: dst and a must have the same length")
	}
	if e.roundingMode != RoundTiesToEven {
		for i := range dst {
			dst[i] = e.scalarSqrt32(a[i])
		}
		return
	}
	hwy.ProcessWithTail[float32](len(dst),
		func(offset int) {
			av := hwy.Load(a[offset:])
			cv := hwy.Sqrt(av)
			e.sqrt32SpecialCases(av, &cv)
			if !e.inexact {
				for i := 0; i < len(cv.Data()); i++ {
					e.scalarSqrt32(a[offset+i])
				}
			}
			hwy.Store(cv, dst[offset:])
		},
		func(offset, count int) {
			for i := 0; i < count; i++ {
				dst[offset+i] = e.scalarSqrt32(a[offset+i])
			}
		},
	)
}

// VSqrtF64 is the binary64 analogue of VSqrtF32.
func (e *Engine) VSqrtF64(dst, a []float64) {
	if len(dst) != len(a) {
		panic("VSqrtF64: dst and a must have the same length")
	}
	if e.roundingMode != RoundTiesToEven {
		for i := range dst {
			dst[i] = e.scalarSqrt64(a[i])
		}
		return
	}
	hwy.ProcessWithTail[float64](len(dst),
		func(offset int) {
			av := hwy.Load(a[offset:])
			cv := hwy.Sqrt(av)
			e.sqrt64SpecialCases(av, &cv)
			if !e.inexact {
				for i := 0; i < len(cv.Data()); i++ {
					e.scalarSqrt64(a[offset+i])
				}
			}
			hwy.Store(cv, dst[offset:])
		},
		func(offset, count int) {
			for i := 0; i < count; i++ {
				dst[offset+i] = e.scalarSqrt64(a[offset+i])
			}
		},
	)
}

// sqrt32SpecialCases sets invalid for sNaN or negative operands and
// canonicalizes NaN output lanes to the configured qNaN.
func (e *Engine) sqrt32SpecialCases(av hwy.Vec[float32], cv *hwy.Vec[float32]) {
	if isSNaN32(av).AnyTrue() {
		e.invalid = true
	}
	negative := hwy.LessThan(av, hwy.Zero[float32]())
	if negative.AnyTrue() {
		e.invalid = true
	}
	if isNaN32(*cv).AnyTrue() {
		*cv = hwy.IfThenElse(isNaN32(*cv), e.consts.qnan32, *cv)
	}
}

func (e *Engine) sqrt64SpecialCases(av hwy.Vec[float64], cv *hwy.Vec[float64]) {
	if isSNaN64(av).AnyTrue() {
		e.invalid = true
	}
	negative := hwy.LessThan(av, hwy.Zero[float64]())
	if negative.AnyTrue() {
		e.invalid = true
	}
	if isNaN64(*cv).AnyTrue() {
		*cv = hwy.IfThenElse(isNaN64(*cv), e.consts.qnan64, *cv)
	}
}
