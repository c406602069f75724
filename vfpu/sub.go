package vfpu

import "github.com/ajroetker/vectorfpu/hwy"

// VSubF32 computes dst[i] = a[i] - b[i], updating sticky flags. Shares its
// invalid/overflow derivation with Add, treating b as negated first, but
// uses TwoSum rather than FastTwoSum for the residual since subtraction
// gives no magnitude-ordering guarantee between a and -b.
func (e *Engine) VSubF32(dst, a, b []float32) {
	requireSameLen32("VSubF32", dst, a, b)
	if e.roundingMode != RoundTiesToEven {
		for i := range dst {
			dst[i] = e.scalarSub32(a[i], b[i])
		}
		return
	}
	hwy.ProcessWithTail[float32](len(dst),
		func(offset int) {
			av := hwy.Load(a[offset:])
			bv := hwy.Load(b[offset:])
			negBv := hwy.Neg(bv)
			cv := hwy.Sub(av, bv)
			e.addSub32SpecialCases(av, negBv, &cv)
			if !e.inexact {
				r := twoSum32(av, negBv, cv)
				if isNonzero32(r).AnyTrue() {
					e.inexact = true
				}
			}
			hwy.Store(cv, dst[offset:])
		},
		func(offset, count int) {
			for i := 0; i < count; i++ {
				dst[offset+i] = e.scalarSub32(a[offset+i], b[offset+i])
			}
		},
	)
}

// VSubF64 is the binary64 analogue of VSubF32.
func (e *Engine) VSubF64(dst, a, b []float64) {
	requireSameLen64("VSubF64", dst, a, b)
	if e.roundingMode != RoundTiesToEven {
		for i := range dst {
			dst[i] = e.scalarSub64(a[i], b[i])
		}
		return
	}
	hwy.ProcessWithTail[float64](len(dst),
		func(offset int) {
			av := hwy.Load(a[offset:])
			bv := hwy.Load(b[offset:])
			negBv := hwy.Neg(bv)
			cv := hwy.Sub(av, bv)
			e.addSub64SpecialCases(av, negBv, &cv)
			if !e.inexact {
				r := twoSum64(av, negBv, cv)
				if isNonzero64(r).AnyTrue() {
					e.inexact = true
				}
			}
			hwy.Store(cv, dst[offset:])
		},
		func(offset, count int) {
			for i := 0; i < count; i++ {
				dst[offset+i] = e.scalarSub64(a[offset+i], b[offset+i])
			}
		},
	)
}
