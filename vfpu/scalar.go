package vfpu

import (
	"fmt"
	"math"
	"math/big"
)

// This file implements the scalar reference engine: the correctly-rounded,
// per-element arithmetic every vector driver falls back to whenever the
// rounding mode is not round-ties-to-even, whenever a chunk's vector path
// cannot cheaply prove a flag, and for the tail of any array whose length
// is not a multiple of the native vector width.
//
// Go's native float32/float64 +, -, *, / and math.Sqrt are already
// correctly rounded to nearest-even per the Go spec and IEEE 754, so the
// round-ties-to-even case (the only mode the vector path ever exercises
// directly) needs no extra machinery. The other four rounding-direction
// attributes route through math/big.Float, whose Prec/Mode pair applies
// exactly the rounding this reference needs to a single arithmetic step.

// scalarAdd32 computes a+b under the engine's rounding mode and updates
// flags. It is also used, pinned to RoundTiesToEven, as the per-lane
// fallback for the tail of VAddF32.
func (e *Engine) scalarAdd32(a, b float32) float32 {
	c := e.roundedBinOp32(a, b, func(z, x, y *big.Float) *big.Float { return z.Add(x, y) }, func(x, y float32) float32 { return x + y })
	e.flagAddSub32(a, b, c)
	if math.IsNaN(float64(c)) {
		c = e.QNaN32()
	}
	return c
}

func (e *Engine) scalarAdd64(a, b float64) float64 {
	c := e.roundedBinOp64(a, b, func(z, x, y *big.Float) *big.Float { return z.Add(x, y) }, func(x, y float64) float64 { return x + y })
	e.flagAddSub64(a, b, c)
	if math.IsNaN(c) {
		c = e.QNaN64()
	}
	return c
}

func (e *Engine) scalarSub32(a, b float32) float32 {
	c := e.roundedBinOp32(a, b, func(z, x, y *big.Float) *big.Float { return z.Sub(x, y) }, func(x, y float32) float32 { return x - y })
	e.flagAddSub32(a, -b, c)
	if math.IsNaN(float64(c)) {
		c = e.QNaN32()
	}
	return c
}

func (e *Engine) scalarSub64(a, b float64) float64 {
	c := e.roundedBinOp64(a, b, func(z, x, y *big.Float) *big.Float { return z.Sub(x, y) }, func(x, y float64) float64 { return x - y })
	e.flagAddSub64(a, -b, c)
	if math.IsNaN(c) {
		c = e.QNaN64()
	}
	return c
}

func (e *Engine) scalarMul32(a, b float32) float32 {
	c := e.roundedBinOp32(a, b, func(z, x, y *big.Float) *big.Float { return z.Mul(x, y) }, func(x, y float32) float32 { return x * y })
	e.flagMul32(a, b, c)
	if math.IsNaN(float64(c)) {
		c = e.QNaN32()
	}
	return c
}

func (e *Engine) scalarMul64(a, b float64) float64 {
	c := e.roundedBinOp64(a, b, func(z, x, y *big.Float) *big.Float { return z.Mul(x, y) }, func(x, y float64) float64 { return x * y })
	e.flagMul64(a, b, c)
	if math.IsNaN(c) {
		c = e.QNaN64()
	}
	return c
}

func (e *Engine) scalarDiv32(a, b float32) float32 {
	c := e.roundedBinOp32(a, b, func(z, x, y *big.Float) *big.Float { return z.Quo(x, y) }, func(x, y float32) float32 { return x / y })
	e.flagDiv32(a, b, c)
	if math.IsNaN(float64(c)) {
		c = e.QNaN32()
	}
	return c
}

func (e *Engine) scalarDiv64(a, b float64) float64 {
	c := e.roundedBinOp64(a, b, func(z, x, y *big.Float) *big.Float { return z.Quo(x, y) }, func(x, y float64) float64 { return x / y })
	e.flagDiv64(a, b, c)
	if math.IsNaN(c) {
		c = e.QNaN64()
	}
	return c
}

func (e *Engine) scalarSqrt32(a float32) float32 {
	var c float32
	if a < 0 {
		c = e.QNaN32()
	} else if e.roundingMode == RoundTiesToEven {
		c = float32(math.Sqrt(float64(a)))
	} else {
		bf := new(big.Float).SetPrec(24).SetMode(bigRoundingMode(e.roundingMode))
		bf.Sqrt(big.NewFloat(float64(a)))
		c32, _ := bf.Float32()
		c = c32
	}
	e.flagSqrt32(a, c)
	if math.IsNaN(float64(c)) {
		c = e.QNaN32()
	}
	return c
}

func (e *Engine) scalarSqrt64(a float64) float64 {
	var c float64
	if a < 0 {
		c = e.QNaN64()
	} else if e.roundingMode == RoundTiesToEven {
		c = math.Sqrt(a)
	} else {
		bf := new(big.Float).SetPrec(53).SetMode(bigRoundingMode(e.roundingMode))
		bf.Sqrt(big.NewFloat(a))
		c64, _ := bf.Float64()
		c = c64
	}
	e.flagSqrt64(a, c)
	if math.IsNaN(c) {
		c = e.QNaN64()
	}
	return c
}

func (e *Engine) scalarFma32(a, b, c float32) float32 {
	var d float32
	if e.roundingMode == RoundTiesToEven {
		d = float32(math.FMA(float64(a), float64(b), float64(c)))
	} else {
		prod := new(big.Float).SetPrec(200).Mul(big.NewFloat(float64(a)), big.NewFloat(float64(b)))
		sum := new(big.Float).SetPrec(24).SetMode(bigRoundingMode(e.roundingMode)).Add(prod, big.NewFloat(float64(c)))
		d32, _ := sum.Float32()
		d = d32
	}
	e.flagFma32(a, b, c, d)
	if math.IsNaN(float64(d)) {
		d = e.QNaN32()
	}
	return d
}

func (e *Engine) scalarFma64(a, b, c float64) float64 {
	var d float64
	if e.roundingMode == RoundTiesToEven {
		d = math.FMA(a, b, c)
	} else {
		prod := new(big.Float).SetPrec(400).Mul(big.NewFloat(a), big.NewFloat(b))
		sum := new(big.Float).SetPrec(53).SetMode(bigRoundingMode(e.roundingMode)).Add(prod, big.NewFloat(c))
		d64, _ := sum.Float64()
		d = d64
	}
	e.flagFma64(a, b, c, d)
	if math.IsNaN(d) {
		d = e.QNaN64()
	}
	return d
}

// roundedBinOp32 evaluates a binary op at the engine's active rounding
// mode. RoundTiesToEven takes the fast native-Go path (already
// correctly rounded to nearest-even by the language spec); the other
// four IEEE rounding-direction attributes go through big.Float, whose
// result precision and rounding mode are set before the single
// operation so the op is rounded exactly once, matching hardware.
func (e *Engine) roundedBinOp32(a, b float32, bigOp func(z, x, y *big.Float) *big.Float, nativeOp func(a, b float32) float32) float32 {
	if e.roundingMode == RoundTiesToEven {
		return nativeOp(a, b)
	}
	z := new(big.Float).SetPrec(24).SetMode(bigRoundingMode(e.roundingMode))
	bigOp(z, big.NewFloat(float64(a)), big.NewFloat(float64(b)))
	r, _ := z.Float32()
	return r
}

func (e *Engine) roundedBinOp64(a, b float64, bigOp func(z, x, y *big.Float) *big.Float, nativeOp func(a, b float64) float64) float64 {
	if e.roundingMode == RoundTiesToEven {
		return nativeOp(a, b)
	}
	z := new(big.Float).SetPrec(53).SetMode(bigRoundingMode(e.roundingMode))
	bigOp(z, big.NewFloat(a), big.NewFloat(b))
	r, _ := z.Float64()
	return r
}

// bigRoundingMode maps an IEEE rounding-direction attribute onto the
// big.Float rounding mode that implements it.
func bigRoundingMode(m RoundingMode) big.RoundingMode {
	switch m {
	case RoundTiesToEven:
		return big.ToNearestEven
	case RoundTowardZero:
		return big.ToZero
	case RoundTowardNegative:
		return big.ToNegativeInf
	case RoundTowardPositive:
		return big.ToPositiveInf
	case RoundTiesToAway:
		return big.ToNearestAway
	default:
		panic(fmt.Sprintf("vfpu: unknown rounding mode %d", int(m)))
	}
}

// flagAddSub32 updates sticky flags for a finished add/sub (b already
// negated by the caller for sub) given operands and rounded result.
func (e *Engine) flagAddSub32(a, b, c float32) {
	if isSNaN32scalar(a) || isSNaN32scalar(b) {
		e.invalid = true
	}
	if math.IsNaN(float64(c)) && math.IsInf(float64(a), 0) && math.IsInf(float64(b), 0) {
		e.invalid = true
	}
	if math.IsInf(float64(c), 0) && !math.IsInf(float64(a), 0) && !math.IsInf(float64(b), 0) {
		e.overflow = true
		e.inexact = true
	}
	if !e.inexact && !math.IsNaN(float64(c)) && !math.IsInf(float64(c), 0) {
		// The sum of two binary32 values spans at most ~300 significant
		// bits, so 320 is exact; the op was inexact iff the exact sum
		// differs from the rounded result, which also covers rounding
		// into the subnormal range.
		exact := new(big.Float).SetPrec(320).Add(big.NewFloat(float64(a)), big.NewFloat(float64(b)))
		if exact.Cmp(big.NewFloat(float64(c))) != 0 {
			e.inexact = true
		}
	}
}

func (e *Engine) flagAddSub64(a, b, c float64) {
	if isSNaN64scalar(a) || isSNaN64scalar(b) {
		e.invalid = true
	}
	if math.IsNaN(c) && math.IsInf(a, 0) && math.IsInf(b, 0) {
		e.invalid = true
	}
	if math.IsInf(c, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) {
		e.overflow = true
		e.inexact = true
	}
	if !e.inexact && !math.IsNaN(c) && !math.IsInf(c, 0) {
		// A binary64 sum spans at most ~2155 significant bits
		// (exponent range 2^-1074..2^1024 plus the significand).
		exact := new(big.Float).SetPrec(2200).Add(big.NewFloat(a), big.NewFloat(b))
		if exact.Cmp(big.NewFloat(c)) != 0 {
			e.inexact = true
		}
	}
}

func (e *Engine) flagMul32(a, b, c float32) {
	if isSNaN32scalar(a) || isSNaN32scalar(b) {
		e.invalid = true
	}
	if (isZero32scalar(a) && math.IsInf(float64(b), 0)) || (math.IsInf(float64(a), 0) && isZero32scalar(b)) {
		e.invalid = true
	}
	if math.IsInf(float64(c), 0) && !math.IsInf(float64(a), 0) && !math.IsInf(float64(b), 0) {
		e.overflow = true
		e.inexact = true
	}
	if !math.IsNaN(float64(c)) && !math.IsInf(float64(c), 0) {
		// The product of two binary32 significands fits exactly in
		// binary64, so comparing against the rounded result detects
		// inexactness, subnormal rounding included.
		opInexact := float64(a)*float64(b) != float64(c)
		if opInexact && !e.inexact {
			e.inexact = true
		}
		if opInexact && !e.underflow && math.Abs(float64(c)) < float64(minNormal32) {
			e.underflow = true
		}
	}
}

func (e *Engine) flagMul64(a, b, c float64) {
	if isSNaN64scalar(a) || isSNaN64scalar(b) {
		e.invalid = true
	}
	if (isZero64scalar(a) && math.IsInf(b, 0)) || (math.IsInf(a, 0) && isZero64scalar(b)) {
		e.invalid = true
	}
	if math.IsInf(c, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) {
		e.overflow = true
		e.inexact = true
	}
	if !math.IsNaN(c) && !math.IsInf(c, 0) {
		// A binary64 product is exact at 106 bits of precision.
		exact := new(big.Float).SetPrec(106).Mul(big.NewFloat(a), big.NewFloat(b))
		opInexact := exact.Cmp(big.NewFloat(c)) != 0
		if opInexact && !e.inexact {
			e.inexact = true
		}
		if opInexact && !e.underflow && math.Abs(c) < minNormal64 {
			e.underflow = true
		}
	}
}

func (e *Engine) flagDiv32(a, b, c float32) {
	if isSNaN32scalar(a) || isSNaN32scalar(b) {
		e.invalid = true
	}
	if (isZero32scalar(a) && isZero32scalar(b)) || (math.IsInf(float64(a), 0) && math.IsInf(float64(b), 0)) {
		e.invalid = true
	}
	if math.IsInf(float64(c), 0) && isZero32scalar(b) && !math.IsInf(float64(a), 0) {
		e.divByZero = true
	}
	if math.IsInf(float64(c), 0) && !math.IsInf(float64(a), 0) && !math.IsInf(float64(b), 0) && !isZero32scalar(b) {
		e.overflow = true
		e.inexact = true
	}
	if !math.IsNaN(float64(c)) && !math.IsInf(float64(c), 0) && !math.IsInf(float64(b), 0) {
		// finite/inf = 0 is exact and excluded above. Otherwise the
		// division was exact iff c*b == a, with c*b computed exactly in
		// binary64 (two 24-bit significands).
		opInexact := float64(c)*float64(b) != float64(a)
		if opInexact && !e.inexact {
			e.inexact = true
		}
		if opInexact && !e.underflow && math.Abs(float64(c)) < float64(minNormal32) {
			e.underflow = true
		}
	}
}

func (e *Engine) flagDiv64(a, b, c float64) {
	if isSNaN64scalar(a) || isSNaN64scalar(b) {
		e.invalid = true
	}
	if (isZero64scalar(a) && isZero64scalar(b)) || (math.IsInf(a, 0) && math.IsInf(b, 0)) {
		e.invalid = true
	}
	if math.IsInf(c, 0) && isZero64scalar(b) && !math.IsInf(a, 0) {
		e.divByZero = true
	}
	if math.IsInf(c, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) && !isZero64scalar(b) {
		e.overflow = true
		e.inexact = true
	}
	if !math.IsNaN(c) && !math.IsInf(c, 0) && !math.IsInf(b, 0) {
		// finite/inf = 0 is exact and excluded above. Otherwise the
		// division was exact iff c*b == a; the product needs 106 bits to
		// be exact, beyond what a fused multiply-add can certify once
		// the residual falls into the subnormal range.
		exact := new(big.Float).SetPrec(106).Mul(big.NewFloat(c), big.NewFloat(b))
		opInexact := exact.Cmp(big.NewFloat(a)) != 0
		if opInexact && !e.inexact {
			e.inexact = true
		}
		if opInexact && !e.underflow && math.Abs(c) < minNormal64 {
			e.underflow = true
		}
	}
}

func (e *Engine) flagSqrt32(a, c float32) {
	if isSNaN32scalar(a) {
		e.invalid = true
	}
	if a < 0 {
		e.invalid = true
	}
	if !math.IsNaN(float64(c)) && !math.IsInf(float64(c), 0) {
		// The root was exact iff c*c == a; the square of a binary32 is
		// exact in binary64.
		if float64(c)*float64(c) != float64(a) {
			e.inexact = true
		}
	}
}

func (e *Engine) flagSqrt64(a, c float64) {
	if isSNaN64scalar(a) {
		e.invalid = true
	}
	if a < 0 {
		e.invalid = true
	}
	if !math.IsNaN(c) && !math.IsInf(c, 0) {
		// The root was exact iff c*c == a, with the square computed
		// exactly at 106 bits.
		square := new(big.Float).SetPrec(106).Mul(big.NewFloat(c), big.NewFloat(c))
		if square.Cmp(big.NewFloat(a)) != 0 {
			e.inexact = true
		}
	}
}

// flagFma32 derives Fma's flags. Invalid fires on an sNaN operand, or
// when the result is NaN without any operand itself being NaN (the
// inf*0+finite and similar IEEE-invalid FMA forms); the inf*0+qNaN case
// is additionally gated by the engine's invalidFMA policy.
func (e *Engine) flagFma32(a, b, c, d float32) {
	if isSNaN32scalar(a) || isSNaN32scalar(b) || isSNaN32scalar(c) {
		e.invalid = true
	}
	anyNaN := math.IsNaN(float64(a)) || math.IsNaN(float64(b)) || math.IsNaN(float64(c))
	if math.IsNaN(float64(d)) && !anyNaN {
		e.invalid = true
	}
	infTimesZero := (math.IsInf(float64(a), 0) && isZero32scalar(b)) || (isZero32scalar(a) && math.IsInf(float64(b), 0))
	if infTimesZero && math.IsNaN(float64(c)) && e.invalidFMA {
		e.invalid = true
	}
	if math.IsInf(float64(d), 0) && !math.IsInf(float64(a), 0) && !math.IsInf(float64(b), 0) && !math.IsInf(float64(c), 0) {
		e.overflow = true
		e.inexact = true
	}
	if !math.IsNaN(float64(d)) && !math.IsInf(float64(d), 0) {
		// a*b is exact in binary64; adding c spans at most ~500 bits
		// across the binary32 product and addend exponent ranges.
		prod := new(big.Float).SetPrec(106).Mul(big.NewFloat(float64(a)), big.NewFloat(float64(b)))
		exact := new(big.Float).SetPrec(500).Add(prod, big.NewFloat(float64(c)))
		opInexact := exact.Cmp(big.NewFloat(float64(d))) != 0
		if opInexact && !e.inexact {
			e.inexact = true
		}
		if opInexact && !e.underflow && math.Abs(float64(d)) < float64(minNormal32) {
			e.underflow = true
		}
	}
}

func (e *Engine) flagFma64(a, b, c, d float64) {
	if isSNaN64scalar(a) || isSNaN64scalar(b) || isSNaN64scalar(c) {
		e.invalid = true
	}
	anyNaN := math.IsNaN(a) || math.IsNaN(b) || math.IsNaN(c)
	if math.IsNaN(d) && !anyNaN {
		e.invalid = true
	}
	infTimesZero := (math.IsInf(a, 0) && isZero64scalar(b)) || (isZero64scalar(a) && math.IsInf(b, 0))
	if infTimesZero && math.IsNaN(c) && e.invalidFMA {
		e.invalid = true
	}
	if math.IsInf(d, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) && !math.IsInf(c, 0) {
		e.overflow = true
		e.inexact = true
	}
	if !math.IsNaN(d) && !math.IsInf(d, 0) {
		// The binary64 product is exact at 106 bits; its sum with c can
		// span the product's 2^-2148..2^2048 range against the addend's
		// 2^-1074..2^1024, so 4400 bits keeps the sum exact.
		prod := new(big.Float).SetPrec(106).Mul(big.NewFloat(a), big.NewFloat(b))
		exact := new(big.Float).SetPrec(4400).Add(prod, big.NewFloat(c))
		opInexact := exact.Cmp(big.NewFloat(d)) != 0
		if opInexact && !e.inexact {
			e.inexact = true
		}
		if opInexact && !e.underflow && math.Abs(d) < minNormal64 {
			e.underflow = true
		}
	}
}

// isSNaN32scalar/isSNaN64scalar are the non-vectorized bit-pattern
// signaling-NaN test, used by the scalar reference path. vfpu/predicates.go
// carries the vectorized equivalent (isSNaN32/isSNaN64) for the SIMD drivers.
func isSNaN32scalar(a float32) bool {
	bits := math.Float32bits(a)
	return bits&exp32Mask == exp32Mask && bits&mantissa32Mask != 0 && bits&topBit32 == 0
}

func isSNaN64scalar(a float64) bool {
	bits := math.Float64bits(a)
	return bits&exp64Mask == exp64Mask && bits&mantissa64Mask != 0 && bits&topBit64 == 0
}

func isZero32scalar(a float32) bool { return a == 0 }
func isZero64scalar(a float64) bool { return a == 0 }

// minNormal32/minNormal64 are the smallest positive normal magnitudes
// for each width: the boundary below which a result is subnormal.
const (
	minNormal32 = float32(0x1p-126)
	minNormal64 = float64(0x1p-1022)
)
