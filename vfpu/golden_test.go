package vfpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// End-to-end scenarios on the default RISC-V / TiesToEven configuration,
// each pinning one operation's result lanes and final sticky-flag state.

func TestAddFiniteInexact(t *testing.T) {
	e := NewEngine()
	a := []float32{1.0, 1.0e20}
	b := []float32{1.0e-20, 1.0}
	dst := make([]float32, 2)
	e.VAddF32(dst, a, b)

	assert.InEpsilon(t, 1.0, float64(dst[0]), 1e-6)
	assert.InEpsilon(t, 1.0e20, float64(dst[1]), 1e-6)

	flags := e.ReadFlags()
	assert.True(t, flags.Inexact, "add: inexact should be set")
	assert.False(t, flags.Invalid, "add: invalid should be clear")
	assert.False(t, flags.Overflow, "add: overflow should be clear")
	assert.False(t, flags.Underflow, "add: underflow should be clear")
	assert.False(t, flags.DivByZero, "add: divByZero should be clear")
}

func TestAddInfPlusNegInf(t *testing.T) {
	e := NewEngine()
	a := []float32{float32(math.Inf(1))}
	b := []float32{float32(math.Inf(-1))}
	dst := make([]float32, 1)
	e.VAddF32(dst, a, b)

	assert.True(t, math.IsNaN(float64(dst[0])), "inf+(-inf): expected canonical qNaN")
	assert.Equal(t, math.Float32bits(e.QNaN32()), math.Float32bits(dst[0]), "inf+(-inf): result should be the engine's canonical qNaN bit pattern")
	assert.True(t, e.ReadFlags().Invalid, "inf+(-inf): invalid should be set")
}

func TestMulOverflowBinary32(t *testing.T) {
	e := NewEngine()
	a := []float32{3.4e38}
	b := []float32{2.0}
	dst := make([]float32, 1)
	e.VMulF32(dst, a, b)

	assert.True(t, math.IsInf(float64(dst[0]), 1), "mul overflow: expected +Inf")
	flags := e.ReadFlags()
	assert.True(t, flags.Overflow, "mul overflow: overflow should be set")
	assert.True(t, flags.Inexact, "mul overflow: inexact should be set")
}

func TestMulUnderflowBinary32(t *testing.T) {
	e := NewEngine()
	a := []float32{1.0e-30}
	b := []float32{1.0e-10}
	dst := make([]float32, 1)
	e.VMulF32(dst, a, b)

	assert.InEpsilon(t, 1.0e-40, float64(dst[0]), 1e-2)
	flags := e.ReadFlags()
	assert.True(t, flags.Underflow, "mul underflow: underflow should be set")
	assert.True(t, flags.Inexact, "mul underflow: inexact should be set")
}

func TestDivByZeroSetsOnlyDivFlag(t *testing.T) {
	e := NewEngine()
	a := []float32{1.0}
	b := []float32{0.0}
	dst := make([]float32, 1)
	e.VDivF32(dst, a, b)

	assert.True(t, math.IsInf(float64(dst[0]), 1), "div by zero: expected +Inf")
	flags := e.ReadFlags()
	assert.True(t, flags.DivByZero, "div by zero: divByZero should be set")
	assert.False(t, flags.Invalid, "div by zero: invalid should be clear")
}

func TestSqrtOfNegative(t *testing.T) {
	e := NewEngine()
	a := []float32{-4.0}
	dst := make([]float32, 1)
	e.VSqrtF32(dst, a)

	assert.True(t, math.IsNaN(float64(dst[0])), "sqrt(-4): expected canonical qNaN")
	assert.Equal(t, math.Float32bits(e.QNaN32()), math.Float32bits(dst[0]), "sqrt(-4): result should be the engine's canonical qNaN bit pattern")
	assert.True(t, e.ReadFlags().Invalid, "sqrt(-4): invalid should be set")
}

// TestFlagMonotonicityWithinCall checks that a flag set by an early
// chunk stays set through the rest of the call.
func TestFlagMonotonicityWithinCall(t *testing.T) {
	e := NewEngine()
	n := 8
	a := make([]float32, n)
	b := make([]float32, n)
	for i := range a {
		a[i] = float32(math.Inf(1))
		b[i] = float32(math.Inf(-1))
	}
	a[n-1] = 1.0
	b[n-1] = 2.0
	dst := make([]float32, n)
	e.VAddF32(dst, a, b)

	assert.True(t, e.ReadFlags().Invalid, "expected invalid to remain set after a mixed-lane call")
}

// Overflow always rounds away from the exact value, so it must set
// inexact as well.
func TestOverflowImpliesInexact(t *testing.T) {
	e := NewEngine()
	dst := make([]float32, 1)
	e.VMulF32(dst, []float32{math.MaxFloat32}, []float32{2.0})
	flags := e.ReadFlags()
	assert.True(t, flags.Overflow, "expected this case to actually overflow")
	assert.True(t, flags.Inexact, "overflow must imply inexact")
}

// A division by zero with quiet operands raises only divByZero, never
// invalid.
func TestDivByZeroDisjointFromInvalidUnlessSignaling(t *testing.T) {
	e := NewEngine()
	dst := make([]float32, 1)
	e.VDivF32(dst, []float32{1.0}, []float32{0.0})
	flags := e.ReadFlags()
	assert.True(t, flags.DivByZero)
	assert.False(t, flags.Invalid)
}
