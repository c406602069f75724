package vfpu

import (
	"testing"

	"github.com/ajroetker/vectorfpu/hwy"
)

// TestTwoSumExact checks the residual identity c + r == a + b (in exact
// arithmetic) for an addition whose rounded sum is itself exact, where
// the residual must come out zero.
func TestTwoSumExact(t *testing.T) {
	n := hwy.MaxLanes[float32]()
	a := make([]float32, n)
	b := make([]float32, n)
	for i := range a {
		a[i] = 1.0
		b[i] = 2.0
	}
	av := hwy.Load(a)
	bv := hwy.Load(b)
	cv := hwy.Add(av, bv)
	r := twoSum32(av, bv, cv)
	for i := 0; i < r.NumLanes(); i++ {
		if r.Data()[i] != 0 {
			t.Errorf("twoSum32: lane %d: exact sum has nonzero residual %v", i, r.Data()[i])
		}
	}
}

// TestTwoSumInexact checks that a sum requiring rounding produces a
// nonzero residual.
func TestTwoSumInexact(t *testing.T) {
	n := hwy.MaxLanes[float32]()
	a := make([]float32, n)
	b := make([]float32, n)
	for i := range a {
		a[i] = 1.0
		b[i] = 1.0e-8 // too small to change 1.0 when added at binary32 precision
	}
	av := hwy.Load(a)
	bv := hwy.Load(b)
	cv := hwy.Add(av, bv)
	r := twoSum32(av, bv, cv)
	if isNonzero32(r).AnyTrue() == false {
		t.Error("twoSum32: expected a nonzero residual for an inexact sum")
	}
}

func TestFastTwoSumMagnitudeOrderingIndependent(t *testing.T) {
	// FastTwoSum must be correct regardless of which operand (a or b) has
	// the larger magnitude in a given lane, since the masked swap reorders
	// per-lane rather than per-vector.
	av := hwy.Load(lanesOf32([]float32{100.0, 0.5}))
	bv := hwy.Load(lanesOf32([]float32{0.5, 100.0}))
	cv := hwy.Add(av, bv)
	r := fastTwoSum32(av, bv, cv)
	for i := 0; i < r.NumLanes() && i < 2; i++ {
		got := float64(cv.Data()[i]) + float64(r.Data()[i])
		want := float64(av.Data()[i]) + float64(bv.Data()[i])
		if got != want {
			t.Errorf("fastTwoSum32: lane %d: c+r = %v, want %v", i, got, want)
		}
	}
}

func TestUpMul32ResidualIsExact(t *testing.T) {
	av := hwy.Load(lanesOf32([]float32{1.0000001, 3.0}))
	bv := hwy.Load(lanesOf32([]float32{1.0000001, 7.0}))
	cv := hwy.Mul(av, bv)
	r := upMul32(av, bv, cv)
	for i := 0; i < r.NumLanes() && i < 2; i++ {
		exact := float64(av.Data()[i]) * float64(bv.Data()[i])
		got := float64(cv.Data()[i]) + r.Data()[i]
		if got != exact {
			t.Errorf("upMul32: lane %d: c+r = %v, want exact product %v", i, got, exact)
		}
	}
}
