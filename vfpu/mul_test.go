package vfpu

import (
	"math"
	"testing"

	"github.com/ajroetker/vectorfpu/hwy"
)

func TestVMulF32MatchesScalarAcrossLengths(t *testing.T) {
	e := NewEngine()
	for _, n := range chunkLengths32() {
		a := make([]float32, n)
		b := make([]float32, n)
		for i := range a {
			a[i] = float32(i) + 0.5
			b[i] = float32(i)*0.5 + 1
		}
		dst := make([]float32, n)
		e.VMulF32(dst, a, b)
		for i := range dst {
			want := a[i] * b[i]
			if dst[i] != want {
				t.Errorf("VMulF32 len=%d: dst[%d] = %v, want %v", n, i, dst[i], want)
			}
		}
	}
}

func TestVMulF32InvalidOnZeroTimesInf(t *testing.T) {
	e := NewEngine()
	n := hwy.MaxLanes[float32]()
	a := make([]float32, n)
	b := make([]float32, n)
	a[0] = 0.0
	b[0] = float32(math.Inf(1))
	dst := make([]float32, n)
	e.VMulF32(dst, a, b)
	if !e.ReadFlags().Invalid {
		t.Error("VMulF32: expected invalid flag for 0 * inf")
	}
	if !math.IsNaN(float64(dst[0])) {
		t.Errorf("VMulF32: 0*inf = %v, want NaN", dst[0])
	}
}

func TestVMulF32OverflowToInf(t *testing.T) {
	e := NewEngine()
	n := hwy.MaxLanes[float32]()
	a := make([]float32, n)
	b := make([]float32, n)
	a[0] = math.MaxFloat32
	b[0] = 2.0
	dst := make([]float32, n)
	e.VMulF32(dst, a, b)
	flags := e.ReadFlags()
	if !flags.Overflow || !flags.Inexact {
		t.Errorf("VMulF32: expected overflow+inexact, got %+v", flags)
	}
}

func TestVMulF32UnderflowToZero(t *testing.T) {
	e := NewEngine()
	n := hwy.MaxLanes[float32]()
	a := make([]float32, n)
	b := make([]float32, n)
	a[0] = math.SmallestNonzeroFloat32 * 2
	b[0] = 0.25
	dst := make([]float32, n)
	e.VMulF32(dst, a, b)
	if !e.ReadFlags().Underflow {
		t.Error("VMulF32: expected underflow flag for a tiny product that rounds to zero")
	}
}

func TestVMulF64MatchesScalarAcrossLengths(t *testing.T) {
	e := NewEngine()
	for _, n := range chunkLengths64() {
		a := make([]float64, n)
		b := make([]float64, n)
		for i := range a {
			a[i] = float64(i) + 0.5
			b[i] = float64(i)*0.5 + 1
		}
		dst := make([]float64, n)
		e.VMulF64(dst, a, b)
		for i := range dst {
			want := a[i] * b[i]
			if dst[i] != want {
				t.Errorf("VMulF64 len=%d: dst[%d] = %v, want %v", n, i, dst[i], want)
			}
		}
	}
}
