package vfpu

import (
	"math"
	"testing"

	"github.com/ajroetker/vectorfpu/hwy"
)

func TestVSubF32MatchesScalarAcrossLengths(t *testing.T) {
	e := NewEngine()
	for _, n := range chunkLengths32() {
		a := make([]float32, n)
		b := make([]float32, n)
		for i := range a {
			a[i] = float32(i)*2 + 1
			b[i] = float32(i) + 0.5
		}
		dst := make([]float32, n)
		e.VSubF32(dst, a, b)
		for i := range dst {
			want := a[i] - b[i]
			if dst[i] != want {
				t.Errorf("VSubF32 len=%d: dst[%d] = %v, want %v", n, i, dst[i], want)
			}
		}
	}
}

func TestVSubF32InvalidOnInfMinusInf(t *testing.T) {
	e := NewEngine()
	n := hwy.MaxLanes[float32]()
	a := make([]float32, n)
	b := make([]float32, n)
	a[0] = float32(math.Inf(1))
	b[0] = float32(math.Inf(1))
	dst := make([]float32, n)
	e.VSubF32(dst, a, b)
	if !e.ReadFlags().Invalid {
		t.Error("VSubF32: expected invalid flag for inf - inf")
	}
}

func TestVSubF64MatchesScalarAcrossLengths(t *testing.T) {
	e := NewEngine()
	for _, n := range chunkLengths64() {
		a := make([]float64, n)
		b := make([]float64, n)
		for i := range a {
			a[i] = float64(i)*2 + 1
			b[i] = float64(i) + 0.5
		}
		dst := make([]float64, n)
		e.VSubF64(dst, a, b)
		for i := range dst {
			want := a[i] - b[i]
			if dst[i] != want {
				t.Errorf("VSubF64 len=%d: dst[%d] = %v, want %v", n, i, dst[i], want)
			}
		}
	}
}
