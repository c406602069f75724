// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hwy

import (
	"math"
	"testing"
)

func TestBitCastF32ToI32(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  int32
	}{
		{"positive one", 1.0, 0x3f800000},
		{"negative one", -1.0, -0x40800000}, // 0xbf800000 as signed
		{"zero", 0.0, 0},
		{"negative zero", float32(math.Copysign(0, -1)), -0x80000000}, // 0x80000000 as signed (min int32)
		{"two", 2.0, 0x40000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Set[float32](tt.input)
			result := BitCastF32ToI32(v)

			if result.data[0] != tt.want {
				t.Errorf("BitCastF32ToI32(%f): got 0x%08X, want 0x%08X", tt.input, uint32(result.data[0]), uint32(tt.want))
			}
		})
	}
}

func TestBitCastI32ToF32(t *testing.T) {
	tests := []struct {
		name  string
		input int32
		want  float32
	}{
		{"positive one", 0x3f800000, 1.0},
		{"negative one", -0x40800000, -1.0}, // 0xbf800000 as signed
		{"zero", 0, 0.0},
		{"two", 0x40000000, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Set[int32](tt.input)
			result := BitCastI32ToF32(v)

			if result.data[0] != tt.want {
				t.Errorf("BitCastI32ToF32(0x%08X): got %f, want %f", uint32(tt.input), result.data[0], tt.want)
			}
		})
	}
}

func TestBitCastRoundTrip_F32I32(t *testing.T) {
	values := []float32{0.0, 1.0, -1.0, 3.14159, -2.71828, 1e10, -1e-10}

	for _, val := range values {
		v := Set[float32](val)
		asInt := BitCastF32ToI32(v)
		backToFloat := BitCastI32ToF32(asInt)

		if backToFloat.data[0] != val {
			t.Errorf("BitCast round trip failed for %f: got %f", val, backToFloat.data[0])
		}
	}
}

func TestBitCastF64ToI64(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  int64
	}{
		{"positive one", 1.0, 0x3ff0000000000000},
		{"negative one", -1.0, -0x4010000000000000}, // 0xbff0000000000000 as signed
		{"zero", 0.0, 0},
		{"two", 2.0, 0x4000000000000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Set[float64](tt.input)
			result := BitCastF64ToI64(v)

			if result.data[0] != tt.want {
				t.Errorf("BitCastF64ToI64(%f): got 0x%016X, want 0x%016X", tt.input, uint64(result.data[0]), uint64(tt.want))
			}
		})
	}
}

func TestBitCastI64ToF64(t *testing.T) {
	tests := []struct {
		name  string
		input int64
		want  float64
	}{
		{"positive one", 0x3ff0000000000000, 1.0},
		{"negative one", -0x4010000000000000, -1.0}, // 0xbff0000000000000 as signed
		{"zero", 0, 0.0},
		{"two", 0x4000000000000000, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Set[int64](tt.input)
			result := BitCastI64ToF64(v)

			if result.data[0] != tt.want {
				t.Errorf("BitCastI64ToF64(0x%016X): got %f, want %f", uint64(tt.input), result.data[0], tt.want)
			}
		})
	}
}

func TestBitCastRoundTrip_F64I64(t *testing.T) {
	values := []float64{0.0, 1.0, -1.0, 3.14159265358979, -2.71828182845904, 1e100, -1e-100}

	for _, val := range values {
		v := Set[float64](val)
		asInt := BitCastF64ToI64(v)
		backToFloat := BitCastI64ToF64(asInt)

		if backToFloat.data[0] != val {
			t.Errorf("BitCast round trip failed for %f: got %f", val, backToFloat.data[0])
		}
	}
}

func TestBitCastU32F32(t *testing.T) {
	t.Run("U32 to F32", func(t *testing.T) {
		v := Set[uint32](0x3f800000)
		result := BitCastU32ToF32(v)
		if result.data[0] != 1.0 {
			t.Errorf("BitCastU32ToF32(0x3f800000): got %f, want 1.0", result.data[0])
		}
	})

	t.Run("F32 to U32", func(t *testing.T) {
		v := Set[float32](1.0)
		result := BitCastF32ToU32(v)
		if result.data[0] != 0x3f800000 {
			t.Errorf("BitCastF32ToU32(1.0): got 0x%08X, want 0x3f800000", result.data[0])
		}
	})
}

func TestBitCastU64F64(t *testing.T) {
	t.Run("U64 to F64", func(t *testing.T) {
		v := Set[uint64](0x3ff0000000000000)
		result := BitCastU64ToF64(v)
		if result.data[0] != 1.0 {
			t.Errorf("BitCastU64ToF64(0x3ff0000000000000): got %f, want 1.0", result.data[0])
		}
	})

	t.Run("F64 to U64", func(t *testing.T) {
		v := Set[float64](1.0)
		result := BitCastF64ToU64(v)
		if result.data[0] != 0x3ff0000000000000 {
			t.Errorf("BitCastF64ToU64(1.0): got 0x%016X, want 0x3ff0000000000000", result.data[0])
		}
	})
}

func TestBitCastPreservesBits_NaN(t *testing.T) {
	// Test that NaN bits are preserved through bitcast
	nanBits := uint32(0x7fc00000) // Quiet NaN
	v := Set[uint32](nanBits)
	asFloat := BitCastU32ToF32(v)
	backToU32 := BitCastF32ToU32(asFloat)

	if backToU32.data[0] != nanBits {
		t.Errorf("BitCast round trip failed for NaN bits: got 0x%08X, want 0x%08X", backToU32.data[0], nanBits)
	}
}

func TestBitCastPreservesBits_NegativeZero(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	v := Set[float32](negZero)
	asInt := BitCastF32ToI32(v)

	// Negative zero should have sign bit set (0x80000000 = min int32)
	if asInt.data[0] != -0x80000000 {
		t.Errorf("BitCast of -0.0: got 0x%08X, want 0x80000000", uint32(asInt.data[0]))
	}
}

func BenchmarkBitCastF32ToI32(b *testing.B) {
	v := Set[float32](3.14159)

	for b.Loop() {
		_ = BitCastF32ToI32(v)
	}
}

func BenchmarkBitCastI32ToF32(b *testing.B) {
	v := Set[int32](0x40490fdb) // pi bits

	for b.Loop() {
		_ = BitCastI32ToF32(v)
	}
}
