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

import "math"

// This file provides bit-reinterpretation ("bit cast") operations between
// floating-point vectors and their same-width integer representation. A bit
// cast never changes the underlying bit pattern, only how it is interpreted,
// which makes it the building block for lane-wise inspection of a float's
// sign, exponent and mantissa fields (e.g. signaling-NaN detection).

// AsInt32 reinterprets a float32 vector as int32 (bit cast).
func AsInt32(v Vec[float32]) Vec[int32] {
	result := make([]int32, len(v.data))
	for i, x := range v.data {
		result[i] = int32(math.Float32bits(x))
	}
	return Vec[int32]{data: result}
}

// AsFloat32 reinterprets an int32 vector as float32 (bit cast).
func AsFloat32(v Vec[int32]) Vec[float32] {
	result := make([]float32, len(v.data))
	for i, x := range v.data {
		result[i] = math.Float32frombits(uint32(x))
	}
	return Vec[float32]{data: result}
}

// AsInt64 reinterprets a float64 vector as int64 (bit cast).
func AsInt64(v Vec[float64]) Vec[int64] {
	result := make([]int64, len(v.data))
	for i, x := range v.data {
		result[i] = int64(math.Float64bits(x))
	}
	return Vec[int64]{data: result}
}

// AsFloat64 reinterprets an int64 vector as float64 (bit cast).
func AsFloat64(v Vec[int64]) Vec[float64] {
	result := make([]float64, len(v.data))
	for i, x := range v.data {
		result[i] = math.Float64frombits(uint64(x))
	}
	return Vec[float64]{data: result}
}

// BitCastF32ToI32 reinterprets float32 bits as int32 without conversion.
func BitCastF32ToI32(v Vec[float32]) Vec[int32] { return AsInt32(v) }

// BitCastI32ToF32 reinterprets int32 bits as float32 without conversion.
func BitCastI32ToF32(v Vec[int32]) Vec[float32] { return AsFloat32(v) }

// BitCastF64ToI64 reinterprets float64 bits as int64 without conversion.
func BitCastF64ToI64(v Vec[float64]) Vec[int64] { return AsInt64(v) }

// BitCastI64ToF64 reinterprets int64 bits as float64 without conversion.
func BitCastI64ToF64(v Vec[int64]) Vec[float64] { return AsFloat64(v) }

// BitCastU32ToF32 reinterprets uint32 bits as float32 without conversion.
func BitCastU32ToF32(v Vec[uint32]) Vec[float32] {
	result := make([]float32, len(v.data))
	for i, x := range v.data {
		result[i] = math.Float32frombits(x)
	}
	return Vec[float32]{data: result}
}

// BitCastF32ToU32 reinterprets float32 bits as uint32 without conversion.
func BitCastF32ToU32(v Vec[float32]) Vec[uint32] {
	result := make([]uint32, len(v.data))
	for i, x := range v.data {
		result[i] = math.Float32bits(x)
	}
	return Vec[uint32]{data: result}
}

// BitCastU64ToF64 reinterprets uint64 bits as float64 without conversion.
func BitCastU64ToF64(v Vec[uint64]) Vec[float64] {
	result := make([]float64, len(v.data))
	for i, x := range v.data {
		result[i] = math.Float64frombits(x)
	}
	return Vec[float64]{data: result}
}

// BitCastF64ToU64 reinterprets float64 bits as uint64 without conversion.
func BitCastF64ToU64(v Vec[float64]) Vec[uint64] {
	result := make([]uint64, len(v.data))
	for i, x := range v.data {
		result[i] = math.Float64bits(x)
	}
	return Vec[uint64]{data: result}
}
