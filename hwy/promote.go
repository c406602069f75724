package hwy

// This file provides pure Go (scalar) implementations of floating-point
// widening and narrowing operations.
//
// PromoteTo operations widen types (float32 -> float64)
// DemoteTo operations narrow types (float64 -> float32)

// PromoteF32ToF64 widens float32 to float64.
// Each float32 lane is converted to float64.
func PromoteF32ToF64(v Vec[float32]) Vec[float64] {
	result := make([]float64, len(v.data))
	for i := 0; i < len(v.data); i++ {
		result[i] = float64(v.data[i])
	}
	return Vec[float64]{data: result}
}

// PromoteLowerF32ToF64 promotes only the lower half of float32 lanes to float64.
// Input: 8 float32 lanes -> Output: 4 float64 lanes (from lower 4 float32).
func PromoteLowerF32ToF64(v Vec[float32]) Vec[float64] {
	n := len(v.data) / 2
	result := make([]float64, n)
	for i := 0; i < n; i++ {
		result[i] = float64(v.data[i])
	}
	return Vec[float64]{data: result}
}

// PromoteUpperF32ToF64 promotes only the upper half of float32 lanes to float64.
// Input: 8 float32 lanes -> Output: 4 float64 lanes (from upper 4 float32).
func PromoteUpperF32ToF64(v Vec[float32]) Vec[float64] {
	half := len(v.data) / 2
	n := len(v.data) - half
	result := make([]float64, n)
	for i := 0; i < n; i++ {
		result[i] = float64(v.data[half+i])
	}
	return Vec[float64]{data: result}
}

// DemoteF64ToF32 narrows float64 to float32.
// Each float64 lane is converted to float32, potentially losing precision.
func DemoteF64ToF32(v Vec[float64]) Vec[float32] {
	result := make([]float32, len(v.data))
	for i := 0; i < len(v.data); i++ {
		result[i] = float32(v.data[i])
	}
	return Vec[float32]{data: result}
}

// DemoteTwoF64ToF32 demotes two float64 vectors to a single float32 vector.
// Input: 2 vectors of 4 float64 each -> Output: 1 vector of 8 float32.
func DemoteTwoF64ToF32(lo, hi Vec[float64]) Vec[float32] {
	n := len(lo.data) + len(hi.data)
	result := make([]float32, n)
	for i := 0; i < len(lo.data); i++ {
		result[i] = float32(lo.data[i])
	}
	for i := 0; i < len(hi.data); i++ {
		result[len(lo.data)+i] = float32(hi.data[i])
	}
	return Vec[float32]{data: result}
}
