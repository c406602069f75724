package vfpu

import (
	"math"

	"github.com/ajroetker/vectorfpu/hwy"
)

// constants holds the per-engine vector constants the drivers splat from
// on every call: the canonical qNaN and the smallest positive normal
// (vmin), at both widths. These are rebuilt whenever ConfigurePlatform or
// a qNaN payload setter runs. They live on the Engine, not as package
// variables, so two Engines configured differently never share state.
type constants struct {
	qnan32 hwy.Vec[float32]
	qnan64 hwy.Vec[float64]
	vmin32 hwy.Vec[float32]
	vmin64 hwy.Vec[float64]
}

// rematerializeConstants rebuilds the splatted vector constants from the
// engine's current scalar qNaN payloads. vmin is fixed per width
// (smallest positive normal), independent of configuration.
func (e *Engine) rematerializeConstants() {
	// vmin is the smallest positive *normal*, not subnormal, per the
	// underflow-boundary check in the Mul driver.
	e.consts = constants{
		qnan32: hwy.Set(e.QNaN32()),
		qnan64: hwy.Set(e.QNaN64()),
		vmin32: hwy.Set(minNormal32),
		vmin64: hwy.Set(minNormal64),
	}
}

// bitsToF32 reinterprets a 32-bit pattern as a scalar float32. hwy only
// exposes vector bit-casts (BitCastU32ToF32); this scalar helper backs
// the engine's single canonical-qNaN value, not a vectorized hot path,
// so math.Float32frombits is used directly rather than routing a
// single-lane value through the vector bitcast machinery.
func bitsToF32(bits uint32) float32 { return math.Float32frombits(bits) }

// bitsToF64 is the float64 analogue of bitsToF32.
func bitsToF64(bits uint64) float64 { return math.Float64frombits(bits) }
