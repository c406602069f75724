package vfpu

import "fmt"

// Engine holds one emulated FPU's sticky flags, rounding configuration,
// and the per-instance vector constants derived from it. A zero Engine
// is not usable; construct one with NewEngine.
//
// Engine is not safe for concurrent use: flag writes are not
// synchronized, matching the single-threaded-per-engine model of the
// hardware it emulates.
type Engine struct {
	roundingMode           RoundingMode
	nanPropScheme          NaNPropagationScheme
	tininessBeforeRounding bool
	invalidFMA             bool

	invalid   bool
	divByZero bool
	overflow  bool
	underflow bool
	inexact   bool

	qnanPayload32 uint32
	qnanPayload64 uint64

	consts constants
}

// NewEngine returns an Engine configured for RISC-V with
// round-ties-to-even, a usable default rather than a zero value that
// requires further setup before any operation can run.
func NewEngine() *Engine {
	e := &Engine{invalidFMA: true}
	e.ConfigurePlatform(PlatformRISCV)
	return e
}

// ClearFlags resets all five sticky exception flags to false. It does
// not touch rounding mode, platform configuration, or qNaN payloads.
func (e *Engine) ClearFlags() {
	e.invalid = false
	e.divByZero = false
	e.overflow = false
	e.underflow = false
	e.inexact = false
}

// ReadFlags returns a snapshot of the engine's current sticky flags and
// active configuration.
func (e *Engine) ReadFlags() FlagRegister {
	return FlagRegister{
		Invalid:       e.invalid,
		DivByZero:     e.divByZero,
		Overflow:      e.overflow,
		Underflow:     e.underflow,
		Inexact:       e.inexact,
		RoundingMode:  e.roundingMode,
		NaNPropScheme: e.nanPropScheme,
	}
}

// SetRoundingMode changes the active rounding mode. Any value outside
// the five IEEE 754-2019 rounding-direction attributes is a programmer
// error and panics.
func (e *Engine) SetRoundingMode(m RoundingMode) {
	switch m {
	case RoundTiesToEven, RoundTowardZero, RoundTowardNegative, RoundTowardPositive, RoundTiesToAway:
		e.roundingMode = m
	default:
		panic(fmt.Sprintf("vfpu: unknown rounding mode %d", int(m)))
	}
}

// RoundingMode reports the engine's active rounding mode.
func (e *Engine) RoundingMode() RoundingMode { return e.roundingMode }

// SetQNaNPayload32 sets the trailing payload bits (bits 0-21) of the
// canonical binary32 qNaN this engine produces for invalid operations,
// and rematerializes the per-engine vector constants that embed it.
func (e *Engine) SetQNaNPayload32(payload uint32) {
	e.qnanPayload32 = qnan32SignalBits | (payload & (mantissa32Mask &^ topBit32))
	e.rematerializeConstants()
}

// SetQNaNPayload64 sets the trailing payload bits of the canonical
// binary64 qNaN this engine produces for invalid operations, and
// rematerializes the per-engine vector constants that embed it.
func (e *Engine) SetQNaNPayload64(payload uint64) {
	e.qnanPayload64 = qnan64SignalBits | (payload & (mantissa64Mask &^ topBit64))
	e.rematerializeConstants()
}

// QNaN32 returns this engine's canonical binary32 quiet NaN.
func (e *Engine) QNaN32() float32 { return bitsToF32(e.qnanPayload32) }

// QNaN64 returns this engine's canonical binary64 quiet NaN.
func (e *Engine) QNaN64() float64 { return bitsToF64(e.qnanPayload64) }
