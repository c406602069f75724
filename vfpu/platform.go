package vfpu

import (
	"fmt"

	"github.com/ajroetker/vectorfpu/hwy"
)

// ConfigurePlatform switches the engine to emulate one of the three
// supported hardware NaN/tininess/FMA conventions and rebuilds its
// per-instance vector constants. An unrecognized Platform is a config
// error and panics.
//
// The NaN-propagation scheme a profile selects is recorded and reported
// by ReadFlags; every NaN result is the engine's canonical qNaN under
// every scheme. The tininess convention is recorded on the engine only:
// underflow detection does not consult it and is the same on all three
// platforms.
func (e *Engine) ConfigurePlatform(p Platform) {
	switch p {
	case PlatformRISCV:
		e.setupRISCV()
	case PlatformX86:
		e.setupX86()
	case PlatformARM:
		e.setupARM()
	default:
		panic(fmt.Sprintf("vfpu: unknown platform %d", int(p)))
	}
	e.rematerializeConstants()
}

// setupRISCV configures the engine for RISC-V's F/D extension semantics:
// the canonical quiet-NaN bit pattern and tininess-before-rounding
// convention defined by the RISC-V floating-point specification.
func (e *Engine) setupRISCV() {
	e.nanPropScheme = NaNPropRISCV
	e.tininessBeforeRounding = true
	e.invalidFMA = true
	e.qnanPayload32 = qnan32SignalBits
	e.qnanPayload64 = qnan64SignalBits
}

// setupX86 configures the engine for x86-SSE semantics per the x86-64
// SDM: SSE canonicalizes to the same all-ones-exponent, top-mantissa-bit
// qNaN as RISC-V, detects tininess before rounding, and treats any sNaN
// operand to FMA as invalid even when paired with a zero operand that
// would otherwise make the product well-defined.
func (e *Engine) setupX86() {
	e.nanPropScheme = NaNPropX86SSE
	e.tininessBeforeRounding = true
	e.invalidFMA = true
	e.qnanPayload32 = qnan32SignalBits
	e.qnanPayload64 = qnan64SignalBits
}

// setupARM configures the engine for ARMv8 NEON/FP semantics with
// FPCR.DN = 0 (NaNPropARM64). ARM is the one platform among the three
// whose profile records tininess *after* rounding rather than before,
// per the ARMv8-A architecture reference manual.
func (e *Engine) setupARM() {
	e.nanPropScheme = NaNPropARM64
	e.tininessBeforeRounding = false
	e.invalidFMA = true
	e.qnanPayload32 = qnan32SignalBits
	e.qnanPayload64 = qnan64SignalBits
}

// ConfigureARMDefaultNaN switches a previously-ARM-configured engine to
// FPCR.DN = 1 semantics by recording NaNPropARM64DefaultNaN as its
// NaN-propagation scheme. This is a second ARM variant, not a fourth
// Platform constant, since it changes only the NaN-propagation scheme
// and nothing else setupARM configures.
func (e *Engine) ConfigureARMDefaultNaN() {
	e.nanPropScheme = NaNPropARM64DefaultNaN
	e.rematerializeConstants()
}

// hardwareFMAAvailable reports whether this host exposes a native fused
// multiply-add instruction. The Mul driver's binary64 inexact/underflow
// determination requires one: without it, a software FMA residual is
// not trustworthy and the driver downgrades to the scalar reference.
func hardwareFMAAvailable() bool {
	return hwy.HasHardwareFMA()
}
