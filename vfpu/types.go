// Package vfpu emulates the sticky-flag arithmetic behavior of IEEE-754
// binary32/binary64 hardware (RISC-V, x86-SSE, ARMv8) on top of the hwy
// vector primitives, using exact-residual techniques to derive exception
// flags without re-running a scalar reference per element.
package vfpu

import "fmt"

// RoundingMode selects one of the five IEEE 754-2019 rounding-direction
// attributes (see 4.3 Rounding-direction attributes).
type RoundingMode int

const (
	RoundTiesToEven RoundingMode = iota
	RoundTowardZero
	RoundTowardNegative
	RoundTowardPositive
	RoundTiesToAway
)

func (m RoundingMode) String() string {
	switch m {
	case RoundTiesToEven:
		return "ties-to-even"
	case RoundTowardZero:
		return "toward-zero"
	case RoundTowardNegative:
		return "toward-negative"
	case RoundTowardPositive:
		return "toward-positive"
	case RoundTiesToAway:
		return "ties-to-away"
	default:
		return fmt.Sprintf("RoundingMode(%d)", int(m))
	}
}

// NaNPropagationScheme selects how a platform canonicalizes and
// propagates NaN operands into a result.
type NaNPropagationScheme int

const (
	NaNPropRISCV NaNPropagationScheme = iota
	NaNPropX86SSE
	NaNPropARM64DefaultNaN
	NaNPropARM64
)

func (s NaNPropagationScheme) String() string {
	switch s {
	case NaNPropRISCV:
		return "riscv"
	case NaNPropX86SSE:
		return "x86-sse"
	case NaNPropARM64DefaultNaN:
		return "arm64-default-nan"
	case NaNPropARM64:
		return "arm64"
	default:
		return fmt.Sprintf("NaNPropagationScheme(%d)", int(s))
	}
}

// Platform names one of the three platform setup profiles in
// ConfigurePlatform.
type Platform int

const (
	PlatformRISCV Platform = iota
	PlatformX86
	PlatformARM
)

func (p Platform) String() string {
	switch p {
	case PlatformRISCV:
		return "riscv"
	case PlatformX86:
		return "x86"
	case PlatformARM:
		return "arm"
	default:
		return fmt.Sprintf("Platform(%d)", int(p))
	}
}

// FlagRegister is a snapshot of the engine's sticky exception flags and
// the configuration that produced them. Flags are write-once-sticky:
// once set, ClearFlags is the only operation that clears them.
type FlagRegister struct {
	Invalid       bool
	DivByZero     bool
	Overflow      bool
	Underflow     bool
	Inexact       bool
	RoundingMode  RoundingMode
	NaNPropScheme NaNPropagationScheme
}

// qnan32SignalBits is the canonical binary32 quiet-NaN bit pattern:
// exponent all ones, top mantissa bit set, rest of the payload zero
// (SetQNaNPayload32 ORs other payload bits into an engine's copy).
// qnan64SignalBits is its binary64 counterpart.
const (
	qnan32SignalBits = uint32(0x7fc00000)
	qnan64SignalBits = uint64(0x7ff8000000000000)

	// exponent-all-ones masks used by the signaling-NaN bit test.
	exp32Mask      = uint32(0x7f800000)
	mantissa32Mask = uint32(0x007fffff)
	topBit32       = uint32(0x00400000)

	exp64Mask      = uint64(0x7ff0000000000000)
	mantissa64Mask = uint64(0x000fffffffffffff)
	topBit64       = uint64(0x0008000000000000)
)
