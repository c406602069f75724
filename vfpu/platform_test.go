package vfpu

import (
	"math"
	"testing"
)

func TestSetupRiscvTininessBeforeRounding(t *testing.T) {
	e := NewEngine()
	e.ConfigurePlatform(PlatformRISCV)
	if !e.tininessBeforeRounding {
		t.Error("setupRISCV: expected tininess-before-rounding")
	}
	if e.nanPropScheme != NaNPropRISCV {
		t.Errorf("setupRISCV: NaN propagation scheme = %v, want NaNPropRISCV", e.nanPropScheme)
	}
}

func TestSetupX86TininessBeforeRounding(t *testing.T) {
	e := NewEngine()
	e.ConfigurePlatform(PlatformX86)
	if !e.tininessBeforeRounding {
		t.Error("setupX86: expected tininess-before-rounding")
	}
	if e.nanPropScheme != NaNPropX86SSE {
		t.Errorf("setupX86: NaN propagation scheme = %v, want NaNPropX86SSE", e.nanPropScheme)
	}
}

func TestSetupARMTininessAfterRounding(t *testing.T) {
	e := NewEngine()
	e.ConfigurePlatform(PlatformARM)
	if e.tininessBeforeRounding {
		t.Error("setupARM: expected tininess-after-rounding, the one divergence among the three platforms")
	}
	if e.nanPropScheme != NaNPropARM64 {
		t.Errorf("setupARM: NaN propagation scheme = %v, want NaNPropARM64", e.nanPropScheme)
	}
}

func TestConfigureARMDefaultNaNRequiresARMFirst(t *testing.T) {
	e := NewEngine()
	e.ConfigurePlatform(PlatformARM)
	e.ConfigureARMDefaultNaN()
	if e.nanPropScheme != NaNPropARM64DefaultNaN {
		t.Errorf("ConfigureARMDefaultNaN: scheme = %v, want NaNPropARM64DefaultNaN", e.nanPropScheme)
	}
	if e.tininessBeforeRounding {
		t.Error("ConfigureARMDefaultNaN: should not touch tininess-before-rounding")
	}
}

func TestConfigurePlatformRematerializesQNaN(t *testing.T) {
	e := NewEngine()
	e.SetQNaNPayload32(0xABC)
	e.ConfigurePlatform(PlatformX86)
	if math.Float32bits(e.QNaN32()) != qnan32SignalBits {
		t.Error("ConfigurePlatform: expected setup to reset the qNaN payload to the platform canonical pattern")
	}
}
