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

//go:build amd64 && !goexperiment.simd

package hwy

import "golang.org/x/sys/cpu"

// On amd64 the dispatch level is always scalar; only the FMA capability
// of the CPU is probed.

// hasHardwareFMA records whether this CPU has a true fused multiply-add
// instruction. The vfpu binary64 Mul driver consults it and falls back to
// its scalar reference when it is false.
var hasHardwareFMA bool

func init() {
	// Check if SIMD is disabled via environment variable
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	detectCPUFeatures()
}

func detectCPUFeatures() {
	// Only the FMA capability is probed; the current SIMD level stays
	// configured to Scalar, even though SSE2 is available on all amd64 CPUs.
	hasHardwareFMA = cpu.X86.HasFMA
	setScalarMode()
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16 // Use 16-byte vectors even in scalar mode for consistency
}

// HasHardwareFMA returns true if the CPU exposes a native fused
// multiply-add instruction (FMA3 on x86-64).
func HasHardwareFMA() bool {
	return hasHardwareFMA
}
