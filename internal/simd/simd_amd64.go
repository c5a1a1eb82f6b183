//go:build amd64

package simd

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// init selects the scan implementation based on detected CPU capability.
// AVX2 capability picks the word-parallel SWAR path; cpuid.CPU cross-checks
// golang.org/x/sys/cpu so a CPU either package mis-detects still gets a
// correct fallback.
func init() {
	if cpu.X86.HasAVX2 || cpuid.CPU.Has(cpuid.AVX2) {
		scanImpl = scanWordwiseSWAR
	} else {
		scanImpl = scanBytewise
	}
}
