// cpu.go - CPU capability probe.
//
// To the extent possible under law, Yawning Angel has waived all copyright
// and related or neighboring rights to bike, using the Creative
// Commons "CC0" public domain dedication. See LICENSE or
// <http://creativecommons.org/publicdomain/zero/1.0/> for full details.

// Package cpu exposes the handful of CPU capabilities the samplers and the
// decoder care about.  The flags are computed once at process start and never
// change afterwards.
package cpu

import "github.com/klauspost/cpuid/v2"

var (
	avx2    bool
	avx512  bool
	pclmul  bool
	vpclmul bool
)

// HasAVX2 returns true iff the CPU supports AVX2.
func HasAVX2() bool { return avx2 }

// HasAVX512 returns true iff the CPU supports AVX512F.
func HasAVX512() bool { return avx512 }

// HasPCLMUL returns true iff the CPU supports PCLMULQDQ.
func HasPCLMUL() bool { return pclmul }

// HasVPCLMUL returns true iff the CPU supports VPCLMULQDQ.
func HasVPCLMUL() bool { return vpclmul }

func init() {
	avx2 = cpuid.CPU.Supports(cpuid.AVX2)
	avx512 = cpuid.CPU.Supports(cpuid.AVX512F)
	pclmul = cpuid.CPU.Supports(cpuid.CLMUL)
	vpclmul = cpuid.CPU.Supports(cpuid.VPCLMULQDQ)
}
