//go:build !noasmtest

package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Detect probes the host. It has no side effects; callers normally use X.
func Detect() Features {
	var f Features
	switch runtime.GOARCH {
	case "amd64", "386", "arm64", "ppc64le", "ppc64", "s390x":
		f.Unaligned = true
	}

	switch runtime.GOARCH {
	case "amd64", "386":
		f.SSE2 = cpu.X86.HasSSE2
		f.SSSE3 = cpu.X86.HasSSSE3
		f.SSE41 = cpu.X86.HasSSE41
		f.SSE42 = cpu.X86.HasSSE42
		f.PCLMULQDQ = cpu.X86.HasPCLMULQDQ
		f.AVX2 = cpu.X86.HasAVX2
		f.BMI1 = cpu.X86.HasBMI1
	case "arm64":
		f.ASIMD = cpu.ARM64.HasASIMD
	}
	return f
}
