package recsort

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// ResolveThreads turns a requested thread count into a positive one.
// Values <= 0 select the host's logical processor count as reported by CPUID,
// or runtime.NumCPU when CPUID does not know.
func ResolveThreads(n int) int {
	if n > 0 {
		return n
	}
	if c := cpuid.CPU.LogicalCores; c > 0 {
		return c
	}
	return runtime.NumCPU()
}
