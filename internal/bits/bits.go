// Package bits provides the range-reduction helpers used to turn hash output
// into record keys.
package bits

import "math/bits"

// FastRange32 maps a 64-bit hash uniformly to [0, n) returning uint32.
// Multiply and take the high word; no modulo bias and no division.
func FastRange32(hash uint64, n uint32) uint32 {
	if n == 0 {
		return 0
	}
	hi, _ := bits.Mul64(hash, uint64(n))
	return uint32(hi)
}

// KeyFromHash derives a record key from hash. With span == 0 the key covers
// the full int32 range; otherwise it lies in [0, span).
func KeyFromHash(hash uint64, span uint32) int32 {
	if span == 0 {
		return int32(uint32(hash >> 32))
	}
	if span > 1<<31 {
		span = 1 << 31
	}
	return int32(FastRange32(hash, span))
}
