// SPDX-License-Identifier: MIT
// Package bitint provides the power-of-2 helpers used to size STFT
// frames and transform buffers. All operations are O(1), allocation-free
// bit manipulation.
package bitint

import "math/bits"

// NextPowerOfTwo returns the next power of 2 >= size. Powers of 2 are
// preserved; zero and negative inputs map to 1. The size-1 subtraction
// is what keeps exact powers of 2 from doubling:
//
//	Input  Output
//	4      4
//	5      8
//	0      1
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}

	// 64-bit platforms (where int is 64-bit)
	if ^uint(0)>>63 == 0 {
		return int(1 << (bits.Len64(uint64(size - 1))))
	}

	// 32-bit platforms
	return int(1 << (bits.Len32(uint32(size - 1))))
}

// IsPowerOfTwo reports whether n is a positive power of 2. Powers of 2
// have exactly one bit set, so n & (n-1) clears to zero only for them.
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
