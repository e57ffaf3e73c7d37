/*
Package bitint provides the power-of-two helpers used when sizing STFT
windows. Any positive window size is transformed correctly, but FFT plans
for powers of two are the fast path, so callers use these to suggest a
better size.

Usage:

	if !bitint.IsPowerOfTwo(windowSize) {
		suggested := bitint.NextPowerOfTwo(windowSize) // 1000 -> 1024
	}

NextPowerOfTwo subtracts one before taking the bit length so that exact
powers of two map to themselves:

	size=8  -> size-1=7 (0111) -> bits.Len=3 -> 1<<3 = 8
	size=9  -> size-1=8 (1000) -> bits.Len=4 -> 1<<4 = 16
*/
package bitint

import "math/bits"

// NextPowerOfTwo returns the smallest power of 2 >= size.
// Zero and negative sizes return 1.
//
//	Input  Output
//	4      4
//	5      8
//	1000   1024
//	0      1
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}
	return 1 << bits.Len(uint(size-1))
}

// IsPowerOfTwo reports whether n is a positive power of 2.
// Powers of 2 have exactly one bit set, so n&(n-1) clears it to zero.
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
