// SPDX-License-Identifier: MIT
package rfi

import (
	"fmt"
	"math/rand"
)

// BootstrapResample draws outLen indices independently and uniformly over
// [0, inLen) with replacement. The classic bootstrap draws indices, not
// values; gathering is left to the caller (or use ResampleValues).
// A nil rng falls back to the shared global source.
func BootstrapResample(rng *rand.Rand, inLen, outLen int) ([]int, error) {
	if inLen <= 0 {
		return nil, fmt.Errorf("rfi: bootstrap input length must be positive, got %d", inLen)
	}
	if outLen < 0 {
		return nil, fmt.Errorf("rfi: bootstrap output length must be non-negative, got %d", outLen)
	}

	out := make([]int, outLen)
	for i := range out {
		if rng != nil {
			out[i] = rng.Intn(inLen)
		} else {
			out[i] = rand.Intn(inLen)
		}
	}
	return out, nil
}

// ResampleValues returns a bootstrap resample of x with n elements,
// gathering the values addressed by BootstrapResample. n <= 0 resamples
// to the length of x.
func ResampleValues(rng *rand.Rand, x []float64, n int) ([]float64, error) {
	if n <= 0 {
		n = len(x)
	}
	idx, err := BootstrapResample(rng, len(x), n)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i, j := range idx {
		out[i] = x[j]
	}
	return out, nil
}
