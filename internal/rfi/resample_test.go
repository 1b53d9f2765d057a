// SPDX-License-Identifier: MIT
package rfi

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

func TestBootstrapResampleRange(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))

	idx, err := BootstrapResample(rng, 5, 1000)
	if err != nil {
		t.Fatalf("BootstrapResample() error = %v", err)
	}
	if len(idx) != 1000 {
		t.Fatalf("len = %d, want 1000", len(idx))
	}
	for i, v := range idx {
		if v < 0 || v >= 5 {
			t.Fatalf("idx[%d] = %d, outside [0,5)", i, v)
		}
	}
}

func TestBootstrapResampleUniform(t *testing.T) {
	t.Parallel()
	const (
		inLen  = 5
		outLen = 10000
	)
	rng := rand.New(rand.NewSource(42))

	idx, err := BootstrapResample(rng, inLen, outLen)
	if err != nil {
		t.Fatalf("BootstrapResample() error = %v", err)
	}

	// Chi-square goodness of fit against the uniform distribution.
	counts := make([]float64, inLen)
	for _, v := range idx {
		counts[v]++
	}
	expected := float64(outLen) / inLen
	var chi2 float64
	for _, c := range counts {
		d := c - expected
		chi2 += d * d / expected
	}

	// df = inLen-1; reject only far out in the tail so the seeded draw
	// stays stable.
	crit := distuv.ChiSquared{K: inLen - 1}.Quantile(0.999)
	if chi2 > crit {
		t.Errorf("chi-square statistic %.2f exceeds %.2f, draw not plausibly uniform (counts %v)", chi2, crit, counts)
	}
}

func TestBootstrapResampleErrors(t *testing.T) {
	t.Parallel()
	if _, err := BootstrapResample(nil, 0, 10); err == nil {
		t.Error("inLen=0: expected error, got nil")
	}
	if _, err := BootstrapResample(nil, -2, 10); err == nil {
		t.Error("negative inLen: expected error, got nil")
	}
	if _, err := BootstrapResample(nil, 5, -1); err == nil {
		t.Error("negative outLen: expected error, got nil")
	}

	idx, err := BootstrapResample(nil, 5, 0)
	if err != nil || len(idx) != 0 {
		t.Errorf("outLen=0: got (%v, %v), want empty resample", idx, err)
	}
}

func TestResampleValues(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	x := []float64{1.5, 2.5, 3.5}

	out, err := ResampleValues(rng, x, 100)
	if err != nil {
		t.Fatalf("ResampleValues() error = %v", err)
	}
	if len(out) != 100 {
		t.Fatalf("len = %d, want 100", len(out))
	}
	valid := map[float64]bool{1.5: true, 2.5: true, 3.5: true}
	for i, v := range out {
		if !valid[v] {
			t.Fatalf("out[%d] = %f, not drawn from input values", i, v)
		}
	}

	// n <= 0 resamples to len(x).
	out, err = ResampleValues(rng, x, 0)
	if err != nil || len(out) != len(x) {
		t.Errorf("n=0: got %d values, err %v; want %d values", len(out), err, len(x))
	}
}

func BenchmarkBootstrapResample(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	b.ReportAllocs()
	for b.Loop() {
		if _, err := BootstrapResample(rng, 1024, 1000); err != nil {
			b.Fatal(err)
		}
	}
}
