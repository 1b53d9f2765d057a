// SPDX-License-Identifier: MIT
package rfi

// The registered algorithms are the library's two test routines plus the
// declared-but-unimplemented full DWT transform. No real detection
// algorithm ships natively; real detectors plug in through the same
// Algorithm interface.

func init() {
	Register(singleChannelAlg{})
	Register(evenOddAlg{})
	Register(fullDWTAlg{})
}

// singleChannelAlg wraps Detector.SingleChannel.
type singleChannelAlg struct{}

func (singleChannelAlg) Name() string        { return "single_channel" }
func (singleChannelAlg) Description() string { return "flag one frequency channel (test routine)" }

func (singleChannelAlg) DefaultParams() Params {
	return Params{"channel": 0}
}

func (singleChannelAlg) Products() []Product {
	return []Product{{Label: 0, Name: "Test"}}
}

func (singleChannelAlg) DefaultProducts() []int { return []int{0} }

func (a singleChannelAlg) Compute(det *Detector, ctx *Context, p Params) error {
	merged := mergeParams(a.DefaultParams(), p)
	return det.SingleChannel(ctx, int(merged["channel"]))
}

// evenOddAlg wraps Detector.EvenOdd.
type evenOddAlg struct{}

func (evenOddAlg) Name() string { return "even_odd" }
func (evenOddAlg) Description() string {
	return "flag even and odd channels into separate masks (test routine)"
}

func (evenOddAlg) DefaultParams() Params {
	return Params{"channel_start": 0} // accepted, unused by the routine
}

func (evenOddAlg) Products() []Product {
	return []Product{
		{Label: 0, Name: "Odd"},
		{Label: 1, Name: "Even"},
	}
}

func (evenOddAlg) DefaultProducts() []int { return []int{0, 1} }

func (a evenOddAlg) Compute(det *Detector, ctx *Context, p Params) error {
	merged := mergeParams(a.DefaultParams(), p)
	return det.EvenOdd(ctx, merged["channel_start"])
}

// fullDWTAlg wraps Detector.FullDWT, the unimplemented wavelet routine.
// It defines no products and writes no flags.
type fullDWTAlg struct{}

func (fullDWTAlg) Name() string { return "full_dwt" }
func (fullDWTAlg) Description() string {
	return "wavelet-decomposition detection (declared, not implemented)"
}

func (fullDWTAlg) DefaultParams() Params {
	return Params{"th_k": 1}
}

func (fullDWTAlg) Products() []Product { return nil }

func (fullDWTAlg) DefaultProducts() []int { return nil }

func (a fullDWTAlg) Compute(det *Detector, ctx *Context, p Params) error {
	merged := mergeParams(a.DefaultParams(), p)
	return det.FullDWT(ctx, merged["th_k"])
}
