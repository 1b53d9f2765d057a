// SPDX-License-Identifier: MIT
// Package transport publishes completed flag runs to external consumers
// (visualization frontends, downstream pipelines). The library itself
// only writes masks in place; everything here is read-back plumbing.
package transport

import "dwflag/internal/rfi"

// Transport defines a generic interface for sending flag-run results.
// Implementations must be safe for concurrent use.
type Transport interface {
	Send(data any) error
	Close() error
}

// ProductSummary reports one flag product of a completed run.
type ProductSummary struct {
	Label   int    `json:"label"`
	Name    string `json:"name"`
	Flagged uint32 `json:"flagged"` // number of cells set to 1
}

// Summary condenses a completed flag run for publishing: the shape of
// the processed spectrogram and the flagged-cell count per product.
type Summary struct {
	Algorithm string           `json:"algorithm"`
	Rows      int              `json:"rows"`
	Cols      int              `json:"cols"`
	Products  []ProductSummary `json:"products"`
}

// Summarize condenses the flag sets of one run into a Summary.
func Summarize(results []rfi.FlagSet) Summary {
	sum := Summary{}
	if len(results) == 0 {
		return sum
	}

	sum.Algorithm = results[0].Algorithm
	sum.Rows = results[0].Rows
	sum.Cols = results[0].Cols
	sum.Products = make([]ProductSummary, len(results))
	for i, r := range results {
		var flagged uint32
		for _, b := range r.Mask {
			if b != 0 {
				flagged++
			}
		}
		sum.Products[i] = ProductSummary{
			Label:   r.Product.Label,
			Name:    r.Product.Name,
			Flagged: flagged,
		}
	}
	return sum
}
