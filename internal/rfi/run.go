// SPDX-License-Identifier: MIT
package rfi

import (
	"fmt"

	applog "dwflag/internal/log"
)

// FlagSet is one completed flag product: the algorithm that produced it,
// the product it realizes, the parameters used, and the populated mask
// (rows*cols bytes, row-major, 0/1 per cell).
type FlagSet struct {
	Algorithm string
	Product   Product
	Params    Params
	Mask      []byte
	Rows      int
	Cols      int
}

// Run executes one detection pass over a caller-owned row-major
// spectrogram, driving the full setup sequence the contract requires:
// bind the data, allocate output slots for the selected products, bind a
// fresh mask into each slot, install the product registry, then invoke
// the algorithm. selected lists the product labels to request; nil
// selects the algorithm's defaults. Unknown labels are rejected.
func Run(det *Detector, data []float64, rows, cols int, alg Algorithm, selected []int, params Params) ([]FlagSet, error) {
	if det == nil {
		det = NewDetector(Sequential)
	}
	if selected == nil {
		selected = alg.DefaultProducts()
	}

	ctx, err := NewContext(data, rows, cols)
	if err != nil {
		return nil, err
	}

	avail := alg.Products()
	byLabel := make(map[int]Product, len(avail))
	for _, p := range avail {
		byLabel[p.Label] = p
	}

	wanted := make(map[int]bool, len(selected))
	for _, label := range selected {
		if _, ok := byLabel[label]; !ok {
			return nil, fmt.Errorf("rfi: algorithm %q has no product %d", alg.Name(), label)
		}
		wanted[label] = true
	}

	if err := ctx.AllocFlagSlots(len(wanted)); err != nil {
		return nil, err
	}

	// Walk available products in label order, assigning the next free
	// slot to each selected one. Slot labels stay ascending by
	// construction, keeping the registry and its inverse consistent.
	productToSlot := make([]int, len(avail))
	slotLabels := make([]int, len(wanted))
	masks := make([][]byte, len(wanted))
	slot := 0
	for i, p := range avail {
		productToSlot[i] = Unselected
		if !wanted[p.Label] {
			continue
		}
		productToSlot[i] = slot
		slotLabels[slot] = p.Label
		masks[slot] = make([]byte, rows*cols)
		if err := ctx.SetFlagSlot(masks[slot], slot); err != nil {
			return nil, err
		}
		slot++
	}

	if err := ctx.SetFlagProducts(productToSlot, slotLabels); err != nil {
		return nil, err
	}

	merged := mergeParams(alg.DefaultParams(), params)
	applog.Debugf("rfi: running %s on %dx%d spectrogram (%d products)", alg.Name(), rows, cols, len(wanted))
	if err := alg.Compute(det, ctx, merged); err != nil {
		return nil, fmt.Errorf("rfi: %s failed: %w", alg.Name(), err)
	}

	results := make([]FlagSet, 0, len(wanted))
	for i, label := range slotLabels {
		results = append(results, FlagSet{
			Algorithm: alg.Name(),
			Product:   byLabel[label],
			Params:    merged,
			Mask:      masks[i],
			Rows:      rows,
			Cols:      cols,
		})
	}
	return results, nil
}
