// SPDX-License-Identifier: MIT
/*
Package rfi implements the flagging contract shared by all RFI detection
routines: a borrowed view over a caller-owned spectrogram, an array of
caller-owned flag output masks, and the product registry that maps each
flag product a routine can emit to the output slot holding its mask.

Ownership:
- The spectrogram buffer and every flag mask are owned by the caller and
  must stay alive for the lifetime of the Context.
- The Context owns only the registry arrays it copies for itself.

A Context is not reentrant. Use one Context per concurrent detection run
or serialize access externally.
*/
package rfi

import (
	"errors"
	"fmt"
)

// Unselected marks a flag product the caller did not request.
// A product table entry with this value must never be dereferenced
// by a detection routine.
const Unselected = -1

// Errors returned by Context setup operations. ErrSlotRange is the one
// failure the slot-binding contract defines; the rest are precondition
// violations surfaced eagerly instead of corrupting state.
var (
	ErrSlotRange    = errors.New("rfi: flag slot index out of range")
	ErrInvalidShape = errors.New("rfi: invalid spectrogram shape")
	ErrMaskShape    = errors.New("rfi: flag mask does not match spectrogram shape")
	ErrNoSlots      = errors.New("rfi: flag slots not allocated")
)

// Context binds one spectrogram to the flag output slots and product
// registry a detection routine reads and writes. All buffers are
// row-major with rows*cols elements.
type Context struct {
	data []float64 // borrowed spectrogram samples, time rows x channel cols
	rows int
	cols int

	slots [][]byte // borrowed flag masks, one per allocated output slot

	products   []int // product label -> slot index, Unselected if not requested
	slotLabels []int // slot index -> product label, inverse of products
}

// NewContext binds a caller-owned row-major spectrogram buffer into a
// fresh Context. The buffer is referenced, never copied; it must contain
// at least rows*cols samples.
func NewContext(data []float64, rows, cols int) (*Context, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	if data == nil || len(data) < rows*cols {
		return nil, fmt.Errorf("%w: need %d samples, have %d", ErrInvalidShape, rows*cols, len(data))
	}

	return &Context{
		data: data,
		rows: rows,
		cols: cols,
	}, nil
}

// AllocFlagSlots (re)allocates the array of flag output slot references.
// Existing slot references are discarded; the masks they pointed to are
// caller-owned, so dropping the references releases nothing. Must be
// called before SetFlagSlot or SetFlagProducts.
func (c *Context) AllocFlagSlots(n int) error {
	if n < 0 {
		return fmt.Errorf("rfi: negative slot count %d", n)
	}
	c.slots = make([][]byte, n)
	return nil
}

// SetFlagSlot binds a caller-owned flag mask into output slot i.
// The mask is referenced, never copied, and must have rows*cols bytes.
// Returns ErrSlotRange when i is outside the allocated slot array;
// the slot array is left unchanged in that case.
func (c *Context) SetFlagSlot(mask []byte, i int) error {
	if i < 0 || i >= len(c.slots) {
		return fmt.Errorf("%w: slot %d of %d", ErrSlotRange, i, len(c.slots))
	}
	if len(mask) != c.rows*c.cols {
		return fmt.Errorf("%w: mask has %d bytes, want %d", ErrMaskShape, len(mask), c.rows*c.cols)
	}
	c.slots[i] = mask
	return nil
}

// SetFlagProducts installs the product->slot mapping and its inverse,
// replacing any previous registry. productToSlot holds one entry per
// product the algorithm can emit (Unselected for products the caller
// did not request). slotLabels records which product label occupies each
// slot; exactly len(slots) entries are copied, bound to the slot count
// set by AllocFlagSlots at call time. Allocate slots first, then install
// the registry.
func (c *Context) SetFlagProducts(productToSlot, slotLabels []int) error {
	if len(slotLabels) < len(c.slots) {
		return fmt.Errorf("rfi: %d slot labels for %d slots", len(slotLabels), len(c.slots))
	}

	c.products = make([]int, len(productToSlot))
	copy(c.products, productToSlot)

	c.slotLabels = make([]int, len(c.slots))
	copy(c.slotLabels, slotLabels)

	return nil
}

// Rows returns the number of time rows in the bound spectrogram.
func (c *Context) Rows() int { return c.rows }

// Cols returns the number of frequency channels in the bound spectrogram.
func (c *Context) Cols() int { return c.cols }

// At returns the spectrogram sample at the given row and channel.
func (c *Context) At(row, col int) float64 { return c.data[row*c.cols+col] }

// NumSlots returns the number of allocated flag output slots.
func (c *Context) NumSlots() int { return len(c.slots) }

// NumProducts returns the length of the installed product table.
func (c *Context) NumProducts() int { return len(c.products) }

// Slot returns the mask bound to output slot i, or nil if unbound.
func (c *Context) Slot(i int) []byte {
	if i < 0 || i >= len(c.slots) {
		return nil
	}
	return c.slots[i]
}

// Products returns a copy of the installed product->slot table.
func (c *Context) Products() []int {
	out := make([]int, len(c.products))
	copy(out, c.products)
	return out
}

// SlotLabels returns a copy of the installed slot->label array.
func (c *Context) SlotLabels() []int {
	out := make([]int, len(c.slotLabels))
	copy(out, c.slotLabels)
	return out
}

// productSlot resolves the slot index assigned to a product label.
// The second return is false when the label is out of table range or
// marked Unselected.
func (c *Context) productSlot(label int) (int, bool) {
	if label < 0 || label >= len(c.products) {
		return 0, false
	}
	slot := c.products[label]
	if slot == Unselected {
		return 0, false
	}
	return slot, true
}
