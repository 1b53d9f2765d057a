// SPDX-License-Identifier: MIT
package rfi

import (
	"errors"
	"testing"
)

func TestNewContext(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		data    []float64
		rows    int
		cols    int
		wantErr bool
	}{
		{"valid", make([]float64, 12), 3, 4, false},
		{"valid single cell", make([]float64, 1), 1, 1, false},
		{"oversized buffer ok", make([]float64, 100), 3, 4, false},
		{"zero rows", make([]float64, 12), 0, 4, true},
		{"zero cols", make([]float64, 12), 3, 0, true},
		{"negative rows", make([]float64, 12), -1, 4, true},
		{"nil data", nil, 3, 4, true},
		{"short buffer", make([]float64, 11), 3, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := NewContext(tt.data, tt.rows, tt.cols)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewContext() expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidShape) {
					t.Errorf("NewContext() error = %v, want ErrInvalidShape", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewContext() error = %v", err)
			}
			if ctx.Rows() != tt.rows || ctx.Cols() != tt.cols {
				t.Errorf("shape = %dx%d, want %dx%d", ctx.Rows(), ctx.Cols(), tt.rows, tt.cols)
			}
		})
	}
}

func TestContextBorrowsData(t *testing.T) {
	t.Parallel()
	data := make([]float64, 6)
	ctx, err := NewContext(data, 2, 3)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}

	// The context references the caller's buffer, it does not copy.
	data[4] = 7.5 // row 1, col 1
	if got := ctx.At(1, 1); got != 7.5 {
		t.Errorf("At(1,1) = %f, want 7.5 (context must reference, not copy)", got)
	}
}

func TestAllocFlagSlots(t *testing.T) {
	t.Parallel()
	ctx, _ := NewContext(make([]float64, 6), 2, 3)

	if err := ctx.AllocFlagSlots(3); err != nil {
		t.Fatalf("AllocFlagSlots(3) error = %v", err)
	}
	if ctx.NumSlots() != 3 {
		t.Errorf("NumSlots() = %d, want 3", ctx.NumSlots())
	}

	// Reallocation discards existing references; the masks stay with
	// the caller.
	mask := make([]byte, 6)
	if err := ctx.SetFlagSlot(mask, 0); err != nil {
		t.Fatalf("SetFlagSlot() error = %v", err)
	}
	if err := ctx.AllocFlagSlots(1); err != nil {
		t.Fatalf("AllocFlagSlots(1) error = %v", err)
	}
	if ctx.NumSlots() != 1 {
		t.Errorf("NumSlots() after realloc = %d, want 1", ctx.NumSlots())
	}
	if ctx.Slot(0) != nil {
		t.Error("slot 0 not cleared by reallocation")
	}

	if err := ctx.AllocFlagSlots(-1); err == nil {
		t.Error("AllocFlagSlots(-1) expected error, got nil")
	}
}

func TestSetFlagSlot(t *testing.T) {
	t.Parallel()
	ctx, _ := NewContext(make([]float64, 6), 2, 3)
	if err := ctx.AllocFlagSlots(2); err != nil {
		t.Fatalf("AllocFlagSlots() error = %v", err)
	}

	good := make([]byte, 6)
	if err := ctx.SetFlagSlot(good, 1); err != nil {
		t.Fatalf("SetFlagSlot() error = %v", err)
	}
	if ctx.Slot(1) == nil {
		t.Error("slot 1 not bound")
	}

	// Out-of-range index is the contract's one defined failure; the
	// slot array must be left unchanged.
	if err := ctx.SetFlagSlot(good, 2); !errors.Is(err, ErrSlotRange) {
		t.Errorf("SetFlagSlot(2) error = %v, want ErrSlotRange", err)
	}
	if err := ctx.SetFlagSlot(good, -1); !errors.Is(err, ErrSlotRange) {
		t.Errorf("SetFlagSlot(-1) error = %v, want ErrSlotRange", err)
	}
	if ctx.Slot(0) != nil {
		t.Error("failed SetFlagSlot modified the slot array")
	}
	if ctx.Slot(1) == nil {
		t.Error("failed SetFlagSlot dropped an existing binding")
	}

	// Mask shape must match the spectrogram.
	if err := ctx.SetFlagSlot(make([]byte, 5), 0); !errors.Is(err, ErrMaskShape) {
		t.Errorf("SetFlagSlot(short mask) error = %v, want ErrMaskShape", err)
	}
}

func TestSetFlagProductsRoundTrip(t *testing.T) {
	t.Parallel()
	ctx, _ := NewContext(make([]float64, 6), 2, 3)
	if err := ctx.AllocFlagSlots(2); err != nil {
		t.Fatalf("AllocFlagSlots() error = %v", err)
	}

	products := []int{Unselected, 0, 1}
	labels := []int{1, 2}
	if err := ctx.SetFlagProducts(products, labels); err != nil {
		t.Fatalf("SetFlagProducts() error = %v", err)
	}

	gotProducts := ctx.Products()
	gotLabels := ctx.SlotLabels()
	for i, want := range products {
		if gotProducts[i] != want {
			t.Errorf("Products()[%d] = %d, want %d", i, gotProducts[i], want)
		}
	}
	for i, want := range labels {
		if gotLabels[i] != want {
			t.Errorf("SlotLabels()[%d] = %d, want %d", i, gotLabels[i], want)
		}
	}

	// The registry owns copies; mutating the caller's arrays must not
	// leak through.
	products[1] = 99
	labels[0] = 99
	if ctx.Products()[1] == 99 || ctx.SlotLabels()[0] == 99 {
		t.Error("registry aliases caller arrays instead of copying")
	}

	// Consistency invariant: products[label] == slot implies
	// slotLabels[slot] == label for every selected label.
	for label, slot := range ctx.Products() {
		if slot == Unselected {
			continue
		}
		if got := ctx.SlotLabels()[slot]; got != label {
			t.Errorf("slotLabels[%d] = %d, want %d", slot, got, label)
		}
	}
}

func TestSetFlagProductsSlotCountBinding(t *testing.T) {
	t.Parallel()
	ctx, _ := NewContext(make([]float64, 6), 2, 3)

	// The slot-label copy length is bound to the slot count at call
	// time: allocate first, then register.
	if err := ctx.AllocFlagSlots(1); err != nil {
		t.Fatalf("AllocFlagSlots() error = %v", err)
	}
	if err := ctx.SetFlagProducts([]int{0, Unselected}, []int{0, 1, 2}); err != nil {
		t.Fatalf("SetFlagProducts() error = %v", err)
	}
	if got := len(ctx.SlotLabels()); got != 1 {
		t.Errorf("len(SlotLabels()) = %d, want 1 (bound to slot count)", got)
	}

	// Fewer labels than slots cannot be copied safely.
	if err := ctx.AllocFlagSlots(3); err != nil {
		t.Fatalf("AllocFlagSlots() error = %v", err)
	}
	if err := ctx.SetFlagProducts([]int{0}, []int{0}); err == nil {
		t.Error("SetFlagProducts() with too few slot labels expected error, got nil")
	}
}

func TestSetFlagProductsReplacesRegistry(t *testing.T) {
	t.Parallel()
	ctx, _ := NewContext(make([]float64, 6), 2, 3)
	if err := ctx.AllocFlagSlots(1); err != nil {
		t.Fatalf("AllocFlagSlots() error = %v", err)
	}

	if err := ctx.SetFlagProducts([]int{0, Unselected}, []int{0}); err != nil {
		t.Fatalf("SetFlagProducts() error = %v", err)
	}
	if err := ctx.SetFlagProducts([]int{Unselected, 0, Unselected}, []int{1}); err != nil {
		t.Fatalf("SetFlagProducts() error = %v", err)
	}

	if got := ctx.NumProducts(); got != 3 {
		t.Errorf("NumProducts() = %d, want 3 after replacement", got)
	}
	if got := ctx.Products()[0]; got != Unselected {
		t.Errorf("Products()[0] = %d, want Unselected after replacement", got)
	}
}
