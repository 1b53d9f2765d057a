// SPDX-License-Identifier: MIT
package spectrogram

import "testing"

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		rows    int
		cols    int
		wantErr bool
	}{
		{"valid", 4, 8, false},
		{"single cell", 1, 1, false},
		{"zero rows", 0, 8, true},
		{"zero cols", 4, 0, true},
		{"negative", -1, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.rows, tt.cols)
			if tt.wantErr {
				if err == nil {
					t.Error("New() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if s.Rows() != tt.rows || s.Cols() != tt.cols {
				t.Errorf("shape = %dx%d, want %dx%d", s.Rows(), s.Cols(), tt.rows, tt.cols)
			}
			if len(s.Data()) != tt.rows*tt.cols {
				t.Errorf("len(Data()) = %d, want %d", len(s.Data()), tt.rows*tt.cols)
			}
		})
	}
}

func TestAtSet(t *testing.T) {
	t.Parallel()
	s, err := New(3, 4)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s.Set(2, 3, 1.25)
	if got := s.At(2, 3); got != 1.25 {
		t.Errorf("At(2,3) = %f, want 1.25", got)
	}
	if got := s.Data()[2*4+3]; got != 1.25 {
		t.Errorf("Data()[11] = %f, want 1.25 (row-major layout)", got)
	}
}

func TestFromSlice(t *testing.T) {
	t.Parallel()
	buf := make([]float64, 12)
	s, err := FromSlice(buf, 3, 4)
	if err != nil {
		t.Fatalf("FromSlice() error = %v", err)
	}

	// The matrix wraps the caller's buffer, it does not copy.
	buf[5] = 9.0 // row 1, col 1
	if got := s.At(1, 1); got != 9.0 {
		t.Errorf("At(1,1) = %f, want 9.0 (must wrap, not copy)", got)
	}

	if _, err := FromSlice(make([]float64, 11), 3, 4); err == nil {
		t.Error("short buffer: expected error, got nil")
	}
	if _, err := FromSlice(buf, 0, 4); err == nil {
		t.Error("zero rows: expected error, got nil")
	}
}
