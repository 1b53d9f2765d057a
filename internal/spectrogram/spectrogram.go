// SPDX-License-Identifier: MIT
// Package spectrogram builds and holds the time-by-frequency power
// matrices the flagging contract operates on. A Spectrogram is dense
// row-major storage: one row per time sample, one column per frequency
// channel.
package spectrogram

import (
	"fmt"
)

// Spectrogram is a rows x cols matrix of double-precision samples.
type Spectrogram struct {
	data []float64
	rows int
	cols int
}

// New allocates a zeroed rows x cols spectrogram.
func New(rows, cols int) (*Spectrogram, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("spectrogram: invalid shape %dx%d", rows, cols)
	}
	return &Spectrogram{
		data: make([]float64, rows*cols),
		rows: rows,
		cols: cols,
	}, nil
}

// FromSlice wraps an existing row-major buffer without copying. The
// buffer must hold at least rows*cols samples and stays owned by the
// caller.
func FromSlice(data []float64, rows, cols int) (*Spectrogram, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("spectrogram: invalid shape %dx%d", rows, cols)
	}
	if len(data) < rows*cols {
		return nil, fmt.Errorf("spectrogram: buffer holds %d samples, need %d", len(data), rows*cols)
	}
	return &Spectrogram{data: data, rows: rows, cols: cols}, nil
}

// Rows returns the number of time rows.
func (s *Spectrogram) Rows() int { return s.rows }

// Cols returns the number of frequency channels.
func (s *Spectrogram) Cols() int { return s.cols }

// At returns the sample at the given row and channel.
func (s *Spectrogram) At(row, col int) float64 {
	return s.data[row*s.cols+col]
}

// Set writes the sample at the given row and channel.
func (s *Spectrogram) Set(row, col int, v float64) {
	s.data[row*s.cols+col] = v
}

// Data returns the underlying row-major buffer. Detection routines
// reference this buffer directly; it is not a copy.
func (s *Spectrogram) Data() []float64 { return s.data }
