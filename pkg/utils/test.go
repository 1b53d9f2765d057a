// SPDX-License-Identifier: MIT
// Package utils holds shared test helpers: synthetic spectrograms with
// known interference, flag mask inspection, and a mock transport.
package utils

import "math"

// MockTransport implements the Transport interface for testing.
type MockTransport struct {
	LastData any
	Sent     int
}

// Send stores the data for later inspection instead of transmitting.
func (m *MockTransport) Send(data any) error {
	m.LastData = data
	m.Sent++
	return nil
}

// Close is a no-op.
func (m *MockTransport) Close() error { return nil }

// GenerateBaseline returns a rows x cols row-major spectrogram of a
// smooth noise-floor shape: a per-channel bandpass curve that is
// identical in every time row, so injected interference stands out.
func GenerateBaseline(rows, cols int, level float64) []float64 {
	data := make([]float64, rows*cols)
	for col := 0; col < cols; col++ {
		v := level * (1 + 0.5*math.Sin(2*math.Pi*float64(col)/float64(cols)))
		for row := 0; row < rows; row++ {
			data[row*cols+col] = v
		}
	}
	return data
}

// InjectChannelRFI adds persistent interference of the given power to
// one frequency channel across all time rows.
func InjectChannelRFI(data []float64, rows, cols, channel int, power float64) {
	for row := 0; row < rows; row++ {
		data[row*cols+channel] += power
	}
}

// CountFlags returns the number of cells set in a flag mask.
func CountFlags(mask []byte) int {
	n := 0
	for _, b := range mask {
		if b != 0 {
			n++
		}
	}
	return n
}

// FlaggedColumns returns the column indices whose every row is flagged
// in a rows x cols mask.
func FlaggedColumns(mask []byte, rows, cols int) []int {
	var out []int
	for col := 0; col < cols; col++ {
		full := true
		for row := 0; row < rows; row++ {
			if mask[row*cols+col] == 0 {
				full = false
				break
			}
		}
		if full {
			out = append(out, col)
		}
	}
	return out
}
