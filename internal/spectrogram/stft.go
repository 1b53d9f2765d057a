// SPDX-License-Identifier: MIT
package spectrogram

import (
	"fmt"
	"math/cmplx"
	"os"
	"strings"

	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	applog "dwflag/internal/log"
	"dwflag/pkg/bitint"
)

// WindowFunc selects the STFT window function.
type WindowFunc int

// Available window functions.
const (
	BartlettHann WindowFunc = iota
	Blackman
	BlackmanNuttall
	Hann
	Hamming
	Lanczos
	Nuttall
)

// ParseWindowFunc converts a string name (case-insensitive) to a
// WindowFunc. Returns Hann and an error if the name is unknown.
func ParseWindowFunc(name string) (WindowFunc, error) {
	switch strings.ToLower(name) {
	case "bartletthann":
		return BartlettHann, nil
	case "blackman":
		return Blackman, nil
	case "blackmannuttall":
		return BlackmanNuttall, nil
	case "hann", "hanning":
		return Hann, nil
	case "hamming":
		return Hamming, nil
	case "lanczos":
		return Lanczos, nil
	case "nuttall":
		return Nuttall, nil
	default:
		return Hann, fmt.Errorf("spectrogram: unknown window function name %q", name)
	}
}

// windowCoeffs returns n window coefficients for the selected function.
func windowCoeffs(n int, w WindowFunc) []float64 {
	coeffs := make([]float64, n)
	for i := range coeffs {
		coeffs[i] = 1
	}
	switch w {
	case BartlettHann:
		window.BartlettHann(coeffs)
	case Blackman:
		window.Blackman(coeffs)
	case BlackmanNuttall:
		window.BlackmanNuttall(coeffs)
	case Hamming:
		window.Hamming(coeffs)
	case Lanczos:
		window.Lanczos(coeffs)
	case Nuttall:
		window.Nuttall(coeffs)
	default:
		window.Hann(coeffs)
	}
	return coeffs
}

// FromWAV builds a power spectrogram from a recorded WAV file by
// short-time Fourier transform over consecutive non-overlapping frames.
// fftSize is rounded up to a power of 2. The result has one row per
// frame and fftSize/2+1 frequency channels holding spectral magnitudes.
func FromWAV(path string, fftSize int, win WindowFunc) (*Spectrogram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spectrogram: failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("spectrogram: %s is not a valid WAV file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("spectrogram: failed to decode %s: %w", path, err)
	}

	samples := monoSamples(buf.Data, buf.Format.NumChannels, int(dec.BitDepth))
	if fftSize <= 0 {
		fftSize = 1024
	}
	if !bitint.IsPowerOfTwo(fftSize) {
		fftSize = bitint.NextPowerOfTwo(fftSize)
	}
	if len(samples) < fftSize {
		return nil, fmt.Errorf("spectrogram: %s holds %d samples, need at least %d", path, len(samples), fftSize)
	}

	return FromSamples(samples, fftSize, win)
}

// FromSamples builds a power spectrogram from normalized mono samples.
// fftSize must be a power of 2.
func FromSamples(samples []float64, fftSize int, win WindowFunc) (*Spectrogram, error) {
	if !bitint.IsPowerOfTwo(fftSize) {
		return nil, fmt.Errorf("spectrogram: fft size must be a power of 2, got %d", fftSize)
	}
	rows := len(samples) / fftSize
	if rows == 0 {
		return nil, fmt.Errorf("spectrogram: %d samples cannot fill a %d-point frame", len(samples), fftSize)
	}
	cols := fftSize/2 + 1

	spec, err := New(rows, cols)
	if err != nil {
		return nil, err
	}

	fft := fourier.NewFFT(fftSize)
	coeffs := windowCoeffs(fftSize, win)
	input := make([]float64, fftSize)
	output := make([]complex128, cols)

	for row := 0; row < rows; row++ {
		frame := samples[row*fftSize : (row+1)*fftSize]
		for i, s := range frame {
			input[i] = s * coeffs[i]
		}
		fft.Coefficients(output, input)
		for col, c := range output {
			spec.Set(row, col, cmplx.Abs(c))
		}
	}

	applog.Debugf("spectrogram: built %dx%d matrix from %d samples (fft=%d)", rows, cols, len(samples), fftSize)
	return spec, nil
}

// monoSamples mixes interleaved integer PCM down to normalized mono
// float64 in [-1, 1).
func monoSamples(data []int, channels, bitDepth int) []float64 {
	if channels < 1 {
		channels = 1
	}
	norm := 1.0 / float64(int64(1)<<(uint(bitDepth)-1))

	out := make([]float64, len(data)/channels)
	for i := range out {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(data[i*channels+ch])
		}
		out[i] = sum / float64(channels) * norm
	}
	return out
}
