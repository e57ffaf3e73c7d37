// SPDX-License-Identifier: MIT
package stft

import (
	"errors"
	"fmt"
	"math/cmplx"

	"spectro/internal/log"
	"spectro/pkg/bitint"

	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrInvalidFraming is returned for non-positive sizes or a hop larger
// than the window.
var ErrInvalidFraming = errors.New("invalid STFT framing")

// Spectrogram is the fully materialized STFT magnitude grid.
// Frames[i][k] is the magnitude of bin k in frame i; every frame holds
// exactly WindowSize bins, including the mirrored upper half.
type Spectrogram struct {
	WindowSize int
	HopSize    int
	Frames     [][]float64
}

// Bins returns the number of bins per frame.
func (s *Spectrogram) Bins() int {
	return s.WindowSize
}

// BinFrequency returns the centre frequency in Hz of bin k.
func (s *Spectrogram) BinFrequency(k int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(s.WindowSize)
}

// FrameTime returns the start time in seconds of frame i.
func (s *Spectrogram) FrameTime(i int, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(i*s.HopSize) / sampleRate
}

// FrameCount returns how many full windows fit in n samples:
// floor((n-windowSize)/hopSize)+1, or 0 when n < windowSize.
func FrameCount(n, windowSize, hopSize int) int {
	if windowSize <= 0 || hopSize <= 0 || n < windowSize {
		return 0
	}
	return (n-windowSize)/hopSize + 1
}

// Engine computes magnitude spectrograms with a fixed window and hop. The
// FFT plan and work buffers are reused across frames and calls, so an
// Engine must not be shared between goroutines.
type Engine struct {
	windowSize int
	hopSize    int
	fft        *fourier.CmplxFFT
	input      []complex128 // window lifted to complex, imaginary part zero
	output     []complex128 // FFT coefficients
}

// NewEngine prepares an FFT plan of windowSize points. Any positive size
// works; powers of two are fastest.
func NewEngine(windowSize, hopSize int) (*Engine, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidFraming, windowSize)
	}
	if hopSize <= 0 || hopSize > windowSize {
		return nil, fmt.Errorf("%w: hop size must be in 1..%d, got %d", ErrInvalidFraming, windowSize, hopSize)
	}
	if !bitint.IsPowerOfTwo(windowSize) {
		log.Infof("STFT: window size %d is not a power of two, %d would transform faster",
			windowSize, bitint.NextPowerOfTwo(windowSize))
	}

	log.Debugf("STFT: initializing engine (window: %d, hop: %d, overlap: %d)",
		windowSize, hopSize, windowSize-hopSize)

	return &Engine{
		windowSize: windowSize,
		hopSize:    hopSize,
		fft:        fourier.NewCmplxFFT(windowSize),
		input:      make([]complex128, windowSize),
		output:     make([]complex128, windowSize),
	}, nil
}

// WindowSize returns the FFT length.
func (e *Engine) WindowSize() int { return e.windowSize }

// HopSize returns the stride between frame starts.
func (e *Engine) HopSize() int { return e.hopSize }

// Compute slices samples into windows starting at 0, hop, 2*hop, ... and
// stops before any window would run past the end. Each window is
// transformed as-is (rectangular window) and reduced to magnitudes.
// Fewer samples than one window yield an empty spectrogram.
func (e *Engine) Compute(samples []float32) *Spectrogram {
	spec := &Spectrogram{
		WindowSize: e.windowSize,
		HopSize:    e.hopSize,
		Frames:     make([][]float64, 0, FrameCount(len(samples), e.windowSize, e.hopSize)),
	}

	for start := 0; start+e.windowSize <= len(samples); start += e.hopSize {
		spec.Frames = append(spec.Frames, e.transform(samples[start:start+e.windowSize]))
	}

	return spec
}

// transform returns the magnitude spectrum of one window.
func (e *Engine) transform(window []float32) []float64 {
	for i, s := range window {
		e.input[i] = complex(float64(s), 0)
	}

	e.fft.Coefficients(e.output, e.input)

	magnitudes := make([]float64, e.windowSize)
	for i, c := range e.output {
		magnitudes[i] = cmplx.Abs(c)
	}
	return magnitudes
}
