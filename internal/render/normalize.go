// SPDX-License-Identifier: MIT
package render

import (
	"errors"

	"spectro/internal/stft"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptySpectrogram is returned by Bounds when there is nothing to scan.
var ErrEmptySpectrogram = errors.New("spectrogram has no magnitudes")

// Normalizer rescales magnitudes linearly so that Min maps to 0 and Max to 1.
type Normalizer struct {
	Min float64
	Max float64
}

// Bounds scans every bin of every frame, including the upper half that is
// never drawn, for the global minimum and maximum magnitude.
func Bounds(spec *stft.Spectrogram) (Normalizer, error) {
	var n Normalizer
	seen := false
	for _, frame := range spec.Frames {
		if len(frame) == 0 {
			continue
		}
		lo, hi := floats.Min(frame), floats.Max(frame)
		if !seen {
			n.Min, n.Max = lo, hi
			seen = true
			continue
		}
		if lo < n.Min {
			n.Min = lo
		}
		if hi > n.Max {
			n.Max = hi
		}
	}
	if !seen {
		return Normalizer{}, ErrEmptySpectrogram
	}
	return n, nil
}

// Flat reports whether every magnitude was identical, e.g. silent input.
func (n Normalizer) Flat() bool {
	return n.Max == n.Min
}

// Intensity returns (m - Min) / (Max - Min) without clamping. A flat
// spectrogram has no range to scale against, so every intensity is 0.
func (n Normalizer) Intensity(m float64) float64 {
	if n.Flat() {
		return 0
	}
	return (m - n.Min) / (n.Max - n.Min)
}
