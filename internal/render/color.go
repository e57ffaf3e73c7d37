// SPDX-License-Identifier: MIT
package render

import (
	"image/color"
	"math"
)

// Base colour at intensity 0 and per-channel fall-off. The coefficients
// are hand-tuned for contrast on a white background; changing them changes
// every rendered image.
const (
	baseRed   = 92.0
	baseGreen = 22.0
	baseBlue  = 127.0

	slopeRed   = 5.0
	slopeGreen = 3.0
	slopeBlue  = 10.0
)

// IntensityToColor maps a normalized intensity to an opaque colour:
//
//	red   = 92  - 5  * intensity * 255
//	green = 22  - 3  * intensity * 255
//	blue  = 127 - 10 * intensity * 255
//
// Each channel is saturated to [0, 255]. Intensity 0 gives (92, 22, 127);
// from about 0.072 upwards every channel is 0 (black). NaN is treated
// as intensity 0.
func IntensityToColor(intensity float64) color.RGBA {
	if math.IsNaN(intensity) {
		intensity = 0
	}
	return color.RGBA{
		R: saturate(baseRed - slopeRed*intensity*255),
		G: saturate(baseGreen - slopeGreen*intensity*255),
		B: saturate(baseBlue - slopeBlue*intensity*255),
		A: 0xff,
	}
}

// saturate truncates toward zero and clamps to the 8-bit range.
func saturate(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
