// SPDX-License-Identifier: MIT
package render

import (
	"fmt"
	"math"
)

// axis maps data coordinates (frame or bin index) to tick labels.
type axis struct {
	extent  float64 // data-domain length, always > 0
	scale   float64 // label units per data unit
	unit    string
	integer bool // raw index labels never use fractional ticks
}

type tick struct {
	pos   float64 // data-domain position
	label string
}

// rawAxis labels ticks with the index itself, e.g. "12 s" for frame 12.
func rawAxis(extent float64, unit string) axis {
	return axis{extent: nonZero(extent), scale: 1, unit: unit, integer: true}
}

// physicalAxis labels ticks in real units, index * scale.
func physicalAxis(extent, scale float64, unit string) axis {
	return axis{extent: nonZero(extent), scale: scale, unit: unit}
}

func nonZero(extent float64) float64 {
	if extent <= 0 {
		return 1
	}
	return extent
}

// ticks picks round values in the label domain, about target of them, and
// maps each back to a data-domain position.
func (a axis) ticks(target int) []tick {
	span := a.extent * a.scale
	step := niceStep(span, target)
	if a.integer && step < 1 {
		step = 1
	}

	decimals := 0
	if !a.integer && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step)))
	}

	var out []tick
	for i := 0; ; i++ {
		v := float64(i) * step
		if v > span*(1+1e-9) {
			break
		}
		out = append(out, tick{
			pos:   v / a.scale,
			label: fmt.Sprintf("%.*f %s", decimals, v, a.unit),
		})
	}
	return out
}

// niceStep returns 1, 2 or 5 times a power of ten, the smallest such step
// that yields at most target intervals over span.
func niceStep(span float64, target int) float64 {
	if span <= 0 || target <= 0 {
		return 1
	}
	raw := span / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5} {
		if m*mag >= raw {
			return m * mag
		}
	}
	return 10 * mag
}
