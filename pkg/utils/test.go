// Package utils holds signal generators and spectrum probes shared by the
// spectro test suites and the tone command.
package utils

import "math"

// GenerateSineWave returns size normalized samples of a sine at frequency Hz
// with the given peak amplitude (0..1).
func GenerateSineWave(size int, sampleRate, frequency, amplitude float64) []float32 {
	buffer := make([]float32, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		buffer[i] = float32(amplitude * math.Sin(2*math.Pi*frequency*t))
	}
	return buffer
}

// GenerateComplexWave returns a 440Hz fundamental plus its 2nd and 3rd
// harmonics, peaking below full scale.
func GenerateComplexWave(size int, sampleRate float64) []float32 {
	buffer := make([]float32, size)
	for i := range buffer {
		tm := float64(i) / sampleRate
		signal := math.Sin(2*math.Pi*440*tm)*0.5 +
			math.Sin(2*math.Pi*880*tm)*0.3 +
			math.Sin(2*math.Pi*1320*tm)*0.2
		buffer[i] = float32(signal * 0.9)
	}
	return buffer
}

// ExpectedBin is the bin a pure tone lands in: round(f * windowSize / sampleRate).
func ExpectedBin(frequency, sampleRate float64, windowSize int) int {
	return int(math.Round(frequency * float64(windowSize) / sampleRate))
}

// FindPeakBin returns the index of the largest magnitude in [startBin, endBin].
// Out-of-range bounds are clamped; an empty slice yields 0.
func FindPeakBin(magnitudes []float64, startBin, endBin int) int {
	if len(magnitudes) == 0 {
		return 0
	}

	if startBin < 0 {
		startBin = 0
	}

	if endBin >= len(magnitudes) {
		endBin = len(magnitudes) - 1
	}

	peakBin := startBin
	peakValue := magnitudes[startBin]

	for bin := startBin + 1; bin <= endBin; bin++ {
		if magnitudes[bin] > peakValue {
			peakValue = magnitudes[bin]
			peakBin = bin
		}
	}

	return peakBin
}
