// SPDX-License-Identifier: MIT
package utils

import (
	"math"
	"os"
	"testing"
)

const (
	testSize       = 1024
	testSampleRate = 44100
	testFrequency  = 440.0 // A4 note
)

var testMagnitudes []float64

func TestMain(m *testing.M) {
	testMagnitudes = make([]float64, testSize)

	// A "hill" with its peak at testSize/4.
	for i := range testMagnitudes {
		testMagnitudes[i] = math.Exp(-0.01 * math.Pow(float64(i-testSize/4), 2))
	}

	os.Exit(m.Run())
}

func TestGenerateSineWave(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		sampleRate float64
		frequency  float64
		amplitude  float64
	}{
		{"A4 Note", 1024, 44100, 440.0, 0.9},
		{"Middle C", 1024, 44100, 261.63, 0.5},
		{"High Sample Rate", 1024, 192000, 440.0, 1.0},
		{"Low Sample Rate", 1024, 8000, 440.0, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateSineWave(tt.size, tt.sampleRate, tt.frequency, tt.amplitude)

			if len(result) != tt.size {
				t.Fatalf("GenerateSineWave() buffer size = %d, want %d", len(result), tt.size)
			}

			for i, v := range result {
				if math.Abs(float64(v)) > tt.amplitude+1e-6 {
					t.Fatalf("sample %d = %f exceeds amplitude %f", i, v, tt.amplitude)
				}
			}

			samplesPerCycle := tt.sampleRate / tt.frequency
			if samplesPerCycle > 2 && float64(tt.size) > samplesPerCycle {
				crossCount := 0
				for i := 1; i < tt.size; i++ {
					if (result[i-1] < 0 && result[i] >= 0) ||
						(result[i-1] >= 0 && result[i] < 0) {
						crossCount++
					}
				}

				// Two crossings per cycle, 20% margin for phase alignment.
				expectedCrossings := float64(tt.size) / (samplesPerCycle / 2)
				tolerance := 0.2 * expectedCrossings

				if math.Abs(float64(crossCount)-expectedCrossings) > tolerance {
					t.Errorf("zero crossings = %d, expected approximately %.1f±%.1f",
						crossCount, expectedCrossings, tolerance)
				}
			}
		})
	}
}

func TestGenerateComplexWave(t *testing.T) {
	result := GenerateComplexWave(testSize, testSampleRate)
	if len(result) != testSize {
		t.Fatalf("GenerateComplexWave() size = %d, want %d", len(result), testSize)
	}

	hasNonZero := false
	for _, v := range result {
		if v < -1 || v > 1 {
			t.Fatalf("sample %f outside normalized range", v)
		}
		if v != 0 {
			hasNonZero = true
		}
	}
	if !hasNonZero {
		t.Error("GenerateComplexWave() produced all zeros")
	}
}

func TestExpectedBin(t *testing.T) {
	tests := []struct {
		frequency  float64
		sampleRate float64
		windowSize int
		want       int
	}{
		{440, 44100, 1024, 10},
		{1000, 44100, 1024, 23},
		{0, 44100, 1024, 0},
		{22050, 44100, 1024, 512},
	}

	for _, tt := range tests {
		if got := ExpectedBin(tt.frequency, tt.sampleRate, tt.windowSize); got != tt.want {
			t.Errorf("ExpectedBin(%v, %v, %d) = %d, want %d",
				tt.frequency, tt.sampleRate, tt.windowSize, got, tt.want)
		}
	}
}

func TestFindPeakBin(t *testing.T) {
	tests := []struct {
		name     string
		mags     []float64
		start    int
		end      int
		expected int
	}{
		{"Full Range", testMagnitudes, 0, testSize - 1, testSize / 4},
		{"Partial Range Start", testMagnitudes, testSize / 8, testSize - 1, testSize / 4},
		{"Partial Range End", testMagnitudes, 0, testSize / 3, testSize / 4},
		{"Negative Start", testMagnitudes, -10, testSize - 1, testSize / 4},
		{"Out of Range End", testMagnitudes, 0, testSize * 2, testSize / 4},
		{"Empty Slice", []float64{}, 0, 10, 0},
		{"Single Value", []float64{1.0}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindPeakBin(tt.mags, tt.start, tt.end); got != tt.expected {
				t.Errorf("FindPeakBin() = %d, want %d", got, tt.expected)
			}
		})
	}

	allocs := testing.AllocsPerRun(100, func() {
		FindPeakBin(testMagnitudes, 0, len(testMagnitudes)-1)
	})
	if allocs > 0 {
		t.Errorf("FindPeakBin allocated memory: got %.1f allocs, want 0", allocs)
	}
}

func BenchmarkGenerateSineWave(b *testing.B) {
	benchmarks := []struct {
		name string
		size int
	}{
		{"Small", 64},
		{"Standard", 1024},
		{"Large", 8192},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				GenerateSineWave(bm.size, testSampleRate, testFrequency, 0.9)
			}
		})
	}
}
