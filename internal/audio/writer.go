// SPDX-License-Identifier: MIT
package audio

import (
	"fmt"
	"math"
	"os"

	"spectro/pkg/utils"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes normalized mono samples as 16-bit PCM. Values outside
// [-1, 1] are clipped.
func WriteWAV(path string, samples []float32, sampleRate int) (err error) {
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	encoder := wav.NewEncoder(file, sampleRate, SupportedBitDepth, 1, wavFormatPCM)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: SupportedBitDepth,
	}
	for i, s := range samples {
		buf.Data[i] = toInt16(s)
	}

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write PCM data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}

	return nil
}

// WriteTone writes a mono sine of the given frequency and duration.
func WriteTone(path string, frequency, seconds float64, sampleRate int, amplitude float64) error {
	if frequency < 0 || seconds <= 0 {
		return fmt.Errorf("tone needs a non-negative frequency and positive duration, got %gHz for %gs", frequency, seconds)
	}
	if amplitude < 0 || amplitude > 1 {
		return fmt.Errorf("tone amplitude must be within 0..1, got %g", amplitude)
	}
	n := int(math.Round(seconds * float64(sampleRate)))
	return WriteWAV(path, utils.GenerateSineWave(n, float64(sampleRate), frequency, amplitude), sampleRate)
}

func toInt16(s float32) int {
	v := math.Round(float64(s) * float64(math.MaxInt16))
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int(v)
}
