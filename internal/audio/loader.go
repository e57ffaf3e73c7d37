// SPDX-License-Identifier: MIT
/*
Package audio turns WAV files into the normalized sample buffer consumed by
the STFT engine, and writes test tones back out.

Only 16-bit integer PCM is accepted. Multi-channel files are reduced to
channel 0; no mixing or resampling takes place.
*/
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/go-audio/wav"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE

	// SupportedBitDepth is the only sample width Decode accepts.
	SupportedBitDepth = 16
)

// Samples are divided by the largest positive int16, so -32768 maps to
// slightly below -1.
const int16Scale = float32(math.MaxInt16)

var (
	// ErrInvalidWAV is returned when the RIFF/WAVE header cannot be parsed.
	ErrInvalidWAV = errors.New("invalid WAV file")
	// ErrUnsupportedFormat is returned for non-PCM or non-16-bit data.
	ErrUnsupportedFormat = errors.New("unsupported sample format")
)

// Info describes the decoded stream.
type Info struct {
	SampleRate int
	Channels   int // channels in the file; only channel 0 is kept
	BitDepth   int
	Frames     int // samples per channel
}

// Duration is the playing time of the stream.
func (i Info) Duration() time.Duration {
	if i.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(i.Frames) / float64(i.SampleRate) * float64(time.Second))
}

// Clip is a decoded, normalized mono sample buffer. Data is not modified
// after Decode returns.
type Clip struct {
	Info
	Data []float32
}

// Load opens and decodes the WAV file at path. The file is closed before
// Load returns.
func Load(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	clip, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return clip, nil
}

// Decode reads a 16-bit PCM WAV stream and returns channel 0 as float32
// samples in [-1, 1].
func Decode(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: audio format %d is not PCM", ErrUnsupportedFormat, dec.WavAudioFormat)
	}
	if dec.BitDepth != SupportedBitDepth {
		return nil, fmt.Errorf("%w: %d-bit samples, want %d-bit", ErrUnsupportedFormat, dec.BitDepth, SupportedBitDepth)
	}
	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidWAV)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	frames := len(buf.Data) / channels
	data := make([]float32, frames)
	for i := range data {
		data[i] = float32(buf.Data[i*channels]) / int16Scale
	}

	return &Clip{
		Info: Info{
			SampleRate: int(dec.SampleRate),
			Channels:   channels,
			BitDepth:   int(dec.BitDepth),
			Frames:     frames,
		},
		Data: data,
	}, nil
}
