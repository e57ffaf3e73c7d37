// SPDX-License-Identifier: MIT
package pipeline

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"spectro/internal/audio"
	"spectro/internal/config"
	"spectro/internal/render"
	"spectro/internal/stft"
)

func newTestConfig(t *testing.T, input, output string) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Input.Path = input
	cfg.Render.OutputPath = output
	return cfg
}

func TestRunTone(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a440.wav")
	output := filepath.Join(dir, "a440.png")

	if err := audio.WriteTone(input, 440, 2, 44100, 0.8); err != nil {
		t.Fatalf("WriteTone() unexpected error: %v", err)
	}

	res, err := Run(newTestConfig(t, input, output))
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if res.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", res.SampleRate)
	}
	if res.Samples != 88200 {
		t.Errorf("Samples = %d, want 88200", res.Samples)
	}
	if res.Frames != 171 {
		t.Errorf("Frames = %d, want 171", res.Frames)
	}
	if res.Bins != 1024 {
		t.Errorf("Bins = %d, want 1024", res.Bins)
	}
	if res.Max <= res.Min || res.Min < 0 {
		t.Errorf("magnitude range [%v, %v] is not increasing and non-negative", res.Min, res.Max)
	}

	clip, err := audio.Load(input)
	if err != nil {
		t.Fatal(err)
	}
	engine, err := stft.NewEngine(config.DefaultWindowSize, config.DefaultHopSize)
	if err != nil {
		t.Fatal(err)
	}
	want, err := render.Bounds(engine.Compute(clip.Data))
	if err != nil {
		t.Fatal(err)
	}
	if res.Min != want.Min || res.Max != want.Max {
		t.Errorf("range = [%v, %v], want [%v, %v]", res.Min, res.Max, want.Min, want.Max)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1024 || b.Dy() != 768 {
		t.Errorf("image = %dx%d, want 1024x768", b.Dx(), b.Dy())
	}
}

func TestRunBMP(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tone.wav")
	output := filepath.Join(dir, "tone.bmp")

	if err := audio.WriteTone(input, 1000, 0.1, 8000, 0.5); err != nil {
		t.Fatal(err)
	}

	cfg := newTestConfig(t, input, output)
	cfg.Analysis.WindowSize = 256
	cfg.Analysis.HopSize = 128
	cfg.Render.AxisUnits = config.AxisUnitsPhysical

	res, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	// 800 samples: (800-256)/128+1 = 5
	if res.Frames != 5 {
		t.Errorf("Frames = %d, want 5", res.Frames)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestRunShortInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "short.wav")
	output := filepath.Join(dir, "short.png")

	if err := audio.WriteWAV(input, make([]float32, 100), 44100); err != nil {
		t.Fatal(err)
	}

	res, err := Run(newTestConfig(t, input, output))
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if res.Frames != 0 {
		t.Errorf("Frames = %d, want 0", res.Frames)
	}
	if res.Min != 0 || res.Max != 0 {
		t.Errorf("range = [%v, %v], want [0, 0] for an empty spectrogram", res.Min, res.Max)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("axes-only image should still be written: %v", err)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tone.wav")
	if err := audio.WriteTone(input, 440, 0.1, 8000, 0.5); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		input   string
		output  string
		mutate  func(*config.Config)
		wantErr error
	}{
		{name: "no input", output: "out.png", wantErr: ErrNoInput},
		{name: "bad extension", input: input, output: filepath.Join(dir, "out.gif"), wantErr: render.ErrUnsupportedImageFormat},
		{name: "missing input", input: filepath.Join(dir, "nope.wav"), output: filepath.Join(dir, "out.png"), wantErr: os.ErrNotExist},
		{
			name:   "bad framing",
			input:  input,
			output: filepath.Join(dir, "out.png"),
			mutate: func(c *config.Config) { c.Analysis.HopSize = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t, tt.input, tt.output)
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			_, err := Run(cfg)
			if err == nil {
				t.Fatal("Run() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if tt.output != "" {
				if _, err := os.Stat(tt.output); !os.IsNotExist(err) {
					t.Errorf("output %s should not exist after a failed run", tt.output)
				}
			}
		})
	}
}
