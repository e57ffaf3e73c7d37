// SPDX-License-Identifier: MIT
/*
Package pipeline runs one spectrogram job end to end:

	WAV file -> normalized samples -> STFT magnitudes -> heatmap -> image file

Each stage lives in its own package (audio, stft, render); Run only wires
them together, validates the output path up front and reports what it did.
*/
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"spectro/internal/audio"
	"spectro/internal/config"
	"spectro/internal/log"
	"spectro/internal/render"
	"spectro/internal/stft"
)

// ErrNoInput is returned when no input path was configured.
var ErrNoInput = errors.New("no input file given")

// Result summarizes a finished run.
type Result struct {
	OutputPath string
	SampleRate int
	Samples    int // samples of channel 0 analysed
	Frames     int
	Bins       int // bins per frame, including the mirrored half
	Min        float64
	Max        float64
	Elapsed    time.Duration
}

// Run loads cfg.Input.Path, computes its spectrogram and writes the image
// to cfg.Render.OutputPath. Nothing is written unless every stage succeeds.
func Run(cfg *config.Config) (*Result, error) {
	start := time.Now()

	if cfg.Input.Path == "" {
		return nil, ErrNoInput
	}
	// Reject a bad extension before doing any work.
	if _, err := render.FormatFor(cfg.Render.OutputPath); err != nil {
		return nil, err
	}

	clip, err := audio.Load(cfg.Input.Path)
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded %s: %d Hz, %d channel(s), %d samples (%s)",
		cfg.Input.Path, clip.SampleRate, clip.Channels, len(clip.Data), clip.Duration())
	if clip.Channels > 1 {
		log.Debugf("Pipeline: using channel 0 of %d", clip.Channels)
	}

	engine, err := stft.NewEngine(cfg.Analysis.WindowSize, cfg.Analysis.HopSize)
	if err != nil {
		return nil, err
	}
	spec := engine.Compute(clip.Data)
	if len(spec.Frames) == 0 {
		log.Warnf("Input has %d samples, fewer than one %d-sample window",
			len(clip.Data), engine.WindowSize())
	}
	log.Infof("Computed %d frames of %d bins", len(spec.Frames), spec.Bins())

	renderer, err := render.NewRenderer(cfg.Render)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	norm, err := render.Bounds(spec)
	if err != nil && !errors.Is(err, render.ErrEmptySpectrogram) {
		return nil, err
	}
	img, err := renderer.Draw(spec, norm, float64(clip.SampleRate))
	if err != nil {
		return nil, fmt.Errorf("failed to render spectrogram: %w", err)
	}

	if err := render.Save(cfg.Render.OutputPath, img); err != nil {
		return nil, err
	}

	res := &Result{
		OutputPath: cfg.Render.OutputPath,
		SampleRate: clip.SampleRate,
		Samples:    len(clip.Data),
		Frames:     len(spec.Frames),
		Bins:       spec.Bins(),
		Min:        norm.Min,
		Max:        norm.Max,
		Elapsed:    time.Since(start),
	}

	log.Infof("Wrote %s in %s", res.OutputPath, res.Elapsed.Round(time.Millisecond))
	return res, nil
}
