package main

import (
	"errors"
	"fmt"
	"os"

	"spectro/cmd"
	"spectro/internal/audio"
	"spectro/internal/config"
	"spectro/internal/log"
	"spectro/internal/pipeline"
	"spectro/internal/stft"
	"spectro/pkg/build"
)

// main is the entry point for the spectrogram generator. Every run is a
// single pass:
//
// 1. Startup:
//   - Initialize build information
//   - Parse command line arguments and build configuration
//   - Configure logging
//
// 2. Execute the selected command:
//   - render (default): WAV -> STFT -> heatmap image
//   - info: describe a WAV file
//   - tone: write a sine wave test file
//
// Any failure is fatal and exits non-zero; no partial output is left behind.
func main() {
	// Development builds have no ldflags; keep the defaults and carry on.
	buildErr := build.Initialize()

	options, err := cmd.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}
	if options == nil {
		// --help or --version
		return
	}

	if err := log.Configure(options.LogLevel, options.Verbose || options.Debug); err != nil {
		log.Fatalf("%v", err)
	}
	if errors.Is(buildErr, build.ErrMissingFlag) {
		log.Debugf("Build info incomplete: %v", buildErr)
	}
	log.Debugf("%s %s", build.GetBuildFlags().Name, build.GetBuildFlags().VersionString())

	if err := executeCommand(options); err != nil {
		log.Fatalf("%v", err)
	}
}

// executeCommand runs the command selected on the command line.
func executeCommand(options *config.Config) error {
	switch options.Command {
	case cmd.CommandInfo:
		return printInfo(options.Args[0], options.Analysis.WindowSize, options.Analysis.HopSize)

	case cmd.CommandTone:
		t := options.Tone
		if err := audio.WriteTone(t.OutputPath, t.Frequency, t.Duration, t.SampleRate, t.Amplitude); err != nil {
			return err
		}
		fmt.Printf("Wrote %gs %g Hz tone to %s\n", t.Duration, t.Frequency, t.OutputPath)
		return nil

	default:
		res, err := pipeline.Run(options)
		if err != nil {
			return err
		}
		fmt.Printf("Spectrogram saved to: %s (%d frames, magnitude %.4g..%.4g)\n",
			res.OutputPath, res.Frames, res.Min, res.Max)
		return nil
	}
}

func printInfo(path string, windowSize, hopSize int) error {
	clip, err := audio.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("File:        %s\n", path)
	fmt.Printf("Sample rate: %d Hz\n", clip.SampleRate)
	fmt.Printf("Channels:    %d\n", clip.Channels)
	fmt.Printf("Bit depth:   %d\n", clip.BitDepth)
	fmt.Printf("Samples:     %d\n", len(clip.Data))
	fmt.Printf("Duration:    %s\n", clip.Duration())
	fmt.Printf("Frames:      %d (window %d, hop %d)\n",
		stft.FrameCount(len(clip.Data), windowSize, hopSize), windowSize, hopSize)
	return nil
}
