package cmd

import (
	"spectro/internal/config"
	"spectro/pkg/build"

	"github.com/spf13/cobra"
)

// Command names stored in config.Config.Command.
const (
	CommandRender = ""
	CommandInfo   = "info"
	CommandTone   = "tone"
)

// ParseArgs builds the configuration for one invocation. Values are layered
// as defaults, config file, ENV_* overrides, then any flag that was set
// explicitly. A nil config with a nil error means cobra already handled the
// invocation (--help, --version) and there is nothing left to run.
func ParseArgs(args []string) (*config.Config, error) {
	buildInfo := build.GetBuildFlags()
	defaults := config.NewConfig()

	var (
		options    *config.Config
		configPath string
		input      string
		output     string
		axisUnits  string
		windowSize int
		hopSize    int
		verbose    bool
		tone       = defaults.Tone
	)

	load := func(cmd *cobra.Command, command string, args []string) error {
		// Validation waits until the flags are applied, so a flag can
		// repair a value the file or environment got wrong.
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("input") {
			cfg.Input.Path = input
		}
		if flags.Changed("window-size") {
			cfg.Analysis.WindowSize = windowSize
		}
		if flags.Changed("hop-size") {
			cfg.Analysis.HopSize = hopSize
		}
		if flags.Changed("axis-units") {
			cfg.Render.AxisUnits = axisUnits
		}
		if command == CommandRender && flags.Changed("output") {
			cfg.Render.OutputPath = output
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		cfg.Command = command
		cfg.Args = args
		cfg.Verbose = verbose
		cfg.Tone = tone
		options = cfg
		return nil
	}

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name + " [input.wav]",
		Short:         "Render a WAV file as a spectrogram image",
		Version:       buildInfo.VersionString(),
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// A positional path is shorthand for --input.
			if len(args) == 1 && !cmd.Flags().Changed("input") {
				if err := cmd.Flags().Set("input", args[0]); err != nil {
					return err
				}
			}
			return load(cmd, CommandRender, args)
		},
	}

	// Display help message
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Info command
	infoCmd := &cobra.Command{
		Use:   "info <input.wav>",
		Short: "Print the format of a WAV file and the frames it would produce",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return load(cmd, CommandInfo, args)
		},
	}
	rootCmd.AddCommand(infoCmd)

	// Tone command
	toneCmd := &cobra.Command{
		Use:   "tone",
		Short: "Write a mono 16-bit sine wave, useful as test input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return load(cmd, CommandTone, args)
		},
	}
	toneCmd.Flags().Float64Var(&tone.Frequency, "freq", defaults.Tone.Frequency,
		"Tone frequency in Hertz (Hz)")
	toneCmd.Flags().Float64Var(&tone.Duration, "duration", defaults.Tone.Duration,
		"Tone length in seconds")
	toneCmd.Flags().IntVar(&tone.SampleRate, "sample-rate", defaults.Tone.SampleRate,
		"Sample rate, measured in Hertz (Hz)")
	toneCmd.Flags().Float64Var(&tone.Amplitude, "amplitude", defaults.Tone.Amplitude,
		"Peak amplitude as a fraction of full scale (0..1)")
	toneCmd.Flags().StringVarP(&tone.OutputPath, "output", "o", defaults.Tone.OutputPath,
		"WAV file to write")
	rootCmd.AddCommand(toneCmd)

	// Input / Output
	rootCmd.PersistentFlags().StringVarP(&input, "input", "i", "",
		"Input WAV file (16-bit PCM, channel 0 is analysed)")
	rootCmd.Flags().StringVarP(&output, "output", "o", config.DefaultOutputPath,
		"Output image (.png or .bmp)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"YAML config file (default ./"+config.DefaultConfigFile+" if present)")

	// Analysis
	rootCmd.PersistentFlags().IntVarP(&windowSize, "window-size", "w", config.DefaultWindowSize,
		"STFT window length in samples")
	rootCmd.PersistentFlags().IntVarP(&hopSize, "hop-size", "p", config.DefaultHopSize,
		"Samples between consecutive window starts")

	// Rendering
	rootCmd.PersistentFlags().StringVar(&axisUnits, "axis-units", config.DefaultAxisUnits,
		"Axis labels: 'raw' (frame/bin index) or 'physical' (seconds/Hz)")

	// Debug Configuration
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Show verbose output")

	// Execute the CLI
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	return options, nil
}
