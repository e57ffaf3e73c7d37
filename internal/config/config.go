package config

// Defaults and limits for a spectrogram run.
const (
	DefaultWindowSize = 1024 // STFT window length in samples
	DefaultHopSize    = 512  // 50% overlap

	DefaultOutputPath  = "spectrogram.png"
	DefaultWidth       = 1024
	DefaultHeight      = 768
	DefaultMargin      = 40
	DefaultXLabelArea  = 30
	DefaultYLabelArea  = 30
	DefaultPointRadius = 1
	DefaultFontSize    = 12.0
	DefaultAxisUnits   = AxisUnitsRaw
	DefaultLogLevel    = "info"

	// DefaultConfigFile is picked up from the working directory when no
	// explicit path is given.
	DefaultConfigFile = "spectro.yaml"
	// DefaultEnvFile supplies ENV_* values without touching the process env.
	DefaultEnvFile = ".env"
)

// Axis label modes.
const (
	// AxisUnitsRaw labels ticks with the frame and bin index.
	AxisUnitsRaw = "raw"
	// AxisUnitsPhysical converts ticks to seconds and Hz using the sample rate.
	AxisUnitsPhysical = "physical"
)

// Config holds all runtime options for one spectrogram run. It is built
// from defaults, an optional YAML file, env overrides and finally CLI flags.
type Config struct {
	Debug    bool           `yaml:"debug"`
	LogLevel string         `yaml:"log_level"`
	Input    InputConfig    `yaml:"input"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Render   RenderConfig   `yaml:"render"`

	// Set by the CLI, never read from YAML.
	Command    string     `yaml:"-"` // sub-command to execute ("", "info", "tone")
	Args       []string   `yaml:"-"` // positional arguments of the sub-command
	ConfigPath string     `yaml:"-"`
	Verbose    bool       `yaml:"-"`
	Tone       ToneConfig `yaml:"-"`
}

// InputConfig locates the audio to analyse.
type InputConfig struct {
	Path string `yaml:"path"` // 16-bit PCM WAV; only channel 0 is used
}

// AnalysisConfig holds the STFT framing.
type AnalysisConfig struct {
	WindowSize int `yaml:"window_size"` // samples per frame and FFT length
	HopSize    int `yaml:"hop_size"`    // stride between frame starts
}

// RenderConfig controls the output image.
type RenderConfig struct {
	OutputPath  string  `yaml:"output_path"`  // .png or .bmp
	Width       int     `yaml:"width"`        // canvas width in pixels
	Height      int     `yaml:"height"`       // canvas height in pixels
	Margin      int     `yaml:"margin"`       // blank border on every side
	XLabelArea  int     `yaml:"x_label_area"` // height reserved below the plot for X tick labels
	YLabelArea  int     `yaml:"y_label_area"` // width reserved left of the plot for Y tick labels
	PointRadius int     `yaml:"point_radius"` // radius of each heatmap point
	FontSize    float64 `yaml:"font_size"`    // tick label size in points
	AxisUnits   string  `yaml:"axis_units"`   // "raw" or "physical"
}

// ToneConfig parameterises the tone sub-command.
type ToneConfig struct {
	Frequency  float64
	Duration   float64 // seconds
	SampleRate int
	Amplitude  float64 // 0..1 of full scale
	OutputPath string
}

// NewConfig returns a Config populated with defaults only.
func NewConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Analysis: AnalysisConfig{
			WindowSize: DefaultWindowSize,
			HopSize:    DefaultHopSize,
		},
		Render: RenderConfig{
			OutputPath:  DefaultOutputPath,
			Width:       DefaultWidth,
			Height:      DefaultHeight,
			Margin:      DefaultMargin,
			XLabelArea:  DefaultXLabelArea,
			YLabelArea:  DefaultYLabelArea,
			PointRadius: DefaultPointRadius,
			FontSize:    DefaultFontSize,
			AxisUnits:   DefaultAxisUnits,
		},
		Tone: ToneConfig{
			Frequency:  440,
			Duration:   2,
			SampleRate: 44100,
			Amplitude:  0.8,
			OutputPath: "tone.wav",
		},
	}
}
