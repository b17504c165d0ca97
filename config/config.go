package config

import "strings"
import "github.com/pkg/errors"
import "github.com/sirupsen/logrus"
import "github.com/spf13/viper"
import "github.com/neurlang/gomfcc/mfcc"

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Feature extraction settings
	MFCC MFCCConfig `mapstructure:"mfcc"`
}

// MFCCConfig contains the feature extraction parameters
type MFCCConfig struct {
	SampleRate   int     `mapstructure:"sample_rate"`
	NFFT         int     `mapstructure:"n_fft"`
	NumMels      int     `mapstructure:"n_mels"`
	NumMFCC      int     `mapstructure:"n_mfcc"`
	Fmin         float64 `mapstructure:"fmin"`
	Fmax         float64 `mapstructure:"fmax"`
	PreEmphasis  float64 `mapstructure:"preemphasis"`
	FrameLength  int     `mapstructure:"frame_length"`
	FrameStep    int     `mapstructure:"frame_step"`
	Window       string  `mapstructure:"window"`
	MelScale     string  `mapstructure:"mel_scale"`
	NormalizeMel bool    `mapstructure:"normalize_mel"`
	LogScale     string  `mapstructure:"log_scale"`
	TopDB        float64 `mapstructure:"top_db"`
	Lifter       int     `mapstructure:"lifter"`
	OneSided     bool    `mapstructure:"one_sided"`
	Aggregation  string  `mapstructure:"aggregation"`
	Workers      int     `mapstructure:"workers"`
}

// Load decodes the configuration held by v. Missing keys take their defaults.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "unable to decode configuration")
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}

	switch c.OutputFormat {
	case "json", "yaml", "text":
	default:
		return errors.Errorf("output format must be json, yaml or text, got %q", c.OutputFormat)
	}

	m, err := c.MFCC.Build()
	if err != nil {
		return err
	}
	return m.Validate()
}

// Level returns the logrus level selected by LogLevel, raised to debug by Verbose.
func (c *Config) Level() (logrus.Level, error) {
	if c.Verbose {
		return logrus.DebugLevel, nil
	}
	level, err := logrus.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return logrus.InfoLevel, errors.Wrap(err, "invalid log level")
	}
	return level, nil
}

// Build converts the configuration to an mfcc.MFCC.
func (c *MFCCConfig) Build() (*mfcc.MFCC, error) {
	window, err := mfcc.ParseWindowFunc(strings.ToLower(c.Window))
	if err != nil {
		return nil, err
	}
	scale, err := mfcc.ParseMelScale(strings.ToLower(c.MelScale))
	if err != nil {
		return nil, err
	}
	logScale, err := mfcc.ParseLogScale(strings.ToLower(c.LogScale))
	if err != nil {
		return nil, err
	}
	aggregation, err := mfcc.ParseAggregation(strings.ToLower(c.Aggregation))
	if err != nil {
		return nil, err
	}

	m := mfcc.NewMFCC()
	m.SampleRate = c.SampleRate
	m.NFFT = c.NFFT
	m.NumMels = c.NumMels
	m.NumMFCC = c.NumMFCC
	m.Fmin = c.Fmin
	m.Fmax = c.Fmax
	m.PreEmphasis = c.PreEmphasis
	m.FrameLength = c.FrameLength
	m.FrameStep = c.FrameStep
	m.Window = window
	m.MelScale = scale
	m.NormalizeMel = c.NormalizeMel
	m.LogScale = logScale
	m.TopDB = c.TopDB
	m.Lifter = c.Lifter
	m.OneSided = c.OneSided
	m.Aggregation = aggregation
	m.Workers = c.Workers
	return m, nil
}
