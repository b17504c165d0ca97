package main

import "fmt"
import "os"
import "path/filepath"
import "strings"
import "github.com/sirupsen/logrus"
import "github.com/spf13/cobra"
import "github.com/spf13/pflag"
import "github.com/spf13/viper"
import "github.com/neurlang/gomfcc/config"
import "github.com/neurlang/gomfcc/mfcc"

var (
	configFile   string
	verbose      bool
	logLevel     string
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tomfcc",
	Short: "Mel frequency cepstral coefficients of audio files",
	Long: `tomfcc decodes WAV or FLAC audio, resamples it to the analysis rate and
computes mel frequency cepstral coefficients.

Parameters are read from flags, GOMFCC_* environment variables and an
optional YAML configuration file, in that order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// flagKeys maps MFCC flags to their configuration keys.
var flagKeys = map[string]string{
	"verbose":       "verbose",
	"log-level":     "log_level",
	"output":        "output_format",
	"sample-rate":   "mfcc.sample_rate",
	"n-fft":         "mfcc.n_fft",
	"n-mels":        "mfcc.n_mels",
	"n-mfcc":        "mfcc.n_mfcc",
	"fmin":          "mfcc.fmin",
	"fmax":          "mfcc.fmax",
	"preemphasis":   "mfcc.preemphasis",
	"frame-length":  "mfcc.frame_length",
	"frame-step":    "mfcc.frame_step",
	"window":        "mfcc.window",
	"mel-scale":     "mfcc.mel_scale",
	"normalize-mel": "mfcc.normalize_mel",
	"log-scale":     "mfcc.log_scale",
	"top-db":        "mfcc.top_db",
	"lifter":        "mfcc.lifter",
	"one-sided":     "mfcc.one_sided",
	"aggregation":   "mfcc.aggregation",
	"workers":       "mfcc.workers",
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/gomfcc/gomfcc.yaml)")

	// Output and logging flags
	flags.BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	flags.StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	flags.StringVarP(&outputFormat, "output", "o", "json",
		"output format (json, yaml, text)")

	// Feature extraction flags
	d := config.GetDefaultMFCCConfig()
	flags.Int("sample-rate", d.SampleRate, "analysis sample rate in Hz, input is resampled to it")
	flags.Int("n-fft", d.NFFT, "FFT size, a power of two")
	flags.Int("n-mels", d.NumMels, "number of mel filters")
	flags.Int("n-mfcc", d.NumMFCC, "number of coefficients kept")
	flags.Float64("fmin", d.Fmin, "lowest filter frequency in Hz")
	flags.Float64("fmax", d.Fmax, "highest filter frequency in Hz")
	flags.Float64("preemphasis", d.PreEmphasis, "pre-emphasis coefficient, 0 disables it")
	flags.Int("frame-length", d.FrameLength, "analysis window in samples")
	flags.Int("frame-step", d.FrameStep, "hop between frames in samples")
	flags.String("window", d.Window, "window function (hamming, hann, blackman, rectangular)")
	flags.String("mel-scale", d.MelScale, "mel scale (htk, slaney)")
	flags.Bool("normalize-mel", d.NormalizeMel, "scale every filter to unit area")
	flags.String("log-scale", d.LogScale, "log compression (natural, db)")
	flags.Float64("top-db", d.TopDB, "decibel floor below 0 dB for the db log scale")
	flags.Int("lifter", d.Lifter, "sinusoidal lifter length, 0 disables it")
	flags.Bool("one-sided", d.OneSided, "double the power of non DC and Nyquist bins")
	flags.String("aggregation", d.Aggregation, "how compute collapses frames (first, mean)")
	flags.Int("workers", d.Workers, "goroutines used for all frames, 0 means GOMAXPROCS")

	for name, key := range flagKeys {
		viper.BindPFlag(key, flags.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gomfcc"))
		}
		viper.AddConfigPath("./configs")
		viper.SetConfigName("gomfcc")
		viper.SetConfigType("yaml")
	}

	// Environment variable support
	viper.SetEnvPrefix("GOMFCC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		logrus.WithField("file", viper.ConfigFileUsed()).Debug("Using config file")
	}
}

// initializeConfig initializes configuration after flags are parsed
func initializeConfig(cmd *cobra.Command) error {
	return bindFlags(cmd, viper.GetViper())
}

// bindFlags binds each cobra flag to its associated viper configuration
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}

		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

// loadConfig decodes and validates the configuration, applies the log level
// and returns the feature extractor it describes.
func loadConfig() (*config.Config, *mfcc.MFCC, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	logrus.SetLevel(level)

	m, err := cfg.MFCC.Build()
	if err != nil {
		return nil, nil, err
	}
	return cfg, m, nil
}
