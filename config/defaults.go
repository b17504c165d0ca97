package config

import "github.com/spf13/viper"
import "github.com/neurlang/gomfcc/mfcc"

// SetDefaults sets default configuration values for every key not already set
func SetDefaults(v *viper.Viper) {
	d := GetDefaultMFCCConfig()

	defaults := map[string]interface{}{
		"verbose":       false,
		"log_level":     "info",
		"output_format": "json",

		"mfcc.sample_rate":   d.SampleRate,
		"mfcc.n_fft":         d.NFFT,
		"mfcc.n_mels":        d.NumMels,
		"mfcc.n_mfcc":        d.NumMFCC,
		"mfcc.fmin":          d.Fmin,
		"mfcc.fmax":          d.Fmax,
		"mfcc.preemphasis":   d.PreEmphasis,
		"mfcc.frame_length":  d.FrameLength,
		"mfcc.frame_step":    d.FrameStep,
		"mfcc.window":        d.Window,
		"mfcc.mel_scale":     d.MelScale,
		"mfcc.normalize_mel": d.NormalizeMel,
		"mfcc.log_scale":     d.LogScale,
		"mfcc.top_db":        d.TopDB,
		"mfcc.lifter":        d.Lifter,
		"mfcc.one_sided":     d.OneSided,
		"mfcc.aggregation":   d.Aggregation,
		"mfcc.workers":       d.Workers,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Verbose:      false,
		LogLevel:     "info",
		OutputFormat: "json",
		MFCC:         GetDefaultMFCCConfig(),
	}
}

// GetDefaultMFCCConfig mirrors mfcc.NewMFCC.
func GetDefaultMFCCConfig() MFCCConfig {
	m := mfcc.NewMFCC()
	return MFCCConfig{
		SampleRate:   m.SampleRate,
		NFFT:         m.NFFT,
		NumMels:      m.NumMels,
		NumMFCC:      m.NumMFCC,
		Fmin:         m.Fmin,
		Fmax:         m.Fmax,
		PreEmphasis:  m.PreEmphasis,
		FrameLength:  m.FrameLength,
		FrameStep:    m.FrameStep,
		Window:       m.Window.String(),
		MelScale:     m.MelScale.String(),
		NormalizeMel: m.NormalizeMel,
		LogScale:     m.LogScale.String(),
		TopDB:        m.TopDB,
		Lifter:       m.Lifter,
		OneSided:     m.OneSided,
		Aggregation:  m.Aggregation.String(),
		Workers:      m.Workers,
	}
}

// HighResolutionMFCCConfig returns a configuration for 44.1 kHz material.
func HighResolutionMFCCConfig() MFCCConfig {
	c := GetDefaultMFCCConfig()
	c.SampleRate = 44100
	c.NFFT = 2048
	c.FrameLength = 1764
	c.FrameStep = 441
	c.NumMels = 128
	c.NumMFCC = 40
	c.Fmax = 22050
	return c
}
