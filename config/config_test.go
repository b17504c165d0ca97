package config

import "os"
import "path/filepath"
import "strings"
import "testing"
import "github.com/sirupsen/logrus"
import "github.com/spf13/viper"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"
import "github.com/neurlang/gomfcc/mfcc"

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), c)
	require.NoError(t, c.Validate())

	m, err := c.MFCC.Build()
	require.NoError(t, err)
	assert.Equal(t, mfcc.NewMFCC(), m)
}

func TestLoad_YAMLFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "gomfcc.yaml")
	require.NoError(t, os.WriteFile(name, []byte(`
log_level: debug
output_format: yaml
mfcc:
  sample_rate: 22050
  n_fft: 1024
  fmax: 11025
  window: hann
  mel_scale: slaney
  normalize_mel: true
  log_scale: db
  aggregation: mean
`), 0o644))

	v := viper.New()
	v.SetConfigFile(name)
	require.NoError(t, v.ReadInConfig())

	c, err := Load(v)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)

	m, err := c.MFCC.Build()
	require.NoError(t, err)
	assert.Equal(t, 22050, m.SampleRate)
	assert.Equal(t, 1024, m.NFFT)
	assert.Equal(t, 80, m.NumMels)
	assert.Equal(t, mfcc.Hann, m.Window)
	assert.Equal(t, mfcc.Slaney, m.MelScale)
	assert.True(t, m.NormalizeMel)
	assert.Equal(t, mfcc.Decibel, m.LogScale)
	assert.Equal(t, mfcc.MeanFrames, m.Aggregation)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GOMFCC_MFCC_N_MFCC", "13")

	v := viper.New()
	v.SetEnvPrefix("GOMFCC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 13, c.MFCC.NumMFCC)
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"log level":   func(c *Config) { c.LogLevel = "loud" },
		"output":      func(c *Config) { c.OutputFormat = "xml" },
		"window":      func(c *Config) { c.MFCC.Window = "kaiser" },
		"mel scale":   func(c *Config) { c.MFCC.MelScale = "bark" },
		"log scale":   func(c *Config) { c.MFCC.LogScale = "log2" },
		"aggregation": func(c *Config) { c.MFCC.Aggregation = "max" },
		"n_fft":       func(c *Config) { c.MFCC.NFFT = 500 },
	}
	for name, apply := range cases {
		t.Run(name, func(t *testing.T) {
			c := GetDefaultConfig()
			apply(c)
			assert.Error(t, c.Validate())
		})
	}

	c := GetDefaultConfig()
	c.MFCC.NumMFCC = 100
	assert.ErrorIs(t, c.Validate(), mfcc.ErrConfiguration)
}

func TestLevel_Verbose(t *testing.T) {
	c := GetDefaultConfig()
	c.LogLevel = "warn"
	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, level)

	c.Verbose = true
	level, err = c.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)
}

func TestHighResolutionMFCCConfig(t *testing.T) {
	c := HighResolutionMFCCConfig()
	m, err := c.Build()
	require.NoError(t, err)
	assert.NoError(t, m.Validate())
}
