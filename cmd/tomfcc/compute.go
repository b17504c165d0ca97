package main

import "github.com/sirupsen/logrus"
import "github.com/spf13/cobra"
import "github.com/neurlang/gomfcc/audio"
import "github.com/neurlang/gomfcc/mfcc"

var computeCmd = &cobra.Command{
	Use:   "compute <audio_file>",
	Short: "Print the aggregated coefficient vector of an audio file",
	Long: `Decode a WAV or FLAC file, mix it down to mono, resample it to the analysis
rate and print one coefficient vector, taken from the first frame or averaged
over all frames according to --aggregation.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompute,
}

func init() {
	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg, m, err := loadConfig()
	if err != nil {
		return err
	}

	signal, err := loadSignal(args[0], m.SampleRate)
	if err != nil {
		return err
	}

	return mfcc.WithFeatures(m, signal, func(features []float32) error {
		return writeResult(cmd.OutOrStdout(), cfg.OutputFormat, &result{
			File:         args[0],
			SampleRate:   m.SampleRate,
			Samples:      len(signal),
			Aggregation:  m.Aggregation.String(),
			Coefficients: [][]float32{features},
		})
	})
}

// loadSignal decodes name and resamples it to sampleRate.
func loadSignal(name string, sampleRate int) ([]float64, error) {
	signal, sr, err := audio.Load(name)
	if err != nil {
		return nil, err
	}
	if sr != sampleRate {
		logrus.WithFields(logrus.Fields{
			"file": name,
			"from": sr,
			"to":   sampleRate,
		}).Info("Resampling input")

		signal, err = audio.Resample(signal, sr, sampleRate)
		if err != nil {
			return nil, err
		}
	}
	return signal, nil
}
