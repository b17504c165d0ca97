package main

import "github.com/sirupsen/logrus"
import "github.com/spf13/cobra"
import "github.com/neurlang/gomfcc/audio"

var filterbankCmd = &cobra.Command{
	Use:   "filterbank",
	Short: "Describe the mel filterbank of the current configuration",
	Args:  cobra.NoArgs,
	RunE:  runFilterbank,
}

func init() {
	filterbankCmd.Flags().String("png", "", "save the filter weights to this PNG file, one column per filter")
	rootCmd.AddCommand(filterbankCmd)
}

func runFilterbank(cmd *cobra.Command, args []string) error {
	cfg, m, err := loadConfig()
	if err != nil {
		return err
	}

	fb, err := m.NewFilterbank()
	if err != nil {
		return err
	}

	if name, _ := cmd.Flags().GetString("png"); name != "" {
		rows := make([][]float64, fb.NumMels())
		for i := range rows {
			rows[i] = fb.Row(i)
		}
		if err := audio.SavePNG(name, rows, true); err != nil {
			return err
		}
		logrus.WithField("file", name).Info("Saved filterbank")
	}

	return writeResult(cmd.OutOrStdout(), cfg.OutputFormat, &filterbankResult{
		SampleRate:   m.SampleRate,
		NFFT:         m.NFFT,
		NumMels:      fb.NumMels(),
		NumBins:      fb.NumBins(),
		MelScale:     m.MelScale.String(),
		Normalized:   m.NormalizeMel,
		EmptyFilters: fb.EmptyFilters(),
		EdgesHz:      fb.EdgeFrequencies(),
	})
}
