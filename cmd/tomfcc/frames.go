package main

import "github.com/sirupsen/logrus"
import "github.com/spf13/cobra"
import "github.com/neurlang/gomfcc/audio"

var framesCmd = &cobra.Command{
	Use:   "frames <audio_file>",
	Short: "Print the coefficients of every frame of an audio file",
	Long: `Compute the coefficients of every frame. With --png the matrix is also saved
as a heat map with one column per frame, with --f16 as raw little-endian half
precision floats, frame after frame.`,
	Args: cobra.ExactArgs(1),
	RunE: runFrames,
}

func init() {
	framesCmd.Flags().String("png", "", "save a heat map of the coefficients to this PNG file")
	framesCmd.Flags().String("f16", "", "save the coefficients as float16 to this file")
	framesCmd.Flags().Bool("reverse", true, "put the first coefficient at the bottom of the heat map")
	framesCmd.Flags().Bool("quiet", false, "do not print the coefficients")
	rootCmd.AddCommand(framesCmd)
}

func runFrames(cmd *cobra.Command, args []string) error {
	cfg, m, err := loadConfig()
	if err != nil {
		return err
	}

	signal, err := loadSignal(args[0], m.SampleRate)
	if err != nil {
		return err
	}

	buf, err := m.ComputeFrames(signal)
	if err != nil {
		return err
	}
	defer buf.Release()

	rows := make([][]float32, buf.Frames())
	for i := range rows {
		rows[i] = buf.Frame(i)
	}

	if name, _ := cmd.Flags().GetString("png"); name != "" {
		reverse, _ := cmd.Flags().GetBool("reverse")
		if err := audio.SavePNG(name, widen(rows), reverse); err != nil {
			return err
		}
		logrus.WithField("file", name).Info("Saved heat map")
	}

	if name, _ := cmd.Flags().GetString("f16"); name != "" {
		if err := audio.SaveFloat16(name, buf.Float32s()); err != nil {
			return err
		}
		logrus.WithField("file", name).Info("Saved float16 coefficients")
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return nil
	}
	return writeResult(cmd.OutOrStdout(), cfg.OutputFormat, &result{
		File:         args[0],
		SampleRate:   m.SampleRate,
		Samples:      len(signal),
		Aggregation:  "none",
		Coefficients: rows,
	})
}

func widen(rows [][]float32) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = float64(v)
		}
	}
	return out
}
