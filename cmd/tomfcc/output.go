package main

import "encoding/json"
import "fmt"
import "io"
import "github.com/pkg/errors"
import "gopkg.in/yaml.v3"

type result struct {
	File         string      `json:"file" yaml:"file"`
	SampleRate   int         `json:"sample_rate" yaml:"sample_rate"`
	Samples      int         `json:"samples" yaml:"samples"`
	Aggregation  string      `json:"aggregation" yaml:"aggregation"`
	Coefficients [][]float32 `json:"coefficients" yaml:"coefficients,flow"`
}

type filterbankResult struct {
	SampleRate   int       `json:"sample_rate" yaml:"sample_rate"`
	NFFT         int       `json:"n_fft" yaml:"n_fft"`
	NumMels      int       `json:"n_mels" yaml:"n_mels"`
	NumBins      int       `json:"n_bins" yaml:"n_bins"`
	MelScale     string    `json:"mel_scale" yaml:"mel_scale"`
	Normalized   bool      `json:"normalized" yaml:"normalized"`
	EmptyFilters int       `json:"empty_filters" yaml:"empty_filters"`
	EdgesHz      []float64 `json:"edges_hz" yaml:"edges_hz,flow"`
}

// writeResult prints v as json, yaml or plain text.
func writeResult(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	case "text":
		return writeText(w, v)
	}
	return errors.Errorf("unsupported output format %q", format)
}

func writeText(w io.Writer, v interface{}) error {
	switch r := v.(type) {
	case *result:
		for _, row := range r.Coefficients {
			for i, c := range row {
				if i > 0 {
					fmt.Fprint(w, " ")
				}
				fmt.Fprintf(w, "%.6f", c)
			}
			fmt.Fprintln(w)
		}
	case *filterbankResult:
		fmt.Fprintf(w, "sample_rate=%d n_fft=%d n_mels=%d n_bins=%d mel_scale=%s normalized=%t empty_filters=%d\n",
			r.SampleRate, r.NFFT, r.NumMels, r.NumBins, r.MelScale, r.Normalized, r.EmptyFilters)
		for i, hz := range r.EdgesHz {
			fmt.Fprintf(w, "%d %.3f\n", i, hz)
		}
	default:
		_, err := fmt.Fprintln(w, v)
		return err
	}
	return nil
}
