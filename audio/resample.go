package audio

import "github.com/pkg/errors"
import "github.com/sirupsen/logrus"
import resampling "github.com/tphakala/go-audio-resampling"

// Resample converts mono samples from one sample rate to another. Equal rates
// return the input unchanged.
func Resample(samples []float64, from, to int) ([]float64, error) {
	if from <= 0 || to <= 0 {
		return nil, errors.Errorf("invalid sample rates %d -> %d", from, to)
	}
	if from == to {
		return samples, nil
	}

	config := &resampling.Config{
		InputRate:  float64(from),
		OutputRate: float64(to),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	}
	resampler, err := resampling.New(config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create resampler")
	}

	output, err := resampler.Process(samples)
	if err != nil {
		return nil, errors.Wrap(err, "resample error")
	}

	logrus.WithFields(logrus.Fields{
		"function": "Resample",
		"from":     from,
		"to":       to,
		"in":       len(samples),
		"out":      len(output),
	}).Debug("Resampled")

	return output, nil
}
