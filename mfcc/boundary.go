package mfcc

import "math"
import "github.com/mjibson/go-dsp/dsputils"
import "github.com/pkg/errors"

// ComputeRaw is the flat entry point for callers that cannot hold a *Buffer.
// It reads the first signalLength samples of audio, computes the first-frame
// coefficients with the Hamming window, HTK mel scale and natural log, and
// returns the handle of a buffer that must be passed to ReleaseHandle.
// Every precondition is checked before anything is allocated.
func ComputeRaw(audio []float32, signalLength, sampleRate, nFFT, nMels, nMFCC int32,
	fmin, fmax, preemphasis float32, frameLength, frameStep int32) (Handle, error) {

	switch {
	case signalLength < 1:
		return 0, configError("signal_length", signalLength, "must be at least 1")
	case len(audio) < int(signalLength):
		return 0, configError("signal_length", signalLength, "exceeds the audio buffer")
	case sampleRate < 1:
		return 0, configError("sample_rate", sampleRate, "must be positive")
	case nFFT < 2 || !dsputils.IsPowerOf2(int(nFFT)):
		return 0, configError("n_fft", nFFT, "must be a power of two")
	case frameLength < 1 || frameLength > nFFT:
		return 0, configError("frame_length", frameLength, "must be in [1, n_fft]")
	case nMFCC < 1 || nMFCC > nMels:
		return 0, configError("n_mfcc", nMFCC, "must be in [1, n_mels]")
	case frameStep < 1:
		return 0, configError("frame_step", frameStep, "must be at least 1")
	case isNaN32(fmin) || fmin < 0 || isNaN32(fmax) || fmin >= fmax:
		return 0, configError("fmin", fmin, "must be non-negative and below fmax")
	case float64(fmax) > float64(sampleRate)/2:
		return 0, configError("fmax", fmax, "must not exceed sample_rate/2")
	}

	m := NewMFCC()
	m.SampleRate = int(sampleRate)
	m.NFFT = int(nFFT)
	m.NumMels = int(nMels)
	m.NumMFCC = int(nMFCC)
	m.Fmin = float64(fmin)
	m.Fmax = float64(fmax)
	m.PreEmphasis = float64(preemphasis)
	m.FrameLength = int(frameLength)
	m.FrameStep = int(frameStep)

	signal := make([]float64, signalLength)
	for i := range signal {
		signal[i] = float64(audio[i])
	}

	buf, err := m.Compute(signal)
	if err != nil {
		return 0, err
	}
	return buf.handle, nil
}

// ReleaseHandle releases the buffer behind h.
func ReleaseHandle(h Handle) error {
	return buffers.releaseHandle(h)
}

// Floats returns a copy of the coefficients behind a live handle.
func Floats(h Handle) ([]float32, error) {
	b, err := buffers.lookup(h)
	if err != nil {
		return nil, err
	}
	return append([]float32(nil), b.data...), nil
}

// Lookup returns the Buffer behind a live handle.
func Lookup(h Handle) (*Buffer, error) {
	b, err := buffers.lookup(h)
	if err != nil {
		return nil, errors.Wrap(err, "lookup")
	}
	return b, nil
}

func isNaN32(f float32) bool {
	return math.IsNaN(float64(f))
}
