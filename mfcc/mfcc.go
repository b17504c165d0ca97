package mfcc

import "math"
import "runtime"
import "github.com/mjibson/go-dsp/dsputils"
import "github.com/mjibson/go-dsp/fft"
import "github.com/pkg/errors"
import "github.com/sirupsen/logrus"
import "golang.org/x/sync/errgroup"

// DefaultMaxElements bounds every buffer the pipeline allocates when
// MFCC.MaxElements is not set.
const DefaultMaxElements = 1 << 28

// Aggregation selects how the frames of a signal collapse into the single
// coefficient vector returned by Compute.
type Aggregation int

const (
	// FirstFrame returns the coefficients of the first frame.
	FirstFrame Aggregation = iota
	// MeanFrames returns the mean of the coefficients of all frames.
	MeanFrames
)

func (a Aggregation) String() string {
	if a == MeanFrames {
		return "mean"
	}
	return "first"
}

// ParseAggregation maps "first" or "mean" to an Aggregation.
func ParseAggregation(name string) (Aggregation, error) {
	switch name {
	case "first", "":
		return FirstFrame, nil
	case "mean":
		return MeanFrames, nil
	}
	return FirstFrame, configError("aggregation", name, "expected first or mean")
}

// MFCC represents the configuration for computing mel frequency cepstral coefficients.
type MFCC struct {
	SampleRate int
	NFFT       int
	NumMels    int
	NumMFCC    int
	Fmin       float64
	Fmax       float64

	// PreEmphasis is the coefficient of the first-order high-pass filter, 0 disables it.
	PreEmphasis float64

	// FrameLength is the analysis window in samples, zero-padded to NFFT.
	FrameLength int
	FrameStep   int

	Window       WindowFunc
	MelScale     MelScale
	NormalizeMel bool
	LogScale     LogScale

	// TopDB clips decibel energies below -TopDB, ignored for Natural.
	TopDB float64

	// Lifter applies sinusoidal liftering when positive.
	Lifter int

	// OneSided doubles every power bin other than DC and Nyquist.
	OneSided bool

	Aggregation Aggregation

	// Workers bounds the goroutines of ComputeFrames, 0 means GOMAXPROCS.
	Workers int

	// MaxElements bounds the size of any single buffer, 0 means DefaultMaxElements.
	MaxElements int
}

// NewMFCC creates a new MFCC instance with default values.
func NewMFCC() *MFCC {
	return &MFCC{
		SampleRate:  16000,
		NFFT:        512,
		NumMels:     80,
		NumMFCC:     40,
		Fmin:        0,
		Fmax:        8000,
		PreEmphasis: 0.97,
		FrameLength: 400,
		FrameStep:   160,
		Window:      Hamming,
		MelScale:    HTK,
		LogScale:    Natural,
		TopDB:       80,
		Aggregation: FirstFrame,
	}
}

// Validate checks the parameter combination without allocating anything.
func (m *MFCC) Validate() error {
	switch {
	case m.NFFT < 2 || !dsputils.IsPowerOf2(m.NFFT):
		return configError("n_fft", m.NFFT, "must be a power of two")
	case m.FrameLength < 1 || m.FrameLength > m.NFFT:
		return configError("frame_length", m.FrameLength, "must be in [1, n_fft]")
	case m.FrameStep < 1:
		return configError("frame_step", m.FrameStep, "must be at least 1")
	case m.NumMFCC < 1 || m.NumMFCC > m.NumMels:
		return configError("n_mfcc", m.NumMFCC, "must be in [1, n_mels]")
	case math.IsNaN(m.PreEmphasis) || math.IsInf(m.PreEmphasis, 0):
		return configError("preemphasis", m.PreEmphasis, "must be finite")
	case m.Window < Hamming || m.Window > Rectangular:
		return configError("window", int(m.Window), "unknown window function")
	case m.MelScale != HTK && m.MelScale != Slaney:
		return configError("mel_scale", int(m.MelScale), "unknown mel scale")
	case m.LogScale != Natural && m.LogScale != Decibel:
		return configError("log_scale", int(m.LogScale), "unknown log scale")
	case math.IsNaN(m.TopDB) || m.TopDB < 0:
		return configError("top_db", m.TopDB, "must be non-negative")
	case m.Lifter < 0:
		return configError("lifter", m.Lifter, "must be non-negative")
	case m.Aggregation != FirstFrame && m.Aggregation != MeanFrames:
		return configError("aggregation", int(m.Aggregation), "unknown aggregation")
	case m.Workers < 0:
		return configError("workers", m.Workers, "must be non-negative")
	case m.MaxElements < 0:
		return configError("max_elements", m.MaxElements, "must be non-negative")
	}
	return validateFilterbank(m.SampleRate, m.NFFT, m.NumMels, m.Fmin, m.Fmax)
}

// NewFilterbank builds the filterbank described by the configuration, for
// reuse across ComputeWith calls.
func (m *MFCC) NewFilterbank() (*Filterbank, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := m.checkAllocation(1, false); err != nil {
		return nil, err
	}
	return NewFilterbank(m.SampleRate, m.NFFT, m.NumMels, m.Fmin, m.Fmax, m.MelScale, m.NormalizeMel)
}

// checkAllocation refuses sizes that overflow or exceed MaxElements before
// anything is allocated.
func (m *MFCC) checkAllocation(n int, allFrames bool) error {
	limit := m.MaxElements
	if limit == 0 {
		limit = DefaultMaxElements
	}
	num := NumFrames(n, m.FrameLength, m.FrameStep)
	bins := m.NFFT/2 + 1

	sizes := []struct {
		name string
		a, b int
	}{
		{"signal", n, 1},
		{"frame", m.NFFT, 1},
		{"filterbank", m.NumMels, bins},
		{"dct", m.NumMFCC, m.NumMels},
	}
	if allFrames {
		sizes = append(sizes, []struct {
			name string
			a, b int
		}{
			{"padded_signal", num, m.FrameStep + m.NFFT},
			{"spectra", num, bins},
			{"features", num, m.NumMFCC},
		}...)
	}
	for _, s := range sizes {
		if s.a > 0 && s.b > limit/s.a {
			return errors.Wrapf(ErrAllocation, "%s needs %d x %d elements, limit is %d", s.name, s.a, s.b, limit)
		}
	}
	return nil
}

func (m *MFCC) prepare(fb *Filterbank, n int, allFrames bool) (*pipeline, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, configError("signal_length", n, "must be at least 1")
	}
	if err := m.checkAllocation(n, allFrames); err != nil {
		return nil, err
	}
	if fb == nil {
		var err error
		fb, err = NewFilterbank(m.SampleRate, m.NFFT, m.NumMels, m.Fmin, m.Fmax, m.MelScale, m.NormalizeMel)
		if err != nil {
			return nil, err
		}
	} else if field := fb.mismatch(m); field != "" {
		return nil, configError("filterbank", field, "was built with a different "+field)
	}
	return &pipeline{
		m:      m,
		fb:     fb,
		cep:    newCepstrum(m.NumMFCC, m.NumMels, m.Lifter),
		window: m.Window.Coefficients(m.FrameLength),
	}, nil
}

// Compute returns the coefficients of signal, aggregated according to
// m.Aggregation, in a new Buffer that the caller must Release.
func (m *MFCC) Compute(signal []float64) (*Buffer, error) {
	return m.ComputeWith(nil, signal)
}

// ComputeWith is Compute with a prebuilt filterbank. A nil fb builds one.
func (m *MFCC) ComputeWith(fb *Filterbank, signal []float64) (*Buffer, error) {
	p, err := m.prepare(fb, len(signal), false)
	if err != nil {
		return nil, err
	}

	y := PreEmphasis(signal, m.PreEmphasis)
	num := NumFrames(len(y), m.FrameLength, m.FrameStep)

	out := make([]float64, m.NumMFCC)
	switch m.Aggregation {
	case MeanFrames:
		coeffs := make([]float64, m.NumMFCC)
		for i := 0; i < num; i++ {
			p.frame(y, i, coeffs)
			for k := range out {
				out[k] += coeffs[k]
			}
		}
		for k := range out {
			out[k] /= float64(num)
		}
	default:
		p.frame(y, 0, out)
	}

	log("Compute").WithFields(logrus.Fields{
		"signal_length": len(signal),
		"frames":        num,
		"aggregation":   m.Aggregation.String(),
		"n_mfcc":        m.NumMFCC,
	}).Debug("Computed coefficients")

	buf := buffers.alloc(1, m.NumMFCC)
	for k, v := range out {
		buf.data[k] = float32(v)
	}
	return buf, nil
}

// ComputeFrames returns the coefficients of every frame of signal, frame
// after frame, in a new Buffer that the caller must Release. Frames are split
// into contiguous chunks computed by up to m.Workers goroutines, each with one
// STFT pass, so the result does not depend on the number of workers.
func (m *MFCC) ComputeFrames(signal []float64) (*Buffer, error) {
	p, err := m.prepare(nil, len(signal), true)
	if err != nil {
		return nil, err
	}

	y := PreEmphasis(signal, m.PreEmphasis)
	num := NumFrames(len(y), m.FrameLength, m.FrameStep)

	workers := m.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > num {
		workers = num
	}
	chunk := (num + workers - 1) / workers

	buf := buffers.alloc(num, m.NumMFCC)

	var g errgroup.Group
	g.SetLimit(workers)
	for first := 0; first < num; first += chunk {
		last := first + chunk
		if last > num {
			last = num
		}
		g.Go(func() error {
			p.chunk(y, first, last, buf)
			return nil
		})
	}
	_ = g.Wait() // chunks do not fail

	log("ComputeFrames").WithFields(logrus.Fields{
		"signal_length": len(signal),
		"frames":        num,
		"workers":       workers,
		"n_mfcc":        m.NumMFCC,
	}).Debug("Computed coefficients of all frames")

	return buf, nil
}

// WithFeatures computes the coefficients of signal, passes them to fn and
// releases them on every exit path. fn must not retain the slice.
func WithFeatures(m *MFCC, signal []float64, fn func(features []float32) error) (err error) {
	buf, err := m.Compute(signal)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := buf.Release(); err == nil {
			err = rerr
		}
	}()
	return fn(buf.Float32s())
}

// pipeline holds the per-call state shared by every frame.
type pipeline struct {
	m      *MFCC
	fb     *Filterbank
	cep    *cepstrum
	window []float64
}

// frame computes the coefficients of frame index of y into dst.
func (p *pipeline) frame(y []float64, index int, dst []float64) []float64 {
	f := frameAt(y, index, p.m.FrameLength, p.m.FrameStep)
	applyWindow(f, p.window)
	spectrum := power(fft.FFTReal(dsputils.ZeroPadF(f, p.m.NFFT)), p.m.NFFT, p.m.OneSided)
	return p.coefficients(spectrum, dst)
}

// chunk computes frames [first, last) of y into buf.
func (p *pipeline) chunk(y []float64, first, last int, buf *Buffer) {
	start := first * p.m.FrameStep
	if start > len(y) {
		start = len(y)
	}
	spectra := stftPowerSpectra(y[start:], last-first, p.window, p.m.FrameLength, p.m.FrameStep, p.m.NFFT, p.m.OneSided)

	coeffs := make([]float64, p.m.NumMFCC)
	for i, spectrum := range spectra {
		p.coefficients(spectrum, coeffs)
		dst := buf.Frame(first + i)
		for k, v := range coeffs {
			dst[k] = float32(v)
		}
	}
}

func (p *pipeline) coefficients(spectrum, dst []float64) []float64 {
	energies := p.fb.Apply(spectrum, nil)
	p.m.LogScale.compress(energies, p.m.TopDB)
	return p.cep.apply(energies, dst)
}
