package mfcc

import "math"
import "github.com/sirupsen/logrus"
import "gonum.org/v1/gonum/floats"
import "gonum.org/v1/gonum/mat"

// MelScale selects the Hz to mel conversion.
type MelScale int

const (
	// HTK is mel(f) = 2595*log10(1 + f/700).
	HTK MelScale = iota
	// Slaney is linear below 1 kHz and logarithmic above, as in the Auditory Toolbox.
	Slaney
)

func (s MelScale) String() string {
	if s == Slaney {
		return "slaney"
	}
	return "htk"
}

// ParseMelScale maps "htk" or "slaney" to a MelScale.
func ParseMelScale(name string) (MelScale, error) {
	switch name {
	case "htk", "":
		return HTK, nil
	case "slaney":
		return Slaney, nil
	}
	return HTK, configError("mel_scale", name, "expected htk or slaney")
}

const (
	slaneyFsp       = 200.0 / 3
	slaneyMinLogHz  = 1000.0
	slaneyMinLogMel = slaneyMinLogHz / slaneyFsp
)

var slaneyLogStep = math.Log(6.4) / 27

func hz_to_mel(hz float64, scale MelScale) float64 {
	if scale == Slaney {
		if hz < slaneyMinLogHz {
			return hz / slaneyFsp
		}
		return slaneyMinLogMel + math.Log(hz/slaneyMinLogHz)/slaneyLogStep
	}
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

func mel_to_hz(mel float64, scale MelScale) float64 {
	if scale == Slaney {
		if mel < slaneyMinLogMel {
			return slaneyFsp * mel
		}
		return slaneyMinLogHz * math.Exp(slaneyLogStep*(mel-slaneyMinLogMel))
	}
	return 700.0 * (math.Pow(10.0, mel/2595.0) - 1.0)
}

// HzToMel converts a frequency in Hz to mels on the given scale.
func HzToMel(hz float64, scale MelScale) float64 { return hz_to_mel(hz, scale) }

// MelToHz converts mels on the given scale back to Hz.
func MelToHz(mel float64, scale MelScale) float64 { return mel_to_hz(mel, scale) }

// Filterbank is an immutable matrix of triangular mel filters with one row per
// filter and one column per FFT bin. It may be shared between goroutines.
type Filterbank struct {
	weights *mat.Dense
	hz      []float64
	empty   int

	sampleRate int
	nfft       int
	fmin, fmax float64
	scale      MelScale
	normalize  bool
}

// NewFilterbank builds nMels triangular filters whose edges are equally spaced
// in mel between fmin and fmax and mapped to the FFT bins of an nfft-point
// transform at sampleRate. With normalize each filter is scaled by
// 2/(right-left) in Hz so that its area is roughly constant.
func NewFilterbank(sampleRate, nfft, nMels int, fmin, fmax float64, scale MelScale, normalize bool) (*Filterbank, error) {
	if err := validateFilterbank(sampleRate, nfft, nMels, fmin, fmax); err != nil {
		return nil, err
	}
	bins := nfft/2 + 1

	melMin := hz_to_mel(fmin, scale)
	melStep := (hz_to_mel(fmax, scale) - melMin) / float64(nMels+1)

	hz := make([]float64, nMels+2)
	edges := make([]int, nMels+2)
	for i := range hz {
		hz[i] = mel_to_hz(melMin+float64(i)*melStep, scale)
		edges[i] = int(math.Floor(float64(nfft+1) * hz[i] / float64(sampleRate)))
		if edges[i] > nfft/2 {
			edges[i] = nfft / 2
		}
		if edges[i] < 0 {
			edges[i] = 0
		}
	}

	fb := &Filterbank{
		weights:    mat.NewDense(nMels, bins, nil),
		hz:         hz,
		sampleRate: sampleRate,
		nfft:       nfft,
		fmin:       fmin,
		fmax:       fmax,
		scale:      scale,
		normalize:  normalize,
	}
	for m := 0; m < nMels; m++ {
		left, center, right := edges[m], edges[m+1], edges[m+2]
		row := fb.weights.RawRowView(m)

		// The loop bounds guarantee a positive denominator; a zero-width
		// side contributes no weights.
		for k := left; k < center; k++ {
			row[k] = float64(k-left) / float64(center-left)
		}
		for k := center; k < right; k++ {
			row[k] = float64(right-k) / float64(right-center)
		}

		if normalize && hz[m+2] > hz[m] {
			enorm := 2.0 / (hz[m+2] - hz[m])
			for k := range row {
				row[k] *= enorm
			}
		}
		if floats.Max(row) == 0 {
			fb.empty++
		}
	}

	if fb.empty > 0 {
		log("NewFilterbank").WithFields(logrus.Fields{
			"n_mels":        nMels,
			"n_fft":         nfft,
			"sample_rate":   sampleRate,
			"empty_filters": fb.empty,
		}).Debug("Filterbank has empty filters, their energies fall to the log floor")
	}

	return fb, nil
}

func validateFilterbank(sampleRate, nfft, nMels int, fmin, fmax float64) error {
	switch {
	case sampleRate <= 0:
		return configError("sample_rate", sampleRate, "must be positive")
	case nfft < 2:
		return configError("n_fft", nfft, "must be at least 2")
	case nMels < 1:
		return configError("n_mels", nMels, "must be at least 1")
	case math.IsNaN(fmin) || fmin < 0:
		return configError("fmin", fmin, "must be non-negative")
	case math.IsNaN(fmax) || fmax <= fmin:
		return configError("fmax", fmax, "must exceed fmin")
	case fmax > float64(sampleRate)/2:
		return configError("fmax", fmax, "must not exceed sample_rate/2")
	}
	return nil
}

// NumMels returns the number of filters.
func (fb *Filterbank) NumMels() int {
	r, _ := fb.weights.Dims()
	return r
}

// NumBins returns the number of FFT bins each filter spans, nfft/2+1.
func (fb *Filterbank) NumBins() int {
	_, c := fb.weights.Dims()
	return c
}

// EmptyFilters returns how many filters have no non-zero weight.
func (fb *Filterbank) EmptyFilters() int {
	return fb.empty
}

// At returns the weight of filter m at FFT bin k.
func (fb *Filterbank) At(m, k int) float64 {
	return fb.weights.At(m, k)
}

// Row returns a copy of the weights of filter m.
func (fb *Filterbank) Row(m int) []float64 {
	return mat.Row(nil, m, fb.weights)
}

// EdgeFrequencies returns a copy of the nMels+2 filter edge frequencies in Hz.
func (fb *Filterbank) EdgeFrequencies() []float64 {
	return append([]float64(nil), fb.hz...)
}

// mismatch names the first building parameter of fb that differs from m, or
// returns "" when fb was built for m.
func (fb *Filterbank) mismatch(m *MFCC) string {
	switch {
	case fb.NumMels() != m.NumMels:
		return "n_mels"
	case fb.nfft != m.NFFT:
		return "n_fft"
	case fb.sampleRate != m.SampleRate:
		return "sample_rate"
	case fb.fmin != m.Fmin:
		return "fmin"
	case fb.fmax != m.Fmax:
		return "fmax"
	case fb.scale != m.MelScale:
		return "mel_scale"
	case fb.normalize != m.NormalizeMel:
		return "normalize_mel"
	}
	return ""
}

// Apply projects a power spectrum onto the filters, writing one energy per
// filter into dst. dst is allocated when nil. Energies are non-negative for
// any non-negative spectrum.
func (fb *Filterbank) Apply(power, dst []float64) []float64 {
	if dst == nil {
		dst = make([]float64, fb.NumMels())
	}
	out := mat.NewVecDense(len(dst), dst)
	out.MulVec(fb.weights, mat.NewVecDense(len(power), power))
	return dst
}
