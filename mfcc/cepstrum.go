package mfcc

import "math"
import "gonum.org/v1/gonum/mat"

// LogFloor is the smallest energy passed to the logarithm.
const LogFloor = 1e-10

// LogScale selects how filterbank energies are compressed.
type LogScale int

const (
	// Natural is ln(max(e, floor)).
	Natural LogScale = iota
	// Decibel is 10*log10(max(e, floor)) clipped below at -TopDB.
	Decibel
)

func (s LogScale) String() string {
	if s == Decibel {
		return "db"
	}
	return "natural"
}

// ParseLogScale maps "natural" or "db" to a LogScale.
func ParseLogScale(name string) (LogScale, error) {
	switch name {
	case "natural", "ln", "":
		return Natural, nil
	case "db", "decibel":
		return Decibel, nil
	}
	return Natural, configError("log_scale", name, "expected natural or db")
}

// LogCompress replaces every energy e with ln(max(e, floor)) in place and
// returns energies. The floor keeps silent and empty bands finite.
func LogCompress(energies []float64, floor float64) []float64 {
	for i, e := range energies {
		energies[i] = math.Log(math.Max(e, floor))
	}
	return energies
}

// DecibelCompress replaces every energy with 10*log10(max(e, floor)) in place,
// clipped below at -topDB when topDB is positive.
func DecibelCompress(energies []float64, floor, topDB float64) []float64 {
	for i, e := range energies {
		db := 10 * math.Log10(math.Max(e, floor))
		if topDB > 0 && db < -topDB {
			db = -topDB
		}
		energies[i] = db
	}
	return energies
}

func (s LogScale) compress(energies []float64, topDB float64) []float64 {
	if s == Decibel {
		return DecibelCompress(energies, LogFloor, topDB)
	}
	return LogCompress(energies, LogFloor)
}

// DCTMatrix returns the first nOut rows of the orthonormal DCT-II of size n:
//
//	C[k][m] = s(k) * cos(pi*k*(2m+1)/(2n)), s(0) = sqrt(1/n), s(k) = sqrt(2/n).
func DCTMatrix(nOut, n int) *mat.Dense {
	d := mat.NewDense(nOut, n, nil)
	s0 := math.Sqrt(1 / float64(n))
	sk := math.Sqrt(2 / float64(n))
	for k := 0; k < nOut; k++ {
		row := d.RawRowView(k)
		scale := sk
		if k == 0 {
			scale = s0
		}
		for m := range row {
			row[m] = scale * math.Cos(math.Pi*float64(k)*float64(2*m+1)/float64(2*n))
		}
	}
	return d
}

// lifterWeights returns 1 + L/2*sin(pi*k/L) for k in [0, n).
func lifterWeights(n, lifter int) []float64 {
	if lifter <= 0 {
		return nil
	}
	w := make([]float64, n)
	for k := range w {
		w[k] = 1 + float64(lifter)/2*math.Sin(math.Pi*float64(k)/float64(lifter))
	}
	return w
}

// cepstrum holds the transform from log mel energies to coefficients.
type cepstrum struct {
	dct    *mat.Dense
	lifter []float64
}

func newCepstrum(nMFCC, nMels, lifter int) *cepstrum {
	return &cepstrum{dct: DCTMatrix(nMFCC, nMels), lifter: lifterWeights(nMFCC, lifter)}
}

// apply writes the liftered DCT of logMel into dst.
func (c *cepstrum) apply(logMel, dst []float64) []float64 {
	out := mat.NewVecDense(len(dst), dst)
	out.MulVec(c.dct, mat.NewVecDense(len(logMel), logMel))
	for k, w := range c.lifter {
		dst[k] *= w
	}
	return dst
}
