package mfcc

import "github.com/mjibson/go-dsp/window"

// PreEmphasis applies the first-order high-pass filter y[i] = x[i] - alpha*x[i-1].
// The first sample passes through unchanged and x is not modified.
func PreEmphasis(x []float64, alpha float64) []float64 {
	if len(x) == 0 {
		return nil
	}
	y := make([]float64, len(x))
	y[0] = x[0]
	for i := 1; i < len(x); i++ {
		y[i] = x[i] - alpha*x[i-1]
	}
	return y
}

// NumFrames returns how many frames Frames produces for a signal of n samples.
// Signals shorter than one frame still yield a single zero-padded frame.
func NumFrames(n, frameLength, frameStep int) int {
	if n <= frameLength {
		return 1
	}
	return 1 + (n-frameLength)/frameStep
}

// Frames copies y into overlapping frames of frameLength samples, one every
// frameStep samples. Samples past the end of y are zero. A trailing region
// shorter than frameLength that does not start a full frame is dropped.
func Frames(y []float64, frameLength, frameStep int) [][]float64 {
	num := NumFrames(len(y), frameLength, frameStep)
	frames := make([][]float64, num)
	for i := range frames {
		frames[i] = frameAt(y, i, frameLength, frameStep)
	}
	return frames
}

func frameAt(y []float64, index, frameLength, frameStep int) []float64 {
	frame := make([]float64, frameLength)
	start := index * frameStep
	if start < len(y) {
		copy(frame, y[start:])
	}
	return frame
}

// WindowFunc selects the analysis window applied to every frame.
type WindowFunc int

const (
	Hamming WindowFunc = iota
	Hann
	Blackman
	Rectangular
)

var windowNames = map[WindowFunc]string{
	Hamming:     "hamming",
	Hann:        "hann",
	Blackman:    "blackman",
	Rectangular: "rectangular",
}

func (w WindowFunc) String() string {
	if s, ok := windowNames[w]; ok {
		return s
	}
	return "unknown"
}

// ParseWindowFunc maps a window name to its WindowFunc.
func ParseWindowFunc(name string) (WindowFunc, error) {
	for w, s := range windowNames {
		if s == name {
			return w, nil
		}
	}
	return Hamming, configError("window", name, "unknown window function")
}

// Coefficients returns the length-n window. go-dsp returns symmetric windows,
// so the Hamming variant is 0.54 - 0.46*cos(2*pi*i/(n-1)).
func (w WindowFunc) Coefficients(n int) []float64 {
	switch w {
	case Hann:
		return window.Hann(n)
	case Blackman:
		return window.Blackman(n)
	case Rectangular:
		return window.Rectangular(n)
	default:
		return window.Hamming(n)
	}
}

func applyWindow(frame, coeffs []float64) {
	for i := range frame {
		frame[i] *= coeffs[i]
	}
}
