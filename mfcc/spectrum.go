package mfcc

import "github.com/mjibson/go-dsp/dsputils"
import "github.com/mjibson/go-dsp/fft"
import "github.com/r9y9/gossp/stft"

// PowerSpectrum zero-pads frame to nfft samples and returns |X[k]|^2 for the
// nfft/2+1 non-redundant bins of its real FFT.
func PowerSpectrum(frame []float64, nfft int) []float64 {
	return power(fft.FFTReal(dsputils.ZeroPadF(frame, nfft)), nfft, false)
}

// power keeps the first nfft/2+1 bins. With oneSided every bin other than
// DC and Nyquist is doubled to account for the discarded mirror half.
func power(spectrum []complex128, nfft int, oneSided bool) []float64 {
	half := nfft / 2
	out := make([]float64, half+1)
	for k := range out {
		v := spectrum[k]
		out[k] = real(v)*real(v) + imag(v)*imag(v)
		if oneSided && k > 0 && k < half {
			out[k] *= 2
		}
	}
	return out
}

// stftPowerSpectra computes the power spectra of the first num frames of the
// pre-emphasised signal y in one STFT pass. The window covers frameLength
// samples and is zero beyond it, so every STFT frame of nfft samples equals a
// windowed frame zero-padded to nfft.
func stftPowerSpectra(y []float64, num int, coeffs []float64, frameLength, frameStep, nfft int, oneSided bool) [][]float64 {
	padded := make([]float64, (num-1)*frameStep+nfft)
	copy(padded, y)

	s := stft.New(frameStep, nfft)
	s.Window = make([]float64, nfft)
	copy(s.Window, coeffs[:frameLength])

	spectrogram := s.STFT(padded)

	spectra := make([][]float64, num)
	for i := range spectra {
		spectra[i] = power(spectrogram[i], nfft, oneSided)
	}
	return spectra
}
