// Package mfcc computes mel-frequency cepstral coefficients from a waveform.
//
// The pipeline applies pre-emphasis, splits the signal into overlapping frames,
// windows each frame, takes the power spectrum of its FFT, projects it onto a
// bank of triangular mel filters, compresses the filter energies with a floored
// logarithm and keeps the first coefficients of their orthonormal DCT-II.
//
// Results are returned in a Buffer owned by the caller, who must release it
// exactly once:
//
//	buf, err := mfcc.NewMFCC().Compute(signal)
//	if err != nil {
//		return err
//	}
//	defer buf.Release()
//
// ComputeRaw and ReleaseHandle expose the same contract through plain handles.
package mfcc
