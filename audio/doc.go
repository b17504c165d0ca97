// Package audio loads WAV and FLAC files as mono sample vectors and exports
// feature matrices.
//
// Decoded audio can be resampled to the analysis rate before it is passed to
// the mfcc package. Coefficient matrices can be saved as PNG heat maps or as
// raw half precision floats.
package audio
