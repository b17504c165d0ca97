// Command tomfcc computes mel frequency cepstral coefficients of audio files (WAV/FLAC).
//
// Usage:
//
//	tomfcc compute <audio_file>             one coefficient vector
//	tomfcc frames <audio_file> [--png f]    every frame, optionally as a PNG heat map
//	tomfcc filterbank [--png f]             the mel filterbank in use
//
// Input is mixed down to mono and resampled to --sample-rate. Parameters come
// from flags, GOMFCC_* environment variables (GOMFCC_MFCC_N_MFCC=13) or a YAML
// file given with --config or found at $HOME/.config/gomfcc/gomfcc.yaml.
//
// Supported input formats: .wav, .flac
package main
