package mfcc

import "testing"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestPreEmphasis_ZeroAlphaIsIdentity(t *testing.T) {
	x := []float64{0.5, -1, 2, 3.25, 0}
	assert.Equal(t, x, PreEmphasis(x, 0))
}

func TestPreEmphasis_Formula(t *testing.T) {
	x := []float64{1, 2, 3}
	y := PreEmphasis(x, 0.5)

	assert.Equal(t, []float64{1, 1.5, 2}, y)
	assert.Equal(t, []float64{1, 2, 3}, x, "input must not be modified")
	assert.Nil(t, PreEmphasis(nil, 0.97))
}

func TestNumFrames(t *testing.T) {
	cases := []struct {
		n, length, step, want int
	}{
		{1, 400, 160, 1},
		{399, 400, 160, 1},
		{400, 400, 160, 1},
		{559, 400, 160, 1},
		{560, 400, 160, 2},
		{16000, 400, 160, 98},
		{10, 4, 1, 7},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, NumFrames(c.n, c.length, c.step), "n=%d", c.n)
	}
}

func TestFrames_ShortSignalIsZeroPadded(t *testing.T) {
	frames := Frames([]float64{1, 2, 3}, 5, 2)
	require.Len(t, frames, 1)
	assert.Equal(t, []float64{1, 2, 3, 0, 0}, frames[0])
}

func TestFrames_CopiesOverlappingFrames(t *testing.T) {
	y := []float64{0, 1, 2, 3, 4, 5, 6}
	frames := Frames(y, 3, 2)
	require.Len(t, frames, 3)
	assert.Equal(t, []float64{0, 1, 2}, frames[0])
	assert.Equal(t, []float64{2, 3, 4}, frames[1])
	assert.Equal(t, []float64{4, 5, 6}, frames[2])

	frames[1][0] = 100
	assert.Equal(t, 2.0, y[2], "frames must not alias the signal")
}

func TestWindowFunc_ParseRoundTrip(t *testing.T) {
	for _, w := range []WindowFunc{Hamming, Hann, Blackman, Rectangular} {
		got, err := ParseWindowFunc(w.String())
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	_, err := ParseWindowFunc("kaiser")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestWindowFunc_HammingIsSymmetric(t *testing.T) {
	w := Hamming.Coefficients(400)
	require.Len(t, w, 400)
	assert.InDelta(t, 0.08, w[0], 1e-12)
	assert.InDelta(t, 0.08, w[399], 1e-12)
	for i := range w {
		assert.InDelta(t, w[i], w[399-i], 1e-12)
	}
	assert.Equal(t, []float64{1, 1, 1}, Rectangular.Coefficients(3))
}
