package mfcc

import "math"
import "testing"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"
import "gonum.org/v1/gonum/mat"

func TestDCTMatrix_Orthonormal(t *testing.T) {
	d := DCTMatrix(16, 16)

	var prod mat.Dense
	prod.Mul(d, d.T())

	identity := mat.NewDiagDense(16, nil)
	for i := 0; i < 16; i++ {
		identity.SetDiag(i, 1)
	}
	assert.True(t, mat.EqualApprox(&prod, identity, 1e-12))
}

func TestDCTMatrix_TruncatesRows(t *testing.T) {
	full := DCTMatrix(80, 80)
	trunc := DCTMatrix(40, 80)

	r, c := trunc.Dims()
	assert.Equal(t, 40, r)
	assert.Equal(t, 80, c)
	for k := 0; k < 40; k++ {
		assert.Equal(t, full.RawRowView(k), trunc.RawRowView(k))
	}
	assert.InDelta(t, math.Sqrt(1.0/80), trunc.At(0, 5), 1e-15)
}

func TestLogCompress_Floor(t *testing.T) {
	e := LogCompress([]float64{0, 1, math.E, 1e-20}, LogFloor)
	assert.InDelta(t, math.Log(1e-10), e[0], 1e-12)
	assert.Equal(t, 0.0, e[1])
	assert.InDelta(t, 1.0, e[2], 1e-12)
	assert.InDelta(t, math.Log(1e-10), e[3], 1e-12)
}

func TestDecibelCompress_ClipsAtTopDB(t *testing.T) {
	e := DecibelCompress([]float64{0, 1, 100, 1e-5}, LogFloor, 80)
	assert.Equal(t, -80.0, e[0])
	assert.Equal(t, 0.0, e[1])
	assert.InDelta(t, 20.0, e[2], 1e-12)
	assert.InDelta(t, -50.0, e[3], 1e-9)

	e = DecibelCompress([]float64{0}, LogFloor, 0)
	assert.InDelta(t, -100.0, e[0], 1e-9)
}

func TestParseLogScale(t *testing.T) {
	s, err := ParseLogScale("db")
	require.NoError(t, err)
	assert.Equal(t, Decibel, s)

	_, err = ParseLogScale("log2")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestLifterWeights(t *testing.T) {
	assert.Nil(t, lifterWeights(13, 0))

	w := lifterWeights(13, 22)
	require.Len(t, w, 13)
	assert.Equal(t, 1.0, w[0])
	assert.InDelta(t, 12.0, w[11], 1e-12)
}

func TestCepstrum_ConstantInputOnlyC0(t *testing.T) {
	c := newCepstrum(40, 80, 0)
	logMel := make([]float64, 80)
	for i := range logMel {
		logMel[i] = -3
	}
	out := c.apply(logMel, make([]float64, 40))

	assert.InDelta(t, -3*math.Sqrt(80), out[0], 1e-9)
	for k := 1; k < 40; k++ {
		assert.InDelta(t, 0, out[k], 1e-9)
	}
}
