package audio

import "bytes"
import "image/png"
import "math"
import "os"
import "path/filepath"
import "testing"
import "github.com/mewkiz/flac"
import "github.com/mewkiz/flac/frame"
import "github.com/mewkiz/flac/meta"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func tone(freq float64, sr, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sr))
	}
	return x
}

func TestSaveWav_RoundTrip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "tone.wav")
	x := tone(440, 16000, 4000)
	require.NoError(t, SaveWav(name, x, 16000))

	y, sr, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, 16000, sr)
	require.Len(t, y, len(x))
	for i := range x {
		assert.InDelta(t, x[i], y[i], 1e-3)
	}
}

func TestLoadWav_FullScale(t *testing.T) {
	name := filepath.Join(t.TempDir(), "square.wav")
	x := make([]float64, 1600)
	for i := range x {
		x[i] = 0.9
		if i%2 == 1 {
			x[i] = -0.9
		}
	}
	require.NoError(t, SaveWav(name, x, 8000))

	y, sr, err := LoadWavSampleRate(name)
	require.NoError(t, err)
	assert.Equal(t, 8000, sr)
	require.Len(t, y, len(x))
	assert.InDelta(t, 0.9, y[0], 1e-4)
	assert.InDelta(t, -0.9, y[1], 1e-4)

	assert.Equal(t, 1.0, fullScale(1))
	assert.InDelta(t, 2.0, fullScale(2), 1e-4)
	assert.InDelta(t, 2.0, fullScale(3), 1e-6)
}

// writeFlac encodes a 16 bit stereo file with verbatim subframes.
func writeFlac(t *testing.T, name string, left, right []int32, sr uint32, block int) {
	t.Helper()
	f, err := os.Create(name)
	require.NoError(t, err)
	defer f.Close()

	info := &meta.StreamInfo{
		BlockSizeMin:  uint16(block),
		BlockSizeMax:  uint16(block),
		SampleRate:    sr,
		NChannels:     2,
		BitsPerSample: 16,
		NSamples:      uint64(len(left)),
	}
	enc, err := flac.NewEncoder(f, info)
	require.NoError(t, err)
	for start := 0; start < len(left); start += block {
		end := start + block
		fr := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(block),
				SampleRate:        sr,
				Channels:          frame.ChannelsLR,
				BitsPerSample:     16,
			},
		}
		for _, ch := range [][]int32{left[start:end], right[start:end]} {
			fr.Subframes = append(fr.Subframes, &frame.Subframe{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   ch,
				NSamples:  block,
			})
		}
		require.NoError(t, enc.WriteFrame(fr))
	}
	require.NoError(t, enc.Close())
}

func TestLoadFlac_StereoMixdown(t *testing.T) {
	name := filepath.Join(t.TempDir(), "tone.flac")
	x := tone(440, 16000, 4000)
	left := make([]int32, len(x))
	right := make([]int32, len(x))
	for i, v := range x {
		left[i] = int32(v * 32767)
		right[i] = int32(v * 16383)
	}
	writeFlac(t, name, left, right, 16000, 1000)

	y, sr, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, 16000, sr)
	require.Len(t, y, len(x))
	for i := range x {
		assert.InDelta(t, 0.75*x[i], y[i], 1e-3)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Load(filepath.Join(dir, "missing.wav"))
	assert.ErrorIs(t, err, ErrFileNotLoaded)

	_, _, err = Load(filepath.Join(dir, "missing.flac"))
	assert.ErrorIs(t, err, ErrFileNotLoaded)

	_, _, err = Load(filepath.Join(dir, "sound.mp3"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	garbage := filepath.Join(dir, "garbage.wav")
	require.NoError(t, os.WriteFile(garbage, []byte("not a riff file"), 0o644))
	_, _, err = Load(garbage)
	assert.ErrorIs(t, err, ErrFileNotLoaded)

	notFlac := filepath.Join(dir, "garbage.flac")
	require.NoError(t, os.WriteFile(notFlac, []byte("not a flac stream"), 0o644))
	_, _, err = Load(notFlac)
	assert.ErrorIs(t, err, ErrFileNotLoaded)
}

func TestResample(t *testing.T) {
	x := tone(440, 44100, 44100)

	same, err := Resample(x, 16000, 16000)
	require.NoError(t, err)
	assert.Equal(t, x[:10], same[:10])

	y, err := Resample(x, 44100, 16000)
	require.NoError(t, err)
	assert.Greater(t, len(y), 8000)
	assert.LessOrEqual(t, len(y), 16100)
	for _, v := range y {
		assert.LessOrEqual(t, math.Abs(v), 0.6)
	}

	_, err = Resample(x, 0, 16000)
	assert.Error(t, err)
}

func TestHeatMap(t *testing.T) {
	rows := [][]float64{
		{0, 1, 2},
		{3, 4, 5},
	}
	img := HeatMap(rows, false)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())

	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(255), img.RGBAAt(1, 2).R)

	reversed := HeatMap(rows, true)
	assert.Equal(t, img.RGBAAt(1, 2), reversed.RGBAAt(1, 0))

	assert.Zero(t, HeatMap(nil, false).Bounds().Dx())
	flat := HeatMap([][]float64{{7, 7}}, false)
	assert.Equal(t, uint8(0), flat.RGBAAt(0, 1).R)
}

func TestSavePNG(t *testing.T) {
	name := filepath.Join(t.TempDir(), "mfcc.png")
	require.NoError(t, SavePNG(name, [][]float64{{1, 2}, {3, 4}, {5, 6}}, true))

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestFloat16_RoundTrip(t *testing.T) {
	values := []float32{0, 1, -2.5, 0.333, -205.96, 65504}

	var buf bytes.Buffer
	require.NoError(t, WriteFloat16(&buf, values))
	assert.Equal(t, 2*len(values), buf.Len())

	got, err := ReadFloat16(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(values))
	for i, v := range values {
		assert.InDelta(t, v, got[i], math.Max(1e-3, math.Abs(float64(v))*1e-3))
	}

	_, err = ReadFloat16(bytes.NewReader([]byte{1, 2, 3}))
	assert.Error(t, err)
}

func TestSaveFloat16(t *testing.T) {
	name := filepath.Join(t.TempDir(), "mfcc.f16")
	require.NoError(t, SaveFloat16(name, []float32{1, 2, 3}))

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	got, err := ReadFloat16(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, got)
}
