package audio

import "io"
import "os"
import "path/filepath"
import "strings"
import "github.com/faiface/beep"
import "github.com/faiface/beep/wav"
import "github.com/mewkiz/flac"
import "github.com/pkg/errors"
import "github.com/sirupsen/logrus"

var ErrFileNotLoaded = errors.New("wavNotLoaded")

// ErrUnsupportedFormat is returned by Load for extensions other than .wav and .flac.
var ErrUnsupportedFormat = errors.New("unsupportedFormat")

// Load decodes a .wav or .flac file to mono samples in [-1, 1] and its sample rate.
func Load(name string) ([]float64, int, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".flac":
		return LoadFlacSampleRate(name)
	case ".wav":
		return LoadWavSampleRate(name)
	}
	return nil, 0, errors.Wrap(ErrUnsupportedFormat, name)
}

// LoadWavSampleRate loads a wav file, mixes it down to mono and returns it with its
// sample rate, or it returns an error like ErrFileNotLoaded
func LoadWavSampleRate(inputFile string) ([]float64, int, error) {
	file, err := os.Open(inputFile)
	if err != nil {
		return nil, 0, errors.Wrap(ErrFileNotLoaded, err.Error())
	}
	defer file.Close()

	stream, format, err := wav.Decode(file)
	if err != nil {
		return nil, 0, errors.Wrapf(ErrFileNotLoaded, "%s: %v", inputFile, err)
	}
	defer stream.Close()

	mono := mixdown(stream, format.NumChannels)
	if gain := fullScale(format.Precision); gain != 1 {
		for i := range mono {
			mono[i] *= gain
		}
	}
	if len(mono) == 0 || format.SampleRate == 0 {
		return nil, 0, errors.Wrap(ErrFileNotLoaded, inputFile)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "LoadWavSampleRate",
		"file":        inputFile,
		"sample_rate": int(format.SampleRate),
		"channels":    format.NumChannels,
		"samples":     len(mono),
	}).Debug("Loaded wav file")

	return mono, int(format.SampleRate), nil
}

// fullScale undoes beep's wav decoder dividing 16 and 24 bit PCM by 2^bits-1
// instead of 2^(bits-1).
func fullScale(precision int) float64 {
	switch precision {
	case 2, 3:
		bits := uint(8 * precision)
		return float64(int64(1)<<bits-1) / float64(int64(1)<<(bits-1))
	}
	return 1
}

// mixdown reads the whole stream and averages its channels. beep always
// streams stereo pairs, mono files carry the same sample on both sides.
func mixdown(stream beep.Streamer, channels int) (out []float64) {
	var samples = make([][2]float64, 512)
	for {
		n, ok := stream.Stream(samples)
		for i := 0; i < n; i++ {
			if channels == 1 {
				out = append(out, samples[i][0])
			} else {
				out = append(out, (samples[i][0]+samples[i][1])/2)
			}
		}
		if !ok {
			break
		}
	}
	return
}

// LoadFlacSampleRate loads a flac file, mixes it down to mono and returns it with
// its sample rate, or it returns an error like ErrFileNotLoaded
func LoadFlacSampleRate(inputFile string) ([]float64, int, error) {
	stream, err := flac.ParseFile(inputFile)
	if err != nil {
		return nil, 0, errors.Wrap(ErrFileNotLoaded, err.Error())
	}
	defer stream.Close()

	var scale = float64(int64(1) << (stream.Info.BitsPerSample - 1))
	var mono []float64
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, errors.Wrapf(ErrFileNotLoaded, "%s: %v", inputFile, err)
		}
		channels := len(frame.Subframes)
		for i := range frame.Subframes[0].Samples {
			var sum float64
			for _, sub := range frame.Subframes {
				sum += float64(sub.Samples[i])
			}
			mono = append(mono, sum/float64(channels)/scale)
		}
	}
	if len(mono) == 0 || stream.Info.SampleRate == 0 {
		return nil, 0, errors.Wrap(ErrFileNotLoaded, inputFile)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "LoadFlacSampleRate",
		"file":        inputFile,
		"sample_rate": stream.Info.SampleRate,
		"channels":    stream.Info.NChannels,
		"samples":     len(mono),
	}).Debug("Loaded flac file")

	return mono, int(stream.Info.SampleRate), nil
}

// SaveWav saves mono wav file from sample vector
func SaveWav(outputFile string, vec []float64, sr int) error {
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}

	var pos int
	var streamer = beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for n < len(samples) && pos < len(vec) {
			samples[n][0] = vec[pos]
			samples[n][1] = vec[pos]
			n++
			pos++
		}
		return n, n > 0
	})

	format := beep.Format{SampleRate: beep.SampleRate(sr), NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, streamer, format); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
