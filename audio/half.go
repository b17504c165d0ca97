package audio

import "encoding/binary"
import "io"
import "os"
import "github.com/pkg/errors"
import "github.com/x448/float16"

// WriteFloat16 writes values as little-endian IEEE 754 half precision floats.
func WriteFloat16(w io.Writer, values []float32) error {
	buf := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(buf[2*i:], float16.Fromfloat32(v).Bits())
	}
	_, err := w.Write(buf)
	return err
}

// ReadFloat16 reads little-endian half precision floats until EOF.
func ReadFloat16(r io.Reader) ([]float32, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data)%2 != 0 {
		return nil, errors.Errorf("odd float16 stream length %d", len(data))
	}
	values := make([]float32, len(data)/2)
	for i := range values {
		values[i] = float16.Frombits(binary.LittleEndian.Uint16(data[2*i:])).Float32()
	}
	return values, nil
}

// SaveFloat16 writes values to a file in half precision.
func SaveFloat16(name string, values []float32) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := WriteFloat16(f, values); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
