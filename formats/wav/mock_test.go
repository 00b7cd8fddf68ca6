// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/flacstream/decoder"
)

// createWAVFile builds a canonical 44 byte header WAV file holding samples
// as little-endian values of bitsPerSample bits.
func createWAVFile(format uint16, sampleRate, channels, bitsPerSample int, samples []int32) []byte {
	buf := new(bytes.Buffer)

	width := bitsPerSample / 8
	dataSize := uint32(len(samples) * width)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, format)
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*channels*width))
	binary.Write(buf, binary.LittleEndian, uint16(channels*width))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	for _, s := range samples {
		for k := range width {
			buf.WriteByte(byte(uint32(s) >> (8 * k)))
		}
	}
	return buf.Bytes()
}

// readAll drains src.
func readAll(t *testing.T, src interface {
	ReadSamples([]float32) (int, error)
}, chunk int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, chunk)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

// failOnError is an ErrorSink that fails the test on any stream error.
type failOnError struct{ t *testing.T }

func (f failOnError) OnError(kind decoder.ErrorKind) {
	f.t.Errorf("unexpected stream error: %s", kind)
}

// stubPCM replays fixed PCMBuffer results.
type stubPCM struct {
	data []int
	err  error
}

func (s *stubPCM) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n := copy(buf.Data, s.data)
	s.data = s.data[n:]
	return n, nil
}
