// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ik5/flacstream/audio"
)

// pcmBytes encodes samples the way go-mp3 emits them.
func pcmBytes(samples ...int16) []byte {
	b := make([]byte, 0, 2*len(samples))
	for _, v := range samples {
		b = binary.LittleEndian.AppendUint16(b, uint16(v))
	}
	return b
}

// chunkedPCM returns at most n bytes per Read, then io.EOF.
type chunkedPCM struct {
	data []byte
	n    int
	err  error
}

func (c *chunkedPCM) Read(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	if len(p) > c.n {
		p = p[:c.n]
	}
	n := copy(p, c.data)
	c.data = c.data[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"text":  []byte("This is not MP3 data"),
		"empty": nil,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	data := pcmBytes(16384, -16384, 8192, -32768, 0, 32767)
	// odd chunk sizes split samples across reads
	src := &source{dec: &chunkedPCM{data: data, n: 3}, sampleRate: 44100}

	var got []float32
	dst := make([]float32, 4)
	for {
		n, err := src.ReadSamples(dst)
		got = append(got, dst[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := []float32{0.5, -0.5, 0.25, -1, 0, 32767.0 / 32768}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestSource_DropsPartialFrame(t *testing.T) {
	t.Parallel()

	// three samples: the last stereo frame is incomplete
	src := &source{dec: &chunkedPCM{data: pcmBytes(1, 2, 3), n: 64}, sampleRate: 44100}
	n, err := src.ReadSamples(make([]float32, 8))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v, want io.EOF", err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	errCorrupt := errors.New("corrupt frame")
	src := &source{dec: &chunkedPCM{err: errCorrupt, n: 1}, sampleRate: 44100}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
	if _, err := src.ReadSamples(make([]float32, 1)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(1) error = %v, want ErrInvalidDstSize", err)
	}
	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, errCorrupt) {
		t.Errorf("ReadSamples() error = %v, want %v", err, errCorrupt)
	}
	if src.Channels() != 2 || src.SampleRate() != 44100 {
		t.Errorf("format = %d Hz, %d channels", src.SampleRate(), src.Channels())
	}
}
