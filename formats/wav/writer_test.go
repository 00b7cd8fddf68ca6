// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ik5/flacstream/decoder"
	"github.com/ik5/flacstream/internal/flactest"
)

// decodeInto runs a full decode of data with fw as frame and metadata sink.
func decodeInto(t *testing.T, data []byte, fw *FrameWriter) error {
	t.Helper()

	s := decoder.New()
	h := decoder.NewHandler(decoder.ReaderSource(bytes.NewReader(data)), decoder.Sinks{
		Frames:   fw,
		Errors:   failOnError{t},
		Metadata: fw,
	})
	if st := s.Init(h); st != decoder.InitOK {
		t.Fatalf("Init() = %s", st)
	}
	err := s.ProcessUntilEndOfStream()
	if ferr := s.Finish(); err == nil {
		err = ferr
	}
	return err
}

func interleave(chans ...[]int32) []int32 {
	var out []int32
	for i := range chans[0] {
		for _, ch := range chans {
			out = append(out, ch[i])
		}
	}
	return out
}

func scaled(samples []int32, fullScale float32) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = float32(s) / fullScale
	}
	return out
}

func TestFrameWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		bps       uint8
		fullScale float32
	}{
		{"16 bit", 16, 1 << 15},
		{"12 bit in 16", 12, 1 << 11},
		{"20 bit in 24", 20, 1 << 19},
		{"24 bit", 24, 1 << 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info := flactest.DefaultInfo()
			info.BitsPerSample = tt.bps
			left0, right0 := flactest.Ramp(16, -300, 37), flactest.Ramp(16, 250, -29)
			left1, right1 := flactest.Constant(16, 1000), flactest.Constant(16, -1000)
			data := flactest.NewBuilder(info).Frame(left0, right0).Frame(left1, right1).Bytes()

			var out Buffer
			fw := NewFrameWriter(&out)
			if err := decodeInto(t, data, fw); err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if err := fw.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}
			if fw.Frames() != 2 || fw.Samples() != 32 {
				t.Errorf("Frames(), Samples() = %d, %d, want 2, 32", fw.Frames(), fw.Samples())
			}

			src, err := Decoder{}.Decode(bytes.NewReader(out.Bytes()))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src.SampleRate() != 44100 || src.Channels() != 2 {
				t.Errorf("format = %d Hz x %d, want 44100 Hz x 2", src.SampleRate(), src.Channels())
			}

			want := append(interleave(left0, right0), interleave(left1, right1)...)
			if diff := cmp.Diff(scaled(want, tt.fullScale), readAll(t, src, 10)); diff != "" {
				t.Errorf("samples mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFrameWriter_File(t *testing.T) {
	t.Parallel()

	left := flactest.Ramp(16, 0, 100)
	data := flactest.NewBuilder(flactest.DefaultInfo()).Frame(left, left).Bytes()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	fw := NewFrameWriter(f)
	if err := decodeInto(t, data, fw); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	src, err := Decoder{}.Decode(in)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff(scaled(interleave(left, left), 1<<15), readAll(t, src, 7)); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameWriter_NoFrames(t *testing.T) {
	t.Parallel()

	data := flactest.NewBuilder(flactest.DefaultInfo()).Bytes()

	var out Buffer
	fw := NewFrameWriter(&out)
	if err := decodeInto(t, data, fw); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	got, ok := fw.Format()
	if !ok {
		t.Fatal("Format() unknown after STREAMINFO")
	}
	if diff := cmp.Diff(Format{SampleRate: 44100, Channels: 2, BitsPerSample: 16}, got); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	b := out.Bytes()
	if len(b) != 44 || string(b[:4]) != "RIFF" || string(b[8:12]) != "WAVE" || string(b[36:40]) != "data" {
		t.Errorf("header = %q, want a 44 byte RIFF/WAVE file with an empty data chunk", b)
	}
}

func TestFrameWriter_CloseWithoutFormat(t *testing.T) {
	t.Parallel()

	fw := NewFrameWriter(&Buffer{})
	if err := fw.Close(); !errors.Is(err, ErrNoFormat) {
		t.Fatalf("Close() error = %v, want ErrNoFormat", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("second Close() error = %v, want nil", err)
	}
}

func TestFrameWriter_Aborts(t *testing.T) {
	t.Parallel()

	first := flactest.NewBuilder(flactest.DefaultInfo()).
		Frame(flactest.Constant(16, 1), flactest.Constant(16, 2)).
		Bytes()

	info := flactest.DefaultInfo()
	info.SampleRate = 48000
	other := flactest.NewBuilder(info).
		Frame(flactest.Constant(16, 1), flactest.Constant(16, 2)).
		Bytes()

	t.Run("format changed", func(t *testing.T) {
		t.Parallel()

		fw := NewFrameWriter(&Buffer{})
		if err := decodeInto(t, first, fw); err != nil {
			t.Fatalf("first decode error = %v", err)
		}
		err := decodeInto(t, other, fw)
		if !errors.Is(err, decoder.ErrWriteAborted) {
			t.Fatalf("second decode error = %v, want ErrWriteAborted", err)
		}
		if !errors.Is(fw.Err(), ErrFormatChanged) {
			t.Errorf("Err() = %v, want ErrFormatChanged", fw.Err())
		}
	})

	t.Run("closed", func(t *testing.T) {
		t.Parallel()

		fw := NewFrameWriter(&Buffer{})
		if err := decodeInto(t, first, fw); err != nil {
			t.Fatalf("first decode error = %v", err)
		}
		if err := fw.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if err := decodeInto(t, first, fw); !errors.Is(err, decoder.ErrWriteAborted) {
			t.Fatalf("decode after Close error = %v, want ErrWriteAborted", err)
		}
		if !errors.Is(fw.Err(), ErrClosed) {
			t.Errorf("Err() = %v, want ErrClosed", fw.Err())
		}
	})
}

func TestBuffer(t *testing.T) {
	t.Parallel()

	var b Buffer
	b.Write([]byte("hello world"))
	if _, err := b.Seek(6, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	b.Write([]byte("WORLD!!"))
	if _, err := b.Seek(-2, io.SeekCurrent); err != nil {
		t.Fatal(err)
	}
	b.Write([]byte("?"))
	if pos, err := b.Seek(0, io.SeekEnd); err != nil || pos != 13 {
		t.Errorf("Seek(0, SeekEnd) = %d, %v, want 13, nil", pos, err)
	}
	if got := string(b.Bytes()); got != "hello WORLD?!" {
		t.Errorf("Bytes() = %q, want %q", got, "hello WORLD?!")
	}
	if _, err := b.Seek(-1, io.SeekStart); err == nil {
		t.Error("Seek(-1) succeeded, want error")
	}
}
