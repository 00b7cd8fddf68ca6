// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/flacstream/audio"
)

const (
	channels       = 2
	bytesPerSample = 2
	defaultBufSize = 4096
)

// mp3Reader is the part of gomp3.Decoder used by source, so tests can stub it.
type mp3Reader interface {
	Read([]byte) (int, error)
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// carry holds the bytes of a trailing partial frame between reads.
	carry []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return defaultBufSize }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	dst = dst[:len(dst)-len(dst)%channels]
	if len(dst) == 0 {
		return 0, fmt.Errorf("%w: need room for %d channels", audio.ErrInvalidDstSize, channels)
	}

	want := len(dst) * bytesPerSample
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}
	s.buf = append(s.buf[:0], s.carry...)
	s.carry = s.carry[:0]

	var err error
	for len(s.buf) < want && err == nil {
		var n int
		n, err = s.dec.Read(s.buf[len(s.buf):want])
		s.buf = s.buf[:len(s.buf)+n]
	}
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("decode mp3: %w", err)
	}

	frame := channels * bytesPerSample
	whole := len(s.buf) - len(s.buf)%frame
	s.carry = append(s.carry, s.buf[whole:]...)

	n := whole / bytesPerSample
	for i := range n {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = float32(v) / 32768
	}

	if err == io.EOF {
		return n, io.EOF
	}
	return n, nil
}

type Decoder struct{}

var _ audio.Decoder = Decoder{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("open mp3: %w", err)
	}
	return &source{dec: dec, sampleRate: dec.SampleRate()}, nil
}
