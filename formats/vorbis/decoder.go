// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/flacstream/audio"
)

const defaultBufSize = 4096

// oggReader is the part of oggvorbis.Reader used by source, so tests can stub
// it.
type oggReader interface {
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return defaultBufSize - defaultBufSize%s.channels }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	dst = dst[:len(dst)-len(dst)%s.channels]
	if len(dst) == 0 {
		return 0, fmt.Errorf("%w: need room for %d channels", audio.ErrInvalidDstSize, s.channels)
	}

	// Read returns a sample count that is a multiple of the channel count.
	total := 0
	for total < len(dst) {
		n, err := s.dec.Read(dst[total:])
		total += n
		if err == io.EOF {
			return total, io.EOF
		}
		if err != nil {
			return total, fmt.Errorf("decode vorbis: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

type Decoder struct{}

var _ audio.Decoder = Decoder{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open ogg vorbis: %w", err)
	}
	return &source{dec: dec, sampleRate: dec.SampleRate(), channels: dec.Channels()}, nil
}
