// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/flacstream/audio"
)

const defaultBufSize = 4096

// pcmReader is the part of gowav.Decoder used by source, so tests can stub it.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps a go-audio wav.Decoder as an audio.Source.
type source struct {
	dec        pcmReader
	format     *goaudio.Format
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return defaultBufSize - defaultBufSize%s.channels
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	dst = dst[:len(dst)-len(dst)%s.channels]
	if len(dst) == 0 {
		return 0, fmt.Errorf("%w: need room for %d channels", audio.ErrInvalidDstSize, s.channels)
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{Data: make([]int, len(dst)), Format: s.format}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		return 0, fmt.Errorf("read wav pcm: %w", err)
	}
	n -= n % s.channels
	if n == 0 {
		return 0, io.EOF
	}

	scale := float32(goaudio.IntMaxSignedValue(s.bitDepth)) + 1
	for i, v := range s.intBuf.Data[:n] {
		if s.bitDepth == 8 {
			v -= 128
		}
		dst[i] = float32(v) / scale
	}

	if n < len(dst) {
		return n, io.EOF
	}
	return n, nil
}

// Decoder reads integer PCM WAV files of 8, 16, 24 or 32 bits.
type Decoder struct{}

var _ audio.Decoder = Decoder{}

// Decode parses the WAV header from r. go-audio needs to seek, so a reader
// that is not an io.ReadSeeker is read into memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: format tag %d", ErrNotPCM, dec.WavAudioFormat)
	}
	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("find wav data chunk: %w", err)
	}

	return &source{
		dec:        dec,
		format:     dec.Format(),
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		bitDepth:   int(dec.BitDepth),
	}, nil
}
