// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/ik5/flacstream/audio"
	"github.com/ik5/flacstream/decoder"
	"github.com/ik5/flacstream/utils"
)

// defaultBlockSize is the block size of the reference encoder at its default
// compression levels.
const defaultBlockSize = 4096

// source pulls frames from a session on demand and exposes them as
// interleaved float32.
type source struct {
	s          *decoder.Session
	sampleRate int
	channels   int
	bps        int

	pending []float32
	off     int

	streamErrors int
}

func (src *source) SampleRate() int    { return src.sampleRate }
func (src *source) Channels() int      { return src.channels }
func (src *source) BitsPerSample() int { return src.bps }
func (src *source) BufSize() int       { return defaultBlockSize * src.channels }

// StreamErrors returns the number of corrupt regions skipped so far.
func (src *source) StreamErrors() int { return src.streamErrors }

// Close ends the session. With MD5 checking enabled it reports a signature
// mismatch once the whole stream has been read.
func (src *source) Close() error {
	if err := src.s.Finish(); err != nil {
		return fmt.Errorf("finish flac session: %w", err)
	}
	return nil
}

func (src *source) WriteFrame(b *decoder.FrameBlock) decoder.WriteStatus {
	h := b.Header()
	for i := range h.BlockSize {
		for ch := range h.Channels {
			src.pending = append(src.pending, utils.IntToFloat32(b.Channel(ch)[i], h.BitsPerSample))
		}
	}
	return decoder.WriteContinue
}

func (src *source) OnError(decoder.ErrorKind) { src.streamErrors++ }

func (src *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%src.channels != 0 {
		return 0, fmt.Errorf("%w: got %d for %d channels", audio.ErrInvalidDstSize, len(dst), src.channels)
	}

	if src.off > 0 {
		n := copy(src.pending, src.pending[src.off:])
		src.pending = src.pending[:n]
		src.off = 0
	}

	var err error
	for len(src.pending) < len(dst) && src.s.State() != decoder.Finished {
		if err = src.s.ProcessSingle(); err != nil {
			err = fmt.Errorf("decode flac: %w", err)
			break
		}
	}

	n := copy(dst, src.pending)
	src.off = n
	if err != nil {
		return n, err
	}
	if src.off == len(src.pending) && src.s.State() == decoder.Finished {
		return n, io.EOF
	}
	return n, nil
}

// Decoder decodes FLAC streams into an audio.Source. Options configure the
// underlying decoder.Session.
type Decoder struct {
	Options []decoder.Option
}

var _ audio.Decoder = Decoder{}

// Decode reads the stream metadata and returns a source positioned at the
// first frame. Frames are decoded as samples are read; none of r is buffered
// beyond the session read size.
func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	src := &source{}

	s := decoder.New(d.Options...)
	if err := s.SetMetadataIgnoreAll(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	h := decoder.NewHandler(decoder.ReaderSource(r), decoder.Sinks{Frames: src, Errors: src})
	if st := s.Init(h); st != decoder.InitOK {
		return nil, fmt.Errorf("%w: %s", ErrInit, st)
	}
	if err := s.ProcessUntilEndOfMetadata(); err != nil {
		if ferr := s.Finish(); ferr != nil {
			err = fmt.Errorf("%w (finish: %w)", err, ferr)
		}
		return nil, fmt.Errorf("read flac metadata: %w", err)
	}

	src.s = s
	src.sampleRate = s.SampleRate()
	src.channels = s.Channels()
	src.bps = s.BitsPerSample()
	return src, nil
}
