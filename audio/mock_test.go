package audio

import "io"

// rampSource yields frames whose value on channel c at frame i is
// waveform(i, c).
type rampSource struct {
	rate, channels int
	frames, pos    int
	waveform       func(i, c int) float32
	closed         bool
}

func newRampSource(rate, channels, frames int, waveform func(i, c int) float32) *rampSource {
	return &rampSource{rate: rate, channels: channels, frames: frames, waveform: waveform}
}

func (s *rampSource) SampleRate() int { return s.rate }
func (s *rampSource) Channels() int   { return s.channels }
func (s *rampSource) BufSize() int    { return 64 * s.channels }
func (s *rampSource) Close() error    { s.closed = true; return nil }

func (s *rampSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}
	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.waveform(s.pos+f, c)
		}
	}
	s.pos += n
	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}

// mockDecoder hands out a fixed source.
type mockDecoder struct {
	name string
	err  error
}

func (d *mockDecoder) Decode(io.Reader) (Source, error) {
	if d.err != nil {
		return nil, d.err
	}
	return newRampSource(44100, 2, 10, func(int, int) float32 { return 0 }), nil
}
