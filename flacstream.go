// SPDX-License-Identifier: EPL-2.0

package flacstream

import (
	"fmt"
	"io"

	"github.com/ik5/flacstream/audio"
	"github.com/ik5/flacstream/decoder"
	"github.com/ik5/flacstream/formats/wav"
	"github.com/ik5/flacstream/meta"
)

// ReadMetadata decodes the metadata blocks of a FLAC stream and stops at the
// first frame. The records are returned in stream order and own their data.
func ReadMetadata(r io.Reader, opts ...decoder.Option) ([]meta.Record, error) {
	var records []meta.Record

	h := decoder.NewHandler(decoder.ReaderSource(r), decoder.Sinks{
		Frames: decoder.FrameSinkFunc(func(*decoder.FrameBlock) decoder.WriteStatus {
			return decoder.WriteContinue
		}),
		Errors: decoder.ErrorSinkFunc(func(decoder.ErrorKind) {}),
		Metadata: decoder.MetadataSinkFunc(func(rec meta.Record, _ bool) {
			records = append(records, rec)
		}),
	})

	s := decoder.New(opts...)
	if st := s.Init(h); st != decoder.InitOK {
		return nil, fmt.Errorf("%w: %s", ErrInit, st)
	}
	err := s.ProcessUntilEndOfMetadata()
	if ferr := s.Finish(); err == nil {
		err = ferr
	}
	if err != nil {
		return records, fmt.Errorf("read metadata: %w", err)
	}
	return records, nil
}

// Stats summarizes a DecodeToWAV run.
type Stats struct {
	Format       wav.Format
	Frames       int
	Samples      int64 // per channel
	StreamErrors int   // corrupt regions skipped
}

// DecodeToWAV decodes the FLAC stream in and writes it to out as a WAV file.
// Corrupt frames are skipped and counted in Stats. out is not closed.
func DecodeToWAV(in io.Reader, out io.WriteSeeker, opts ...decoder.Option) (Stats, error) {
	var stats Stats

	fw := wav.NewFrameWriter(out)
	h := decoder.NewHandler(decoder.ReaderSource(in), decoder.Sinks{
		Frames:   fw,
		Errors:   decoder.ErrorSinkFunc(func(decoder.ErrorKind) { stats.StreamErrors++ }),
		Metadata: fw,
	})

	s := decoder.New(opts...)
	if st := s.Init(h); st != decoder.InitOK {
		return stats, fmt.Errorf("%w: %s", ErrInit, st)
	}

	err := s.ProcessUntilEndOfStream()
	if err != nil && fw.Err() != nil {
		err = fmt.Errorf("%w: %w", err, fw.Err())
	}
	if ferr := s.Finish(); err == nil {
		err = ferr
	}
	if cerr := fw.Close(); err == nil {
		err = cerr
	}

	stats.Format, _ = fw.Format()
	stats.Frames = fw.Frames()
	stats.Samples = fw.Samples()
	if err != nil {
		return stats, fmt.Errorf("decode to wav: %w", err)
	}
	return stats, nil
}

// CollectMono16 reads src to the end, mixes it down to mono and returns the
// samples as 16-bit PCM together with the sample rate.
func CollectMono16(src audio.Source, bufferSize int) ([]int16, int, error) {
	mono := audio.NewMonoMixer(src)

	pcm16 := make([]int16, 0, src.SampleRate())
	buf := make([]float32, bufferSize)

	for {
		n, err := mono.ReadSamples(buf)
		for _, x := range buf[:n] {
			x = min(max(x, -1), 1)
			pcm16 = append(pcm16, int16(min(x*32768, 32767)))
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, src.SampleRate(), fmt.Errorf("collect mono: %w", err)
		}
	}

	return pcm16, src.SampleRate(), nil
}
