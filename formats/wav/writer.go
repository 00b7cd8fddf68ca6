// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/flacstream/decoder"
	"github.com/ik5/flacstream/meta"
	"github.com/ik5/flacstream/utils"
)

const pcmFormat = 1

// Format is the layout of the PCM written by a FrameWriter.
type Format struct {
	SampleRate    int
	Channels      int
	BitsPerSample int // source depth; the container is rounded up to whole bytes
}

// FrameWriter is a decoder.FrameSink that writes every delivered frame to a
// WAV file. It also implements decoder.MetadataSink: registered as the
// metadata sink it takes the format from STREAMINFO, so that a stream without
// frames still produces a valid file. Otherwise the first frame fixes the
// format.
//
// Samples are written in the smallest byte aligned container that holds the
// source depth, left-justified, so a 20 bit stream becomes 24 bit PCM.
//
// Close must be called after decoding to finalize the RIFF sizes. It does not
// close w.
type FrameWriter struct {
	w   io.WriteSeeker
	enc *gowav.Encoder

	format Format
	depth  int
	buf    goaudio.IntBuffer

	frames  int
	samples int64
	err     error
	closed  bool
}

// NewFrameWriter returns a FrameWriter writing to w.
func NewFrameWriter(w io.WriteSeeker) *FrameWriter {
	return &FrameWriter{w: w}
}

// OnMetadata implements decoder.MetadataSink.
func (fw *FrameWriter) OnMetadata(rec meta.Record, _ bool) {
	si, ok := rec.(*meta.StreamInfo)
	if !ok || fw.enc != nil {
		return
	}
	fw.start(Format{
		SampleRate:    int(si.SampleRate),
		Channels:      int(si.Channels),
		BitsPerSample: int(si.BitsPerSample),
	})
}

func (fw *FrameWriter) start(f Format) {
	fw.format = f
	fw.depth = utils.ContainerDepth(f.BitsPerSample)
	fw.enc = gowav.NewEncoder(fw.w, f.SampleRate, fw.depth, f.Channels, pcmFormat)
}

// WriteFrame implements decoder.FrameSink. It aborts decoding when the
// writer is closed, the frame format changes or the underlying write fails;
// the cause is available from Err.
func (fw *FrameWriter) WriteFrame(b *decoder.FrameBlock) decoder.WriteStatus {
	if fw.closed {
		fw.err = ErrClosed
		return decoder.WriteAbort
	}

	h := b.Header()
	f := Format{SampleRate: h.SampleRate, Channels: h.Channels, BitsPerSample: h.BitsPerSample}
	if fw.enc == nil {
		fw.start(f)
	} else if f != fw.format {
		fw.err = fmt.Errorf("%w: frame %d is %+v, stream is %+v", ErrFormatChanged, h.Number, f, fw.format)
		return decoder.WriteAbort
	}

	b.IntBuffer(&fw.buf)
	for i, s := range fw.buf.Data {
		v := utils.ToContainer(int32(s), f.BitsPerSample)
		if fw.depth == 8 {
			// 8 bit WAV is unsigned
			v += 128
		}
		fw.buf.Data[i] = v
	}
	fw.buf.SourceBitDepth = fw.depth

	if err := fw.enc.Write(&fw.buf); err != nil {
		fw.err = fmt.Errorf("write wav frame %d: %w", h.Number, err)
		return decoder.WriteAbort
	}
	fw.frames++
	fw.samples += int64(h.BlockSize)
	return decoder.WriteContinue
}

// Format returns the output format, and false while it is still unknown.
func (fw *FrameWriter) Format() (Format, bool) {
	return fw.format, fw.enc != nil
}

// Frames returns the number of frames written.
func (fw *FrameWriter) Frames() int { return fw.frames }

// Samples returns the number of samples per channel written.
func (fw *FrameWriter) Samples() int64 { return fw.samples }

// Err returns the reason the last WriteFrame aborted, if any.
func (fw *FrameWriter) Err() error { return fw.err }

// Close writes the final RIFF and data chunk sizes. A second Close is a
// no-op.
func (fw *FrameWriter) Close() error {
	if fw.closed {
		return nil
	}
	fw.closed = true

	if fw.enc == nil {
		return ErrNoFormat
	}
	if fw.frames == 0 {
		// forces the header and an empty data chunk
		empty := goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: fw.format.Channels, SampleRate: fw.format.SampleRate},
			SourceBitDepth: fw.depth,
		}
		if err := fw.enc.Write(&empty); err != nil {
			return fmt.Errorf("write wav header: %w", err)
		}
	}
	if err := fw.enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}
