// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"github.com/go-audio/audio"
	"github.com/mewkiz/flac/frame"
)

// FrameHeader describes one decoded frame.
type FrameHeader struct {
	BlockSize     int // samples per channel
	Channels      int
	SampleRate    int
	BitsPerSample int
	Number        uint64 // frame number, or first sample number for variable block sizes
}

// FrameBlock is a borrowed view of one decoded frame. The samples live in
// session scratch memory that is reused for the next frame, so a block is
// only usable during the WriteFrame call that delivered it. After that call
// returns every method panics with ErrBlockReleased; use Clone, CopyChannel
// or IntBuffer to keep the samples.
type FrameBlock struct {
	hdr      FrameHeader
	chans    [][]int32
	released bool
}

func (b *FrameBlock) check() {
	if b.released {
		panic(ErrBlockReleased)
	}
}

// Header returns the frame header.
func (b *FrameBlock) Header() FrameHeader {
	b.check()
	return b.hdr
}

// Channel returns the samples of channel i. The slice is borrowed.
func (b *FrameBlock) Channel(i int) []int32 {
	b.check()
	return b.chans[i]
}

// CopyChannel copies channel i into dst and returns the number of samples
// copied.
func (b *FrameBlock) CopyChannel(dst []int32, i int) int {
	b.check()
	return copy(dst, b.chans[i])
}

// Clone returns a copy that owns its samples and never expires.
func (b *FrameBlock) Clone() *FrameBlock {
	b.check()
	c := &FrameBlock{hdr: b.hdr, chans: make([][]int32, len(b.chans))}
	for i, ch := range b.chans {
		c.chans[i] = append([]int32(nil), ch...)
	}
	return c
}

// IntBuffer stores the frame in dst as interleaved samples, reusing
// dst.Data when it is large enough.
func (b *FrameBlock) IntBuffer(dst *audio.IntBuffer) {
	b.check()

	n := b.hdr.BlockSize * b.hdr.Channels
	if cap(dst.Data) < n {
		dst.Data = make([]int, n)
	}
	dst.Data = dst.Data[:n]
	for ch, samples := range b.chans {
		for i, s := range samples {
			dst.Data[i*b.hdr.Channels+ch] = int(s)
		}
	}
	dst.Format = &audio.Format{NumChannels: b.hdr.Channels, SampleRate: b.hdr.SampleRate}
	dst.SourceBitDepth = b.hdr.BitsPerSample
}

func (b *FrameBlock) release() { b.released = true }

// assembler copies decoded subframes into per-channel scratch that grows to
// the largest frame seen and is reused afterwards.
type assembler struct {
	bufs [][]int32
}

func (a *assembler) assemble(f *frame.Frame) *FrameBlock {
	n := f.Channels.Count()
	size := int(f.BlockSize)

	for len(a.bufs) < n {
		a.bufs = append(a.bufs, nil)
	}
	chans := make([][]int32, n)
	for i := range n {
		if cap(a.bufs[i]) < size {
			a.bufs[i] = make([]int32, size)
		}
		chans[i] = a.bufs[i][:size]
		copy(chans[i], f.Subframes[i].Samples)
	}

	return &FrameBlock{
		hdr: FrameHeader{
			BlockSize:     size,
			Channels:      n,
			SampleRate:    int(f.SampleRate),
			BitsPerSample: int(f.BitsPerSample),
			Number:        f.Num,
		},
		chans: chans,
	}
}
