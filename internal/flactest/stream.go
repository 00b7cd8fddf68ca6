// SPDX-License-Identifier: EPL-2.0

// Package flactest builds FLAC byte streams for tests.
//
// Frames use VERBATIM subframes with independent channels, so any sample
// values can be encoded without a real encoder. CRC-8 and CRC-16 are
// computed so the frames pass the decoder's checks.
package flactest

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"

	"github.com/icza/bitio"
)

// Block types, mirrored here so the package does not depend on meta.
const (
	TypeStreamInfo    = 0
	TypePadding       = 1
	TypeApplication   = 2
	TypeSeekTable     = 3
	TypeVorbisComment = 4
	TypeCueSheet      = 5
	TypePicture       = 6
)

// StreamInfo holds the STREAMINFO fields to encode.
type StreamInfo struct {
	MinBlockSize  uint16
	MaxBlockSize  uint16
	MinFrameSize  uint32
	MaxFrameSize  uint32
	SampleRate    uint32
	Channels      uint8
	BitsPerSample uint8
	TotalSamples  uint64
	MD5           [16]byte
}

// DefaultInfo is a 44.1 kHz, 16-bit stereo stream with 16 sample blocks.
func DefaultInfo() StreamInfo {
	return StreamInfo{
		MinBlockSize:  16,
		MaxBlockSize:  16,
		SampleRate:    44100,
		Channels:      2,
		BitsPerSample: 16,
	}
}

// StreamInfoBody encodes the 34 byte STREAMINFO body.
func StreamInfoBody(si StreamInfo) []byte {
	buf := new(bytes.Buffer)
	w := bitio.NewWriter(buf)
	w.TryWriteBits(uint64(si.MinBlockSize), 16)
	w.TryWriteBits(uint64(si.MaxBlockSize), 16)
	w.TryWriteBits(uint64(si.MinFrameSize), 24)
	w.TryWriteBits(uint64(si.MaxFrameSize), 24)
	w.TryWriteBits(uint64(si.SampleRate), 20)
	w.TryWriteBits(uint64(si.Channels-1), 3)
	w.TryWriteBits(uint64(si.BitsPerSample-1), 5)
	w.TryWriteBits(si.TotalSamples, 36)
	if w.TryError != nil {
		panic(w.TryError)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	buf.Write(si.MD5[:])
	return buf.Bytes()
}

// SeekPoint is one seek table entry to encode.
type SeekPoint struct {
	SampleNumber uint64
	StreamOffset uint64
	FrameSamples uint16
}

// SeekTableBody encodes a SEEKTABLE body.
func SeekTableBody(points ...SeekPoint) []byte {
	buf := new(bytes.Buffer)
	w := bitio.NewWriter(buf)
	for _, p := range points {
		w.TryWriteBits(p.SampleNumber, 64)
		w.TryWriteBits(p.StreamOffset, 64)
		w.TryWriteBits(uint64(p.FrameSamples), 16)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// VorbisCommentBody encodes a VORBIS_COMMENT body with raw entries such as
// "ARTIST=Test Band".
func VorbisCommentBody(vendor string, entries ...string) []byte {
	buf := new(bytes.Buffer)
	putString := func(s string) {
		_ = binary.Write(buf, binary.LittleEndian, uint32(len(s)))
		buf.WriteString(s)
	}
	putString(vendor)
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(entries)))
	for _, e := range entries {
		putString(e)
	}
	return buf.Bytes()
}

// Picture holds the PICTURE fields to encode.
type Picture struct {
	Type        uint32
	MIMEType    string
	Description string
	Width       uint32
	Height      uint32
	Depth       uint32
	Colors      uint32
	Data        []byte
}

// PictureBody encodes a PICTURE body.
func PictureBody(p Picture) []byte {
	buf := new(bytes.Buffer)
	be := func(v uint32) { _ = binary.Write(buf, binary.BigEndian, v) }
	be(p.Type)
	be(uint32(len(p.MIMEType)))
	buf.WriteString(p.MIMEType)
	be(uint32(len(p.Description)))
	buf.WriteString(p.Description)
	be(p.Width)
	be(p.Height)
	be(p.Depth)
	be(p.Colors)
	be(uint32(len(p.Data)))
	buf.Write(p.Data)
	return buf.Bytes()
}

// BlockHeader encodes a 4 byte metadata block header.
func BlockHeader(typ uint8, last bool, length int) []byte {
	h := uint32(typ&0x7F)<<24 | uint32(length)&0xFFFFFF
	if last {
		h |= 1 << 31
	}
	return binary.BigEndian.AppendUint32(nil, h)
}

// ID3v2 returns an ID3v2.4 tag with n bytes of zero payload.
func ID3v2(n int) []byte {
	tag := []byte{'I', 'D', '3', 4, 0, 0}
	// syncsafe size, 7 bits per byte
	tag = append(tag, byte(n>>21&0x7F), byte(n>>14&0x7F), byte(n>>7&0x7F), byte(n&0x7F))
	return append(tag, make([]byte, n)...)
}

type block struct {
	typ  uint8
	body []byte
}

// Builder assembles a complete stream: optional ID3v2 tag, signature,
// STREAMINFO, extra metadata blocks and then frames in the order they were
// added.
type Builder struct {
	Info StreamInfo

	id3     int
	blocks  []block
	frames  [][]byte
	num     uint64
	autoMD5 bool
	md5     [][]byte
}

// NewBuilder returns a Builder for a stream described by info.
func NewBuilder(info StreamInfo) *Builder {
	return &Builder{Info: info}
}

// Block appends a metadata block after STREAMINFO.
func (b *Builder) Block(typ uint8, body []byte) *Builder {
	b.blocks = append(b.blocks, block{typ: typ, body: body})
	return b
}

// ID3 prefixes the stream with an ID3v2 tag of n payload bytes.
func (b *Builder) ID3(n int) *Builder {
	b.id3 = n
	return b
}

// WithMD5 stores the MD5 of every frame added through Frame in STREAMINFO.
func (b *Builder) WithMD5() *Builder {
	b.autoMD5 = true
	return b
}

// Frame appends one frame holding samples[ch][i]. Frame numbers increase
// from 0.
func (b *Builder) Frame(samples ...[]int32) *Builder {
	f := EncodeFrame(b.num, b.Info.SampleRate, b.Info.BitsPerSample, samples)
	b.num++
	b.frames = append(b.frames, f)
	b.md5 = append(b.md5, hashSamples(b.Info.BitsPerSample, samples))
	return b
}

// Raw appends bytes verbatim after the previous frame.
func (b *Builder) Raw(p []byte) *Builder {
	b.frames = append(b.frames, p)
	return b
}

// Bytes returns the encoded stream.
func (b *Builder) Bytes() []byte {
	info := b.Info
	if b.autoMD5 {
		h := md5.New()
		for _, p := range b.md5 {
			h.Write(p)
		}
		copy(info.MD5[:], h.Sum(nil))
	}

	buf := new(bytes.Buffer)
	if b.id3 > 0 {
		buf.Write(ID3v2(b.id3))
	}
	buf.WriteString("fLaC")

	si := StreamInfoBody(info)
	buf.Write(BlockHeader(TypeStreamInfo, len(b.blocks) == 0, len(si)))
	buf.Write(si)
	for i, blk := range b.blocks {
		buf.Write(BlockHeader(blk.typ, i == len(b.blocks)-1, len(blk.body)))
		buf.Write(blk.body)
	}
	for _, f := range b.frames {
		buf.Write(f)
	}
	return buf.Bytes()
}

// hashSamples serialises samples the way the FLAC MD5 signature expects:
// interleaved, little-endian, (bps+7)/8 bytes per sample.
func hashSamples(bps uint8, samples [][]int32) []byte {
	if len(samples) == 0 {
		return nil
	}
	width := int(bps+7) / 8
	var out []byte
	for i := range samples[0] {
		for ch := range samples {
			s := uint32(samples[ch][i])
			for k := range width {
				out = append(out, byte(s>>(8*k)))
			}
		}
	}
	return out
}
