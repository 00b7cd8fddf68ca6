// SPDX-License-Identifier: EPL-2.0

package meta

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/icza/bitio"
)

const (
	streamInfoSize = 34
	seekPointSize  = 18
)

// Decode translates one raw metadata block into a Record. It is pure and
// keeps no reference to raw.Data in the returned record, except for
// Picture.Data which is a copy.
//
// Block types without a dedicated variant decode to *Unknown instead of
// failing.
func Decode(raw RawBlock) (Record, error) {
	switch raw.Type {
	case TypeStreamInfo:
		return decodeStreamInfo(raw)
	case TypeSeekTable:
		return decodeSeekTable(raw)
	case TypeVorbisComment:
		return decodeVorbisComment(raw)
	case TypePicture:
		return decodePicture(raw)
	default:
		return &Unknown{IsLast: raw.IsLast, BlockType: raw.Type, Length: raw.Length}, nil
	}
}

func decodeStreamInfo(raw RawBlock) (*StreamInfo, error) {
	if len(raw.Data) != streamInfoSize {
		return nil, &BlockError{
			Type:   TypeStreamInfo,
			Reason: fmt.Sprintf("size %d, expected %d", len(raw.Data), streamInfoSize),
			Err:    ErrInvalidStreamInfoLength,
		}
	}

	br := bitio.NewReader(bytes.NewReader(raw.Data))
	si := &StreamInfo{IsLast: raw.IsLast}
	si.MinBlockSize = uint16(br.TryReadBits(16))
	si.MaxBlockSize = uint16(br.TryReadBits(16))
	si.MinFrameSize = uint32(br.TryReadBits(24))
	si.MaxFrameSize = uint32(br.TryReadBits(24))
	si.SampleRate = uint32(br.TryReadBits(20))
	si.Channels = uint8(br.TryReadBits(3)) + 1
	si.BitsPerSample = uint8(br.TryReadBits(5)) + 1
	si.TotalSamples = br.TryReadBits(36)
	if br.TryError != nil {
		return nil, &BlockError{Type: TypeStreamInfo, Reason: br.TryError.Error(), Err: ErrTruncated}
	}
	copy(si.MD5[:], raw.Data[18:streamInfoSize])

	return si, nil
}

func decodeSeekTable(raw RawBlock) (*SeekTable, error) {
	if len(raw.Data)%seekPointSize != 0 {
		return nil, &BlockError{
			Type:   TypeSeekTable,
			Reason: fmt.Sprintf("size %d", len(raw.Data)),
			Err:    ErrInvalidSeekTableLength,
		}
	}

	n := len(raw.Data) / seekPointSize
	st := &SeekTable{IsLast: raw.IsLast, Points: make([]SeekPoint, n)}
	br := bitio.NewReader(bytes.NewReader(raw.Data))
	for i := range st.Points {
		st.Points[i] = SeekPoint{
			SampleNumber: br.TryReadBits(64),
			StreamOffset: br.TryReadBits(64),
			FrameSamples: uint32(br.TryReadBits(16)),
		}
	}
	if br.TryError != nil {
		return nil, &BlockError{Type: TypeSeekTable, Reason: br.TryError.Error(), Err: ErrTruncated}
	}

	return st, nil
}

// cursor walks a block body for the byte aligned, length prefixed layouts.
type cursor struct {
	typ Type
	b   []byte
	off int
}

func (c *cursor) truncated(what string) error {
	return &BlockError{
		Type:   c.typ,
		Offset: int64(c.off),
		Reason: "truncated " + what,
		Err:    ErrTruncated,
	}
}

func (c *cursor) remaining() int { return len(c.b) - c.off }

func (c *cursor) uint32LE(what string) (uint32, error) {
	if c.remaining() < 4 {
		return 0, c.truncated(what)
	}
	v := binary.LittleEndian.Uint32(c.b[c.off:])
	c.off += 4
	return v, nil
}

func (c *cursor) uint32BE(what string) (uint32, error) {
	if c.remaining() < 4 {
		return 0, c.truncated(what)
	}
	v := binary.BigEndian.Uint32(c.b[c.off:])
	c.off += 4
	return v, nil
}

func (c *cursor) bytes(n uint32, what string) ([]byte, error) {
	if uint64(n) > uint64(c.remaining()) {
		return nil, c.truncated(what)
	}
	b := c.b[c.off : c.off+int(n)]
	c.off += int(n)
	return b, nil
}

func (c *cursor) string(n uint32, what string) (string, error) {
	b, err := c.bytes(n, what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
