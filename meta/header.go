// SPDX-License-Identifier: EPL-2.0

package meta

import (
	"bytes"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Type is the 7-bit metadata block type.
type Type uint8

// Metadata block types.
const (
	TypeStreamInfo Type = iota
	TypePadding
	TypeApplication
	TypeSeekTable
	TypeVorbisComment
	TypeCueSheet
	TypePicture

	// typeInvalid is forbidden by the format to avoid confusion with a frame
	// sync code.
	typeInvalid Type = 127
)

// HeaderSize is the size of a metadata block header in bytes.
const HeaderSize = 4

// NumTypes is the number of block types Session configuration can address
// individually (0..126).
const NumTypes = 127

func (t Type) String() string {
	switch t {
	case TypeStreamInfo:
		return "STREAMINFO"
	case TypePadding:
		return "PADDING"
	case TypeApplication:
		return "APPLICATION"
	case TypeSeekTable:
		return "SEEKTABLE"
	case TypeVorbisComment:
		return "VORBIS_COMMENT"
	case TypeCueSheet:
		return "CUESHEET"
	case TypePicture:
		return "PICTURE"
	}
	return fmt.Sprintf("RESERVED(%d)", uint8(t))
}

// Header is a decoded metadata block header.
type Header struct {
	Type   Type
	IsLast bool
	Length uint32 // body length in bytes
}

// ParseHeader decodes the 4 header bytes of a metadata block.
func ParseHeader(b [HeaderSize]byte) (Header, error) {
	br := bitio.NewReader(bytes.NewReader(b[:]))

	h := Header{
		IsLast: br.TryReadBool(),
		Type:   Type(br.TryReadBits(7)),
		Length: uint32(br.TryReadBits(24)),
	}
	if br.TryError != nil {
		return Header{}, fmt.Errorf("read block header: %w", br.TryError)
	}
	if h.Type == typeInvalid {
		return h, ErrInvalidBlockType
	}

	return h, nil
}

// ReadHeader reads and decodes a metadata block header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var b [HeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return Header{}, err
	}
	return ParseHeader(b)
}

// RawBlock is a metadata block header together with its undecoded body.
type RawBlock struct {
	Header
	Data []byte
}
