// SPDX-License-Identifier: EPL-2.0

package meta

import (
	"fmt"
	"strings"
)

// Record is a decoded metadata block. The set of implementations is closed:
// *StreamInfo, *SeekTable, *VorbisComment, *Picture and *Unknown.
type Record interface {
	// Type returns the block type the record was decoded from.
	Type() Type
	// Last reports whether the block was the last metadata block.
	Last() bool

	record()
}

// StreamInfo describes the basic properties of the stream.
type StreamInfo struct {
	IsLast bool

	MinBlockSize  uint16
	MaxBlockSize  uint16
	MinFrameSize  uint32 // 0 if unknown
	MaxFrameSize  uint32 // 0 if unknown
	SampleRate    uint32
	Channels      uint8
	BitsPerSample uint8
	TotalSamples  uint64 // per channel; 0 if unknown
	MD5           [16]byte
}

func (*StreamInfo) Type() Type   { return TypeStreamInfo }
func (s *StreamInfo) Last() bool { return s.IsLast }
func (*StreamInfo) record()      {}

// HasMD5 reports whether the encoder stored an MD5 signature. All zero means
// the signature is unset.
func (s *StreamInfo) HasMD5() bool {
	return s.MD5 != [16]byte{}
}

// PlaceholderSampleNumber marks a seek point reserved for later use.
const PlaceholderSampleNumber = 0xFFFFFFFFFFFFFFFF

// SeekPoint is one entry of a seek table.
type SeekPoint struct {
	SampleNumber uint64
	StreamOffset uint64 // byte offset from the first frame header
	FrameSamples uint32
}

// IsPlaceholder reports whether p is a placeholder point.
func (p SeekPoint) IsPlaceholder() bool {
	return p.SampleNumber == PlaceholderSampleNumber
}

// SeekTable holds seek points in stream order.
type SeekTable struct {
	IsLast bool
	Points []SeekPoint
}

func (*SeekTable) Type() Type   { return TypeSeekTable }
func (s *SeekTable) Last() bool { return s.IsLast }
func (*SeekTable) record()      {}

// Comment is a single vorbis comment entry.
type Comment struct {
	Key   string
	Value string
}

func (c Comment) String() string {
	return c.Key + "=" + c.Value
}

// VorbisComment holds the vendor string and the comment entries in file
// order. Keys may repeat.
type VorbisComment struct {
	IsLast   bool
	Vendor   string
	Comments []Comment
}

func (*VorbisComment) Type() Type   { return TypeVorbisComment }
func (v *VorbisComment) Last() bool { return v.IsLast }
func (*VorbisComment) record()      {}

// Get returns the value of the first comment whose key matches key,
// ignoring case.
func (v *VorbisComment) Get(key string) (string, bool) {
	for _, c := range v.Comments {
		if strings.EqualFold(c.Key, key) {
			return c.Value, true
		}
	}
	return "", false
}

// Values returns every value stored under key, ignoring case, in file order.
func (v *VorbisComment) Values(key string) []string {
	var out []string
	for _, c := range v.Comments {
		if strings.EqualFold(c.Key, key) {
			out = append(out, c.Value)
		}
	}
	return out
}

// Map returns the comments keyed by their original key. When a key repeats
// the first value wins.
func (v *VorbisComment) Map() map[string]string {
	m := make(map[string]string, len(v.Comments))
	for _, c := range v.Comments {
		if _, ok := m[c.Key]; !ok {
			m[c.Key] = c.Value
		}
	}
	return m
}

// PictureType is the ID3v2 APIC picture type.
type PictureType uint32

const (
	PictureOther PictureType = iota
	PictureFileIcon
	PictureOtherFileIcon
	PictureFrontCover
	PictureBackCover
	PictureLeaflet
	PictureMedia
	PictureLeadArtist
	PictureArtist
	PictureConductor
	PictureBand
	PictureComposer
	PictureLyricist
	PictureRecordingLocation
	PictureDuringRecording
	PictureDuringPerformance
	PictureScreenCapture
	PictureBrightFish
	PictureIllustration
	PictureBandLogo
	PicturePublisherLogo
)

var pictureTypeNames = [...]string{
	"Other",
	"32x32 file icon",
	"Other file icon",
	"Cover (front)",
	"Cover (back)",
	"Leaflet page",
	"Media",
	"Lead artist",
	"Artist",
	"Conductor",
	"Band",
	"Composer",
	"Lyricist",
	"Recording location",
	"During recording",
	"During performance",
	"Screen capture",
	"A bright coloured fish",
	"Illustration",
	"Band logotype",
	"Publisher logotype",
}

func (t PictureType) String() string {
	if int(t) < len(pictureTypeNames) {
		return pictureTypeNames[t]
	}
	return fmt.Sprintf("Unknown(%d)", uint32(t))
}

// Picture is an embedded image.
type Picture struct {
	IsLast      bool
	PictureType PictureType
	MIMEType    string
	Description string
	Width       uint32
	Height      uint32
	Depth       uint32 // bits per pixel
	Colors      uint32 // 0 for non-indexed images
	Data        []byte
}

func (*Picture) Type() Type   { return TypePicture }
func (p *Picture) Last() bool { return p.IsLast }
func (*Picture) record()      {}

// Unknown stands for every block type that is not decoded: padding,
// application, cue sheet and reserved types.
type Unknown struct {
	IsLast    bool
	BlockType Type
	Length    uint32
}

func (u *Unknown) Type() Type { return u.BlockType }
func (u *Unknown) Last() bool { return u.IsLast }
func (*Unknown) record()      {}
