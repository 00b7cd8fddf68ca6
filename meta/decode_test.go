// SPDX-License-Identifier: EPL-2.0

package meta

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ik5/flacstream/internal/flactest"
)

func TestParseHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      [HeaderSize]byte
		want    Header
		wantErr error
	}{
		{"streaminfo last", [4]byte{0x80, 0x00, 0x00, 0x22}, Header{Type: TypeStreamInfo, IsLast: true, Length: 34}, nil},
		{"padding", [4]byte{0x01, 0x00, 0x01, 0x00}, Header{Type: TypePadding, Length: 256}, nil},
		{"max length", [4]byte{0x06, 0xFF, 0xFF, 0xFF}, Header{Type: TypePicture, Length: 1<<24 - 1}, nil},
		{"reserved", [4]byte{0xFE, 0x00, 0x00, 0x00}, Header{Type: 126, IsLast: true}, nil},
		{"invalid", [4]byte{0x7F, 0x00, 0x00, 0x00}, Header{}, ErrInvalidBlockType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseHeader(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseHeader() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseHeader() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func raw(typ Type, last bool, body []byte) RawBlock {
	return RawBlock{Header: Header{Type: typ, IsLast: last, Length: uint32(len(body))}, Data: body}
}

func TestDecode_StreamInfo(t *testing.T) {
	t.Parallel()

	body := flactest.StreamInfoBody(flactest.StreamInfo{
		MinBlockSize:  4096,
		MaxBlockSize:  4096,
		MinFrameSize:  14,
		MaxFrameSize:  1<<24 - 1,
		SampleRate:    96000,
		Channels:      8,
		BitsPerSample: 24,
		TotalSamples:  1<<36 - 1,
		MD5:           [16]byte{0: 0xAA, 15: 0x55},
	})

	rec, err := Decode(raw(TypeStreamInfo, true, body))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := &StreamInfo{
		IsLast:        true,
		MinBlockSize:  4096,
		MaxBlockSize:  4096,
		MinFrameSize:  14,
		MaxFrameSize:  1<<24 - 1,
		SampleRate:    96000,
		Channels:      8,
		BitsPerSample: 24,
		TotalSamples:  1<<36 - 1,
		MD5:           [16]byte{0: 0xAA, 15: 0x55},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
	if !want.HasMD5() || (&StreamInfo{}).HasMD5() {
		t.Error("HasMD5() wrong")
	}
}

func TestDecode_StreamInfoTotalSamples(t *testing.T) {
	t.Parallel()

	info := flactest.DefaultInfo()
	info.TotalSamples = 5_000_000_000
	rec, err := Decode(raw(TypeStreamInfo, false, flactest.StreamInfoBody(info)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := rec.(*StreamInfo).TotalSamples; got != 5_000_000_000 {
		t.Errorf("TotalSamples = %d, want 5000000000", got)
	}
}

func TestDecode_SeekTable(t *testing.T) {
	t.Parallel()

	body := flactest.SeekTableBody(
		flactest.SeekPoint{SampleNumber: 0, StreamOffset: 0, FrameSamples: 4096},
		flactest.SeekPoint{SampleNumber: 1 << 40, StreamOffset: 1 << 33, FrameSamples: 1152},
		flactest.SeekPoint{SampleNumber: PlaceholderSampleNumber},
	)
	rec, err := Decode(raw(TypeSeekTable, false, body))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := &SeekTable{Points: []SeekPoint{
		{SampleNumber: 0, StreamOffset: 0, FrameSamples: 4096},
		{SampleNumber: 1 << 40, StreamOffset: 1 << 33, FrameSamples: 1152},
		{SampleNumber: PlaceholderSampleNumber},
	}}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
	st := rec.(*SeekTable)
	if st.Points[1].IsPlaceholder() || !st.Points[2].IsPlaceholder() {
		t.Error("IsPlaceholder() wrong")
	}
}

func TestDecode_EmptySeekTable(t *testing.T) {
	t.Parallel()

	rec, err := Decode(raw(TypeSeekTable, true, nil))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	st := rec.(*SeekTable)
	if st.Points == nil || len(st.Points) != 0 {
		t.Errorf("Points = %#v, want empty non-nil slice", st.Points)
	}
}

func TestDecode_VorbisComment(t *testing.T) {
	t.Parallel()

	body := flactest.VorbisCommentBody("reference libFLAC 1.3.2 20170101",
		"ARTIST=Test Band",
		"NOEQUALSIGN",
		"TITLE=a=b",
		"artist=Second",
		"EMPTY=",
	)
	rec, err := Decode(raw(TypeVorbisComment, true, body))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	vc := rec.(*VorbisComment)
	want := &VorbisComment{
		IsLast: true,
		Vendor: "reference libFLAC 1.3.2 20170101",
		Comments: []Comment{
			{Key: "ARTIST", Value: "Test Band"},
			{Key: "NOEQUALSIGN", Value: ""},
			{Key: "TITLE", Value: "a=b"},
			{Key: "artist", Value: "Second"},
			{Key: "EMPTY", Value: ""},
		},
	}
	if diff := cmp.Diff(want, vc); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}

	if v, ok := vc.Get("Artist"); !ok || v != "Test Band" {
		t.Errorf("Get(Artist) = %q, %v", v, ok)
	}
	if _, ok := vc.Get("ALBUM"); ok {
		t.Error("Get(ALBUM) found a value")
	}
	if diff := cmp.Diff([]string{"Test Band", "Second"}, vc.Values("ARTIST")); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	m := vc.Map()
	if m["ARTIST"] != "Test Band" || m["artist"] != "Second" || m["TITLE"] != "a=b" {
		t.Errorf("Map() = %v", m)
	}
	if got := vc.Comments[2].String(); got != "TITLE=a=b" {
		t.Errorf("Comment.String() = %q", got)
	}
}

func TestDecode_Picture(t *testing.T) {
	t.Parallel()

	img := []byte{0x89, 'P', 'N', 'G'}
	body := flactest.PictureBody(flactest.Picture{
		Type:        3,
		MIMEType:    "image/png",
		Description: "cover",
		Width:       500,
		Height:      400,
		Depth:       24,
		Data:        img,
	})

	rec, err := Decode(raw(TypePicture, false, body))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := &Picture{
		PictureType: PictureFrontCover,
		MIMEType:    "image/png",
		Description: "cover",
		Width:       500,
		Height:      400,
		Depth:       24,
		Data:        img,
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}

	// the record owns its data
	body[len(body)-1] = 0
	if rec.(*Picture).Data[3] != 'G' {
		t.Error("Picture.Data aliases the block body")
	}
	if got := PictureFrontCover.String(); got != "Cover (front)" {
		t.Errorf("String() = %q", got)
	}
	if got := PictureType(99).String(); got != "Unknown(99)" {
		t.Errorf("String() = %q", got)
	}
}

func TestDecode_Unknown(t *testing.T) {
	t.Parallel()

	for _, typ := range []Type{TypePadding, TypeApplication, TypeCueSheet, 7, 126} {
		rec, err := Decode(raw(typ, true, make([]byte, 12)))
		if err != nil {
			t.Fatalf("Decode(%s) error = %v", typ, err)
		}
		want := &Unknown{IsLast: true, BlockType: typ, Length: 12}
		if diff := cmp.Diff(want, rec); diff != "" {
			t.Errorf("Decode(%s) mismatch (-want +got):\n%s", typ, diff)
		}
		if rec.Type() != typ {
			t.Errorf("Type() = %s, want %s", rec.Type(), typ)
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	validVorbis := flactest.VorbisCommentBody("v", "A=1")
	validPicture := flactest.PictureBody(flactest.Picture{MIMEType: "image/jpeg", Data: []byte{1, 2, 3}})

	tests := []struct {
		name string
		raw  RawBlock
		want error
	}{
		{"streaminfo short", raw(TypeStreamInfo, true, make([]byte, 33)), ErrInvalidStreamInfoLength},
		{"streaminfo long", raw(TypeStreamInfo, true, make([]byte, 35)), ErrInvalidStreamInfoLength},
		{"seektable partial point", raw(TypeSeekTable, true, make([]byte, 20)), ErrInvalidSeekTableLength},
		{"vorbis empty", raw(TypeVorbisComment, true, nil), ErrTruncated},
		{"vorbis vendor overrun", raw(TypeVorbisComment, true, []byte{10, 0, 0, 0, 'a'}), ErrTruncated},
		{"vorbis count overrun", raw(TypeVorbisComment, true, []byte{0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF}), ErrTruncated},
		{"vorbis entry cut", raw(TypeVorbisComment, true, validVorbis[:len(validVorbis)-1]), ErrTruncated},
		{"picture cut", raw(TypePicture, true, validPicture[:len(validPicture)-1]), ErrTruncated},
		{"picture header only", raw(TypePicture, true, []byte{0, 0, 0}), ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(tt.raw)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Decode() error = %v, want %v", err, tt.want)
			}
			var be *BlockError
			if !errors.As(err, &be) {
				t.Fatalf("Decode() error %T is not a *BlockError", err)
			}
			if be.Type != tt.raw.Type {
				t.Errorf("BlockError.Type = %s, want %s", be.Type, tt.raw.Type)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	t.Parallel()

	tests := map[Type]string{
		TypeStreamInfo:    "STREAMINFO",
		TypeVorbisComment: "VORBIS_COMMENT",
		TypePicture:       "PICTURE",
		TypeCueSheet:      "CUESHEET",
		9:                 "RESERVED(9)",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Errorf("Type(%d).String() = %q, want %q", uint8(typ), got, want)
		}
	}
}
