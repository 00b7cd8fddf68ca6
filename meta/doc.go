// SPDX-License-Identifier: EPL-2.0

// Package meta decodes FLAC metadata blocks into typed records.
//
// A FLAC stream starts with the "fLaC" signature followed by one or more
// metadata blocks. Every block has a 4 byte header:
//
//	is_last:1  type:7  length:24
//
// followed by length bytes of body. The layout of the body depends on the
// block type.
//
// # Records
//
// Decode turns one RawBlock into a Record. Record is a closed set of
// variants:
//   - *StreamInfo: the mandatory first block (34 bytes)
//   - *SeekTable: 18 byte seek points
//   - *VorbisComment: vendor string and ordered KEY=VALUE comments
//   - *Picture: embedded artwork
//   - *Unknown: every other block type (padding, application, cue sheet
//     and reserved types)
//
// Use a type switch to inspect a record:
//
//	rec, err := meta.Decode(raw)
//	if err != nil {
//	    return err
//	}
//	switch r := rec.(type) {
//	case *meta.StreamInfo:
//	    fmt.Println(r.SampleRate, r.Channels, r.TotalSamples)
//	case *meta.VorbisComment:
//	    artist, _ := r.Get("ARTIST")
//	    fmt.Println(artist)
//	case *meta.Unknown:
//	    // not decoded
//	}
//
// # Vorbis comments
//
// Each comment entry is split on the first '=' only, so "A=B=C" yields the
// key "A" and the value "B=C". An entry without any '=' is kept with the
// whole entry as its key and an empty value. Insertion order is preserved.
//
// # 64-bit fields
//
// StreamInfo.TotalSamples and the seek point sample numbers and offsets are
// plain uint64 values; nothing is truncated through 32-bit intermediates.
//
// # Errors
//
// Malformed bodies return a *BlockError wrapping one of the sentinel errors
// ErrInvalidStreamInfoLength, ErrInvalidSeekTableLength or ErrTruncated.
//
//	_, err := meta.Decode(raw)
//	if errors.Is(err, meta.ErrTruncated) {
//	    // body shorter than its declared fields
//	}
package meta
