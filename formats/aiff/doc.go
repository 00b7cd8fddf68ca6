// SPDX-License-Identifier: EPL-2.0

// Package aiff reads uncompressed AIFF files as an audio.Source, so that
// `flacdump stats` can compare a FLAC stream with an AIFF rendering of the
// same audio.
//
// Decoding is done by github.com/go-audio/aiff. Integer PCM of 8, 16, 24 or
// 32 bits is accepted and scaled to float32 in [-1, 1). AIFF-C is not
// supported.
//
//	f, _ := os.Open("take.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not AIFF
//	}
package aiff
