// SPDX-License-Identifier: EPL-2.0

// Package vorbis reads Ogg Vorbis files as an audio.Source using
// github.com/jfreymuth/oggvorbis.
//
// This is a read-back path for `flacdump stats` only. FLAC carried in Ogg is
// a different thing and is not supported by the decoder package.
package vorbis
