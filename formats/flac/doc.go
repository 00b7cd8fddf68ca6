// SPDX-License-Identifier: EPL-2.0

// Package flac adapts a decoder.Session to the audio.Source pull interface,
// so FLAC streams can sit in an audio.Registry next to other formats.
//
// Samples are returned interleaved as float32 in [-1, 1), scaled by the
// stream bit depth. Frames are decoded lazily as ReadSamples asks for more,
// and corrupt frames are skipped like the session does. dst must hold a
// whole number of sample frames.
package flac
