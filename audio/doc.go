// SPDX-License-Identifier: EPL-2.0

// Package audio provides the format-neutral playback side of flacstream.
//
// This package contains:
//   - Source interface for normalized PCM input
//   - Decoder interface for turning a byte stream into a Source
//   - Registry for looking decoders up by format key
//   - MonoMixer for channel down-mixing
//   - MeasureLevels for peak and RMS analysis
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1.0, 1.0]. ReadSamples returns
// io.EOF once the stream is exhausted; the final call may return data
// together with io.EOF.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("flac", flac.Decoder{})
//	src, err := registry.Open("flac", f)
//
// The bit-exact integer decoder lives in package decoder; formats/flac
// adapts it to Source.
package audio
