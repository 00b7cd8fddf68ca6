// SPDX-License-Identifier: EPL-2.0

// Package wav connects decoded FLAC frames to WAV files.
//
// FrameWriter is a decoder.FrameSink that writes every frame it receives
// through a github.com/go-audio/wav encoder. Register it as the metadata sink
// as well so the WAV header is taken from STREAMINFO:
//
//	out, _ := os.Create("out.wav")
//	fw := wav.NewFrameWriter(out)
//	s := decoder.New()
//	s.InitFile("in.flac", decoder.Sinks{Frames: fw, Errors: errs, Metadata: fw})
//	err := s.ProcessUntilEndOfStream()
//	s.Finish()
//	fw.Close()
//
// Sample depths that are not a multiple of 8 are left-justified in the next
// byte aligned container, so 12 bit audio is stored as 16 bit PCM and 20 bit
// audio as 24 bit PCM.
//
// Decoder turns integer PCM WAV of 8, 16, 24 or 32 bits back into an
// audio.Source of float32 samples in [-1, 1). go-audio needs an
// io.ReadSeeker; other readers are buffered in memory.
//
// Buffer is an in-memory io.WriteSeeker for producing WAV without a file.
package wav
