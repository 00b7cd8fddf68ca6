// SPDX-License-Identifier: EPL-2.0

// Package flacstream decodes FLAC streams through a caller driven pull
// protocol.
//
// The work is done by subpackages:
//   - decoder: the decoding session. The caller supplies a ByteSource that
//     feeds compressed bytes on request and sinks that receive metadata
//     records, decoded frames and stream error notices.
//   - meta: typed metadata records (STREAMINFO, SEEKTABLE, VORBIS_COMMENT,
//     PICTURE and opaque blocks).
//   - formats/flac: FLAC as an audio.Source of interleaved float32.
//   - formats/wav: a frame sink that writes WAV files, plus a WAV reader.
//   - formats/aiff, formats/mp3, formats/vorbis: readers for other renderings
//     of the same audio, used by flacdump stats.
//   - audio: format neutral Source and Decoder contracts and a Registry.
//
// # Quick Start
//
// List the metadata of a file:
//
//	f, _ := os.Open("song.flac")
//	records, err := flacstream.ReadMetadata(f)
//	for _, rec := range records {
//	    fmt.Println(rec.Type())
//	}
//
// Convert a file to WAV:
//
//	in, _ := os.Open("song.flac")
//	out, _ := os.Create("song.wav")
//	stats, err := flacstream.DecodeToWAV(in, out, decoder.WithMD5Checking(true))
//
// # Driving a Session
//
// For full control bind a Handler to a decoder.Session and step it:
//
//	s := decoder.New(decoder.WithLogger(logger))
//	s.Init(decoder.Callbacks{
//	    ReadFunc:  src.Read,
//	    WriteFunc: func(b *decoder.FrameBlock) decoder.WriteStatus {
//	        left := b.Channel(0) // only valid during this call
//	        _ = left
//	        return decoder.WriteContinue
//	    },
//	    ErrorFunc: func(kind decoder.ErrorKind) { log.Print(kind) },
//	})
//	err := s.ProcessUntilEndOfStream()
//	s.Finish()
//
// The blocks handed to WriteFunc borrow session scratch memory. Copy what
// you need to keep with Clone, CopyChannel or IntBuffer.
package flacstream
