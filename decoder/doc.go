// SPDX-License-Identifier: EPL-2.0

// Package decoder implements a streaming FLAC decode session.
//
// A Session pulls compressed bytes from a ByteSource and pushes metadata
// records, decoded frames and stream errors to its sinks. Everything runs
// synchronously on the caller's goroutine inside the Process methods.
//
// # Lifecycle
//
//	s := decoder.New(decoder.WithMD5Checking(true))
//	if st := s.Init(h); st != decoder.InitOK {
//	    return fmt.Errorf("init: %s", st)
//	}
//	if err := s.ProcessUntilEndOfStream(); err != nil {
//	    return err
//	}
//	return s.Finish()
//
// The states are Uninitialized, Initialized, ReadingMetadata,
// ReadingFrames and Finished, with Aborted reachable from any of them when
// the source or a sink gives up. Reset returns to Uninitialized while keeping
// the configuration, so the same Session can decode another stream.
//
// # Byte Sources
//
// ByteSource.Read receives a buffer whose length is the configured read
// size. It returns the number of bytes written and a ReadStatus. A source
// that has nothing to give must return ReadEndOfStream or ReadAbort;
// returning zero bytes with ReadContinue aborts the session. ReaderSource
// adapts any io.Reader.
//
// # Frames
//
// Each frame is delivered as a *FrameBlock whose samples live in session
// scratch memory. The block is released when WriteFrame returns, and
// using it afterwards panics. Sinks that keep samples must copy them with
// Clone, CopyChannel or IntBuffer.
//
// # Stream Errors
//
// Lost sync, bad frame headers and CRC-16 mismatches are reported to the
// ErrorSink once each and the session resynchronizes at the next frame.
// SetCRCFatal turns CRC mismatches into an abort. Broken metadata is
// reported as UnparseableStream and aborts.
package decoder
