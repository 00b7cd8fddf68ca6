// SPDX-License-Identifier: EPL-2.0

package decoder

import "fmt"

// State is the lifecycle state of a Session.
type State int

const (
	Uninitialized State = iota
	Initialized
	ReadingMetadata
	ReadingFrames
	Finished
	Aborted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case ReadingMetadata:
		return "reading metadata"
	case ReadingFrames:
		return "reading frames"
	case Finished:
		return "finished"
	case Aborted:
		return "aborted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// InitStatus is the result of Session.Init and Session.InitFile.
type InitStatus int

const (
	InitOK InitStatus = iota
	InitUnsupportedContainer
	InitInvalidCallbacks
	InitMemoryAllocationError
	InitErrorOpeningSource
	InitAlreadyInitialized
)

func (s InitStatus) String() string {
	switch s {
	case InitOK:
		return "ok"
	case InitUnsupportedContainer:
		return "unsupported container"
	case InitInvalidCallbacks:
		return "invalid callbacks"
	case InitMemoryAllocationError:
		return "memory allocation error"
	case InitErrorOpeningSource:
		return "error opening source"
	case InitAlreadyInitialized:
		return "already initialized"
	}
	return fmt.Sprintf("InitStatus(%d)", int(s))
}

// ReadStatus is returned by a ByteSource together with the byte count.
type ReadStatus int

const (
	// ReadContinue means n > 0 bytes were written to the buffer.
	ReadContinue ReadStatus = iota
	// ReadEndOfStream means the source is exhausted. n may be > 0 for the
	// final chunk.
	ReadEndOfStream
	// ReadAbort stops decoding; the session moves to Aborted.
	ReadAbort
)

func (s ReadStatus) String() string {
	switch s {
	case ReadContinue:
		return "continue"
	case ReadEndOfStream:
		return "end of stream"
	case ReadAbort:
		return "abort"
	}
	return fmt.Sprintf("ReadStatus(%d)", int(s))
}

// WriteStatus is returned by a FrameSink for every delivered frame.
type WriteStatus int

const (
	WriteContinue WriteStatus = iota
	WriteAbort
)

func (s WriteStatus) String() string {
	switch s {
	case WriteContinue:
		return "continue"
	case WriteAbort:
		return "abort"
	}
	return fmt.Sprintf("WriteStatus(%d)", int(s))
}

// ErrorKind classifies a recoverable stream error reported to an ErrorSink.
type ErrorKind int

const (
	// LostSync means bytes were found where a frame sync code was expected.
	LostSync ErrorKind = iota
	// BadHeader means a frame header failed its CRC-8, was invalid, or
	// disagreed with STREAMINFO.
	BadHeader
	// FrameCRCMismatch means a frame decoded but failed its CRC-16.
	FrameCRCMismatch
	// UnparseableStream means data could not be decoded at all.
	UnparseableStream
)

func (k ErrorKind) String() string {
	switch k {
	case LostSync:
		return "lost sync"
	case BadHeader:
		return "bad header"
	case FrameCRCMismatch:
		return "frame CRC mismatch"
	case UnparseableStream:
		return "unparseable stream"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}
