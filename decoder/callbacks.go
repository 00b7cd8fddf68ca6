// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"errors"
	"io"

	"github.com/ik5/flacstream/meta"
)

// ByteSource supplies compressed bytes on demand. Read fills buf with up to
// len(buf) bytes and reports how many were written. buf is session scratch
// reused for every request and must not be retained.
//
// Returning (0, ReadContinue), a negative count or a count above len(buf)
// is a protocol violation and aborts the session.
type ByteSource interface {
	Read(buf []byte) (int, ReadStatus)
}

// FrameSink receives every decoded frame in stream order. The block is only
// valid during the call.
type FrameSink interface {
	WriteFrame(b *FrameBlock) WriteStatus
}

// ErrorSink is told about every recoverable stream error, once per event.
type ErrorSink interface {
	OnError(kind ErrorKind)
}

// MetadataSink receives the metadata records the session responds to.
type MetadataSink interface {
	OnMetadata(rec meta.Record, isLast bool)
}

// Handler is everything a session talks to.
type Handler interface {
	ByteSource
	FrameSink
	ErrorSink
	MetadataSink
}

// Opener is implemented by handlers that acquire their source lazily. Init
// calls Open once; an error yields InitErrorOpeningSource.
type Opener interface {
	Open() error
}

// Callbacks adapts plain functions to a Handler. ReadFunc, WriteFunc and
// ErrorFunc are required; MetadataFunc may be nil.
type Callbacks struct {
	ReadFunc     func(buf []byte) (int, ReadStatus)
	WriteFunc    func(b *FrameBlock) WriteStatus
	ErrorFunc    func(kind ErrorKind)
	MetadataFunc func(rec meta.Record, isLast bool)
}

func (c Callbacks) Read(buf []byte) (int, ReadStatus)    { return c.ReadFunc(buf) }
func (c Callbacks) WriteFrame(b *FrameBlock) WriteStatus { return c.WriteFunc(b) }
func (c Callbacks) OnError(kind ErrorKind)               { c.ErrorFunc(kind) }

func (c Callbacks) OnMetadata(rec meta.Record, isLast bool) {
	if c.MetadataFunc != nil {
		c.MetadataFunc(rec, isLast)
	}
}

func (c Callbacks) valid() bool {
	return c.ReadFunc != nil && c.WriteFunc != nil && c.ErrorFunc != nil
}

// Sinks are the output side of a session opened with InitFile or bound with
// NewHandler. Metadata may be nil.
type Sinks struct {
	Frames   FrameSink
	Errors   ErrorSink
	Metadata MetadataSink
}

func (s Sinks) valid() bool {
	return s.Frames != nil && s.Errors != nil
}

// FrameSinkFunc adapts a function to a FrameSink.
type FrameSinkFunc func(b *FrameBlock) WriteStatus

func (f FrameSinkFunc) WriteFrame(b *FrameBlock) WriteStatus { return f(b) }

// ErrorSinkFunc adapts a function to an ErrorSink.
type ErrorSinkFunc func(kind ErrorKind)

func (f ErrorSinkFunc) OnError(kind ErrorKind) { f(kind) }

// MetadataSinkFunc adapts a function to a MetadataSink.
type MetadataSinkFunc func(rec meta.Record, isLast bool)

func (f MetadataSinkFunc) OnMetadata(rec meta.Record, isLast bool) { f(rec, isLast) }

// NewHandler joins a ByteSource with a set of Sinks.
func NewHandler(src ByteSource, sinks Sinks) Handler {
	return sinkHandler{ByteSource: src, sinks: sinks}
}

type sinkHandler struct {
	ByteSource
	sinks Sinks
}

func (h sinkHandler) WriteFrame(b *FrameBlock) WriteStatus { return h.sinks.Frames.WriteFrame(b) }
func (h sinkHandler) OnError(kind ErrorKind)               { h.sinks.Errors.OnError(kind) }

func (h sinkHandler) OnMetadata(rec meta.Record, isLast bool) {
	if h.sinks.Metadata != nil {
		h.sinks.Metadata.OnMetadata(rec, isLast)
	}
}

func validHandler(h Handler) bool {
	switch c := h.(type) {
	case nil:
		return false
	case Callbacks:
		return c.valid()
	case *Callbacks:
		return c != nil && c.valid()
	case sinkHandler:
		return c.ByteSource != nil && c.sinks.valid()
	}
	return true
}

// maxEmptyReads is how many (0, nil) results a readerSource accepts in a row
// before it gives up with io.ErrNoProgress, the same limit bufio uses.
const maxEmptyReads = 100

// ReaderSource adapts an io.Reader. io.EOF maps to ReadEndOfStream and any
// other error to ReadAbort, as does a reader that keeps returning no data.
func ReaderSource(r io.Reader) ByteSource {
	return &readerSource{r: r}
}

type readerSource struct {
	r   io.Reader
	err error
}

// Err returns the error that made the source abort, if any.
func (s *readerSource) Err() error { return s.err }

func (s *readerSource) Read(buf []byte) (int, ReadStatus) {
	for range maxEmptyReads {
		n, err := s.r.Read(buf)
		switch {
		case errors.Is(err, io.EOF):
			return n, ReadEndOfStream
		case err != nil:
			s.err = err
			return 0, ReadAbort
		case n > 0:
			return n, ReadContinue
		}
	}
	s.err = io.ErrNoProgress
	return 0, ReadAbort
}
