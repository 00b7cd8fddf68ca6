// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"crypto/md5"
	"errors"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"os"

	"github.com/mewkiz/flac/frame"

	"github.com/ik5/flacstream/internal/bitstream"
	"github.com/ik5/flacstream/meta"
)

// Session decodes one FLAC stream at a time. It is driven by the caller
// through the Process methods and talks to its Handler synchronously from
// inside those calls. A Session is not safe for concurrent use, and
// handlers must not call back into the session that invoked them.
type Session struct {
	log         *slog.Logger
	readSize    int
	md5Checking bool
	crcFatal    bool
	ogg         bool
	ignore      [meta.NumTypes]bool

	state   State
	invalid bool
	busy    bool
	cause   error

	h      Handler
	closer io.Closer
	src    *sourceReader
	bs     *bitstream.Decoder
	asm    assembler

	info      *meta.StreamInfo
	blockSize int
	decoded   uint64

	md5    hash.Hash
	md5On  bool
	md5Buf []byte
}

// New returns an uninitialized session that responds to every metadata
// block type.
func New(opts ...Option) *Session {
	s := &Session{
		log:      slog.New(slog.DiscardHandler),
		readSize: DefaultReadSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init binds the session to h and moves it to Initialized. If h implements
// Opener, Open is called first.
func (s *Session) Init(h Handler) InitStatus {
	if st := s.precheck(); st != InitOK {
		return st
	}
	if !validHandler(h) {
		return InitInvalidCallbacks
	}
	if st := s.checkReadSize(); st != InitOK {
		return st
	}
	if o, ok := h.(Opener); ok {
		if err := o.Open(); err != nil {
			s.log.Error("open source", "err", err)
			s.invalid = true
			return InitErrorOpeningSource
		}
	}

	var src ByteSource = h
	if sh, ok := h.(sinkHandler); ok {
		src = sh.ByteSource
	}
	s.bind(src, h, nil)
	return InitOK
}

// InitFile opens path as the byte source. The file is closed by Finish or
// Reset.
func (s *Session) InitFile(path string, sinks Sinks) InitStatus {
	if st := s.precheck(); st != InitOK {
		return st
	}
	if !sinks.valid() {
		return InitInvalidCallbacks
	}
	if st := s.checkReadSize(); st != InitOK {
		return st
	}

	f, err := os.Open(path)
	if err != nil {
		s.log.Error("open source", "path", path, "err", err)
		s.invalid = true
		return InitErrorOpeningSource
	}

	src := ReaderSource(f)
	s.bind(src, NewHandler(src, sinks), f)
	return InitOK
}

func (s *Session) precheck() InitStatus {
	if s.state != Uninitialized {
		return InitAlreadyInitialized
	}
	if s.ogg {
		return InitUnsupportedContainer
	}
	return InitOK
}

func (s *Session) checkReadSize() InitStatus {
	if s.readSize < MinReadSize || s.readSize > MaxReadSize {
		s.log.Error("invalid read size", "size", s.readSize)
		s.invalid = true
		return InitMemoryAllocationError
	}
	return InitOK
}

func (s *Session) bind(src ByteSource, h Handler, c io.Closer) {
	s.h = h
	s.closer = c
	s.src = newSourceReader(src, s.readSize)
	s.bs = bitstream.New(s.src, s.readSize)

	s.invalid = false
	s.cause = nil
	s.info = nil
	s.blockSize = 0
	s.decoded = 0

	s.md5On = s.md5Checking
	if s.md5On {
		s.md5 = md5.New()
	}

	s.setState(Initialized)
}

// ProcessSingle decodes one unit: the next metadata block (the signature
// included when nothing has been read yet) or the next frame. In Finished
// it does nothing.
func (s *Session) ProcessSingle() error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	return s.step()
}

// ProcessUntilEndOfMetadata decodes metadata blocks until the last one. It
// returns with the session in ReadingFrames.
func (s *Session) ProcessUntilEndOfMetadata() error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	for s.state == Initialized || s.state == ReadingMetadata {
		if err := s.step(); err != nil {
			return err
		}
	}
	return nil
}

// ProcessUntilEndOfStream decodes everything that is left.
func (s *Session) ProcessUntilEndOfStream() error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()

	for s.state != Finished {
		if err := s.step(); err != nil {
			return err
		}
	}
	return nil
}

// Finish verifies the MD5 signature when checking is enabled, the stream
// carries one and it was decoded to the end. It then releases the handler
// and returns the session to Uninitialized. Calling Finish on an
// uninitialized session does nothing.
func (s *Session) Finish() error {
	if s.busy {
		return ErrReentrant
	}
	if s.state == Uninitialized {
		return nil
	}

	var err error
	if s.md5On && s.state == Finished && s.info != nil && s.info.HasMD5() {
		var sum [md5.Size]byte
		copy(sum[:], s.md5.Sum(nil))
		if sum != s.info.MD5 {
			err = fmt.Errorf("%w: got %x, want %x", ErrMD5Mismatch, sum, s.info.MD5)
		}
	}

	if cerr := s.release(); err == nil {
		err = cerr
	}
	return err
}

// Flush drops buffered input and resumes at the next frame sync code. MD5
// checking is disabled for the rest of the stream.
func (s *Session) Flush() error {
	if s.busy {
		return ErrReentrant
	}
	switch s.state {
	case Uninitialized:
		return ErrNotInitialized
	case Aborted:
		return s.abortedErr()
	}

	s.bs.Discard()
	s.src.rearm()
	s.md5On = false
	s.setState(ReadingFrames)
	return nil
}

// Reset releases the handler and returns to Uninitialized. Configuration is
// kept.
func (s *Session) Reset() error {
	if s.busy {
		return ErrReentrant
	}
	return s.release()
}

func (s *Session) release() error {
	var err error
	if s.closer != nil {
		err = s.closer.Close()
	}

	s.h = nil
	s.closer = nil
	s.src = nil
	s.bs = nil
	s.md5 = nil
	s.info = nil
	s.blockSize = 0
	s.decoded = 0
	s.cause = nil
	s.invalid = false
	s.setState(Uninitialized)

	return err
}

func (s *Session) enter() error {
	if s.busy {
		return ErrReentrant
	}
	switch s.state {
	case Uninitialized:
		return ErrNotInitialized
	case Aborted:
		return s.abortedErr()
	}
	s.busy = true
	return nil
}

func (s *Session) leave() { s.busy = false }

func (s *Session) abortedErr() error {
	if s.cause != nil {
		return fmt.Errorf("%w: %w", ErrAborted, s.cause)
	}
	return ErrAborted
}

func (s *Session) step() error {
	switch s.state {
	case Initialized:
		if err := s.bs.ReadSignature(); err != nil {
			return s.metadataFailure(err)
		}
		s.setState(ReadingMetadata)
		return s.readBlock()
	case ReadingMetadata:
		return s.readBlock()
	case ReadingFrames:
		return s.readFrame()
	}
	return nil
}

func (s *Session) readBlock() error {
	h, err := s.bs.ReadHeader()
	if err != nil {
		return s.metadataFailure(err)
	}
	if s.info == nil && h.Type != meta.TypeStreamInfo {
		return s.metadataFailure(fmt.Errorf("first block is %s, want STREAMINFO", h.Type))
	}

	respond := !s.ignore[h.Type]
	if respond || (h.Type == meta.TypeStreamInfo && s.info == nil) {
		raw, err := s.bs.ReadBody(h)
		if err != nil {
			return s.metadataFailure(err)
		}
		rec, err := meta.Decode(raw)
		if err != nil {
			return s.metadataFailure(err)
		}
		if si, ok := rec.(*meta.StreamInfo); ok && s.info == nil {
			info := *si
			s.info = &info
			s.bs.SetStreamInfo(info.SampleRate, info.BitsPerSample)
		}
		if respond {
			s.log.Debug("metadata block", "type", h.Type, "length", h.Length, "last", h.IsLast)
			s.h.OnMetadata(rec, h.IsLast)
		}
	} else {
		if err := s.bs.SkipBody(h); err != nil {
			return s.metadataFailure(err)
		}
		s.log.Debug("skipped metadata block", "type", h.Type, "length", h.Length)
	}

	if h.IsLast {
		s.setState(ReadingFrames)
	}
	return nil
}

// metadataFailure aborts on a broken signature or metadata block. A failing
// source aborts without a stream error report.
func (s *Session) metadataFailure(err error) error {
	if fatal := s.src.fatal(); fatal != nil {
		return s.abort(fatal)
	}
	s.report(UnparseableStream, err)
	return s.abort(fmt.Errorf("%w: %w", ErrMalformedMetadata, err))
}

func (s *Session) readFrame() error {
	for {
		f, err := s.bs.NextFrame(s.onStreamError)
		if err != nil {
			if fatal := s.src.fatal(); fatal != nil {
				return s.abort(fatal)
			}
			if errors.Is(err, io.EOF) {
				s.setState(Finished)
				return nil
			}
			if errors.Is(err, bitstream.ErrCRCMismatch) {
				err = fmt.Errorf("%w: %w", ErrCRCMismatch, err)
			}
			return s.abort(err)
		}

		if err := s.checkFrame(f); err != nil {
			s.report(BadHeader, err)
			continue
		}
		return s.deliver(f)
	}
}

// checkFrame rejects frames whose format disagrees with STREAMINFO.
func (s *Session) checkFrame(f *frame.Frame) error {
	if s.info == nil {
		return nil
	}
	switch {
	case f.Channels.Count() != int(s.info.Channels):
		return fmt.Errorf("frame %d has %d channels, stream has %d", f.Num, f.Channels.Count(), s.info.Channels)
	case f.BitsPerSample != s.info.BitsPerSample:
		return fmt.Errorf("frame %d has %d bits per sample, stream has %d", f.Num, f.BitsPerSample, s.info.BitsPerSample)
	case f.SampleRate != s.info.SampleRate:
		return fmt.Errorf("frame %d has sample rate %d, stream has %d", f.Num, f.SampleRate, s.info.SampleRate)
	}
	return nil
}

func (s *Session) deliver(f *frame.Frame) error {
	b := s.asm.assemble(f)
	s.blockSize = b.hdr.BlockSize
	if s.md5On {
		s.hashBlock(b)
	}

	status := s.h.WriteFrame(b)
	b.release()
	s.decoded += uint64(b.hdr.BlockSize)

	if status != WriteContinue {
		return s.abort(ErrWriteAborted)
	}
	return nil
}

// hashBlock feeds the frame to the MD5 in the layout of the STREAMINFO
// signature: interleaved little-endian samples of (bps+7)/8 bytes.
func (s *Session) hashBlock(b *FrameBlock) {
	width := (b.hdr.BitsPerSample + 7) / 8
	s.md5Buf = s.md5Buf[:0]
	for i := range b.hdr.BlockSize {
		for _, ch := range b.chans {
			v := uint32(ch[i])
			for k := range width {
				s.md5Buf = append(s.md5Buf, byte(v>>(8*k)))
			}
		}
	}
	s.md5.Write(s.md5Buf)
}

// onStreamError reports a recoverable error and tells the bitstream decoder
// whether to resynchronize.
func (s *Session) onStreamError(err error) bool {
	kind := errorKind(err)
	s.report(kind, err)
	return kind != FrameCRCMismatch || !s.crcFatal
}

func errorKind(err error) ErrorKind {
	switch {
	case errors.Is(err, bitstream.ErrLostSync):
		return LostSync
	case errors.Is(err, bitstream.ErrBadHeader):
		return BadHeader
	case errors.Is(err, bitstream.ErrCRCMismatch):
		return FrameCRCMismatch
	}
	return UnparseableStream
}

func (s *Session) report(kind ErrorKind, err error) {
	s.log.Warn("stream error", "kind", kind, "err", err)
	s.h.OnError(kind)
}

func (s *Session) abort(err error) error {
	s.cause = err
	s.log.Warn("session aborted", "err", err)
	s.setState(Aborted)
	return err
}

func (s *Session) setState(st State) {
	if st == s.state {
		return
	}
	s.log.Debug("state change", "from", s.state, "to", st)
	s.state = st
}
