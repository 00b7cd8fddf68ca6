// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"fmt"
	"io"
)

// sourceReader turns the ByteSource pull protocol into an io.Reader for the
// bitstream decoder. Abort, protocol violations and end of stream are
// sticky.
type sourceReader struct {
	src     ByteSource
	scratch []byte
	err     error
}

func newSourceReader(src ByteSource, size int) *sourceReader {
	return &sourceReader{src: src, scratch: make([]byte, size)}
}

func (r *sourceReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if len(p) == 0 {
		return 0, nil
	}

	buf := r.scratch
	if len(p) < len(buf) {
		buf = buf[:len(p)]
	}

	n, status := r.src.Read(buf)
	if n < 0 || n > len(buf) {
		r.err = fmt.Errorf("%w: %d bytes reported for a %d byte buffer", ErrProtocolViolation, n, len(buf))
		return 0, r.err
	}

	switch status {
	case ReadContinue:
		if n == 0 {
			r.err = fmt.Errorf("%w: no bytes and no end of stream", ErrProtocolViolation)
			return 0, r.err
		}
		return copy(p, buf[:n]), nil
	case ReadEndOfStream:
		r.err = io.EOF
		if n > 0 {
			return copy(p, buf[:n]), nil
		}
		return 0, io.EOF
	case ReadAbort:
		r.err = ErrSourceAborted
		if e, ok := r.src.(interface{ Err() error }); ok && e.Err() != nil {
			r.err = fmt.Errorf("%w: %w", ErrSourceAborted, e.Err())
		}
		return 0, r.err
	}

	r.err = fmt.Errorf("%w: unknown read status %d", ErrProtocolViolation, int(status))
	return 0, r.err
}

// rearm lets a source that reported end of stream be read again.
func (r *sourceReader) rearm() {
	if r.err == io.EOF {
		r.err = nil
	}
}

// fatal returns the terminal error, excluding end of stream.
func (r *sourceReader) fatal() error {
	if r.err == io.EOF {
		return nil
	}
	return r.err
}
