// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"io"
)

// Buffer is a memory based io.WriteSeeker, for writing a WAV file without a
// backing file. The zero value is ready to use.
type Buffer struct {
	buf []byte
	pos int
}

// Bytes returns the bytes written so far.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Write writes p at the current offset, growing the buffer as needed.
func (b *Buffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > cap(b.buf) {
		grown := make([]byte, len(b.buf), end+len(p))
		copy(grown, b.buf)
		b.buf = grown
	}
	if end > len(b.buf) {
		b.buf = b.buf[:end]
	}
	copy(b.buf[b.pos:], p)
	b.pos = end
	return len(p), nil
}

// Seek sets the offset for the next Write.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var pos int
	switch whence {
	case io.SeekStart:
		pos = int(offset)
	case io.SeekCurrent:
		pos = b.pos + int(offset)
	case io.SeekEnd:
		pos = len(b.buf) + int(offset)
	default:
		return 0, errors.New("wav: invalid whence")
	}
	if pos < 0 {
		return 0, errors.New("wav: negative position")
	}
	b.pos = pos
	return int64(pos), nil
}
