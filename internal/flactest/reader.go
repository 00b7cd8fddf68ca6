// SPDX-License-Identifier: EPL-2.0

package flactest

import "io"

// ChunkReader returns at most N bytes per Read, to exercise short reads.
type ChunkReader struct {
	R io.Reader
	N int
}

func (c *ChunkReader) Read(p []byte) (int, error) {
	if len(p) > c.N {
		p = p[:c.N]
	}
	return c.R.Read(p)
}

// FailingReader returns Err once After bytes have been read from R.
type FailingReader struct {
	R     io.Reader
	After int
	Err   error

	read int
}

func (f *FailingReader) Read(p []byte) (int, error) {
	if f.read >= f.After {
		return 0, f.Err
	}
	if rest := f.After - f.read; len(p) > rest {
		p = p[:rest]
	}
	n, err := f.R.Read(p)
	f.read += n
	return n, err
}
