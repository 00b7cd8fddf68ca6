// SPDX-License-Identifier: EPL-2.0

// Package bitstream reads the FLAC container structure: the stream signature,
// raw metadata blocks and audio frames. Frame parsing, subframe arithmetic and
// checksums are delegated to github.com/mewkiz/flac/frame.
package bitstream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mewkiz/flac/frame"

	"github.com/ik5/flacstream/meta"
)

const (
	signature     = "fLaC"
	id3HeaderSize = 10
)

// Decoder is a pull decoder over a byte reader. It is not safe for concurrent
// use.
type Decoder struct {
	src io.Reader
	br  *bufio.Reader
	t   tracker

	body []byte

	sampleRate    uint32
	bitsPerSample uint8

	lostSync bool
}

// New returns a Decoder reading from r through a buffer of size bytes.
func New(r io.Reader, size int) *Decoder {
	d := &Decoder{src: r, br: bufio.NewReaderSize(r, size)}
	d.t.r = d.br
	return d
}

// SetStreamInfo supplies the values a frame header may defer to STREAMINFO.
func (d *Decoder) SetStreamInfo(sampleRate uint32, bitsPerSample uint8) {
	d.sampleRate = sampleRate
	d.bitsPerSample = bitsPerSample
}

// ReadSignature consumes an optional ID3v2 tag followed by the "fLaC"
// signature.
func (d *Decoder) ReadSignature() error {
	head, err := d.br.Peek(3)
	if err != nil && len(head) < 3 {
		return d.signatureError(err)
	}
	if string(head) == "ID3" {
		if err := d.skipID3(); err != nil {
			return d.signatureError(err)
		}
	}

	var sig [len(signature)]byte
	if _, err := io.ReadFull(d.br, sig[:]); err != nil {
		return d.signatureError(err)
	}
	if string(sig[:]) != signature {
		return fmt.Errorf("%w: got %q", ErrNoSignature, sig[:])
	}
	return nil
}

func (d *Decoder) signatureError(err error) error {
	if isEOF(err) {
		return fmt.Errorf("%w: %w", ErrNoSignature, io.ErrUnexpectedEOF)
	}
	return err
}

// skipID3 discards an ID3v2 tag, footer included.
func (d *Decoder) skipID3() error {
	var hdr [id3HeaderSize]byte
	if _, err := io.ReadFull(d.br, hdr[:]); err != nil {
		return err
	}
	size := int(hdr[6]&0x7F)<<21 | int(hdr[7]&0x7F)<<14 | int(hdr[8]&0x7F)<<7 | int(hdr[9]&0x7F)
	if hdr[5]&0x10 != 0 {
		size += id3HeaderSize
	}
	_, err := d.br.Discard(size)
	return err
}

// ReadHeader reads the next metadata block header.
func (d *Decoder) ReadHeader() (meta.Header, error) {
	h, err := meta.ReadHeader(d.br)
	if err != nil && isEOF(err) {
		return h, io.ErrUnexpectedEOF
	}
	return h, err
}

// ReadBody reads the body of the block described by h. The returned Data is
// only valid until the next call on d.
func (d *Decoder) ReadBody(h meta.Header) (meta.RawBlock, error) {
	n := int(h.Length)
	if cap(d.body) < n {
		d.body = make([]byte, n)
	}
	d.body = d.body[:n]
	if _, err := io.ReadFull(d.br, d.body); err != nil {
		if isEOF(err) {
			err = io.ErrUnexpectedEOF
		}
		return meta.RawBlock{}, err
	}
	return meta.RawBlock{Header: h, Data: d.body}, nil
}

// SkipBody discards the body of the block described by h.
func (d *Decoder) SkipBody(h meta.Header) error {
	if _, err := d.br.Discard(int(h.Length)); err != nil {
		if isEOF(err) {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// NextFrame decodes the next audio frame. Recoverable stream errors are
// passed to onError, after which the decoder searches for the next frame
// sync code; if onError returns false, NextFrame returns that error. At the
// end of the stream NextFrame returns io.EOF. Any other error comes from the
// underlying reader.
func (d *Decoder) NextFrame(onError func(error) bool) (*frame.Frame, error) {
	for {
		if d.lostSync {
			if err := d.seekSync(); err != nil {
				return nil, err
			}
			d.lostSync = false
		}

		ok, err := d.atSync()
		if err != nil {
			return nil, err
		}
		if !ok {
			d.lostSync = true
			if !onError(ErrLostSync) {
				return nil, ErrLostSync
			}
			continue
		}

		f, err := d.readFrame()
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, ErrBadHeader) && !errors.Is(err, ErrCRCMismatch) &&
			!errors.Is(err, ErrUnparseable) {
			return nil, err
		}

		d.lostSync = true
		if !onError(err) {
			return nil, err
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
	}
}

func (d *Decoder) readFrame() (*frame.Frame, error) {
	d.t.err = nil

	f, err := frame.New(&d.t)
	if err != nil {
		if d.t.err != nil {
			return nil, d.truncated(d.t.err)
		}
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}

	if f.SampleRate == 0 {
		f.SampleRate = d.sampleRate
	}
	if f.BitsPerSample == 0 {
		f.BitsPerSample = d.bitsPerSample
	}

	if err := f.Parse(); err != nil {
		if d.t.err != nil {
			return nil, d.truncated(d.t.err)
		}
		if strings.Contains(err.Error(), "CRC-16") {
			return nil, fmt.Errorf("%w: frame %d", ErrCRCMismatch, f.Num)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	return f, nil
}

// truncated classifies a read error seen in the middle of a frame. A stream
// that ends inside a frame is unparseable, anything else is passed through.
func (d *Decoder) truncated(err error) error {
	if isEOF(err) {
		return fmt.Errorf("%w: %w", ErrUnparseable, io.ErrUnexpectedEOF)
	}
	return err
}

// atSync reports whether the next two bytes are a frame sync code.
func (d *Decoder) atSync() (bool, error) {
	b, err := d.br.Peek(2)
	if len(b) < 2 {
		if err == nil || isEOF(err) {
			return false, io.EOF
		}
		return false, err
	}
	return isSync(b), nil
}

// seekSync discards bytes until the next frame sync code.
func (d *Decoder) seekSync() error {
	for {
		b, err := d.br.Peek(2)
		if len(b) < 2 {
			if err == nil || isEOF(err) {
				return io.EOF
			}
			return err
		}
		if isSync(b) {
			return nil
		}
		if _, err := d.br.Discard(1); err != nil {
			return err
		}
	}
}

// Discard drops all buffered input. The next frame is searched from the
// following sync code.
func (d *Decoder) Discard() {
	d.br.Reset(d.src)
	d.lostSync = true
}

// isSync matches the 14-bit sync code followed by the reserved zero bit and
// either blocking strategy.
func isSync(b []byte) bool {
	return b[0] == 0xFF && b[1]&0xFE == 0xF8
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// tracker remembers the last read error so that failures reported by the
// frame parser can be told apart from I/O failures.
type tracker struct {
	r   io.Reader
	err error
}

func (t *tracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil {
		t.err = err
	}
	return n, err
}
