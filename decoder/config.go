// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"fmt"

	"github.com/ik5/flacstream/meta"
)

// The setters below configure the next Init. They return
// ErrAlreadyInitialized unless the session is Uninitialized.

func (s *Session) configurable() error {
	if s.state != Uninitialized {
		return ErrAlreadyInitialized
	}
	return nil
}

func checkType(t meta.Type) error {
	if t >= meta.NumTypes {
		return fmt.Errorf("%w: %d", meta.ErrInvalidBlockType, uint8(t))
	}
	return nil
}

// SetMetadataRespond delivers blocks of type t to the MetadataSink.
func (s *Session) SetMetadataRespond(t meta.Type) error {
	if err := s.configurable(); err != nil {
		return err
	}
	if err := checkType(t); err != nil {
		return err
	}
	s.ignore[t] = false
	return nil
}

// SetMetadataRespondAll delivers every block type.
func (s *Session) SetMetadataRespondAll() error {
	if err := s.configurable(); err != nil {
		return err
	}
	s.ignore = [meta.NumTypes]bool{}
	return nil
}

// SetMetadataIgnore skips blocks of type t without decoding them.
// STREAMINFO is still decoded for the stream properties.
func (s *Session) SetMetadataIgnore(t meta.Type) error {
	if err := s.configurable(); err != nil {
		return err
	}
	if err := checkType(t); err != nil {
		return err
	}
	s.ignore[t] = true
	return nil
}

// SetMetadataIgnoreAll skips every block type.
func (s *Session) SetMetadataIgnoreAll() error {
	if err := s.configurable(); err != nil {
		return err
	}
	for i := range s.ignore {
		s.ignore[i] = true
	}
	return nil
}

func (s *Session) SetMD5Checking(on bool) error {
	if err := s.configurable(); err != nil {
		return err
	}
	s.md5Checking = on
	return nil
}

func (s *Session) SetCRCFatal(on bool) error {
	if err := s.configurable(); err != nil {
		return err
	}
	s.crcFatal = on
	return nil
}

// SetOgg requests Ogg FLAC decoding. Ogg is not supported, so Init will
// fail with InitUnsupportedContainer while this is on.
func (s *Session) SetOgg(on bool) error {
	if err := s.configurable(); err != nil {
		return err
	}
	s.ogg = on
	return nil
}

// SetReadSize sets the capacity of ByteSource requests.
func (s *Session) SetReadSize(n int) error {
	if err := s.configurable(); err != nil {
		return err
	}
	s.readSize = n
	return nil
}

// Stream properties. They are zero until STREAMINFO has been decoded.

func (s *Session) Channels() int {
	if s.info == nil {
		return 0
	}
	return int(s.info.Channels)
}

func (s *Session) SampleRate() int {
	if s.info == nil {
		return 0
	}
	return int(s.info.SampleRate)
}

func (s *Session) BitsPerSample() int {
	if s.info == nil {
		return 0
	}
	return int(s.info.BitsPerSample)
}

// TotalSamples is the number of samples per channel, 0 if unknown.
func (s *Session) TotalSamples() uint64 {
	if s.info == nil {
		return 0
	}
	return s.info.TotalSamples
}

// BlockSize is the block size of the last delivered frame.
func (s *Session) BlockSize() int { return s.blockSize }

// DecodedSamples is the number of samples per channel delivered so far.
func (s *Session) DecodedSamples() uint64 { return s.decoded }

// MD5Checking reports whether the MD5 signature will be verified. Flush
// turns it off for the current stream.
func (s *Session) MD5Checking() bool {
	if s.state == Uninitialized {
		return s.md5Checking
	}
	return s.md5On
}

func (s *Session) State() State { return s.state }

// IsValid reports whether the session can be used for further processing.
// It is false after an abort and after Init failed to allocate or open the
// source, until Reset or a successful Init.
func (s *Session) IsValid() bool {
	return !s.invalid && s.state != Aborted
}
