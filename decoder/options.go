// SPDX-License-Identifier: EPL-2.0

package decoder

import "log/slog"

// Read buffer limits. The buffer size is the capacity of every
// ByteSource.Read request.
const (
	MinReadSize     = 16
	DefaultReadSize = 64 << 10
	MaxReadSize     = 16 << 20
)

// Option configures a Session at construction time.
type Option func(*Session)

// WithLogger sets the logger for state changes and stream errors. The
// default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithReadSize sets the ByteSource request size. Init reports
// InitMemoryAllocationError when it is outside [MinReadSize, MaxReadSize].
func WithReadSize(n int) Option {
	return func(s *Session) { s.readSize = n }
}

// WithMD5Checking enables verification of the STREAMINFO MD5 signature in
// Finish.
func WithMD5Checking(on bool) Option {
	return func(s *Session) { s.md5Checking = on }
}

// WithCRCFatal makes frame CRC-16 mismatches abort the session instead of
// skipping the frame.
func WithCRCFatal(on bool) Option {
	return func(s *Session) { s.crcFatal = on }
}
