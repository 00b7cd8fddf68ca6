// SPDX-License-Identifier: EPL-2.0

package bitstream

import "errors"

// Recoverable stream errors, reported through the NextFrame callback.
var (
	ErrLostSync    = errors.New("lost frame sync")
	ErrBadHeader   = errors.New("bad frame header")
	ErrCRCMismatch = errors.New("frame CRC-16 mismatch")
	ErrUnparseable = errors.New("unparseable frame")
)

var ErrNoSignature = errors.New("missing fLaC signature")
