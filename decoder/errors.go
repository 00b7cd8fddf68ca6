// SPDX-License-Identifier: EPL-2.0

package decoder

import "errors"

var (
	ErrNotInitialized     = errors.New("decoder: session not initialized")
	ErrAlreadyInitialized = errors.New("decoder: session already initialized")
	ErrAborted            = errors.New("decoder: session aborted")
	ErrReentrant          = errors.New("decoder: session called from inside a callback")

	ErrSourceAborted     = errors.New("decoder: byte source aborted")
	ErrProtocolViolation = errors.New("decoder: byte source protocol violation")
	ErrWriteAborted      = errors.New("decoder: frame sink aborted")
	ErrMalformedMetadata = errors.New("decoder: malformed metadata")
	ErrCRCMismatch       = errors.New("decoder: frame CRC-16 mismatch")
	ErrMD5Mismatch       = errors.New("decoder: MD5 signature mismatch")

	// ErrBlockReleased is the panic value of FrameBlock accessors used after
	// the WriteFrame call that delivered the block has returned.
	ErrBlockReleased = errors.New("decoder: frame block used after release")
)
