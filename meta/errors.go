// SPDX-License-Identifier: EPL-2.0

package meta

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBlockType        = errors.New("invalid metadata block type")
	ErrInvalidStreamInfoLength = errors.New("invalid STREAMINFO length")
	ErrInvalidSeekTableLength  = errors.New("SEEKTABLE length is not a multiple of 18")
	ErrTruncated               = errors.New("metadata block truncated")
)

// BlockError is returned when a metadata block body is malformed.
type BlockError struct {
	Type   Type
	Offset int64 // offset inside the block body
	Reason string
	Err    error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("%s block at offset %d: %s", e.Type, e.Offset, e.Reason)
}

func (e *BlockError) Unwrap() error { return e.Err }
