// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrNotPCM              = errors.New("only integer PCM WAV is supported")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
	ErrFormatChanged       = errors.New("frame format differs from the stream format")
	ErrClosed              = errors.New("frame writer closed")
	ErrNoFormat            = errors.New("stream format unknown: no STREAMINFO or frame seen")
)
