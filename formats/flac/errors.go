// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrInit indicates the decoding session refused its configuration.
	ErrInit = errors.New("flac decoder init failed")
)
