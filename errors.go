// SPDX-License-Identifier: EPL-2.0

package flacstream

import "errors"

// ErrInit indicates the decoding session refused its configuration.
var ErrInit = errors.New("flacstream: session init failed")
