// SPDX-License-Identifier: EPL-2.0

package meta

import (
	"fmt"
	"strings"
)

// ParseComment splits a vorbis comment entry on its first '='. An entry
// without '=' becomes a key with an empty value.
func ParseComment(entry string) Comment {
	key, value, _ := strings.Cut(entry, "=")
	return Comment{Key: key, Value: value}
}

func decodeVorbisComment(raw RawBlock) (*VorbisComment, error) {
	c := &cursor{typ: TypeVorbisComment, b: raw.Data}

	vendorLen, err := c.uint32LE("vendor length")
	if err != nil {
		return nil, err
	}
	vendor, err := c.string(vendorLen, "vendor string")
	if err != nil {
		return nil, err
	}

	count, err := c.uint32LE("comment count")
	if err != nil {
		return nil, err
	}
	// every entry carries at least its 4 byte length
	if uint64(count)*4 > uint64(c.remaining()) {
		return nil, c.truncated(fmt.Sprintf("comment list (%d entries)", count))
	}

	vc := &VorbisComment{
		IsLast:   raw.IsLast,
		Vendor:   vendor,
		Comments: make([]Comment, 0, count),
	}
	for i := range count {
		n, err := c.uint32LE(fmt.Sprintf("comment %d length", i))
		if err != nil {
			return nil, err
		}
		entry, err := c.string(n, fmt.Sprintf("comment %d", i))
		if err != nil {
			return nil, err
		}
		vc.Comments = append(vc.Comments, ParseComment(entry))
	}

	return vc, nil
}
