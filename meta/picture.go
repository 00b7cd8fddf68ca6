// SPDX-License-Identifier: EPL-2.0

package meta

func decodePicture(raw RawBlock) (*Picture, error) {
	c := &cursor{typ: TypePicture, b: raw.Data}
	p := &Picture{IsLast: raw.IsLast}

	typ, err := c.uint32BE("picture type")
	if err != nil {
		return nil, err
	}
	p.PictureType = PictureType(typ)

	n, err := c.uint32BE("MIME type length")
	if err != nil {
		return nil, err
	}
	if p.MIMEType, err = c.string(n, "MIME type"); err != nil {
		return nil, err
	}

	n, err = c.uint32BE("description length")
	if err != nil {
		return nil, err
	}
	if p.Description, err = c.string(n, "description"); err != nil {
		return nil, err
	}

	for _, f := range []struct {
		dst  *uint32
		what string
	}{
		{&p.Width, "width"},
		{&p.Height, "height"},
		{&p.Depth, "color depth"},
		{&p.Colors, "indexed colors"},
	} {
		if *f.dst, err = c.uint32BE(f.what); err != nil {
			return nil, err
		}
	}

	n, err = c.uint32BE("picture data length")
	if err != nil {
		return nil, err
	}
	data, err := c.bytes(n, "picture data")
	if err != nil {
		return nil, err
	}
	p.Data = append([]byte(nil), data...)

	return p, nil
}
