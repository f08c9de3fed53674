// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"errors"
)

// decodeMeta handles both flavours of "meta". ISO files carry version and
// flags before the children; QuickTime files do not, and their first child
// "hdlr" then starts right after the header.
func decodeMeta(base *BaseBox) (Box, error) {
	s, err := base.slice.Sub(base.hdr.Len+4, 4)
	if err == nil {
		var t Tag
		if t, err = s.Tag(); err == nil && t == HDLR {
			return NewContainerBox(base), nil
		}
	}
	if err != nil && !errors.Is(err, ErrRange) && !errors.Is(err, ErrTruncatedData) {
		return nil, err
	}
	return NewFullContainerBox(base)
}
