// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"fmt"

	"github.com/teocci/go-isobmff/utils/bits/pio"
)

func be32(b []byte) uint32 {
	return pio.U32BE(b)
}

// table reads the entry_count prefixed array that starts at body offset off
// of a FullBox. Each entry is width bytes. The count is checked against the
// box extent before anything is allocated.
func (b *FullBox) table(off, width int64) (count uint32, raw []byte, err error) {
	if count, err = b.u32(off); err != nil {
		return
	}
	n := int64(count) * width
	s, err := b.body(off+4, n)
	if err != nil {
		err = fmt.Errorf("%s: %d entries of %d bytes: %w", b.hdr.Type, count, width, err)
		return
	}
	raw, err = s.ReadAll()
	return
}
