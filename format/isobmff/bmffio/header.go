// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/teocci/go-isobmff/utils/bits/pio"
)

const (
	// BaseHeaderLen is the size field plus the type code.
	BaseHeaderLen = 8
	largeSizeLen  = 8
	userTypeLen   = 16
)

// Header is the self-describing prefix of every box.
//
//	size      u32    always; 1 means a u64 size follows, 0 means "to the end"
//	type      [4]    always
//	largesize u64    size == 1
//	usertype  [16]   type == "uuid"
type Header struct {
	// Size is the full box size including the header. It is zero for a
	// ToEnd header until the enclosing container resolves it.
	Size     uint64
	Type     Tag
	Len      int64
	UserType uuid.UUID
	Large    bool
	ToEnd    bool
}

func (h Header) String() string {
	if h.Type == UUID {
		return fmt.Sprintf("%s[%s] size=%d hdr=%d", h.Type, h.UserType, h.Size, h.Len)
	}
	return fmt.Sprintf("%s size=%d hdr=%d", h.Type, h.Size, h.Len)
}

// ReadHeader parses the box header at off. end bounds the enclosing content
// range; a negative end means the range runs to an unknown end of source, in
// which case a clean end of data at off is reported as io.EOF.
func ReadHeader(src ByteSource, off, end int64) (h Header, err error) {
	if end >= 0 && end-off < BaseHeaderLen {
		err = parseErr(fmt.Sprintf("header: %d bytes left", end-off), off, ErrMalformedHeader)
		return
	}

	var b [BaseHeaderLen + largeSizeLen + userTypeLen]byte
	n, rerr := src.ReadAt(b[:BaseHeaderLen], off)
	if n == 0 && end < 0 && errors.Is(rerr, io.EOF) {
		err = io.EOF
		return
	}
	if n < BaseHeaderLen {
		err = parseErr("header", off+int64(n), fmt.Errorf("%w: %w", ErrMalformedHeader, readErr(rerr)))
		return
	}

	size := pio.U32BE(b[0:4])
	h.Type = Tag(pio.U32BE(b[4:8]))
	h.Len = BaseHeaderLen

	ext := int64(0)
	if size == 1 {
		ext += largeSizeLen
	}
	if h.Type == UUID {
		ext += userTypeLen
	}
	if ext > 0 {
		if end >= 0 && off+BaseHeaderLen+ext > end {
			err = parseErr("header extension", off+BaseHeaderLen, ErrMalformedHeader)
			return
		}
		x := b[BaseHeaderLen : BaseHeaderLen+ext]
		if n, rerr = src.ReadAt(x, off+BaseHeaderLen); int64(n) < ext {
			err = parseErr("header extension", off+BaseHeaderLen+int64(n), fmt.Errorf("%w: %w", ErrMalformedHeader, readErr(rerr)))
			return
		}
		h.Len += ext
	}

	switch size {
	case 0:
		h.ToEnd = true
	case 1:
		h.Large = true
		h.Size = pio.U64BE(b[BaseHeaderLen:])
	default:
		h.Size = uint64(size)
	}
	if h.Type == UUID {
		copy(h.UserType[:], b[h.Len-userTypeLen:h.Len])
	}

	if !h.ToEnd && h.Size < uint64(h.Len) {
		err = parseErr(fmt.Sprintf("%s: size %d < header %d", h.Type, h.Size, h.Len), off, ErrMalformedHeader)
		return
	}
	return
}

func readErr(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
