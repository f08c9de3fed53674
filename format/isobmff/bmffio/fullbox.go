// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import "fmt"

// FullBox is a box whose body starts with an 8-bit version and 24-bit flags.
// Both are read when the box is scanned, since downstream field widths
// depend on the version.
type FullBox struct {
	BaseBox
	version uint8
	flags   uint32
}

func NewFullBox(base *BaseBox) (*FullBox, error) {
	b := &FullBox{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func DecodeFullBox(base *BaseBox) (Box, error) {
	return NewFullBox(base)
}

// Init adopts base and reads version and flags. Variants embedding FullBox
// call it from their decoder.
func (b *FullBox) Init(base *BaseBox) error {
	b.BaseBox = *base
	s, err := b.field(b.hdr.Len, 4)
	if err != nil {
		return err
	}
	v, err := s.U32()
	if err != nil {
		return err
	}
	b.version = uint8(v >> 24)
	b.flags = v & 0xffffff
	return nil
}

func (b *FullBox) Version() uint8 {
	return b.version
}

func (b *FullBox) Flags() uint32 {
	return b.flags
}

// Flag reports whether all bits of mask are set.
func (b *FullBox) Flag(mask uint32) bool {
	return b.flags&mask == mask
}

func (b *FullBox) HeaderSize() int64 {
	return b.hdr.Len + 4
}

// wide reports whether version-dependent fields use their 64-bit form.
func (b *FullBox) wide() bool {
	return b.version >= 1
}

// body narrows to n bytes at off from the end of version and flags.
func (b *FullBox) body(off, n int64) (Slice, error) {
	return b.field(b.hdr.Len+4+off, n)
}

func (b *FullBox) bodyTail(off int64) (Slice, error) {
	return b.tail(b.hdr.Len + 4 + off)
}

func (b *FullBox) u8(off int64) (uint8, error) {
	s, err := b.body(off, 1)
	if err != nil {
		return 0, err
	}
	return s.U8()
}

func (b *FullBox) u16(off int64) (uint16, error) {
	s, err := b.body(off, 2)
	if err != nil {
		return 0, err
	}
	return s.U16()
}

func (b *FullBox) i16(off int64) (int16, error) {
	s, err := b.body(off, 2)
	if err != nil {
		return 0, err
	}
	return s.I16()
}

func (b *FullBox) u32(off int64) (uint32, error) {
	s, err := b.body(off, 4)
	if err != nil {
		return 0, err
	}
	return s.U32()
}

func (b *FullBox) i32(off int64) (int32, error) {
	s, err := b.body(off, 4)
	if err != nil {
		return 0, err
	}
	return s.I32()
}

// uintv reads a field that is 32 bits under version 0 and 64 bits otherwise.
func (b *FullBox) uintv(off int64) (uint64, error) {
	w := int64(4)
	if b.wide() {
		w = 8
	}
	s, err := b.body(off, w)
	if err != nil {
		return 0, err
	}
	return s.UintN(b.wide())
}

// intv is the signed form of uintv.
func (b *FullBox) intv(off int64) (int64, error) {
	if !b.wide() {
		v, err := b.i32(off)
		return int64(v), err
	}
	s, err := b.body(off, 8)
	if err != nil {
		return 0, err
	}
	return s.I64()
}

// vw is the width of a version-dependent field.
func (b *FullBox) vw() int64 {
	if b.wide() {
		return 8
	}
	return 4
}

func (b *FullBox) String() string {
	return fmt.Sprintf("%s(start=%d,end=%d,size=%d,version=%d)", b.hdr.Type, b.Start(), b.End(), b.Size(), b.version)
}
