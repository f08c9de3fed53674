// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Box is one parsed node of the tree. Every variant embeds BaseBox.
type Box interface {
	Tag() Tag
	Header() Header
	Start() int64
	End() int64
	Size() int64
	// HeaderSize is the offset, from Start, of the first byte the variant does
	// not decode itself. For containers it is where the children begin.
	HeaderSize() int64
	Parent() Node
	Depth() int
	Slice() Slice
	HasChildren() bool

	base() *BaseBox
}

// BaseBox carries the identity shared by all variants: header, byte range and
// parent. It decodes nothing past the header.
type BaseBox struct {
	hdr    Header
	slice  Slice
	parent Node
	env    *env
}

func (b *BaseBox) base() *BaseBox {
	return b
}

func (b *BaseBox) Tag() Tag {
	return b.hdr.Type
}

func (b *BaseBox) Header() Header {
	return b.hdr
}

func (b *BaseBox) Start() int64 {
	return b.slice.Offset()
}

func (b *BaseBox) End() int64 {
	return b.slice.End()
}

func (b *BaseBox) Size() int64 {
	return b.slice.Len()
}

func (b *BaseBox) HeaderSize() int64 {
	return b.hdr.Len
}

func (b *BaseBox) Parent() Node {
	return b.parent
}

// Depth counts the boxes above b; top-level boxes are at depth 0.
func (b *BaseBox) Depth() int {
	depth := 0
	for p := b.parent; p != nil; {
		parent, ok := p.(Box)
		if !ok {
			break
		}
		depth++
		p = parent.Parent()
	}
	return depth
}

func (b *BaseBox) Slice() Slice {
	return b.slice
}

func (b *BaseBox) HasChildren() bool {
	return false
}

// UserType returns the extended type of a "uuid" box.
func (b *BaseBox) UserType() (uuid.UUID, bool) {
	return b.hdr.UserType, b.hdr.Type == UUID
}

// Logger is the logger the box was scanned with.
func (b *BaseBox) Logger() *slog.Logger {
	return b.env.log
}

// field narrows to n bytes at off from the box start. Reaching past the box
// is a truncation of the box, not a programming error.
func (b *BaseBox) field(off, n int64) (Slice, error) {
	s, err := b.slice.Sub(off, n)
	if errors.Is(err, ErrRange) {
		return Slice{}, parseErr(fmt.Sprintf("%s field [%d:%d] of %d", b.hdr.Type, off, off+n, b.slice.Len()), b.Start()+off, ErrTruncatedData)
	}
	return s, err
}

// tail narrows to everything from off to the end of the box.
func (b *BaseBox) tail(off int64) (Slice, error) {
	return b.field(off, b.slice.Len()-off)
}

func (b *BaseBox) decodeString(s Slice) (string, error) {
	raw, err := s.ReadAll()
	if err != nil {
		return "", err
	}
	str, err := DecodeString(raw, b.env.detector)
	if err != nil {
		return "", parseErr(fmt.Sprintf("%s string", b.hdr.Type), s.Offset(), err)
	}
	return str, nil
}

// decodeCString decodes a NUL-terminated string starting at s and reports
// how many bytes it used, terminator included.
func (b *BaseBox) decodeCString(s Slice) (string, int64, error) {
	raw, found, err := s.ReadUntil(0)
	if err != nil {
		return "", 0, err
	}
	used := int64(len(raw))
	if found {
		used++
	}
	str, err := DecodeString(raw, b.env.detector)
	if err != nil {
		return "", 0, parseErr(fmt.Sprintf("%s string", b.hdr.Type), s.Offset(), err)
	}
	return str, used, nil
}

func (b *BaseBox) String() string {
	return fmt.Sprintf("%s(start=%d,end=%d,size=%d)", b.hdr.Type, b.Start(), b.End(), b.Size())
}

// Payload is the part of b after its decoded header fields.
func Payload(b Box) (Slice, error) {
	return b.base().tail(b.HeaderSize())
}

// UnknownBox is what unregistered type codes decode to: identity only.
type UnknownBox struct {
	BaseBox
}

func DecodeUnknown(base *BaseBox) (Box, error) {
	return &UnknownBox{BaseBox: *base}, nil
}

// lazy memoizes a property. Failed decodes are not cached, so an error stays
// scoped to the access that produced it.
type lazy[T any] struct {
	ok bool
	v  T
}

func (l *lazy[T]) get(decode func() (T, error)) (T, error) {
	if l.ok {
		return l.v, nil
	}
	v, err := decode()
	if err != nil {
		var zero T
		return zero, err
	}
	l.v, l.ok = v, true
	return v, nil
}
