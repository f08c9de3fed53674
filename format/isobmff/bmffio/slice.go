// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/teocci/go-isobmff/utils/bits/pio"
)

// Slice is an immutable view of n bytes at an absolute offset of a source.
// Narrowing never touches the source; only the decoding methods read.
type Slice struct {
	src ByteSource
	off int64
	n   int64
}

func NewSlice(src ByteSource, off, n int64) Slice {
	return Slice{src: src, off: off, n: n}
}

func (s Slice) Source() ByteSource {
	return s.src
}

func (s Slice) Offset() int64 {
	return s.off
}

func (s Slice) Len() int64 {
	return s.n
}

func (s Slice) End() int64 {
	return s.off + s.n
}

// Sub narrows s to n bytes starting at off, both relative to s.
func (s Slice) Sub(off, n int64) (Slice, error) {
	if off < 0 || n < 0 || off > s.n || n > s.n-off {
		return Slice{}, parseErr(fmt.Sprintf("sub[%d:%d] of %d", off, off+n, s.n), s.off+off, ErrRange)
	}
	return Slice{src: s.src, off: s.off + off, n: n}, nil
}

// From narrows s to everything from off to its end.
func (s Slice) From(off int64) (Slice, error) {
	return s.Sub(off, s.n-off)
}

// Reader returns a fresh reader over the slice bytes.
func (s Slice) Reader() *io.SectionReader {
	return io.NewSectionReader(s.src, s.off, s.n)
}

func (s Slice) read(op string, n int64) ([]byte, error) {
	if n < 0 {
		return nil, parseErr(op, s.off, ErrRange)
	}
	if n > s.n {
		return nil, parseErr(op, s.off, ErrTruncatedData)
	}
	b := make([]byte, n)
	got, err := s.src.ReadAt(b, s.off)
	if int64(got) < n {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, parseErr(op, s.off+int64(got), ioErr(err))
	}
	return b, nil
}

// ReadAll reads the whole slice.
func (s Slice) ReadAll() ([]byte, error) {
	return s.read("read", s.n)
}

// Bytes reads the first n bytes. A negative n is an ErrRange.
func (s Slice) Bytes(n int) ([]byte, error) {
	return s.read(fmt.Sprintf("[%d]byte", n), int64(n))
}

// ReadUntil reads up to, not including, the first delim byte. The delimiter
// is optional at the very end of the slice.
func (s Slice) ReadUntil(delim byte) (b []byte, found bool, err error) {
	const chunk = 64
	var out []byte
	for pos := int64(0); pos < s.n; pos += chunk {
		n := s.n - pos
		if n > chunk {
			n = chunk
		}
		part, err := Slice{src: s.src, off: s.off + pos, n: n}.read("cstring", n)
		if err != nil {
			return nil, false, err
		}
		if i := bytes.IndexByte(part, delim); i >= 0 {
			return append(out, part[:i]...), true, nil
		}
		out = append(out, part...)
	}
	return out, false, nil
}

func (s Slice) U8() (uint8, error) {
	b, err := s.read("u8", 1)
	if err != nil {
		return 0, err
	}
	return pio.U8(b), nil
}

func (s Slice) I8() (int8, error) {
	v, err := s.U8()
	return int8(v), err
}

func (s Slice) U16() (uint16, error) {
	b, err := s.read("u16", 2)
	if err != nil {
		return 0, err
	}
	return pio.U16BE(b), nil
}

func (s Slice) I16() (int16, error) {
	b, err := s.read("i16", 2)
	if err != nil {
		return 0, err
	}
	return pio.I16BE(b), nil
}

func (s Slice) U24() (uint32, error) {
	b, err := s.read("u24", 3)
	if err != nil {
		return 0, err
	}
	return pio.U24BE(b), nil
}

func (s Slice) U32() (uint32, error) {
	b, err := s.read("u32", 4)
	if err != nil {
		return 0, err
	}
	return pio.U32BE(b), nil
}

func (s Slice) I32() (int32, error) {
	b, err := s.read("i32", 4)
	if err != nil {
		return 0, err
	}
	return pio.I32BE(b), nil
}

func (s Slice) U64() (uint64, error) {
	b, err := s.read("u64", 8)
	if err != nil {
		return 0, err
	}
	return pio.U64BE(b), nil
}

func (s Slice) I64() (int64, error) {
	b, err := s.read("i64", 8)
	if err != nil {
		return 0, err
	}
	return pio.I64BE(b), nil
}

// UintN reads a 4-byte or 8-byte unsigned field, the two widths version
// dependent ISOBMFF fields come in.
func (s Slice) UintN(wide bool) (uint64, error) {
	if wide {
		return s.U64()
	}
	v, err := s.U32()
	return uint64(v), err
}

func (s Slice) Tag() (Tag, error) {
	v, err := s.U32()
	return Tag(v), err
}

func (s Slice) UUID() (uuid.UUID, error) {
	b, err := s.read("uuid", 16)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.FromBytes(b)
}

func (s Slice) String() string {
	return fmt.Sprintf("Slice(offset=%d, len=%d)", s.off, s.n)
}
