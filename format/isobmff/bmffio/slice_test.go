// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

func TestSliceDecoders(t *testing.T) {
	data := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		'm', 'o', 'o', 'v', 0xff, 0xfe,
	}
	s := NewSlice(NewBytesSource(data), 0, int64(len(data)))

	if v, err := s.U8(); err != nil || v != 0x01 {
		t.Fatalf("U8 = %#x, %v", v, err)
	}
	if v, err := s.U16(); err != nil || v != 0x0102 {
		t.Fatalf("U16 = %#x, %v", v, err)
	}
	if v, err := s.U24(); err != nil || v != 0x010203 {
		t.Fatalf("U24 = %#x, %v", v, err)
	}
	if v, err := s.U32(); err != nil || v != 0x01020304 {
		t.Fatalf("U32 = %#x, %v", v, err)
	}
	if v, err := s.U64(); err != nil || v != 0x0102030405060708 {
		t.Fatalf("U64 = %#x, %v", v, err)
	}

	tag, err := s.Sub(8, 4)
	if err != nil {
		t.Fatal(err)
	}
	if v, err := tag.Tag(); err != nil || v != MOOV {
		t.Fatalf("Tag = %v, %v", v, err)
	}

	neg, _ := s.Sub(12, 2)
	if v, err := neg.I16(); err != nil || v != -2 {
		t.Fatalf("I16 = %d, %v", v, err)
	}
	if v, err := neg.I8(); err != nil || v != -1 {
		t.Fatalf("I8 = %d, %v", v, err)
	}
}

func TestSliceSubRange(t *testing.T) {
	src := newRecordingSource(make([]byte, 32))
	s := NewSlice(src, 4, 16)

	sub, err := s.Sub(4, 8)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Offset() != 8 || sub.Len() != 8 || sub.End() != 16 {
		t.Errorf("sub = %v", sub)
	}

	for _, tc := range []struct{ off, n int64 }{
		{-1, 4}, {0, 17}, {12, 8}, {4, -1}, {17, 0}, {8, math.MaxInt64},
	} {
		if _, err := s.Sub(tc.off, tc.n); !errors.Is(err, ErrRange) {
			t.Errorf("Sub(%d, %d) err = %v, want ErrRange", tc.off, tc.n, err)
		}
	}
	if len(src.reads) != 0 {
		t.Errorf("narrowing read the source %d times", len(src.reads))
	}
}

func TestSliceTruncated(t *testing.T) {
	// The slice claims more bytes than the source holds.
	s := NewSlice(NewBytesSource([]byte{1, 2, 3}), 0, 8)
	if _, err := s.U64(); !errors.Is(err, ErrTruncatedData) {
		t.Fatalf("U64 err = %v, want ErrTruncatedData", err)
	}
	var pe *ParseError
	if _, err := s.U64(); !errors.As(err, &pe) || pe.Offset != 3 {
		t.Fatalf("err = %v, want ParseError at 3", err)
	}

	// Reading past the slice itself.
	short := NewSlice(NewBytesSource(make([]byte, 16)), 0, 2)
	if _, err := short.U32(); !errors.Is(err, ErrTruncatedData) {
		t.Fatalf("U32 err = %v, want ErrTruncatedData", err)
	}
}

func TestSliceBytesNegative(t *testing.T) {
	src := newRecordingSource(make([]byte, 8))
	s := NewSlice(src, 0, 8)
	for _, n := range []int{-1, math.MinInt} {
		if _, err := s.Bytes(n); !errors.Is(err, ErrRange) {
			t.Fatalf("Bytes(%d) err = %v, want ErrRange", n, err)
		}
	}
	if len(src.reads) != 0 {
		t.Fatalf("negative length read the source %d times", len(src.reads))
	}
	if b, err := s.Bytes(0); err != nil || len(b) != 0 {
		t.Fatalf("Bytes(0) = %v, %v", b, err)
	}
}

func TestSliceReadUntil(t *testing.T) {
	long := bytes.Repeat([]byte("x"), 100)
	data := append(append([]byte{}, long...), 0, 'y')
	s := NewSlice(NewBytesSource(data), 0, int64(len(data)))

	b, found, err := s.ReadUntil(0)
	if err != nil || !found || !bytes.Equal(b, long) {
		t.Fatalf("ReadUntil = %d bytes, %v, %v", len(b), found, err)
	}

	tail, _ := s.From(101)
	b, found, err = tail.ReadUntil(0)
	if err != nil || found || string(b) != "y" {
		t.Fatalf("ReadUntil(tail) = %q, %v, %v", b, found, err)
	}
}

func TestSliceReader(t *testing.T) {
	s := NewSlice(NewBytesSource([]byte("0123456789")), 2, 5)
	b, err := io.ReadAll(s.Reader())
	if err != nil || string(b) != "23456" {
		t.Fatalf("Reader = %q, %v", b, err)
	}
}
