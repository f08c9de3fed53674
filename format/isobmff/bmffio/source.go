// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"bytes"
	"errors"
	"io"
)

// ByteSource supplies bytes at absolute offsets. The engine borrows a source
// and never closes it.
//
// Size reports the total extent. When the extent is unknown, known is false
// and n is the end of the furthest successful read so far.
type ByteSource interface {
	io.ReaderAt
	Size() (n int64, known bool)
}

type readerAtSource struct {
	r    io.ReaderAt
	size int64
	hwm  int64
}

// NewReaderAtSource wraps r. A negative size marks the extent as unknown.
func NewReaderAtSource(r io.ReaderAt, size int64) ByteSource {
	return &readerAtSource{r: r, size: size}
}

// NewBytesSource serves b from memory.
func NewBytesSource(b []byte) ByteSource {
	return &readerAtSource{r: bytes.NewReader(b), size: int64(len(b))}
}

func (s *readerAtSource) ReadAt(p []byte, off int64) (n int, err error) {
	n, err = s.r.ReadAt(p, off)
	if end := off + int64(n); end > s.hwm {
		s.hwm = end
	}
	return
}

func (s *readerAtSource) Size() (int64, bool) {
	if s.size >= 0 {
		return s.size, true
	}
	return s.hwm, false
}

type seekSource struct {
	r    io.ReadSeeker
	pos  int64
	size int64
	hwm  int64
}

// NewSeekSource adapts a seek-then-read resource. The extent is taken from
// Seek(0, io.SeekEnd) when the resource supports it.
func NewSeekSource(r io.ReadSeeker) ByteSource {
	s := &seekSource{r: r, pos: -1, size: -1}
	if end, err := r.Seek(0, io.SeekEnd); err == nil {
		s.size = end
		s.pos = end
	}
	return s
}

func (s *seekSource) readat(off int64, b []byte) (n int, err error) {
	if s.pos != off {
		if _, err = s.r.Seek(off, io.SeekStart); err != nil {
			s.pos = -1
			return
		}
	}
	n, err = io.ReadFull(s.r, b)
	s.pos = off + int64(n)
	return
}

func (s *seekSource) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, errors.New("bmffio: negative offset")
	}
	n, err = s.readat(off, p)
	if end := off + int64(n); end > s.hwm {
		s.hwm = end
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return
}

func (s *seekSource) Size() (int64, bool) {
	if s.size >= 0 {
		return s.size, true
	}
	return s.hwm, false
}
