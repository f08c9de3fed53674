// Package bufio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bufio

import (
	"errors"
	"io"
)

// Reader caches the two most recently used aligned blocks of R. Small
// reads that land near each other, such as box headers, are served from
// memory; reads of a block or more go straight to R.
type Reader struct {
	R    io.ReaderAt
	buf  [2][]byte
	off  [2]int64
	n    [2]int
	eof  [2]bool
	last int
}

func NewReaderSize(r io.ReaderAt, size int) *Reader {
	buf := make([]byte, size*2)
	return &Reader{
		R:   r,
		buf: [2][]byte{buf[0:size], buf[size:]},
		off: [2]int64{-1, -1},
	}
}

func (r *Reader) block(off int64) (i int, err error) {
	size := int64(len(r.buf[0]))
	start := off - off%size
	for i = range r.buf {
		if r.off[i] == start {
			r.last = i
			return
		}
	}

	i = 1 - r.last
	n, err := r.R.ReadAt(r.buf[i], start)
	if err != nil && !errors.Is(err, io.EOF) {
		r.off[i] = -1
		return
	}
	r.off[i], r.n[i], r.eof[i] = start, n, n < len(r.buf[i])
	r.last = i
	return i, nil
}

func (r *Reader) ReadAt(b []byte, off int64) (n int, err error) {
	if len(b) >= len(r.buf[0]) {
		return r.R.ReadAt(b, off)
	}
	for n < len(b) {
		var i int
		if i, err = r.block(off); err != nil {
			return
		}
		pos := int(off - r.off[i])
		if pos >= r.n[i] {
			return n, io.EOF
		}
		c := copy(b[n:], r.buf[i][pos:r.n[i]])
		n += c
		off += int64(c)
		if n < len(b) && r.eof[i] {
			return n, io.EOF
		}
	}
	return n, nil
}
