// Package bits
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bits

import (
	"io"
)

// Reader reads MSB-first bit fields from R. Byte reads through Read honour
// the current bit position, so they need not be aligned.
type Reader struct {
	R    io.Reader
	buf  [1]byte
	left byte
}

func (r *Reader) ReadBit() (res uint, err error) {
	if r.left == 0 {
		if _, err = io.ReadFull(r.R, r.buf[:]); err != nil {
			return
		}
		r.left = 8
	}
	r.left--
	res = uint(r.buf[0]>>r.left) & 1
	return
}

func (r *Reader) ReadBits(n int) (res uint, err error) {
	for i := 0; i < n; i++ {
		var bit uint
		if bit, err = r.ReadBit(); err != nil {
			return
		}
		res |= bit << uint(n-i-1)
	}
	return
}

func (r *Reader) ReadBits64(n uint) (res uint64, err error) {
	var t uint
	for i := uint(0); i < n; i++ {
		if t, err = r.ReadBit(); err != nil {
			return
		}
		res = (res << 1) | uint64(t)
	}
	return
}

func (r *Reader) ReadBool() (bool, error) {
	bit, err := r.ReadBit()
	return bit == 1, err
}

func (r *Reader) Read(p []byte) (n int, err error) {
	if r.left == 0 {
		return r.R.Read(p)
	}
	for n < len(p) {
		var v uint
		if v, err = r.ReadBits(8); err != nil {
			return
		}
		p[n] = byte(v)
		n++
	}
	return
}

// Aligned reports whether the next read starts on a byte boundary.
func (r *Reader) Aligned() bool {
	return r.left == 0
}
