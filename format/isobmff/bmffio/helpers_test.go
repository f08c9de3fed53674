// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"bytes"

	"github.com/teocci/go-isobmff/utils/bits/pio"
)

func mkbox(typ string, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	b := make([]byte, 8, 8+len(body))
	pio.PutU32BE(b[0:], uint32(8+len(body)))
	copy(b[4:8], typ)
	return append(b, body...)
}

func mkfull(typ string, version uint8, flags uint32, payload ...[]byte) []byte {
	vf := make([]byte, 4)
	pio.PutU32BE(vf, uint32(version)<<24|flags&0xffffff)
	return mkbox(typ, append([][]byte{vf}, payload...)...)
}

func u32b(v uint32) []byte {
	b := make([]byte, 4)
	pio.PutU32BE(b, v)
	return b
}

func u64b(v uint64) []byte {
	b := make([]byte, 8)
	pio.PutU64BE(b, v)
	return b
}

func u16b(v uint16) []byte {
	b := make([]byte, 2)
	pio.PutU16BE(b, v)
	return b
}

func zeros(n int) []byte {
	return make([]byte, n)
}

type span struct {
	off, end int64
}

// recordingSource logs every ReadAt it serves.
type recordingSource struct {
	ByteSource
	reads []span
}

func newRecordingSource(b []byte) *recordingSource {
	return &recordingSource{ByteSource: NewBytesSource(b)}
}

func (r *recordingSource) ReadAt(p []byte, off int64) (int, error) {
	r.reads = append(r.reads, span{off, off + int64(len(p))})
	return r.ByteSource.ReadAt(p, off)
}

func (r *recordingSource) furthest() int64 {
	var end int64
	for _, s := range r.reads {
		end = max(end, s.end)
	}
	return end
}
