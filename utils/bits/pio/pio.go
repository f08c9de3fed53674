// Package pio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package pio

func U8(b []byte) (i uint8) {
	return b[0]
}

func U16BE(b []byte) (i uint16) {
	i = uint16(b[0])
	i <<= 8
	i |= uint16(b[1])
	return
}

func I16BE(b []byte) (i int16) {
	return int16(U16BE(b))
}

func U24BE(b []byte) (i uint32) {
	i = uint32(b[0])
	i <<= 8
	i |= uint32(b[1])
	i <<= 8
	i |= uint32(b[2])
	return
}

func U32BE(b []byte) (i uint32) {
	i = uint32(b[0])
	i <<= 8
	i |= uint32(b[1])
	i <<= 8
	i |= uint32(b[2])
	i <<= 8
	i |= uint32(b[3])
	return
}

func I32BE(b []byte) (i int32) {
	return int32(U32BE(b))
}

func U64BE(b []byte) (i uint64) {
	i = uint64(U32BE(b[0:4]))
	i <<= 32
	i |= uint64(U32BE(b[4:8]))
	return
}

func I64BE(b []byte) (i int64) {
	return int64(U64BE(b))
}

func PutU16BE(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func PutU32BE(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func PutU64BE(b []byte, v uint64) {
	PutU32BE(b[0:4], uint32(v>>32))
	PutU32BE(b[4:8], uint32(v))
}
