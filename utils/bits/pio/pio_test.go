// Package pio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package pio

import "testing"

func TestRoundTrip(t *testing.T) {
	b := make([]byte, 8)

	PutU16BE(b, 0xbeef)
	if U16BE(b) != 0xbeef || b[0] != 0xbe || b[1] != 0xef {
		t.Fatalf("U16BE: got %x", b[:2])
	}
	if I16BE(b) != -16657 {
		t.Fatalf("I16BE: got %d", I16BE(b))
	}

	copy(b, []byte{0xff, 0xff, 0xfe})
	if U24BE(b) != 0xfffffe {
		t.Fatalf("U24BE: got %x", U24BE(b))
	}
	if U8(b) != 0xff {
		t.Fatalf("U8: got %x", U8(b))
	}

	PutU32BE(b, 0x11223344)
	if b[0] != 0x11 || b[1] != 0x22 || b[2] != 0x33 || b[3] != 0x44 {
		t.Fatalf("PutU32BE: got %x", b[:4])
	}

	PutU64BE(b, 0x0102030405060708)
	if U64BE(b) != 0x0102030405060708 {
		t.Fatalf("U64BE: got %x", U64BE(b))
	}
	PutU64BE(b, 0xffffffffffffffff)
	if I64BE(b) != -1 {
		t.Fatalf("I64BE: got %d", I64BE(b))
	}
}
