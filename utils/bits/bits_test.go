// Package bits
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bits

import (
	"bytes"
	"io"
	"testing"
)

func TestBits(t *testing.T) {
	rdata := []byte{0xf3, 0xb3, 0x45, 0x60}
	rbuf := bytes.NewReader(rdata[:])
	r := &Reader{R: rbuf}
	var u32 uint
	if u32, _ = r.ReadBits(4); u32 != 0xf {
		t.Logf("%d\n", u32)
		t.FailNow()
	}
	if u32, _ = r.ReadBits(4); u32 != 0x3 {
		t.Logf("%d\n", u32)
		t.FailNow()
	}
	if !r.Aligned() {
		t.FailNow()
	}
	if u32, _ = r.ReadBits(2); u32 != 0x2 {
		t.Logf("%d\n", u32)
		t.FailNow()
	}
	if u32, _ = r.ReadBits(2); u32 != 0x3 {
		t.Logf("%d\n", u32)
		t.FailNow()
	}
	b := make([]byte, 2)
	if _, _ = r.Read(b); b[0] != 0x34 || b[1] != 0x56 {
		t.FailNow()
	}
	if _, err := r.ReadBits(8); err != io.ErrUnexpectedEOF && err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestPackedLanguage(t *testing.T) {
	// "und" packed as three 5-bit values offset by 0x60, after one pad bit.
	r := &Reader{R: bytes.NewReader([]byte{0x55, 0xc4})}
	if pad, _ := r.ReadBit(); pad != 0 {
		t.Fatalf("pad bit: got %d", pad)
	}
	var got []byte
	for i := 0; i < 3; i++ {
		c, err := r.ReadBits(5)
		if err != nil {
			t.Fatalf("ReadBits: %v", err)
		}
		got = append(got, byte(c)+0x60)
	}
	if string(got) != "und" {
		t.Fatalf("got %q, want %q", got, "und")
	}
}
