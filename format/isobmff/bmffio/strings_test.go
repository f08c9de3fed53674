// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"errors"
	"testing"
)

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"utf8", []byte("VideoHandler"), "VideoHandler"},
		{"utf8 padded", []byte("abc\x00\x00\x00"), "abc"},
		{"utf8 bom", []byte("\xef\xbb\xbfabc"), "abc"},
		{"utf16be bom", []byte{0xfe, 0xff, 0x00, 'h', 0x00, 'i'}, "hi"},
		{"utf16le bom", []byte{0xff, 0xfe, 'h', 0x00, 'i', 0x00}, "hi"},
		{"utf16be", []byte{0x00, 'o', 0x00, 'k'}, "ok"},
		{"utf16le", []byte{'o', 0x00, 'k', 0x00, '!', 0x00}, "ok!"},
		{"utf32be", []byte{0, 0, 0, 'x', 0, 0, 0, 'y'}, "xy"},
		{"empty", nil, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeString(tc.in, nil)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecodeStringDetector(t *testing.T) {
	latin1 := []byte{'c', 'a', 'f', 0xe9}
	if _, err := DecodeString(latin1, nil); !errors.Is(err, ErrStringDecode) {
		t.Fatalf("err = %v, want ErrStringDecode", err)
	}

	d := DetectorFunc(func(b []byte) (string, bool) {
		return "windows-1252", true
	})
	got, err := DecodeString(latin1, d)
	if err != nil {
		t.Fatal(err)
	}
	if got != "café" {
		t.Fatalf("got %q", got)
	}
}

func TestStringPropertyError(t *testing.T) {
	hdlr := mkfull("hdlr", 0, 0, make([]byte, 4), []byte("vide"), make([]byte, 12), []byte{'x', 0xff, 0xfe, 0x41})
	s := NewScanner(NewBytesSource(hdlr))
	b, err := s.Child(0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = b.(*HandlerRefer).Name(); !errors.Is(err, ErrStringDecode) {
		t.Fatalf("err = %v", err)
	}
	if ht, err := b.(*HandlerRefer).HandlerType(); err != nil || ht != StringToTag("vide") {
		t.Fatalf("handler type = %s, %v", ht, err)
	}
}
