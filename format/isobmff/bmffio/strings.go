// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Detector guesses the charset of bytes no built-in encoding accepted. The
// name is resolved through the WHATWG encoding index, e.g. "shift_jis".
type Detector interface {
	Detect(b []byte) (charset string, ok bool)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func(b []byte) (string, bool)

func (f DetectorFunc) Detect(b []byte) (string, bool) {
	return f(b)
}

var (
	utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf32be = utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	utf32le = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
)

type candidate struct {
	enc  encoding.Encoding
	skip int
}

// DecodeString decodes a string field. UTF-8 is tried first; a string with
// embedded NUL bytes does not count as UTF-8. Then UTF-16 and UTF-32 are
// tried, chosen by byte order mark or by the position of zero bytes, and
// last the detector, if any. Trailing NUL padding is dropped.
func DecodeString(b []byte, d Detector) (string, error) {
	trimmed := bytes.TrimRight(b, "\x00")
	if utf8.Valid(trimmed) && bytes.IndexByte(trimmed, 0) < 0 {
		return string(bytes.TrimPrefix(trimmed, []byte("\xef\xbb\xbf"))), nil
	}

	for _, c := range candidates(b) {
		if s, ok := decodeWith(c.enc, b[c.skip:]); ok {
			return s, nil
		}
	}

	if d != nil {
		if name, ok := d.Detect(b); ok {
			enc, err := htmlindex.Get(name)
			if err == nil {
				if s, ok := decodeWith(enc, b); ok {
					return s, nil
				}
			}
		}
	}
	return "", fmt.Errorf("%w: % x", ErrStringDecode, head(b, 16))
}

func candidates(b []byte) []candidate {
	switch {
	case bytes.HasPrefix(b, []byte{0x00, 0x00, 0xfe, 0xff}):
		return []candidate{{utf32be, 4}}
	case bytes.HasPrefix(b, []byte{0xff, 0xfe, 0x00, 0x00}):
		return []candidate{{utf32le, 4}, {utf16le, 2}}
	case bytes.HasPrefix(b, []byte{0xfe, 0xff}):
		return []candidate{{utf16be, 2}}
	case bytes.HasPrefix(b, []byte{0xff, 0xfe}):
		return []candidate{{utf16le, 2}}
	}

	var out []candidate
	if len(b)%4 == 0 && len(b) > 0 {
		switch {
		case zeroRatio(b, 4, 0) && zeroRatio(b, 4, 1):
			out = append(out, candidate{utf32be, 0})
		case zeroRatio(b, 4, 3) && zeroRatio(b, 4, 2):
			out = append(out, candidate{utf32le, 0})
		}
	}
	if len(b)%2 == 0 && len(b) > 0 {
		switch {
		case zeroRatio(b, 2, 0):
			out = append(out, candidate{utf16be, 0})
		case zeroRatio(b, 2, 1):
			out = append(out, candidate{utf16le, 0})
		}
	}
	return out
}

// zeroRatio reports whether at least half of the units of width w have a
// zero byte at position pos.
func zeroRatio(b []byte, w, pos int) bool {
	units, zeros := 0, 0
	for i := 0; i+w <= len(b); i += w {
		units++
		if b[i+pos] == 0 {
			zeros++
		}
	}
	return units > 0 && zeros*2 >= units
}

func decodeWith(enc encoding.Encoding, b []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	s := strings.TrimRight(string(out), "\x00")
	if !utf8.ValidString(s) || strings.ContainsRune(s, utf8.RuneError) {
		return "", false
	}
	return s, true
}

func head(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
