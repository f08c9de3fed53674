// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"fmt"

	"github.com/teocci/go-isobmff/utils/bits/pio"
)

// Tag is a four-character box type code in its big-endian integer form.
// Dispatch compares tags exactly, byte for byte.
type Tag uint32

// String returns the four raw bytes, NULs included, so that
// ParseTag(t.String()) == t for every code.
func (t Tag) String() string {
	b := t.Bytes()
	return string(b[:])
}

// Bytes returns the raw four bytes of the code.
func (t Tag) Bytes() [4]byte {
	var b [4]byte
	pio.PutU32BE(b[:], uint32(t))
	return b
}

func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseTag packs a textual type code. Codes shorter than four bytes are
// padded with spaces, so "url" and "url " name the same box. Longer input is
// rejected rather than truncated.
func ParseTag(tag string) (Tag, error) {
	if len(tag) > 4 {
		return 0, fmt.Errorf("%w: %q is %d bytes", ErrInvalidTag, tag, len(tag))
	}
	b := [4]byte{' ', ' ', ' ', ' '}
	copy(b[:], tag)
	return Tag(pio.U32BE(b[:])), nil
}

// StringToTag is ParseTag for literal codes. It panics on input longer than
// four bytes.
func StringToTag(tag string) Tag {
	t, err := ParseTag(tag)
	if err != nil {
		panic(err)
	}
	return t
}

const (
	FTYP = Tag(0x66747970)
	STYP = Tag(0x73747970)
	FREE = Tag(0x66726565)
	SKIP = Tag(0x736b6970)
	MDAT = Tag(0x6d646174)
	PDIN = Tag(0x7064696e)
	UUID = Tag(0x75756964)

	MOOV = Tag(0x6d6f6f76)
	MVHD = Tag(0x6d766864)
	TRAK = Tag(0x7472616b)
	TKHD = Tag(0x746b6864)
	TREF = Tag(0x74726566)
	TRGR = Tag(0x74726772)
	MSRC = Tag(0x6d737263)
	EDTS = Tag(0x65647473)
	ELST = Tag(0x656c7374)
	MDIA = Tag(0x6d646961)
	MDHD = Tag(0x6d646864)
	HDLR = Tag(0x68646c72)
	ELNG = Tag(0x656c6e67)
	MINF = Tag(0x6d696e66)
	VMHD = Tag(0x766d6864)
	SMHD = Tag(0x736d6864)
	NMHD = Tag(0x6e6d6864)
	DINF = Tag(0x64696e66)
	DREF = Tag(0x64726566)
	URL  = Tag(0x75726c20)
	URN  = Tag(0x75726e20)
	STBL = Tag(0x7374626c)
	STSD = Tag(0x73747364)
	STTS = Tag(0x73747473)
	CTTS = Tag(0x63747473)
	STSS = Tag(0x73747373)
	STSZ = Tag(0x7374737a)
	STSC = Tag(0x73747363)
	STCO = Tag(0x7374636f)
	CO64 = Tag(0x636f3634)
	UDTA = Tag(0x75647461)
	CPRT = Tag(0x63707274)
	TSEL = Tag(0x7473656c)
	META = Tag(0x6d657461)
	ILOC = Tag(0x696c6f63)
	PITM = Tag(0x7069746d)
	IPRO = Tag(0x6970726f)
	IINF = Tag(0x69696e66)
	INFE = Tag(0x696e6665)
	IREF = Tag(0x69726566)
	IDAT = Tag(0x69646174)
	MECO = Tag(0x6d65636f)
	MERE = Tag(0x6d657265)
	MIME = Tag(0x6d696d65)
	URI  = Tag(0x75726920)

	SINF = Tag(0x73696e66)
	FRMA = Tag(0x66726d61)
	SCHM = Tag(0x7363686d)
	SCHI = Tag(0x73636869)
	RINF = Tag(0x72696e66)

	STZ2 = Tag(0x73747a32)
	SDTP = Tag(0x73647470)
	CSLG = Tag(0x63736c67)
	SAIZ = Tag(0x7361697a)
	SAIO = Tag(0x7361696f)

	MVEX = Tag(0x6d766578)
	MEHD = Tag(0x6d656864)
	TREX = Tag(0x74726578)
	MOOF = Tag(0x6d6f6f66)
	MFHD = Tag(0x6d666864)
	TRAF = Tag(0x74726166)
	TFDT = Tag(0x74666474)
	MFRA = Tag(0x6d667261)
	MFRO = Tag(0x6d66726f)

	AVC1 = Tag(0x61766331)
	AVC3 = Tag(0x61766333)
	HVC1 = Tag(0x68766331)
	HEV1 = Tag(0x68657631)
	MP4V = Tag(0x6d703476)
	ENCV = Tag(0x656e6376)
	MP4A = Tag(0x6d703461)
	ENCA = Tag(0x656e6361)

	HINT = Tag(0x68696e74)
	CDSC = Tag(0x63647363)
	FONT = Tag(0x666f6e74)
	HIND = Tag(0x68696e64)
	VDEP = Tag(0x76646570)
	VPLX = Tag(0x76706c78)
	SUBT = Tag(0x73756274)
)
