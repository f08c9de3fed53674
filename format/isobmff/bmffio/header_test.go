// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
)

func TestReadHeader(t *testing.T) {
	user := uuid.MustParse("a5d40b30-e814-11dd-ba2f-0800200c9a66")

	large := append(append(u32b(1), "mdat"...), u64b(40)...)
	large = append(large, zeros(24)...)

	ubox := append(append(u32b(28), "uuid"...), user[:]...)
	ubox = append(ubox, zeros(4)...)

	tests := []struct {
		name string
		data []byte
		want Header
	}{
		{
			name: "plain",
			data: mkbox("free", zeros(4)),
			want: Header{Size: 12, Type: FREE, Len: 8},
		},
		{
			name: "large size",
			data: large,
			want: Header{Size: 40, Type: MDAT, Len: 16, Large: true},
		},
		{
			name: "uuid",
			data: ubox,
			want: Header{Size: 28, Type: UUID, Len: 24, UserType: user},
		},
		{
			name: "to end",
			data: append(append(u32b(0), "mdat"...), zeros(8)...),
			want: Header{Size: 0, Type: MDAT, Len: 8, ToEnd: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, err := ReadHeader(NewBytesSource(tc.data), 0, int64(len(tc.data)))
			if err != nil {
				t.Fatal(err)
			}
			if h != tc.want {
				t.Errorf("got %+v, want %+v", h, tc.want)
			}
		})
	}
}

func TestReadHeaderMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		end  int64
	}{
		{"size below header", append(u32b(4), "free"...), 8},
		{"large size below header", append(append(u32b(1), "free"...), u64b(12)...), 16},
		{"short range", mkbox("free"), 6},
		{"short source", []byte{0, 0, 0, 8, 'f'}, -1},
		{"truncated extension", append(append(u32b(1), "mdat"...), 0, 0, 0), -1},
		{"extension past range", append(append(u32b(1), "mdat"...), u64b(16)...), 12},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadHeader(NewBytesSource(tc.data), 0, tc.end)
			if !errors.Is(err, ErrMalformedHeader) {
				t.Fatalf("err = %v, want ErrMalformedHeader", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %T, want *ParseError", err)
			}
		})
	}
}

func TestReadHeaderEndOfSource(t *testing.T) {
	data := mkbox("free")
	_, err := ReadHeader(NewBytesSource(data), int64(len(data)), -1)
	if err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestReadHeaderReadsOnlyWhatItNeeds(t *testing.T) {
	src := newRecordingSource(mkbox("free", zeros(64)))
	if _, err := ReadHeader(src, 0, 72); err != nil {
		t.Fatal(err)
	}
	if len(src.reads) != 1 || src.furthest() != BaseHeaderLen {
		t.Fatalf("reads = %v", src.reads)
	}
}
