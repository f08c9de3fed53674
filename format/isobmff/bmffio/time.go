// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"bytes"
	"time"

	"github.com/teocci/go-isobmff/utils/bits"
)

var macEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// MacTime converts seconds since 1904-01-01 UTC, the ISOBMFF epoch.
func MacTime(sec uint64) time.Time {
	return macEpoch.Add(time.Second * time.Duration(sec))
}

// Fixed16 converts a signed 8.8 fixed-point value.
func Fixed16(v int16) float64 {
	return float64(v) / 256.0
}

// Fixed32 converts a signed 16.16 fixed-point value.
func Fixed32(v int32) float64 {
	return float64(v) / 65536.0
}

// UFixed32 converts an unsigned 16.16 fixed-point value.
func UFixed32(v uint32) float64 {
	return float64(v) / 65536.0
}

// Language unpacks an ISO-639-2/T code stored as a pad bit and three 5-bit
// letters offset from 0x60.
func Language(v uint16) string {
	r := &bits.Reader{R: bytes.NewReader([]byte{byte(v >> 8), byte(v)})}
	if _, err := r.ReadBit(); err != nil {
		return ""
	}
	var b [3]byte
	for i := range b {
		c, err := r.ReadBits(5)
		if err != nil {
			return ""
		}
		b[i] = byte(c) + 0x60
	}
	return string(b[:])
}
