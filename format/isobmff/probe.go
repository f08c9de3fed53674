// Package isobmff
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package isobmff

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/teocci/go-isobmff/format/isobmff/bmffio"
)

// Exts are the file extensions commonly used for ISOBMFF files.
var Exts = []string{".mp4", ".m4a", ".m4v", ".mov", ".3gp", ".heic", ".heif", ".avif", ".mj2"}

// Probe reports whether b, the first bytes of a file, look like an ISOBMFF
// stream: a plausible box header with one of the usual top-level types.
func Probe(b []byte) bool {
	if len(b) < bmffio.BaseHeaderLen {
		return false
	}
	switch string(b[4:8]) {
	case "ftyp", "styp", "moov", "free", "skip", "mdat", "moof", "wide", "pdin", "uuid", "meta":
	default:
		return false
	}
	size := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return size == 0 || size == 1 || size >= bmffio.BaseHeaderLen
}

// MatchExt reports whether path carries one of Exts.
func MatchExt(path string) bool {
	return slices.Contains(Exts, strings.ToLower(filepath.Ext(path)))
}
