// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"fmt"
)

// FileType is "ftyp" and "styp".
type FileType struct {
	BaseBox
	majorBrand   lazy[Tag]
	minorVersion lazy[uint32]
	compatible   lazy[[]Tag]
}

func decodeFileType(base *BaseBox) (Box, error) {
	return &FileType{BaseBox: *base}, nil
}

func (ft *FileType) MajorBrand() (Tag, error) {
	return ft.majorBrand.get(func() (Tag, error) {
		s, err := ft.field(ft.hdr.Len, 4)
		if err != nil {
			return 0, err
		}
		return s.Tag()
	})
}

func (ft *FileType) MinorVersion() (uint32, error) {
	return ft.minorVersion.get(func() (uint32, error) {
		s, err := ft.field(ft.hdr.Len+4, 4)
		if err != nil {
			return 0, err
		}
		return s.U32()
	})
}

func (ft *FileType) CompatibleBrands() ([]Tag, error) {
	return ft.compatible.get(func() ([]Tag, error) {
		s, err := ft.tail(ft.hdr.Len + 8)
		if err != nil {
			return nil, err
		}
		return readTags(s)
	})
}

func (ft *FileType) HeaderSize() int64 {
	return ft.Size()
}

func (ft *FileType) Summary() string {
	major, _ := ft.MajorBrand()
	brands, _ := ft.CompatibleBrands()
	return fmt.Sprintf("major=%s compatible=%v", major, brands)
}

// FreeSpace is "free" and "skip": padding whose content is irrelevant.
type FreeSpace struct {
	BaseBox
}

func decodeFreeSpace(base *BaseBox) (Box, error) {
	return &FreeSpace{BaseBox: *base}, nil
}

// MediaData is "mdat". Its payload is never read during scanning.
type MediaData struct {
	BaseBox
}

func decodeMediaData(base *BaseBox) (Box, error) {
	return &MediaData{BaseBox: *base}, nil
}

// Data is the media payload as an unread slice.
func (md *MediaData) Data() (Slice, error) {
	return md.tail(md.hdr.Len)
}

type DownloadRate struct {
	Rate         uint32
	InitialDelay uint32
}

// ProgressiveDownloadInfo is "pdin".
type ProgressiveDownloadInfo struct {
	FullBox
	entries lazy[[]DownloadRate]
}

func decodeProgressiveDownloadInfo(base *BaseBox) (Box, error) {
	b := &ProgressiveDownloadInfo{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (pd *ProgressiveDownloadInfo) Entries() ([]DownloadRate, error) {
	return pd.entries.get(func() ([]DownloadRate, error) {
		s, err := pd.bodyTail(0)
		if err != nil {
			return nil, err
		}
		raw, err := s.ReadAll()
		if err != nil {
			return nil, err
		}
		out := make([]DownloadRate, 0, len(raw)/8)
		for i := 0; i+8 <= len(raw); i += 8 {
			out = append(out, DownloadRate{
				Rate:         be32(raw[i:]),
				InitialDelay: be32(raw[i+4:]),
			})
		}
		return out, nil
	})
}

func readTags(s Slice) ([]Tag, error) {
	raw, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	tags := make([]Tag, 0, len(raw)/4)
	for i := 0; i+4 <= len(raw); i += 4 {
		tags = append(tags, Tag(be32(raw[i:])))
	}
	return tags, nil
}
