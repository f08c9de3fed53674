// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"fmt"

	"github.com/teocci/go-isobmff/utils/bits/pio"
)

// SampleDesc is "stsd": entry_count followed by sample entry boxes.
type SampleDesc struct {
	FullContainerBox
	entryCount lazy[uint32]
}

func decodeSampleDesc(base *BaseBox) (Box, error) {
	b := &SampleDesc{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	b.Bind(b)
	return b, nil
}

func (sd *SampleDesc) EntryCount() (uint32, error) {
	return sd.entryCount.get(func() (uint32, error) {
		return sd.u32(0)
	})
}

func (sd *SampleDesc) HeaderSize() int64 {
	return sd.FullBox.HeaderSize() + 4
}

const sampleEntryLen = 8

// SampleEntry is the common prefix of every sample description:
// reserved(6) data_reference_index(2). Boxes such as "avcC" or "esds" may
// follow the format specific fields.
type SampleEntry struct {
	ContainerBox
	dataRefIndex lazy[uint16]
}

func (se *SampleEntry) DataReferenceIndex() (uint16, error) {
	return se.dataRefIndex.get(func() (uint16, error) {
		s, err := se.field(se.hdr.Len+6, 2)
		if err != nil {
			return 0, err
		}
		return s.U16()
	})
}

func (se *SampleEntry) u16(off int64) (uint16, error) {
	s, err := se.field(se.hdr.Len+sampleEntryLen+off, 2)
	if err != nil {
		return 0, err
	}
	return s.U16()
}

func (se *SampleEntry) u32(off int64) (uint32, error) {
	s, err := se.field(se.hdr.Len+sampleEntryLen+off, 4)
	if err != nil {
		return 0, err
	}
	return s.U32()
}

// VisualSampleEntry covers "avc1", "hvc1", "mp4v" and friends.
//
//	pre_defined/reserved(16) width(2) height(2) horizresolution(4)
//	vertresolution(4) reserved(4) frame_count(2) compressorname(32)
//	depth(2) pre_defined(2)
type VisualSampleEntry struct {
	SampleEntry
	width          lazy[uint16]
	height         lazy[uint16]
	compressorName lazy[string]
}

func decodeVisualSampleEntry(base *BaseBox) (Box, error) {
	b := &VisualSampleEntry{}
	b.BaseBox = *base
	b.Bind(b)
	return b, nil
}

func (ve *VisualSampleEntry) Width() (uint16, error) {
	return ve.width.get(func() (uint16, error) {
		return ve.u16(16)
	})
}

func (ve *VisualSampleEntry) Height() (uint16, error) {
	return ve.height.get(func() (uint16, error) {
		return ve.u16(18)
	})
}

func (ve *VisualSampleEntry) CompressorName() (string, error) {
	return ve.compressorName.get(func() (string, error) {
		s, err := ve.field(ve.hdr.Len+sampleEntryLen+34, 32)
		if err != nil {
			return "", err
		}
		n, err := s.U8()
		if err != nil {
			return "", err
		}
		name, err := s.Sub(1, min(int64(n), 31))
		if err != nil {
			return "", err
		}
		return ve.decodeString(name)
	})
}

func (ve *VisualSampleEntry) HeaderSize() int64 {
	return ve.hdr.Len + sampleEntryLen + 70
}

func (ve *VisualSampleEntry) Summary() string {
	w, _ := ve.Width()
	h, _ := ve.Height()
	return fmt.Sprintf("%dx%d", w, h)
}

// AudioSampleEntry covers "mp4a" and friends.
//
//	reserved(8) channelcount(2) samplesize(2) pre_defined(2) reserved(2)
//	samplerate(4, 16.16)
type AudioSampleEntry struct {
	SampleEntry
	channelCount lazy[uint16]
	sampleSize   lazy[uint16]
	sampleRate   lazy[float64]
}

func decodeAudioSampleEntry(base *BaseBox) (Box, error) {
	b := &AudioSampleEntry{}
	b.BaseBox = *base
	b.Bind(b)
	return b, nil
}

func (ae *AudioSampleEntry) ChannelCount() (uint16, error) {
	return ae.channelCount.get(func() (uint16, error) {
		return ae.u16(8)
	})
}

func (ae *AudioSampleEntry) SampleSize() (uint16, error) {
	return ae.sampleSize.get(func() (uint16, error) {
		return ae.u16(10)
	})
}

func (ae *AudioSampleEntry) SampleRate() (float64, error) {
	return ae.sampleRate.get(func() (float64, error) {
		v, err := ae.u32(16)
		return UFixed32(v), err
	})
}

func (ae *AudioSampleEntry) HeaderSize() int64 {
	return ae.hdr.Len + sampleEntryLen + 20
}

func (ae *AudioSampleEntry) Summary() string {
	ch, _ := ae.ChannelCount()
	rate, _ := ae.SampleRate()
	return fmt.Sprintf("channels=%d rate=%g", ch, rate)
}

type TimeToSampleEntry struct {
	Count    uint32
	Duration uint32
}

// TimeToSample is "stts".
type TimeToSample struct {
	FullBox
	entries lazy[[]TimeToSampleEntry]
}

func decodeTimeToSample(base *BaseBox) (Box, error) {
	b := &TimeToSample{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (ts *TimeToSample) Entries() ([]TimeToSampleEntry, error) {
	return ts.entries.get(func() ([]TimeToSampleEntry, error) {
		count, raw, err := ts.table(0, 8)
		if err != nil {
			return nil, err
		}
		out := make([]TimeToSampleEntry, count)
		for i := range out {
			out[i].Count = pio.U32BE(raw[i*8:])
			out[i].Duration = pio.U32BE(raw[i*8+4:])
		}
		return out, nil
	})
}

func (ts *TimeToSample) Summary() string {
	entries, _ := ts.Entries()
	return fmt.Sprintf("entries=%d", len(entries))
}

type CompositionOffsetEntry struct {
	Count  uint32
	Offset int64
}

// CompositionOffset is "ctts". Offsets are unsigned in version 0 and signed
// from version 1 on.
type CompositionOffset struct {
	FullBox
	entries lazy[[]CompositionOffsetEntry]
}

func decodeCompositionOffset(base *BaseBox) (Box, error) {
	b := &CompositionOffset{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (co *CompositionOffset) Entries() ([]CompositionOffsetEntry, error) {
	return co.entries.get(func() ([]CompositionOffsetEntry, error) {
		count, raw, err := co.table(0, 8)
		if err != nil {
			return nil, err
		}
		out := make([]CompositionOffsetEntry, count)
		for i := range out {
			out[i].Count = pio.U32BE(raw[i*8:])
			if co.Version() == 0 {
				out[i].Offset = int64(pio.U32BE(raw[i*8+4:]))
			} else {
				out[i].Offset = int64(pio.I32BE(raw[i*8+4:]))
			}
		}
		return out, nil
	})
}

func (co *CompositionOffset) Summary() string {
	entries, _ := co.Entries()
	return fmt.Sprintf("entries=%d", len(entries))
}

// SyncSample is "stss": the 1-based numbers of the sync samples.
type SyncSample struct {
	FullBox
	entries lazy[[]uint32]
}

func decodeSyncSample(base *BaseBox) (Box, error) {
	b := &SyncSample{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (ss *SyncSample) Entries() ([]uint32, error) {
	return ss.entries.get(func() ([]uint32, error) {
		count, raw, err := ss.table(0, 4)
		if err != nil {
			return nil, err
		}
		out := make([]uint32, count)
		for i := range out {
			out[i] = pio.U32BE(raw[i*4:])
		}
		return out, nil
	})
}

func (ss *SyncSample) Summary() string {
	entries, _ := ss.Entries()
	return fmt.Sprintf("entries=%d", len(entries))
}

// SampleSize is "stsz". When SampleSize is non-zero every sample has that
// size and there is no per-sample table.
type SampleSize struct {
	FullBox
	sampleSize  lazy[uint32]
	sampleCount lazy[uint32]
	entries     lazy[[]uint32]
}

func decodeSampleSize(base *BaseBox) (Box, error) {
	b := &SampleSize{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (sz *SampleSize) SampleSize() (uint32, error) {
	return sz.sampleSize.get(func() (uint32, error) {
		return sz.u32(0)
	})
}

func (sz *SampleSize) SampleCount() (uint32, error) {
	return sz.sampleCount.get(func() (uint32, error) {
		return sz.u32(4)
	})
}

func (sz *SampleSize) Entries() ([]uint32, error) {
	return sz.entries.get(func() ([]uint32, error) {
		size, err := sz.SampleSize()
		if err != nil {
			return nil, err
		}
		if size != 0 {
			return nil, nil
		}
		count, raw, err := sz.table(4, 4)
		if err != nil {
			return nil, err
		}
		out := make([]uint32, count)
		for i := range out {
			out[i] = pio.U32BE(raw[i*4:])
		}
		return out, nil
	})
}

func (sz *SampleSize) Summary() string {
	count, _ := sz.SampleCount()
	size, _ := sz.SampleSize()
	return fmt.Sprintf("count=%d size=%d", count, size)
}

type SampleToChunkEntry struct {
	FirstChunk      uint32
	SamplesPerChunk uint32
	SampleDescID    uint32
}

// SampleToChunk is "stsc".
type SampleToChunk struct {
	FullBox
	entries lazy[[]SampleToChunkEntry]
}

func decodeSampleToChunk(base *BaseBox) (Box, error) {
	b := &SampleToChunk{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (sc *SampleToChunk) Entries() ([]SampleToChunkEntry, error) {
	return sc.entries.get(func() ([]SampleToChunkEntry, error) {
		count, raw, err := sc.table(0, 12)
		if err != nil {
			return nil, err
		}
		out := make([]SampleToChunkEntry, count)
		for i := range out {
			e := raw[i*12:]
			out[i] = SampleToChunkEntry{
				FirstChunk:      pio.U32BE(e),
				SamplesPerChunk: pio.U32BE(e[4:]),
				SampleDescID:    pio.U32BE(e[8:]),
			}
		}
		return out, nil
	})
}

func (sc *SampleToChunk) Summary() string {
	entries, _ := sc.Entries()
	return fmt.Sprintf("entries=%d", len(entries))
}

// ChunkOffset is "stco" and "co64"; the latter stores 64-bit offsets.
type ChunkOffset struct {
	FullBox
	entries lazy[[]uint64]
}

func decodeChunkOffset(base *BaseBox) (Box, error) {
	b := &ChunkOffset{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (co *ChunkOffset) Entries() ([]uint64, error) {
	return co.entries.get(func() ([]uint64, error) {
		width := int64(4)
		if co.Tag() == CO64 {
			width = 8
		}
		count, raw, err := co.table(0, width)
		if err != nil {
			return nil, err
		}
		out := make([]uint64, count)
		for i := range out {
			if width == 8 {
				out[i] = pio.U64BE(raw[i*8:])
			} else {
				out[i] = uint64(pio.U32BE(raw[i*4:]))
			}
		}
		return out, nil
	})
}

func (co *ChunkOffset) Summary() string {
	entries, _ := co.Entries()
	return fmt.Sprintf("entries=%d", len(entries))
}
