// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"bytes"
	"fmt"

	"github.com/teocci/go-isobmff/utils/bits"
	"github.com/teocci/go-isobmff/utils/bits/pio"
)

// CompactSampleSize is "stz2".
//
//	reserved(3) field_size(1) sample_count(4) entry_size(field_size bits)[sample_count]
type CompactSampleSize struct {
	FullBox
	entries lazy[[]uint16]
}

func decodeCompactSampleSize(base *BaseBox) (Box, error) {
	b := &CompactSampleSize{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

// FieldSize is the width of each entry in bits: 4, 8 or 16.
func (cs *CompactSampleSize) FieldSize() (uint8, error) {
	return cs.u8(3)
}

func (cs *CompactSampleSize) SampleCount() (uint32, error) {
	return cs.u32(4)
}

func (cs *CompactSampleSize) Entries() ([]uint16, error) {
	return cs.entries.get(func() ([]uint16, error) {
		fs, err := cs.FieldSize()
		if err != nil {
			return nil, err
		}
		if fs != 4 && fs != 8 && fs != 16 {
			return nil, fmt.Errorf("%s: field size %d", cs.hdr.Type, fs)
		}
		count, err := cs.SampleCount()
		if err != nil {
			return nil, err
		}
		s, err := cs.body(8, (int64(count)*int64(fs)+7)/8)
		if err != nil {
			return nil, err
		}
		raw, err := s.ReadAll()
		if err != nil {
			return nil, err
		}
		r := &fieldReader{r: &bits.Reader{R: bytes.NewReader(raw)}}
		out := make([]uint16, count)
		for i := range out {
			out[i] = uint16(r.bits(uint(fs)))
		}
		return out, r.err
	})
}

func (cs *CompactSampleSize) Summary() string {
	count, _ := cs.SampleCount()
	fs, _ := cs.FieldSize()
	return fmt.Sprintf("count=%d bits=%d", count, fs)
}

// SampleDependency unpacks one "sdtp" byte. Each field is two bits.
type SampleDependency struct {
	IsLeading     uint8
	DependsOn     uint8
	IsDependedOn  uint8
	HasRedundancy uint8
}

// SampleDependencyType is "sdtp": one byte per sample to the end of the box.
// The sample count itself lives in "stsz" or "stz2".
type SampleDependencyType struct {
	FullBox
	entries lazy[[]SampleDependency]
}

func decodeSampleDependencyType(base *BaseBox) (Box, error) {
	b := &SampleDependencyType{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (sd *SampleDependencyType) Entries() ([]SampleDependency, error) {
	return sd.entries.get(func() ([]SampleDependency, error) {
		s, err := sd.bodyTail(0)
		if err != nil {
			return nil, err
		}
		raw, err := s.ReadAll()
		if err != nil {
			return nil, err
		}
		out := make([]SampleDependency, len(raw))
		for i, b := range raw {
			out[i] = SampleDependency{
				IsLeading:     b>>6&3,
				DependsOn:     b>>4&3,
				IsDependedOn:  b>>2&3,
				HasRedundancy: b & 3,
			}
		}
		return out, nil
	})
}

func (sd *SampleDependencyType) Summary() string {
	return fmt.Sprintf("samples=%d", sd.Size()-sd.FullBox.HeaderSize())
}

// CompositionToDecode is "cslg". Its five fields are 32-bit under version 0
// and 64-bit otherwise, all signed.
type CompositionToDecode struct {
	FullBox
}

func decodeCompositionToDecode(base *BaseBox) (Box, error) {
	b := &CompositionToDecode{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (cd *CompositionToDecode) CompositionToDTSShift() (int64, error) {
	return cd.intv(0)
}

func (cd *CompositionToDecode) LeastDecodeToDisplayDelta() (int64, error) {
	return cd.intv(cd.vw())
}

func (cd *CompositionToDecode) GreatestDecodeToDisplayDelta() (int64, error) {
	return cd.intv(2 * cd.vw())
}

func (cd *CompositionToDecode) CompositionStartTime() (int64, error) {
	return cd.intv(3 * cd.vw())
}

func (cd *CompositionToDecode) CompositionEndTime() (int64, error) {
	return cd.intv(4 * cd.vw())
}

func (cd *CompositionToDecode) HeaderSize() int64 {
	return cd.FullBox.HeaderSize() + 5*cd.vw()
}

func (cd *CompositionToDecode) Summary() string {
	shift, _ := cd.CompositionToDTSShift()
	return fmt.Sprintf("shift=%d", shift)
}

const SAI_AUX_INFO_TYPE = 0x01

// auxLen is the size of the optional aux_info_type and
// aux_info_type_parameter prefix of "saiz" and "saio".
func (b *FullBox) auxLen() int64 {
	if b.Flag(SAI_AUX_INFO_TYPE) {
		return 8
	}
	return 0
}

// auxInfoType reads the prefix. Both values are zero when it is absent.
func (b *FullBox) auxInfoType() (Tag, uint32, error) {
	if b.auxLen() == 0 {
		return 0, 0, nil
	}
	s, err := b.body(0, 8)
	if err != nil {
		return 0, 0, err
	}
	raw, err := s.ReadAll()
	if err != nil {
		return 0, 0, err
	}
	return Tag(pio.U32BE(raw)), pio.U32BE(raw[4:]), nil
}

// SampleAuxInfoSizes is "saiz".
type SampleAuxInfoSizes struct {
	FullBox
	sizes lazy[[]uint8]
}

func decodeSampleAuxInfoSizes(base *BaseBox) (Box, error) {
	b := &SampleAuxInfoSizes{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (sz *SampleAuxInfoSizes) AuxInfoType() (Tag, uint32, error) {
	return sz.auxInfoType()
}

func (sz *SampleAuxInfoSizes) DefaultSampleInfoSize() (uint8, error) {
	return sz.u8(sz.auxLen())
}

func (sz *SampleAuxInfoSizes) SampleCount() (uint32, error) {
	return sz.u32(sz.auxLen() + 1)
}

// Sizes is nil when every sample has DefaultSampleInfoSize.
func (sz *SampleAuxInfoSizes) Sizes() ([]uint8, error) {
	return sz.sizes.get(func() ([]uint8, error) {
		def, err := sz.DefaultSampleInfoSize()
		if err != nil || def != 0 {
			return nil, err
		}
		count, err := sz.SampleCount()
		if err != nil {
			return nil, err
		}
		s, err := sz.body(sz.auxLen()+5, int64(count))
		if err != nil {
			return nil, err
		}
		return s.ReadAll()
	})
}

func (sz *SampleAuxInfoSizes) Summary() string {
	count, _ := sz.SampleCount()
	def, _ := sz.DefaultSampleInfoSize()
	return fmt.Sprintf("count=%d default=%d", count, def)
}

// SampleAuxInfoOffsets is "saio". Offsets are 32-bit under version 0 and
// 64-bit otherwise.
type SampleAuxInfoOffsets struct {
	FullBox
	offsets lazy[[]uint64]
}

func decodeSampleAuxInfoOffsets(base *BaseBox) (Box, error) {
	b := &SampleAuxInfoOffsets{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (so *SampleAuxInfoOffsets) AuxInfoType() (Tag, uint32, error) {
	return so.auxInfoType()
}

func (so *SampleAuxInfoOffsets) Offsets() ([]uint64, error) {
	return so.offsets.get(func() ([]uint64, error) {
		w := so.vw()
		count, raw, err := so.table(so.auxLen(), w)
		if err != nil {
			return nil, err
		}
		out := make([]uint64, count)
		for i := range out {
			if w == 8 {
				out[i] = pio.U64BE(raw[i*8:])
			} else {
				out[i] = uint64(pio.U32BE(raw[i*4:]))
			}
		}
		return out, nil
	})
}

func (so *SampleAuxInfoOffsets) Summary() string {
	n, _ := so.u32(so.auxLen())
	return fmt.Sprintf("entries=%d", n)
}
