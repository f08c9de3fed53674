// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"fmt"
	"time"

	"github.com/teocci/go-isobmff/utils/bits/pio"
)

// MovieHeader is "mvhd".
//
//	version 0: creation_time(4) modification_time(4) timescale(4) duration(4)
//	version 1: creation_time(8) modification_time(8) timescale(4) duration(8)
//	then rate(4) volume(2) reserved(10) matrix(36) pre_defined(24) next_track_ID(4)
type MovieHeader struct {
	FullBox
	createTime  lazy[time.Time]
	modifyTime  lazy[time.Time]
	timeScale   lazy[uint32]
	duration    lazy[uint64]
	rate        lazy[float64]
	volume      lazy[float64]
	matrix      lazy[[9]int32]
	nextTrackID lazy[uint32]
}

func decodeMovieHeader(base *BaseBox) (Box, error) {
	b := &MovieHeader{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (mh *MovieHeader) CreateTime() (time.Time, error) {
	return mh.createTime.get(func() (time.Time, error) {
		v, err := mh.uintv(0)
		return MacTime(v), err
	})
}

func (mh *MovieHeader) ModifyTime() (time.Time, error) {
	return mh.modifyTime.get(func() (time.Time, error) {
		v, err := mh.uintv(mh.vw())
		return MacTime(v), err
	})
}

func (mh *MovieHeader) TimeScale() (uint32, error) {
	return mh.timeScale.get(func() (uint32, error) {
		return mh.u32(2 * mh.vw())
	})
}

func (mh *MovieHeader) Duration() (uint64, error) {
	return mh.duration.get(func() (uint64, error) {
		return mh.uintv(2*mh.vw() + 4)
	})
}

func (mh *MovieHeader) PreferredRate() (float64, error) {
	return mh.rate.get(func() (float64, error) {
		v, err := mh.i32(3*mh.vw() + 4)
		return Fixed32(v), err
	})
}

func (mh *MovieHeader) PreferredVolume() (float64, error) {
	return mh.volume.get(func() (float64, error) {
		v, err := mh.i16(3*mh.vw() + 8)
		return Fixed16(v), err
	})
}

func (mh *MovieHeader) Matrix() ([9]int32, error) {
	return mh.matrix.get(func() ([9]int32, error) {
		return mh.readMatrix(3*mh.vw() + 20)
	})
}

func (mh *MovieHeader) NextTrackID() (uint32, error) {
	return mh.nextTrackID.get(func() (uint32, error) {
		return mh.u32(3*mh.vw() + 80)
	})
}

func (mh *MovieHeader) HeaderSize() int64 {
	return mh.FullBox.HeaderSize() + 3*mh.vw() + 84
}

func (mh *MovieHeader) Summary() string {
	ts, _ := mh.TimeScale()
	dur, _ := mh.Duration()
	return fmt.Sprintf("timescale=%d dur=%d", ts, dur)
}

func (b *FullBox) readMatrix(off int64) (m [9]int32, err error) {
	s, err := b.body(off, 36)
	if err != nil {
		return
	}
	raw, err := s.ReadAll()
	if err != nil {
		return
	}
	for i := range m {
		m[i] = pio.I32BE(raw[i*4:])
	}
	return
}

const (
	TKHD_TRACK_ENABLED    = 0x01
	TKHD_TRACK_IN_MOVIE   = 0x02
	TKHD_TRACK_IN_PREVIEW = 0x04
	TKHD_SIZE_IS_ASPECT   = 0x08
)

// TrackHeader is "tkhd".
//
//	version 0: creation_time(4) modification_time(4) track_ID(4) reserved(4) duration(4)
//	version 1: creation_time(8) modification_time(8) track_ID(4) reserved(4) duration(8)
//	then reserved(8) layer(2) alternate_group(2) volume(2) reserved(2) matrix(36) width(4) height(4)
type TrackHeader struct {
	FullBox
	createTime     lazy[time.Time]
	modifyTime     lazy[time.Time]
	trackID        lazy[uint32]
	duration       lazy[uint64]
	layer          lazy[int16]
	alternateGroup lazy[int16]
	volume         lazy[float64]
	matrix         lazy[[9]int32]
	width          lazy[float64]
	height         lazy[float64]
}

func decodeTrackHeader(base *BaseBox) (Box, error) {
	b := &TrackHeader{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (th *TrackHeader) CreateTime() (time.Time, error) {
	return th.createTime.get(func() (time.Time, error) {
		v, err := th.uintv(0)
		return MacTime(v), err
	})
}

func (th *TrackHeader) ModifyTime() (time.Time, error) {
	return th.modifyTime.get(func() (time.Time, error) {
		v, err := th.uintv(th.vw())
		return MacTime(v), err
	})
}

func (th *TrackHeader) TrackID() (uint32, error) {
	return th.trackID.get(func() (uint32, error) {
		return th.u32(2 * th.vw())
	})
}

func (th *TrackHeader) Duration() (uint64, error) {
	return th.duration.get(func() (uint64, error) {
		return th.uintv(2*th.vw() + 8)
	})
}

func (th *TrackHeader) Layer() (int16, error) {
	return th.layer.get(func() (int16, error) {
		return th.i16(3*th.vw() + 16)
	})
}

func (th *TrackHeader) AlternateGroup() (int16, error) {
	return th.alternateGroup.get(func() (int16, error) {
		return th.i16(3*th.vw() + 18)
	})
}

func (th *TrackHeader) Volume() (float64, error) {
	return th.volume.get(func() (float64, error) {
		v, err := th.i16(3*th.vw() + 20)
		return Fixed16(v), err
	})
}

func (th *TrackHeader) Matrix() ([9]int32, error) {
	return th.matrix.get(func() ([9]int32, error) {
		return th.readMatrix(3*th.vw() + 24)
	})
}

func (th *TrackHeader) Width() (float64, error) {
	return th.width.get(func() (float64, error) {
		v, err := th.u32(3*th.vw() + 60)
		return UFixed32(v), err
	})
}

func (th *TrackHeader) Height() (float64, error) {
	return th.height.get(func() (float64, error) {
		v, err := th.u32(3*th.vw() + 64)
		return UFixed32(v), err
	})
}

func (th *TrackHeader) Enabled() bool {
	return th.Flag(TKHD_TRACK_ENABLED)
}

func (th *TrackHeader) HeaderSize() int64 {
	return th.FullBox.HeaderSize() + 3*th.vw() + 68
}

func (th *TrackHeader) Summary() string {
	id, _ := th.TrackID()
	w, _ := th.Width()
	h, _ := th.Height()
	return fmt.Sprintf("track=%d %gx%g", id, w, h)
}

// TrackReferenceType is a child of "tref" naming the tracks a track refers
// to; its type code is the reference kind ("hint", "cdsc", ...).
type TrackReferenceType struct {
	BaseBox
	trackIDs lazy[[]uint32]
}

func decodeTrackReferenceType(base *BaseBox) (Box, error) {
	return &TrackReferenceType{BaseBox: *base}, nil
}

func (tr *TrackReferenceType) TrackIDs() ([]uint32, error) {
	return tr.trackIDs.get(func() ([]uint32, error) {
		s, err := tr.tail(tr.hdr.Len)
		if err != nil {
			return nil, err
		}
		raw, err := s.ReadAll()
		if err != nil {
			return nil, err
		}
		ids := make([]uint32, 0, len(raw)/4)
		for i := 0; i+4 <= len(raw); i += 4 {
			ids = append(ids, be32(raw[i:]))
		}
		return ids, nil
	})
}

func (tr *TrackReferenceType) HeaderSize() int64 {
	return tr.Size()
}

// TrackGroupType is a child of "trgr" such as "msrc".
type TrackGroupType struct {
	FullBox
	groupID lazy[uint32]
}

func decodeTrackGroupType(base *BaseBox) (Box, error) {
	b := &TrackGroupType{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (tg *TrackGroupType) TrackGroupID() (uint32, error) {
	return tg.groupID.get(func() (uint32, error) {
		return tg.u32(0)
	})
}

func (tg *TrackGroupType) HeaderSize() int64 {
	return tg.FullBox.HeaderSize() + 4
}

type EditListEntry struct {
	SegmentDuration   uint64
	MediaTime         int64
	MediaRateInteger  int16
	MediaRateFraction int16
}

// EditList is "elst".
type EditList struct {
	FullBox
	entries lazy[[]EditListEntry]
}

func decodeEditList(base *BaseBox) (Box, error) {
	b := &EditList{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (el *EditList) Entries() ([]EditListEntry, error) {
	return el.entries.get(func() ([]EditListEntry, error) {
		w := el.vw()
		count, raw, err := el.table(0, 2*w+4)
		if err != nil {
			return nil, err
		}
		out := make([]EditListEntry, count)
		for i := range out {
			e := raw[int64(i)*(2*w+4):]
			if w == 8 {
				out[i].SegmentDuration = pio.U64BE(e)
				out[i].MediaTime = pio.I64BE(e[8:])
			} else {
				out[i].SegmentDuration = uint64(pio.U32BE(e))
				out[i].MediaTime = int64(pio.I32BE(e[4:]))
			}
			out[i].MediaRateInteger = pio.I16BE(e[2*w:])
			out[i].MediaRateFraction = pio.I16BE(e[2*w+2:])
		}
		return out, nil
	})
}

func (el *EditList) Summary() string {
	entries, _ := el.Entries()
	return fmt.Sprintf("entries=%d", len(entries))
}
