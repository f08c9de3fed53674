// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"fmt"
)

// MovieExtendsHeader is "mehd".
type MovieExtendsHeader struct {
	FullBox
	fragmentDuration lazy[uint64]
}

func decodeMovieExtendsHeader(base *BaseBox) (Box, error) {
	b := &MovieExtendsHeader{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (mh *MovieExtendsHeader) FragmentDuration() (uint64, error) {
	return mh.fragmentDuration.get(func() (uint64, error) {
		return mh.uintv(0)
	})
}

func (mh *MovieExtendsHeader) HeaderSize() int64 {
	return mh.FullBox.HeaderSize() + mh.vw()
}

// TrackExtend is "trex": per-track defaults used by movie fragments.
type TrackExtend struct {
	FullBox
}

func decodeTrackExtend(base *BaseBox) (Box, error) {
	b := &TrackExtend{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (te *TrackExtend) TrackID() (uint32, error) {
	return te.u32(0)
}

func (te *TrackExtend) DefaultSampleDescIndex() (uint32, error) {
	return te.u32(4)
}

func (te *TrackExtend) DefaultSampleDuration() (uint32, error) {
	return te.u32(8)
}

func (te *TrackExtend) DefaultSampleSize() (uint32, error) {
	return te.u32(12)
}

func (te *TrackExtend) DefaultSampleFlags() (uint32, error) {
	return te.u32(16)
}

func (te *TrackExtend) HeaderSize() int64 {
	return te.FullBox.HeaderSize() + 20
}

func (te *TrackExtend) Summary() string {
	id, _ := te.TrackID()
	return fmt.Sprintf("track=%d", id)
}

// MovieFragHeader is "mfhd".
type MovieFragHeader struct {
	FullBox
}

func decodeMovieFragHeader(base *BaseBox) (Box, error) {
	b := &MovieFragHeader{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (mf *MovieFragHeader) SequenceNumber() (uint32, error) {
	return mf.u32(0)
}

func (mf *MovieFragHeader) HeaderSize() int64 {
	return mf.FullBox.HeaderSize() + 4
}

func (mf *MovieFragHeader) Summary() string {
	seq, _ := mf.SequenceNumber()
	return fmt.Sprintf("seq=%d", seq)
}

// TrackFragDecodeTime is "tfdt".
type TrackFragDecodeTime struct {
	FullBox
	baseTime lazy[uint64]
}

func decodeTrackFragDecodeTime(base *BaseBox) (Box, error) {
	b := &TrackFragDecodeTime{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (tf *TrackFragDecodeTime) BaseMediaDecodeTime() (uint64, error) {
	return tf.baseTime.get(func() (uint64, error) {
		return tf.uintv(0)
	})
}

func (tf *TrackFragDecodeTime) HeaderSize() int64 {
	return tf.FullBox.HeaderSize() + tf.vw()
}

func (tf *TrackFragDecodeTime) Summary() string {
	t, _ := tf.BaseMediaDecodeTime()
	return fmt.Sprintf("base_media_decode_time=%d", t)
}

// MovieFragRandomAccessOffset is "mfro", the last box of "mfra". Its value is
// the size of the enclosing "mfra", so a reader can find it from the end of
// the file.
type MovieFragRandomAccessOffset struct {
	FullBox
}

func decodeMovieFragRandomAccessOffset(base *BaseBox) (Box, error) {
	b := &MovieFragRandomAccessOffset{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (mo *MovieFragRandomAccessOffset) ParentSize() (uint32, error) {
	return mo.u32(0)
}

func (mo *MovieFragRandomAccessOffset) HeaderSize() int64 {
	return mo.FullBox.HeaderSize() + 4
}

func (mo *MovieFragRandomAccessOffset) Summary() string {
	n, _ := mo.ParentSize()
	return fmt.Sprintf("mfra=%d", n)
}
