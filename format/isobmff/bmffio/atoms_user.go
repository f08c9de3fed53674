// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"fmt"
)

// Copyright is "cprt": a packed language code and a notice that may be UTF-8
// or UTF-16 with a byte order mark.
type Copyright struct {
	FullBox
	notice lazy[string]
}

func decodeCopyright(base *BaseBox) (Box, error) {
	b := &Copyright{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (cp *Copyright) Language() (string, error) {
	v, err := cp.u16(0)
	if err != nil {
		return "", err
	}
	return Language(v), nil
}

func (cp *Copyright) Notice() (string, error) {
	return cp.notice.get(func() (string, error) {
		s, err := cp.bodyTail(2)
		if err != nil {
			return "", err
		}
		return cp.decodeString(s)
	})
}

func (cp *Copyright) HeaderSize() int64 {
	return cp.Size()
}

func (cp *Copyright) Summary() string {
	lang, _ := cp.Language()
	notice, _ := cp.Notice()
	return fmt.Sprintf("lang=%s notice=%q", lang, notice)
}

// TrackSelection is "tsel": switch_group followed by attribute codes to the
// end of the box.
type TrackSelection struct {
	FullBox
	attributes lazy[[]Tag]
}

func decodeTrackSelection(base *BaseBox) (Box, error) {
	b := &TrackSelection{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (ts *TrackSelection) SwitchGroup() (int32, error) {
	return ts.i32(0)
}

func (ts *TrackSelection) Attributes() ([]Tag, error) {
	return ts.attributes.get(func() ([]Tag, error) {
		s, err := ts.bodyTail(4)
		if err != nil {
			return nil, err
		}
		return readTags(s)
	})
}

func (ts *TrackSelection) HeaderSize() int64 {
	return ts.Size()
}

func (ts *TrackSelection) Summary() string {
	g, _ := ts.SwitchGroup()
	attrs, _ := ts.Attributes()
	return fmt.Sprintf("group=%d attributes=%v", g, attrs)
}
