// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"fmt"
	"time"
)

// MediaHeader is "mdhd".
type MediaHeader struct {
	FullBox
	createTime lazy[time.Time]
	modifyTime lazy[time.Time]
	timeScale  lazy[uint32]
	duration   lazy[uint64]
	language   lazy[string]
}

func decodeMediaHeader(base *BaseBox) (Box, error) {
	b := &MediaHeader{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (mh *MediaHeader) CreateTime() (time.Time, error) {
	return mh.createTime.get(func() (time.Time, error) {
		v, err := mh.uintv(0)
		return MacTime(v), err
	})
}

func (mh *MediaHeader) ModifyTime() (time.Time, error) {
	return mh.modifyTime.get(func() (time.Time, error) {
		v, err := mh.uintv(mh.vw())
		return MacTime(v), err
	})
}

func (mh *MediaHeader) TimeScale() (uint32, error) {
	return mh.timeScale.get(func() (uint32, error) {
		return mh.u32(2 * mh.vw())
	})
}

func (mh *MediaHeader) Duration() (uint64, error) {
	return mh.duration.get(func() (uint64, error) {
		return mh.uintv(2*mh.vw() + 4)
	})
}

func (mh *MediaHeader) Language() (string, error) {
	return mh.language.get(func() (string, error) {
		v, err := mh.u16(3*mh.vw() + 4)
		if err != nil {
			return "", err
		}
		return Language(v), nil
	})
}

func (mh *MediaHeader) HeaderSize() int64 {
	return mh.FullBox.HeaderSize() + 3*mh.vw() + 8
}

func (mh *MediaHeader) Summary() string {
	ts, _ := mh.TimeScale()
	lang, _ := mh.Language()
	return fmt.Sprintf("timescale=%d lang=%s", ts, lang)
}

// HandlerRefer is "hdlr".
//
//	pre_defined(4) handler_type(4) reserved(12) name(string to end)
type HandlerRefer struct {
	FullBox
	handlerType lazy[Tag]
	name        lazy[string]
}

func decodeHandlerRefer(base *BaseBox) (Box, error) {
	b := &HandlerRefer{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (hr *HandlerRefer) HandlerType() (Tag, error) {
	return hr.handlerType.get(func() (Tag, error) {
		s, err := hr.body(4, 4)
		if err != nil {
			return 0, err
		}
		return s.Tag()
	})
}

func (hr *HandlerRefer) Name() (string, error) {
	return hr.name.get(func() (string, error) {
		s, err := hr.bodyTail(20)
		if err != nil {
			return "", err
		}
		// QuickTime writes a Pascal string here.
		if s.Len() > 0 {
			if n, err := s.U8(); err == nil && int64(n) == s.Len()-1 && n > 0 {
				if s, err = s.From(1); err != nil {
					return "", err
				}
			}
		}
		return hr.decodeString(s)
	})
}

func (hr *HandlerRefer) HeaderSize() int64 {
	return hr.Size()
}

func (hr *HandlerRefer) Summary() string {
	t, _ := hr.HandlerType()
	name, _ := hr.Name()
	return fmt.Sprintf("type=%s name=%q", t, name)
}

// VideoMediaHeader is "vmhd".
type VideoMediaHeader struct {
	FullBox
	graphicsMode lazy[uint16]
	opColor      lazy[[3]uint16]
}

func decodeVideoMediaHeader(base *BaseBox) (Box, error) {
	b := &VideoMediaHeader{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (vm *VideoMediaHeader) GraphicsMode() (uint16, error) {
	return vm.graphicsMode.get(func() (uint16, error) {
		return vm.u16(0)
	})
}

func (vm *VideoMediaHeader) OpColor() ([3]uint16, error) {
	return vm.opColor.get(func() (c [3]uint16, err error) {
		for i := range c {
			if c[i], err = vm.u16(2 + int64(i)*2); err != nil {
				return
			}
		}
		return
	})
}

func (vm *VideoMediaHeader) HeaderSize() int64 {
	return vm.FullBox.HeaderSize() + 8
}

// SoundMediaHeader is "smhd".
type SoundMediaHeader struct {
	FullBox
	balance lazy[float64]
}

func decodeSoundMediaHeader(base *BaseBox) (Box, error) {
	b := &SoundMediaHeader{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (sm *SoundMediaHeader) Balance() (float64, error) {
	return sm.balance.get(func() (float64, error) {
		v, err := sm.i16(0)
		return Fixed16(v), err
	})
}

func (sm *SoundMediaHeader) HeaderSize() int64 {
	return sm.FullBox.HeaderSize() + 4
}

// ExtendedLanguage is "elng": an RFC 4646 tag.
type ExtendedLanguage struct {
	FullBox
	language lazy[string]
}

func decodeExtendedLanguage(base *BaseBox) (Box, error) {
	b := &ExtendedLanguage{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (el *ExtendedLanguage) Language() (string, error) {
	return el.language.get(func() (string, error) {
		s, err := el.bodyTail(0)
		if err != nil {
			return "", err
		}
		return el.decodeString(s)
	})
}
