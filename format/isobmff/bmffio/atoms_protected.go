// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"fmt"
)

// OriginalFormat is "frma": the sample entry type a protected or restricted
// entry such as "encv" replaced.
type OriginalFormat struct {
	BaseBox
	dataFormat lazy[Tag]
}

func decodeOriginalFormat(base *BaseBox) (Box, error) {
	return &OriginalFormat{BaseBox: *base}, nil
}

func (of *OriginalFormat) DataFormat() (Tag, error) {
	return of.dataFormat.get(func() (Tag, error) {
		s, err := of.field(of.hdr.Len, 4)
		if err != nil {
			return 0, err
		}
		return s.Tag()
	})
}

func (of *OriginalFormat) HeaderSize() int64 {
	return of.hdr.Len + 4
}

func (of *OriginalFormat) Summary() string {
	f, _ := of.DataFormat()
	return fmt.Sprintf("format=%s", f)
}

const SCHM_URI_PRESENT = 0x01

// SchemeType is "schm".
//
//	scheme_type(4) scheme_version(4) [scheme_uri(cstring) if flags&1]
type SchemeType struct {
	FullBox
	uri lazy[string]
}

func decodeSchemeType(base *BaseBox) (Box, error) {
	b := &SchemeType{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (st *SchemeType) SchemeType() (Tag, error) {
	s, err := st.body(0, 4)
	if err != nil {
		return 0, err
	}
	return s.Tag()
}

func (st *SchemeType) SchemeVersion() (uint32, error) {
	return st.u32(4)
}

// SchemeURI is empty unless the URI flag is set.
func (st *SchemeType) SchemeURI() (string, error) {
	return st.uri.get(func() (string, error) {
		if !st.Flag(SCHM_URI_PRESENT) {
			return "", nil
		}
		s, err := st.bodyTail(8)
		if err != nil {
			return "", err
		}
		uri, _, err := st.decodeCString(s)
		return uri, err
	})
}

func (st *SchemeType) HeaderSize() int64 {
	return st.Size()
}

func (st *SchemeType) Summary() string {
	t, _ := st.SchemeType()
	v, _ := st.SchemeVersion()
	return fmt.Sprintf("scheme=%s version=%#x", t, v)
}
