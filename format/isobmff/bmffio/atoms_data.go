// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"fmt"
)

// DataReference is "dref": entry_count followed by "url " and "urn " boxes.
type DataReference struct {
	FullContainerBox
	entryCount lazy[uint32]
}

func decodeDataReference(base *BaseBox) (Box, error) {
	b := &DataReference{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	b.Bind(b)
	return b, nil
}

func (dr *DataReference) EntryCount() (uint32, error) {
	return dr.entryCount.get(func() (uint32, error) {
		return dr.u32(0)
	})
}

func (dr *DataReference) HeaderSize() int64 {
	return dr.FullBox.HeaderSize() + 4
}

const DREF_SELF_CONTAINED = 0x01

// DataEntryURL is "url ". A self-contained entry has no location.
type DataEntryURL struct {
	FullBox
	location lazy[string]
}

func decodeDataEntryURL(base *BaseBox) (Box, error) {
	b := &DataEntryURL{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (du *DataEntryURL) SelfContained() bool {
	return du.Flag(DREF_SELF_CONTAINED)
}

func (du *DataEntryURL) Location() (string, error) {
	return du.location.get(func() (string, error) {
		s, err := du.bodyTail(0)
		if err != nil || s.Len() == 0 {
			return "", err
		}
		loc, _, err := du.decodeCString(s)
		return loc, err
	})
}

func (du *DataEntryURL) Summary() string {
	if du.SelfContained() {
		return "self-contained"
	}
	loc, _ := du.Location()
	return fmt.Sprintf("location=%q", loc)
}

// DataEntryURN is "urn ": a name and an optional location.
type DataEntryURN struct {
	FullBox
	name     lazy[string]
	nameLen  int64
	location lazy[string]
}

func decodeDataEntryURN(base *BaseBox) (Box, error) {
	b := &DataEntryURN{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (du *DataEntryURN) Name() (string, error) {
	return du.name.get(func() (string, error) {
		s, err := du.bodyTail(0)
		if err != nil {
			return "", err
		}
		name, used, err := du.decodeCString(s)
		if err != nil {
			return "", err
		}
		du.nameLen = used
		return name, nil
	})
}

func (du *DataEntryURN) Location() (string, error) {
	return du.location.get(func() (string, error) {
		if _, err := du.Name(); err != nil {
			return "", err
		}
		s, err := du.bodyTail(du.nameLen)
		if err != nil || s.Len() == 0 {
			return "", err
		}
		loc, _, err := du.decodeCString(s)
		return loc, err
	})
}
