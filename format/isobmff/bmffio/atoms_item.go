// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/teocci/go-isobmff/utils/bits"
)

// idv reads an item ID or count that is 16 bits wide below version wideFrom
// and 32 bits from it on. It also returns the width.
func (b *FullBox) idv(off int64, wideFrom uint8) (uint32, int64, error) {
	if b.version < wideFrom {
		v, err := b.u16(off)
		return uint32(v), 2, err
	}
	v, err := b.u32(off)
	return v, 4, err
}

func (b *FullBox) idw(wideFrom uint8) int64 {
	if b.version < wideFrom {
		return 2
	}
	return 4
}

// PrimaryItem is "pitm".
type PrimaryItem struct {
	FullBox
}

func decodePrimaryItem(base *BaseBox) (Box, error) {
	b := &PrimaryItem{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (pi *PrimaryItem) ItemID() (uint32, error) {
	id, _, err := pi.idv(0, 1)
	return id, err
}

func (pi *PrimaryItem) HeaderSize() int64 {
	return pi.FullBox.HeaderSize() + pi.idw(1)
}

func (pi *PrimaryItem) Summary() string {
	id, _ := pi.ItemID()
	return fmt.Sprintf("item=%d", id)
}

// ItemProtection is "ipro": protection_count followed by "sinf" boxes.
type ItemProtection struct {
	FullContainerBox
}

func decodeItemProtection(base *BaseBox) (Box, error) {
	b := &ItemProtection{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	b.Bind(b)
	return b, nil
}

func (ip *ItemProtection) ProtectionCount() (uint16, error) {
	return ip.u16(0)
}

func (ip *ItemProtection) HeaderSize() int64 {
	return ip.FullBox.HeaderSize() + 2
}

// ItemInfo is "iinf": entry_count followed by "infe" boxes.
type ItemInfo struct {
	FullContainerBox
}

func decodeItemInfo(base *BaseBox) (Box, error) {
	b := &ItemInfo{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	b.Bind(b)
	return b, nil
}

func (ii *ItemInfo) EntryCount() (uint32, error) {
	n, _, err := ii.idv(0, 1)
	return n, err
}

func (ii *ItemInfo) HeaderSize() int64 {
	return ii.FullBox.HeaderSize() + ii.idw(1)
}

// ItemInfoFields are the decoded fields of an "infe". ItemType is zero below
// version 2, where the content type is always present instead.
type ItemInfoFields struct {
	ItemID          uint32
	ProtectionIndex uint16
	ItemType        Tag
	ItemName        string
	ContentType     string
	ContentEncoding string
	URIType         string
}

// ItemInfoEntry is "infe".
type ItemInfoEntry struct {
	FullBox
	fields lazy[ItemInfoFields]
}

func decodeItemInfoEntry(base *BaseBox) (Box, error) {
	b := &ItemInfoEntry{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (ie *ItemInfoEntry) Fields() (ItemInfoFields, error) {
	return ie.fields.get(ie.decodeFields)
}

func (ie *ItemInfoEntry) decodeFields() (f ItemInfoFields, err error) {
	var pos int64
	if f.ItemID, pos, err = ie.idv(0, 3); err != nil {
		return
	}
	if f.ProtectionIndex, err = ie.u16(pos); err != nil {
		return
	}
	pos += 2
	if ie.Version() >= 2 {
		var s Slice
		if s, err = ie.body(pos, 4); err != nil {
			return
		}
		if f.ItemType, err = s.Tag(); err != nil {
			return
		}
		pos += 4
	}

	// Trailing strings are optional once the box runs out.
	cstring := func(dst *string) {
		if err != nil {
			return
		}
		var s Slice
		if s, err = ie.bodyTail(pos); err != nil || s.Len() == 0 {
			return
		}
		var used int64
		*dst, used, err = ie.decodeCString(s)
		pos += used
	}
	cstring(&f.ItemName)
	switch {
	case ie.Version() < 2, f.ItemType == MIME:
		cstring(&f.ContentType)
		cstring(&f.ContentEncoding)
	case f.ItemType == URI:
		cstring(&f.URIType)
	}
	return
}

func (ie *ItemInfoEntry) HeaderSize() int64 {
	return ie.Size()
}

func (ie *ItemInfoEntry) Summary() string {
	f, err := ie.Fields()
	if err != nil {
		return ""
	}
	if ie.Version() < 2 {
		return fmt.Sprintf("item=%d name=%q content=%q", f.ItemID, f.ItemName, f.ContentType)
	}
	return fmt.Sprintf("item=%d type=%s name=%q", f.ItemID, f.ItemType, f.ItemName)
}

// itemReferences decodes the children of "iref", whose type codes are
// reference types such as "dimg" or "thmb" that mean something else at other
// levels of the tree.
var itemReferences = &Registry{
	decoders: map[Tag]Decoder{},
	fallback: decodeItemTypeReference,
}

// ItemReference is "iref". Version 1 widens the item IDs of every child to
// 32 bits.
type ItemReference struct {
	FullContainerBox
}

func decodeItemReference(base *BaseBox) (Box, error) {
	b := &ItemReference{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	b.Bind(b)
	b.scope(itemReferences)
	return b, nil
}

// ItemTypeReference is a child of "iref": the items from_item_ID refers to
// by the box type.
//
//	from_item_ID(2|4) reference_count(2) to_item_ID(2|4)[reference_count]
type ItemTypeReference struct {
	BaseBox
	wide bool
	to   lazy[[]uint32]
}

func decodeItemTypeReference(base *BaseBox) (Box, error) {
	b := &ItemTypeReference{BaseBox: *base}
	if ir, ok := base.parent.(*ItemReference); ok {
		b.wide = ir.Version() >= 1
	}
	return b, nil
}

func (tr *ItemTypeReference) idw() int64 {
	if tr.wide {
		return 4
	}
	return 2
}

func (tr *ItemTypeReference) FromItemID() (uint32, error) {
	s, err := tr.field(tr.hdr.Len, tr.idw())
	if err != nil {
		return 0, err
	}
	if tr.wide {
		return s.U32()
	}
	v, err := s.U16()
	return uint32(v), err
}

func (tr *ItemTypeReference) ReferenceCount() (uint16, error) {
	s, err := tr.field(tr.hdr.Len+tr.idw(), 2)
	if err != nil {
		return 0, err
	}
	return s.U16()
}

func (tr *ItemTypeReference) ToItemIDs() ([]uint32, error) {
	return tr.to.get(func() ([]uint32, error) {
		count, err := tr.ReferenceCount()
		if err != nil {
			return nil, err
		}
		w := tr.idw()
		s, err := tr.field(tr.hdr.Len+w+2, int64(count)*w)
		if err != nil {
			return nil, err
		}
		raw, err := s.ReadAll()
		if err != nil {
			return nil, err
		}
		out := make([]uint32, count)
		for i := range out {
			if tr.wide {
				out[i] = be32(raw[i*4:])
			} else {
				out[i] = uint32(raw[i*2])<<8 | uint32(raw[i*2+1])
			}
		}
		return out, nil
	})
}

func (tr *ItemTypeReference) Summary() string {
	from, _ := tr.FromItemID()
	to, _ := tr.ToItemIDs()
	return fmt.Sprintf("from=%d to=%v", from, to)
}

type ItemExtent struct {
	Index  uint64
	Offset uint64
	Length uint64
}

type ItemLocationEntry struct {
	ItemID             uint32
	ConstructionMethod uint8
	DataReferenceIndex uint16
	BaseOffset         uint64
	Extents            []ItemExtent
}

// ItemLocation is "iloc". Field widths are given in bytes by four nibbles at
// the start of the body; each is 0, 4 or 8.
type ItemLocation struct {
	FullBox
	items lazy[[]ItemLocationEntry]
}

func decodeItemLocation(base *BaseBox) (Box, error) {
	b := &ItemLocation{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (il *ItemLocation) ItemCount() (uint32, error) {
	n, _, err := il.idv(2, 2)
	return n, err
}

func (il *ItemLocation) Items() ([]ItemLocationEntry, error) {
	return il.items.get(func() ([]ItemLocationEntry, error) {
		s, err := il.bodyTail(0)
		if err != nil {
			return nil, err
		}
		raw, err := s.ReadAll()
		if err != nil {
			return nil, err
		}
		items, err := il.parseItems(&fieldReader{r: &bits.Reader{R: bytes.NewReader(raw)}})
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, parseErr(fmt.Sprintf("%s items", il.hdr.Type), s.Offset(), ErrTruncatedData)
		}
		return items, err
	})
}

func (il *ItemLocation) parseItems(r *fieldReader) ([]ItemLocationEntry, error) {
	var sizes [4]uint64 // offset, length, base_offset, index
	for i := range sizes {
		sizes[i] = r.bits(4)
		if sizes[i] > 8 {
			return nil, fmt.Errorf("%s: %d byte field", il.hdr.Type, sizes[i])
		}
	}
	v := il.Version()
	if v == 0 {
		sizes[3] = 0
	}
	idBits := uint(16)
	if v >= 2 {
		idBits = 32
	}

	count := r.bits(idBits)
	items := []ItemLocationEntry{}
	for i := uint64(0); i < count && r.err == nil; i++ {
		e := ItemLocationEntry{ItemID: uint32(r.bits(idBits))}
		if v >= 1 {
			r.bits(12)
			e.ConstructionMethod = uint8(r.bits(4))
		}
		e.DataReferenceIndex = uint16(r.bits(16))
		e.BaseOffset = r.bits(uint(sizes[2]) * 8)
		extents := r.bits(16)
		for j := uint64(0); j < extents && r.err == nil; j++ {
			var x ItemExtent
			x.Index = r.bits(uint(sizes[3]) * 8)
			x.Offset = r.bits(uint(sizes[0]) * 8)
			x.Length = r.bits(uint(sizes[1]) * 8)
			e.Extents = append(e.Extents, x)
		}
		items = append(items, e)
	}
	if r.err != nil {
		return nil, r.err
	}
	return items, nil
}

func (il *ItemLocation) HeaderSize() int64 {
	return il.Size()
}

func (il *ItemLocation) Summary() string {
	n, _ := il.ItemCount()
	return fmt.Sprintf("items=%d", n)
}

// fieldReader keeps the first error of a run of bit field reads.
type fieldReader struct {
	r   *bits.Reader
	err error
}

func (f *fieldReader) bits(n uint) uint64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.ReadBits64(n)
	f.err = err
	return v
}

// ItemData is "idat": item bodies addressed by construction method 1.
type ItemData struct {
	BaseBox
}

func decodeItemData(base *BaseBox) (Box, error) {
	return &ItemData{BaseBox: *base}, nil
}

func (id *ItemData) Data() (Slice, error) {
	return id.tail(id.hdr.Len)
}

// MetaboxRelation is "mere".
type MetaboxRelation struct {
	FullBox
}

func decodeMetaboxRelation(base *BaseBox) (Box, error) {
	b := &MetaboxRelation{}
	if err := b.Init(base); err != nil {
		return nil, err
	}
	return b, nil
}

func (mr *MetaboxRelation) FirstHandler() (Tag, error) {
	s, err := mr.body(0, 4)
	if err != nil {
		return 0, err
	}
	return s.Tag()
}

func (mr *MetaboxRelation) SecondHandler() (Tag, error) {
	s, err := mr.body(4, 4)
	if err != nil {
		return 0, err
	}
	return s.Tag()
}

func (mr *MetaboxRelation) Relation() (uint8, error) {
	return mr.u8(8)
}

func (mr *MetaboxRelation) HeaderSize() int64 {
	return mr.FullBox.HeaderSize() + 9
}
