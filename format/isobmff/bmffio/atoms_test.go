// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestProtectedSampleEntry(t *testing.T) {
	sinf := mkbox("sinf",
		mkbox("frma", []byte("avc1")),
		mkfull("schm", 0, SCHM_URI_PRESENT, []byte("cenc"), u32b(0x00010000), []byte("https://example.com/drm\x00")),
		mkbox("schi", mkfull("tenc", 0, 0, zeros(20))),
	)
	encv := visualEntry("encv", mkbox("avcC", zeros(4)), sinf)
	s := NewScanner(NewBytesSource(mkfull("stsd", 0, 0, u32b(1), encv)))

	b, err := Find(s, STSD, ENCV)
	if err != nil {
		t.Fatal(err)
	}
	if w, _ := b.(*VisualSampleEntry).Width(); w != 640 {
		t.Errorf("encv width = %d", w)
	}

	b, err = Find(s, STSD, ENCV, SINF, FRMA)
	if err != nil || b == nil {
		t.Fatalf("frma = %v, %v", b, err)
	}
	if f, err := b.(*OriginalFormat).DataFormat(); err != nil || f != AVC1 {
		t.Errorf("original format = %s, %v", f, err)
	}
	if b.Depth() != 3 {
		t.Errorf("frma depth = %d", b.Depth())
	}

	b, _ = Find(s, STSD, ENCV, SINF, SCHM)
	schm := b.(*SchemeType)
	if st, _ := schm.SchemeType(); st != StringToTag("cenc") {
		t.Errorf("scheme = %s", st)
	}
	if v, _ := schm.SchemeVersion(); v != 0x00010000 {
		t.Errorf("scheme version = %#x", v)
	}
	if uri, err := schm.SchemeURI(); err != nil || uri != "https://example.com/drm" {
		t.Errorf("scheme uri = %q, %v", uri, err)
	}

	b, _ = Find(s, STSD, ENCV, SINF, SCHI)
	if _, ok := b.(*ContainerBox); !ok {
		t.Fatalf("schi = %T", b)
	}
	tenc, err := b.(Container).Child(0)
	if err != nil || tenc.Tag() != StringToTag("tenc") {
		t.Fatalf("schi child = %v, %v", tenc, err)
	}
	checkExtents(t, s)
}

func TestSchemeWithoutURI(t *testing.T) {
	s := NewScanner(NewBytesSource(mkfull("schm", 0, 0, []byte("cbcs"), u32b(1))))
	b, _ := s.Child(0)
	if uri, err := b.(*SchemeType).SchemeURI(); err != nil || uri != "" {
		t.Fatalf("uri = %q, %v", uri, err)
	}
}

func metaItems() []byte {
	iloc := mkfull("iloc", 1, 0,
		[]byte{0x44, 0x40}, u16b(1),
		u16b(1), u16b(0x0001), u16b(0), u32b(16), u16b(1), u32b(0), u32b(7),
	)
	iinf := mkfull("iinf", 0, 0, u16b(4),
		mkfull("infe", 2, 0, u16b(1), u16b(0), []byte("hvc1"), []byte("Image\x00")),
		mkfull("infe", 2, 0, u16b(2), u16b(0), []byte("mime"), []byte("XMP\x00application/rdf+xml\x00")),
		mkfull("infe", 3, 0, u32b(70000), u16b(1), []byte("uri "), []byte("\x00urn:example:item\x00")),
		mkfull("infe", 0, 0, u16b(4), u16b(0), []byte("notes\x00text/plain\x00")),
	)
	iref := mkfull("iref", 0, 0,
		mkbox("dimg", u16b(1), u16b(2), u16b(2), u16b(3)),
		mkbox("cdsc", u16b(2), u16b(1), u16b(1)),
	)
	return mkfull("meta", 0, 0,
		mkfull("hdlr", 0, 0, zeros(4), []byte("pict"), zeros(12), []byte{0}),
		mkfull("pitm", 0, 0, u16b(1)),
		iloc,
		iinf,
		iref,
		mkfull("ipro", 0, 0, u16b(1), mkbox("sinf", mkbox("frma", []byte("hvc1")))),
		mkbox("idat", []byte("payload")),
	)
}

func TestMetaItems(t *testing.T) {
	s := NewScanner(NewBytesSource(metaItems()))

	b, err := Find(s, META, PITM)
	if err != nil {
		t.Fatal(err)
	}
	if id, _ := b.(*PrimaryItem).ItemID(); id != 1 {
		t.Errorf("primary item = %d", id)
	}

	b, _ = Find(s, META, IINF)
	iinf := b.(*ItemInfo)
	if n, _ := iinf.EntryCount(); n != 4 {
		t.Errorf("entry count = %d", n)
	}
	if iinf.ContentStart() != iinf.Start()+14 {
		t.Errorf("iinf content starts at %d", iinf.ContentStart())
	}
	want := []ItemInfoFields{
		{ItemID: 1, ItemType: StringToTag("hvc1"), ItemName: "Image"},
		{ItemID: 2, ItemType: MIME, ItemName: "XMP", ContentType: "application/rdf+xml"},
		{ItemID: 70000, ProtectionIndex: 1, ItemType: URI, URIType: "urn:example:item"},
		{ItemID: 4, ItemName: "notes", ContentType: "text/plain"},
	}
	entries, err := iinf.ChildrenByType(INFE)
	if err != nil || len(entries) != len(want) {
		t.Fatalf("infe = %d, %v", len(entries), err)
	}
	for i, e := range entries {
		got, err := e.(*ItemInfoEntry).Fields()
		if err != nil {
			t.Fatal(err)
		}
		if got != want[i] {
			t.Errorf("infe %d = %+v, want %+v", i, got, want[i])
		}
	}

	b, _ = Find(s, META, ILOC)
	items, err := b.(*ItemLocation).Items()
	if err != nil {
		t.Fatal(err)
	}
	wantItems := []ItemLocationEntry{{
		ItemID:             1,
		ConstructionMethod: 1,
		BaseOffset:         16,
		Extents:            []ItemExtent{{Offset: 0, Length: 7}},
	}}
	if !reflect.DeepEqual(items, wantItems) {
		t.Errorf("iloc items = %+v", items)
	}

	b, _ = Find(s, META, IREF)
	iref := b.(Container)
	refs := map[Tag][]uint32{}
	for child, err := range iref.Boxes() {
		if err != nil {
			t.Fatal(err)
		}
		r, ok := child.(*ItemTypeReference)
		if !ok {
			t.Fatalf("%s under iref decoded as %T", child.Tag(), child)
		}
		from, _ := r.FromItemID()
		to, err := r.ToItemIDs()
		if err != nil {
			t.Fatal(err)
		}
		refs[child.Tag()] = append([]uint32{from}, to...)
	}
	if !reflect.DeepEqual(refs[StringToTag("dimg")], []uint32{1, 2, 3}) || !reflect.DeepEqual(refs[CDSC], []uint32{2, 1}) {
		t.Errorf("references = %v", refs)
	}

	b, _ = Find(s, META, IPRO, SINF, FRMA)
	if f, _ := b.(*OriginalFormat).DataFormat(); f != HVC1 {
		t.Errorf("ipro frma = %s", f)
	}

	b, _ = Find(s, META, IDAT)
	data, _ := b.(*ItemData).Data()
	if raw, _ := data.ReadAll(); string(raw) != "payload" {
		t.Errorf("idat = %q", raw)
	}
	checkExtents(t, s)
}

func TestItemReferenceWide(t *testing.T) {
	iref := mkfull("iref", 1, 0, mkbox("thmb", u32b(70000), u16b(2), u32b(1), u32b(70001)))
	s := NewScanner(NewBytesSource(iref))
	b, err := Find(s, IREF, StringToTag("thmb"))
	if err != nil {
		t.Fatal(err)
	}
	r := b.(*ItemTypeReference)
	from, _ := r.FromItemID()
	to, err := r.ToItemIDs()
	if err != nil || from != 70000 || !reflect.DeepEqual(to, []uint32{1, 70001}) {
		t.Fatalf("from=%d to=%v err=%v", from, to, err)
	}
}

func TestItemLocationTruncated(t *testing.T) {
	s := NewScanner(NewBytesSource(mkfull("iloc", 0, 0, []byte{0x44, 0x00}, u16b(5), u16b(1))))
	b, _ := s.Child(0)
	if _, err := b.(*ItemLocation).Items(); !errors.Is(err, ErrTruncatedData) {
		t.Fatalf("err = %v", err)
	}
}

func TestSampleTableExtensions(t *testing.T) {
	stbl := mkbox("stbl",
		mkfull("stz2", 0, 0, []byte{0, 0, 0, 4}, u32b(3), []byte{0x12, 0xf0}),
		mkfull("sdtp", 0, 0, []byte{0x24, 0x10}),
		mkfull("cslg", 0, 0, u32b(0xfffffffb), u32b(0), u32b(10), u32b(0), u32b(900)),
		mkfull("saiz", 0, SAI_AUX_INFO_TYPE, []byte("cenc"), u32b(0), []byte{0}, u32b(2), []byte{16, 24}),
		mkfull("saio", 1, 0, u32b(1), u64b(1<<33)),
	)
	s := NewScanner(NewBytesSource(stbl))

	b, _ := Find(s, STBL, STZ2)
	sizes, err := b.(*CompactSampleSize).Entries()
	if err != nil || !reflect.DeepEqual(sizes, []uint16{1, 2, 15}) {
		t.Errorf("stz2 = %v, %v", sizes, err)
	}

	b, _ = Find(s, STBL, SDTP)
	deps, err := b.(*SampleDependencyType).Entries()
	if err != nil || len(deps) != 2 || deps[0] != (SampleDependency{DependsOn: 2, IsDependedOn: 1}) || deps[1].DependsOn != 1 {
		t.Errorf("sdtp = %+v, %v", deps, err)
	}

	b, _ = Find(s, STBL, CSLG)
	cslg := b.(*CompositionToDecode)
	if shift, _ := cslg.CompositionToDTSShift(); shift != -5 {
		t.Errorf("shift = %d", shift)
	}
	if end, _ := cslg.CompositionEndTime(); end != 900 {
		t.Errorf("end = %d", end)
	}
	if cslg.HeaderSize() != cslg.Size() {
		t.Errorf("cslg header %d of %d", cslg.HeaderSize(), cslg.Size())
	}

	b, _ = Find(s, STBL, SAIZ)
	saiz := b.(*SampleAuxInfoSizes)
	if typ, _, _ := saiz.AuxInfoType(); typ != StringToTag("cenc") {
		t.Errorf("aux type = %s", typ)
	}
	if got, err := saiz.Sizes(); err != nil || !bytes.Equal(got, []byte{16, 24}) {
		t.Errorf("saiz = %v, %v", got, err)
	}

	b, _ = Find(s, STBL, SAIO)
	if offs, err := b.(*SampleAuxInfoOffsets).Offsets(); err != nil || !reflect.DeepEqual(offs, []uint64{1 << 33}) {
		t.Errorf("saio = %v, %v", offs, err)
	}
}

func TestCompactSampleSizeField(t *testing.T) {
	s := NewScanner(NewBytesSource(append(
		mkfull("stz2", 0, 0, []byte{0, 0, 0, 16}, u32b(2), u16b(300), u16b(7)),
		mkfull("stz2", 0, 0, []byte{0, 0, 0, 16}, u32b(9), u16b(300))...,
	)))
	b, _ := s.Child(0)
	if sizes, err := b.(*CompactSampleSize).Entries(); err != nil || !reflect.DeepEqual(sizes, []uint16{300, 7}) {
		t.Errorf("entries = %v, %v", sizes, err)
	}
	b, _ = s.Child(1)
	if _, err := b.(*CompactSampleSize).Entries(); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("short table err = %v", err)
	}
}

func TestUserData(t *testing.T) {
	udta := mkbox("udta",
		mkfull("cprt", 0, 0, u16b(0x15c7), []byte("(c) example\x00")),
		mkfull("cprt", 0, 0, u16b(0x15c7), []byte{0xfe, 0xff, 0x00, 'h', 0x00, 'i'}),
		mkfull("tsel", 0, 0, u32b(2), []byte("langbitr")),
	)
	s := NewScanner(NewBytesSource(udta))

	b, _ := Find(s, UDTA)
	cprts, err := b.(Container).ChildrenByType(CPRT)
	if err != nil || len(cprts) != 2 {
		t.Fatalf("cprt = %d, %v", len(cprts), err)
	}
	for i, want := range []string{"(c) example", "hi"} {
		cp := cprts[i].(*Copyright)
		if lang, _ := cp.Language(); lang != "eng" {
			t.Errorf("cprt %d language = %q", i, lang)
		}
		if notice, err := cp.Notice(); err != nil || notice != want {
			t.Errorf("cprt %d notice = %q, %v", i, notice, err)
		}
	}

	b, _ = Find(s, UDTA, TSEL)
	tsel := b.(*TrackSelection)
	if g, _ := tsel.SwitchGroup(); g != 2 {
		t.Errorf("switch group = %d", g)
	}
	if attrs, _ := tsel.Attributes(); len(attrs) != 2 || attrs[1] != StringToTag("bitr") {
		t.Errorf("attributes = %v", attrs)
	}
}

func TestMovieFragRandomAccess(t *testing.T) {
	mfra := mkbox("mfra", mkfull("tfra", 0, 0, zeros(12)), mkfull("mfro", 0, 0, u32b(48)))
	s := NewScanner(NewBytesSource(mfra))
	b, err := Find(s, MFRA, MFRO)
	if err != nil {
		t.Fatal(err)
	}
	parent, _ := s.Child(0)
	if n, _ := b.(*MovieFragRandomAccessOffset).ParentSize(); int64(n) != parent.Size() {
		t.Fatalf("mfro = %d, mfra size %d", n, parent.Size())
	}
}
