// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

func init() {
	for _, t := range []Tag{
		MOOV, TRAK, MDIA, MINF, DINF, STBL, EDTS, UDTA,
		MVEX, MOOF, TRAF, MFRA, TREF, TRGR,
		SINF, SCHI, RINF, MECO,
	} {
		Register(t, DecodeContainer)
	}

	Register(FTYP, decodeFileType)
	Register(STYP, decodeFileType)
	Register(FREE, decodeFreeSpace)
	Register(SKIP, decodeFreeSpace)
	Register(MDAT, decodeMediaData)
	Register(PDIN, decodeProgressiveDownloadInfo)

	Register(MVHD, decodeMovieHeader)
	Register(TKHD, decodeTrackHeader)
	Register(ELST, decodeEditList)
	for _, t := range []Tag{HINT, CDSC, FONT, HIND, VDEP, VPLX, SUBT} {
		Register(t, decodeTrackReferenceType)
	}
	Register(MSRC, decodeTrackGroupType)

	Register(MDHD, decodeMediaHeader)
	Register(HDLR, decodeHandlerRefer)
	Register(ELNG, decodeExtendedLanguage)
	Register(VMHD, decodeVideoMediaHeader)
	Register(SMHD, decodeSoundMediaHeader)
	Register(NMHD, DecodeFullBox)
	Register(DREF, decodeDataReference)
	Register(URL, decodeDataEntryURL)
	Register(URN, decodeDataEntryURN)

	Register(STSD, decodeSampleDesc)
	for _, t := range []Tag{AVC1, AVC3, HVC1, HEV1, MP4V, ENCV} {
		Register(t, decodeVisualSampleEntry)
	}
	for _, t := range []Tag{MP4A, ENCA} {
		Register(t, decodeAudioSampleEntry)
	}
	Register(STTS, decodeTimeToSample)
	Register(CTTS, decodeCompositionOffset)
	Register(STSS, decodeSyncSample)
	Register(STSZ, decodeSampleSize)
	Register(STSC, decodeSampleToChunk)
	Register(STCO, decodeChunkOffset)
	Register(CO64, decodeChunkOffset)
	Register(STZ2, decodeCompactSampleSize)
	Register(SDTP, decodeSampleDependencyType)
	Register(CSLG, decodeCompositionToDecode)
	Register(SAIZ, decodeSampleAuxInfoSizes)
	Register(SAIO, decodeSampleAuxInfoOffsets)

	Register(MEHD, decodeMovieExtendsHeader)
	Register(TREX, decodeTrackExtend)
	Register(MFHD, decodeMovieFragHeader)
	Register(TFDT, decodeTrackFragDecodeTime)
	Register(MFRO, decodeMovieFragRandomAccessOffset)

	Register(FRMA, decodeOriginalFormat)
	Register(SCHM, decodeSchemeType)

	Register(CPRT, decodeCopyright)
	Register(TSEL, decodeTrackSelection)

	Register(META, decodeMeta)
	Register(ILOC, decodeItemLocation)
	Register(PITM, decodePrimaryItem)
	Register(IPRO, decodeItemProtection)
	Register(IINF, decodeItemInfo)
	Register(INFE, decodeItemInfoEntry)
	Register(IREF, decodeItemReference)
	Register(IDAT, decodeItemData)
	Register(MERE, decodeMetaboxRelation)
}
