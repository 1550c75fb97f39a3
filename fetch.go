package imap

import (
	"io"
)

// BodySectionName identifies a BODY[section]<partial> fetch item's
// section component.
type BodySectionName struct {
	// Specifier is the section specifier (HEADER, HEADER.FIELDS, TEXT, MIME, or empty).
	Specifier string
	// Part is the MIME part number (e.g., []int{1, 2} for "1.2").
	Part []int
	// Fields is the list of header fields for HEADER.FIELDS and HEADER.FIELDS.NOT.
	Fields []string
	// NotFields indicates whether Fields is a NOT list.
	NotFields bool
}

// SectionPartial is the <offset.count> partial-fetch suffix.
type SectionPartial struct {
	Offset int64
	Count  int64
}

// FetchAttribute is one requested data item in a FETCH command's
// message-data-item-names list.
type FetchAttribute interface {
	isFetchAttribute()
}

// FetchAttrEnvelope requests ENVELOPE.
type FetchAttrEnvelope struct{}

// FetchAttrFlags requests FLAGS.
type FetchAttrFlags struct{}

// FetchAttrInternalDate requests INTERNALDATE.
type FetchAttrInternalDate struct{}

// FetchAttrRFC822Size requests RFC822.SIZE.
type FetchAttrRFC822Size struct{}

// FetchAttrUID requests UID.
type FetchAttrUID struct{}

// FetchAttrBodyStructure requests BODYSTRUCTURE (or BODY with NonExtensible
// set, which omits the extension fields).
type FetchAttrBodyStructure struct{ NonExtensible bool }

// FetchAttrModSeq requests MODSEQ (CONDSTORE).
type FetchAttrModSeq struct{}

// FetchAttrBodySection requests a BODY[section]<partial> or
// BODY.PEEK[section]<partial> item.
type FetchAttrBodySection struct {
	Section BodySectionName
	Partial *SectionPartial
	Peek    bool
}

// FetchAttrBinarySection requests a BINARY[part]<partial> or
// BINARY.PEEK[part]<partial> item (RFC 3516).
type FetchAttrBinarySection struct {
	Part    []int
	Partial *SectionPartial
	Peek    bool
}

// FetchAttrBinarySize requests a BINARY.SIZE[part] item (RFC 3516).
type FetchAttrBinarySize struct{ Part []int }

func (FetchAttrEnvelope) isFetchAttribute()      {}
func (FetchAttrFlags) isFetchAttribute()         {}
func (FetchAttrInternalDate) isFetchAttribute()  {}
func (FetchAttrRFC822Size) isFetchAttribute()    {}
func (FetchAttrUID) isFetchAttribute()           {}
func (FetchAttrBodyStructure) isFetchAttribute() {}
func (FetchAttrModSeq) isFetchAttribute()        {}
func (FetchAttrBodySection) isFetchAttribute()   {}
func (FetchAttrBinarySection) isFetchAttribute() {}
func (FetchAttrBinarySize) isFetchAttribute()    {}

// FetchOptions is a convenience macro-expansion target for FETCH
// requests that name the FAST/ALL/FULL shorthand macros, and for the
// CONDSTORE/QRESYNC modifiers that ride alongside a FETCH command
// rather than naming a data item of their own.
type FetchOptions struct {
	Attributes []FetchAttribute

	// ChangedSince only fetches messages with a mod-sequence greater than this value.
	ChangedSince uint64
	// Vanished requests VANISHED responses instead of EXPUNGE (QRESYNC).
	Vanished bool
}

// DataItem is one fetched value in a FETCH response's
// message-data-item list.
type DataItem interface {
	isDataItem()
}

// DataItemEnvelope carries a fetched ENVELOPE.
type DataItemEnvelope struct{ Envelope Envelope }

// DataItemFlags carries fetched FLAGS.
type DataItemFlags struct{ Flags []Flag }

// DataItemInternalDate carries a fetched INTERNALDATE.
type DataItemInternalDate struct{ Date DateTime }

// DataItemRFC822Size carries a fetched RFC822.SIZE.
type DataItemRFC822Size struct{ Size uint32 }

// DataItemUID carries a fetched UID.
type DataItemUID struct{ UID UID }

// DataItemBodyStructure carries a fetched BODY or BODYSTRUCTURE.
type DataItemBodyStructure struct {
	Structure     BodyStructure
	NonExtensible bool
}

// DataItemModSeq carries a fetched MODSEQ.
type DataItemModSeq struct{ ModSeq uint64 }

// DataItemBodySection carries a fetched BODY[section]<partial>. Value
// is nil (distinct from a zero-length slice) when the server responds
// NIL, e.g. for a section with no content.
type DataItemBodySection struct {
	Section BodySectionName
	Origin  *int64
	Value   []byte
}

// DataItemBinarySection carries a fetched BINARY[part]<partial>
// (RFC 3516).
type DataItemBinarySection struct {
	Part   []int
	Origin *int64
	Value  []byte
}

// DataItemBinarySize carries a fetched BINARY.SIZE[part] (RFC 3516).
type DataItemBinarySize struct {
	Part []int
	Size uint32
}

func (DataItemEnvelope) isDataItem()        {}
func (DataItemFlags) isDataItem()           {}
func (DataItemInternalDate) isDataItem()    {}
func (DataItemRFC822Size) isDataItem()      {}
func (DataItemUID) isDataItem()             {}
func (DataItemBodyStructure) isDataItem()   {}
func (DataItemModSeq) isDataItem()          {}
func (DataItemBodySection) isDataItem()     {}
func (DataItemBinarySection) isDataItem()   {}
func (DataItemBinarySize) isDataItem()      {}

// FetchMessageData is the full set of data items returned for a
// single message in response to FETCH.
type FetchMessageData struct {
	SeqNum SeqNum
	Items  []DataItem
}

// SectionReader streams a single fetched body or binary section
// without buffering it in memory, for callers reading a FETCH
// response incrementally off the wire.
type SectionReader struct {
	io.Reader
	Size int64
}
