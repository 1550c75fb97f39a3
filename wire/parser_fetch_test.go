package wire

import (
	"testing"

	"github.com/corvid-mail/imapcodec"
)

func TestParseFetchAttributeSimple(t *testing.T) {
	cases := map[string]imap.FetchAttribute{
		"ENVELOPE":      imap.FetchAttrEnvelope{},
		"FLAGS":         imap.FetchAttrFlags{},
		"INTERNALDATE":  imap.FetchAttrInternalDate{},
		"RFC822.SIZE":   imap.FetchAttrRFC822Size{},
		"UID":           imap.FetchAttrUID{},
		"BODYSTRUCTURE": imap.FetchAttrBodyStructure{NonExtensible: false},
		"MODSEQ":        imap.FetchAttrModSeq{},
	}
	for word, want := range cases {
		attr, n, err := ParseFetchAttribute([]byte(word + " rest"))
		if err != nil {
			t.Fatalf("%s: %v", word, err)
		}
		if n != len(word) {
			t.Errorf("%s: consumed %d, want %d", word, n, len(word))
		}
		if attr != want {
			t.Errorf("%s: got %+v, want %+v", word, attr, want)
		}
	}
}

func TestParseFetchAttributeBodyNoSection(t *testing.T) {
	attr, n, err := ParseFetchAttribute([]byte("BODY "))
	if err != nil {
		t.Fatal(err)
	}
	if n != len("BODY") {
		t.Errorf("consumed %d", n)
	}
	bs, ok := attr.(imap.FetchAttrBodyStructure)
	if !ok || !bs.NonExtensible {
		t.Errorf("got %+v, want non-extensible BODYSTRUCTURE", attr)
	}
}

func TestParseFetchAttributeBodyHeaderFields(t *testing.T) {
	raw := `BODY[HEADER.FIELDS (From To)]<0.100>`
	attr, n, err := ParseFetchAttribute([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	bsec, ok := attr.(imap.FetchAttrBodySection)
	if !ok {
		t.Fatalf("got %T", attr)
	}
	if bsec.Peek {
		t.Error("Peek should be false for bare BODY[]")
	}
	if bsec.Section.Specifier != "HEADER.FIELDS" || bsec.Section.NotFields {
		t.Errorf("Section = %+v", bsec.Section)
	}
	if len(bsec.Section.Fields) != 2 || bsec.Section.Fields[0] != "From" || bsec.Section.Fields[1] != "To" {
		t.Errorf("Fields = %v", bsec.Section.Fields)
	}
	if bsec.Partial == nil || bsec.Partial.Offset != 0 || bsec.Partial.Count != 100 {
		t.Errorf("Partial = %+v", bsec.Partial)
	}
}

func TestParseFetchAttributeBodyPeekTextPart(t *testing.T) {
	raw := `BODY.PEEK[1.2.TEXT]`
	attr, n, err := ParseFetchAttribute([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	bsec, ok := attr.(imap.FetchAttrBodySection)
	if !ok {
		t.Fatalf("got %T", attr)
	}
	if !bsec.Peek {
		t.Error("Peek should be true for BODY.PEEK[]")
	}
	if len(bsec.Section.Part) != 2 || bsec.Section.Part[0] != 1 || bsec.Section.Part[1] != 2 {
		t.Errorf("Part = %v", bsec.Section.Part)
	}
	if bsec.Section.Specifier != "TEXT" {
		t.Errorf("Specifier = %q", bsec.Section.Specifier)
	}
}

func TestParseFetchAttributeBodyEmptySectionIsExtensible(t *testing.T) {
	raw := `BODY[]`
	attr, n, err := ParseFetchAttribute([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	bsec, ok := attr.(imap.FetchAttrBodySection)
	if !ok {
		t.Fatalf("got %T", attr)
	}
	if bsec.Section.Specifier != "" || bsec.Section.Part != nil {
		t.Errorf("Section = %+v, want empty", bsec.Section)
	}
}

func TestParseFetchAttributeHeaderFieldsNot(t *testing.T) {
	raw := `BODY[HEADER.FIELDS.NOT (Received)]`
	attr, n, err := ParseFetchAttribute([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	bsec := attr.(imap.FetchAttrBodySection)
	if !bsec.Section.NotFields || bsec.Section.Specifier != "HEADER.FIELDS.NOT" {
		t.Errorf("Section = %+v", bsec.Section)
	}
	if len(bsec.Section.Fields) != 1 || bsec.Section.Fields[0] != "Received" {
		t.Errorf("Fields = %v", bsec.Section.Fields)
	}
}

func TestParseFetchAttributeBinary(t *testing.T) {
	raw := `BINARY[1.2]<5.10>`
	attr, n, err := ParseFetchAttribute([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	bin, ok := attr.(imap.FetchAttrBinarySection)
	if !ok {
		t.Fatalf("got %T", attr)
	}
	if len(bin.Part) != 2 || bin.Part[0] != 1 || bin.Part[1] != 2 {
		t.Errorf("Part = %v", bin.Part)
	}
	if bin.Partial == nil || bin.Partial.Offset != 5 || bin.Partial.Count != 10 {
		t.Errorf("Partial = %+v", bin.Partial)
	}
}

func TestParseFetchAttributeBinarySize(t *testing.T) {
	raw := `BINARY.SIZE[1]`
	attr, n, err := ParseFetchAttribute([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	sz, ok := attr.(imap.FetchAttrBinarySize)
	if !ok || len(sz.Part) != 1 || sz.Part[0] != 1 {
		t.Errorf("got %+v", attr)
	}
}

func TestParseFetchMessageDataBasic(t *testing.T) {
	raw := `(FLAGS (\Seen) UID 42 RFC822.SIZE 100)`
	data, n, err := ParseFetchMessageData(7, []byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	if data.SeqNum != 7 {
		t.Errorf("SeqNum = %d", data.SeqNum)
	}
	if len(data.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(data.Items))
	}
	flags, ok := data.Items[0].(imap.DataItemFlags)
	if !ok || len(flags.Flags) != 1 || flags.Flags[0] != `\Seen` {
		t.Errorf("Items[0] = %+v", data.Items[0])
	}
	uid, ok := data.Items[1].(imap.DataItemUID)
	if !ok || uid.UID != 42 {
		t.Errorf("Items[1] = %+v", data.Items[1])
	}
	size, ok := data.Items[2].(imap.DataItemRFC822Size)
	if !ok || size.Size != 100 {
		t.Errorf("Items[2] = %+v", data.Items[2])
	}
}

func TestParseFetchMessageDataModSeq(t *testing.T) {
	raw := `(MODSEQ (12345))`
	data, n, err := ParseFetchMessageData(1, []byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	ms, ok := data.Items[0].(imap.DataItemModSeq)
	if !ok || ms.ModSeq != 12345 {
		t.Errorf("got %+v", data.Items[0])
	}
}

func TestParseFetchMessageDataBodySection(t *testing.T) {
	raw := `(BODY[TEXT] <0>{5}` + "\r\n" + `hello)`
	data, n, err := ParseFetchMessageData(1, []byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	bs, ok := data.Items[0].(imap.DataItemBodySection)
	if !ok {
		t.Fatalf("got %T", data.Items[0])
	}
	if bs.Section.Specifier != "TEXT" {
		t.Errorf("Specifier = %q", bs.Section.Specifier)
	}
	if bs.Origin == nil || *bs.Origin != 0 {
		t.Errorf("Origin = %v", bs.Origin)
	}
	if string(bs.Value) != "hello" {
		t.Errorf("Value = %q", bs.Value)
	}
}

func TestParseFetchMessageDataBodySectionNil(t *testing.T) {
	raw := `(BODY[TEXT] NIL)`
	data, n, err := ParseFetchMessageData(1, []byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	bs, ok := data.Items[0].(imap.DataItemBodySection)
	if !ok {
		t.Fatalf("got %T", data.Items[0])
	}
	if bs.Origin != nil {
		t.Errorf("Origin = %v, want nil", bs.Origin)
	}
	if bs.Value != nil {
		t.Errorf("Value = %q, want nil", bs.Value)
	}
}

func TestParseFetchMessageDataBinary(t *testing.T) {
	raw := `(BINARY[1]<0> {3}` + "\r\n" + `abc)`
	data, n, err := ParseFetchMessageData(1, []byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	bin, ok := data.Items[0].(imap.DataItemBinarySection)
	if !ok {
		t.Fatalf("got %T", data.Items[0])
	}
	if len(bin.Part) != 1 || bin.Part[0] != 1 {
		t.Errorf("Part = %v", bin.Part)
	}
	if bin.Origin == nil || *bin.Origin != 0 {
		t.Errorf("Origin = %v", bin.Origin)
	}
	if string(bin.Value) != "abc" {
		t.Errorf("Value = %q", bin.Value)
	}
}

func TestParseFetchMessageDataBinarySize(t *testing.T) {
	raw := `(BINARY.SIZE[1] 42)`
	data, n, err := ParseFetchMessageData(1, []byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	sz, ok := data.Items[0].(imap.DataItemBinarySize)
	if !ok || sz.Size != 42 || len(sz.Part) != 1 || sz.Part[0] != 1 {
		t.Errorf("got %+v", data.Items[0])
	}
}

func TestParseFetchMessageDataInternalDate(t *testing.T) {
	raw := `(INTERNALDATE "17-Jul-1996 02:44:25 -0700")`
	data, n, err := ParseFetchMessageData(1, []byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	if _, ok := data.Items[0].(imap.DataItemInternalDate); !ok {
		t.Errorf("got %T", data.Items[0])
	}
}

func TestParseFetchMessageDataBodyStructure(t *testing.T) {
	raw := `(BODYSTRUCTURE ("TEXT" "PLAIN" NIL NIL NIL "7BIT" 10 1))`
	data, n, err := ParseFetchMessageData(1, []byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(raw) {
		t.Errorf("consumed %d, want %d", n, len(raw))
	}
	bs, ok := data.Items[0].(imap.DataItemBodyStructure)
	if !ok {
		t.Fatalf("got %T", data.Items[0])
	}
	if bs.NonExtensible {
		t.Error("BODYSTRUCTURE should not be NonExtensible")
	}
}

func TestParseFlagListEmpty(t *testing.T) {
	flags, n, err := parseFlagList([]byte("()"))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || flags != nil {
		t.Errorf("got (%v, %d)", flags, n)
	}
}
