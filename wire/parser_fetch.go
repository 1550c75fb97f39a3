package wire

import (
	"strings"

	"github.com/corvid-mail/imapcodec"
)

// isFetchKeywordChar is isAtomChar minus '[', since a fetch item name
// like "BODY" or "BODY.PEEK" is immediately followed by a section in
// brackets with no intervening space.
func isFetchKeywordChar(b byte) bool {
	return isAtomChar(b) && b != '['
}

func takeFetchKeyword(buf []byte) (string, int, error) {
	return takeWhile1(buf, isFetchKeywordChar, "fetch-att")
}

// ParseFetchAttribute parses one requested data item name from a
// FETCH command's argument list.
func ParseFetchAttribute(buf []byte) (imap.FetchAttribute, int, error) {
	word, n, err := takeFetchKeyword(buf)
	if err != nil {
		return nil, 0, err
	}
	i := n
	upper := strings.ToUpper(word)

	switch upper {
	case "ENVELOPE":
		return imap.FetchAttrEnvelope{}, i, nil
	case "FLAGS":
		return imap.FetchAttrFlags{}, i, nil
	case "INTERNALDATE":
		return imap.FetchAttrInternalDate{}, i, nil
	case "RFC822.SIZE":
		return imap.FetchAttrRFC822Size{}, i, nil
	case "UID":
		return imap.FetchAttrUID{}, i, nil
	case "BODYSTRUCTURE":
		return imap.FetchAttrBodyStructure{NonExtensible: false}, i, nil
	case "MODSEQ":
		return imap.FetchAttrModSeq{}, i, nil
	case "BODY":
		if i < len(buf) && buf[i] == '[' {
			section, partial, n, err := parseSectionAndPartial(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += n
			return imap.FetchAttrBodySection{Section: section, Partial: partial, Peek: false}, i, nil
		}
		return imap.FetchAttrBodyStructure{NonExtensible: true}, i, nil
	case "BODY.PEEK":
		section, partial, n, err := parseSectionAndPartial(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.FetchAttrBodySection{Section: section, Partial: partial, Peek: true}, i, nil
	case "BINARY":
		part, n, err := parseSectionPart(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		partial, n, err := parsePartialSuffix(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.FetchAttrBinarySection{Part: part, Partial: partial, Peek: false}, i, nil
	case "BINARY.PEEK":
		part, n, err := parseSectionPart(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		partial, n, err := parsePartialSuffix(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.FetchAttrBinarySection{Part: part, Partial: partial, Peek: true}, i, nil
	case "BINARY.SIZE":
		part, n, err := parseSectionPart(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.FetchAttrBinarySize{Part: part}, i, nil
	}
	return nil, 0, &imap.ParseFailure{Production: "fetch-att", Reason: "unknown fetch attribute " + word}
}

// parseSectionPart parses "[" section-part "]" where section-part is
// a dot-separated list of integers (used by BINARY/BINARY.PEEK/BINARY.SIZE).
func parseSectionPart(buf []byte) ([]int, int, error) {
	i, err := Byte(buf, '[')
	if err != nil {
		return nil, 0, err
	}
	var part []int
	for i < len(buf) && buf[i] != ']' {
		num, n, err := Number(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		part = append(part, int(num))
		i += n
		if i < len(buf) && buf[i] == '.' {
			i++
		}
	}
	cn, err := Byte(buf[i:], ']')
	if err != nil {
		return nil, 0, err
	}
	i += cn
	return part, i, nil
}

// parseSectionAndPartial parses "[" section-spec "]" followed by an
// optional "<offset.count>" suffix, for BODY[...] and BODY.PEEK[...].
func parseSectionAndPartial(buf []byte) (imap.BodySectionName, *imap.SectionPartial, int, error) {
	i, err := Byte(buf, '[')
	if err != nil {
		return imap.BodySectionName{}, nil, 0, err
	}

	var section imap.BodySectionName
	var part []int
	for i < len(buf) && isDigit(buf[i]) {
		num, n, err := Number(buf[i:])
		if err != nil {
			return imap.BodySectionName{}, nil, 0, err
		}
		part = append(part, int(num))
		i += n
		if i < len(buf) && buf[i] == '.' {
			i++
		} else {
			break
		}
	}
	section.Part = part

	if i < len(buf) && buf[i] != ']' {
		spec, n, err := takeWhile1(buf[i:], func(b byte) bool { return isAtomChar(b) }, "section-spec")
		if err != nil {
			return imap.BodySectionName{}, nil, 0, err
		}
		i += n
		upper := strings.ToUpper(spec)
		switch {
		case upper == "HEADER" || upper == "TEXT" || upper == "MIME":
			section.Specifier = upper
		case strings.HasPrefix(upper, "HEADER.FIELDS.NOT"):
			section.Specifier = "HEADER.FIELDS.NOT"
			section.NotFields = true
			sp, err := SP(buf[i:])
			if err != nil {
				return imap.BodySectionName{}, nil, 0, err
			}
			i += sp
			fields, n, err := parseHeaderFieldList(buf[i:])
			if err != nil {
				return imap.BodySectionName{}, nil, 0, err
			}
			i += n
			section.Fields = fields
		case strings.HasPrefix(upper, "HEADER.FIELDS"):
			section.Specifier = "HEADER.FIELDS"
			sp, err := SP(buf[i:])
			if err != nil {
				return imap.BodySectionName{}, nil, 0, err
			}
			i += sp
			fields, n, err := parseHeaderFieldList(buf[i:])
			if err != nil {
				return imap.BodySectionName{}, nil, 0, err
			}
			i += n
			section.Fields = fields
		default:
			return imap.BodySectionName{}, nil, 0, &imap.ParseFailure{Production: "section-spec", Reason: "unknown section specifier " + spec}
		}
	}

	cn, err := Byte(buf[i:], ']')
	if err != nil {
		return imap.BodySectionName{}, nil, 0, err
	}
	i += cn

	partial, n, err := parsePartialSuffix(buf[i:])
	if err != nil {
		return imap.BodySectionName{}, nil, 0, err
	}
	i += n

	return section, partial, i, nil
}

func parseHeaderFieldList(buf []byte) ([]string, int, error) {
	i, err := Byte(buf, '(')
	if err != nil {
		return nil, 0, err
	}
	var fields []string
	for {
		a, n, err := AString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		fields = append(fields, a.Text())
		i += n
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += sp
			continue
		}
		break
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return nil, 0, err
	}
	i += cn
	return fields, i, nil
}

// parsePartialSuffix parses an optional "<offset.count>" suffix.
func parsePartialSuffix(buf []byte) (*imap.SectionPartial, int, error) {
	if len(buf) == 0 || buf[0] != '<' {
		return nil, 0, nil
	}
	i := 1
	offset, n, err := Number(buf[i:])
	if err != nil {
		return nil, 0, err
	}
	i += n
	dn, err := Byte(buf[i:], '.')
	if err != nil {
		return nil, 0, err
	}
	i += dn
	count, n, err := Number(buf[i:])
	if err != nil {
		return nil, 0, err
	}
	i += n
	cn, err := Byte(buf[i:], '>')
	if err != nil {
		return nil, 0, err
	}
	i += cn
	return &imap.SectionPartial{Offset: int64(offset), Count: int64(count)}, i, nil
}

// ParseFetchMessageData parses the parenthesized data-item list of an
// untagged "* <seqnum> FETCH (...)" response.
func ParseFetchMessageData(seqNum imap.SeqNum, buf []byte) (imap.FetchMessageData, int, error) {
	i, err := Byte(buf, '(')
	if err != nil {
		return imap.FetchMessageData{}, 0, err
	}

	var items []imap.DataItem
	for {
		item, n, err := parseDataItem(buf[i:])
		if err != nil {
			return imap.FetchMessageData{}, 0, err
		}
		items = append(items, item)
		i += n
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return imap.FetchMessageData{}, 0, err
			}
			i += sp
			continue
		}
		break
	}

	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return imap.FetchMessageData{}, 0, err
	}
	i += cn

	return imap.FetchMessageData{SeqNum: seqNum, Items: items}, i, nil
}

func parseDataItem(buf []byte) (imap.DataItem, int, error) {
	word, n, err := takeFetchKeyword(buf)
	if err != nil {
		return nil, 0, err
	}
	i := n
	upper := strings.ToUpper(word)

	consumeSP := func() error {
		sp, err := SP(buf[i:])
		if err != nil {
			return err
		}
		i += sp
		return nil
	}

	switch upper {
	case "FLAGS":
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		flags, n, err := parseFlagList(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.DataItemFlags{Flags: flags}, i, nil
	case "UID":
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		num, n, err := Number(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.DataItemUID{UID: imap.UID(num)}, i, nil
	case "RFC822.SIZE":
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		num, n, err := Number(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.DataItemRFC822Size{Size: num}, i, nil
	case "INTERNALDATE":
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		q, n, err := Quoted(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		dt, err := imap.ParseDateTime(q.String())
		if err != nil {
			return nil, 0, &imap.ParseFailure{Production: "internaldate", Reason: err.Error()}
		}
		return imap.DataItemInternalDate{Date: dt}, i, nil
	case "ENVELOPE":
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		env, n, err := ParseEnvelope(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.DataItemEnvelope{Envelope: env}, i, nil
	case "BODYSTRUCTURE", "BODY":
		nonExtensible := upper == "BODY"
		if i < len(buf) && buf[i] == '[' {
			section, partial, n, err := parseSectionAndPartial(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += n
			if err := consumeSP(); err != nil {
				return nil, 0, err
			}
			var origin *int64
			if i < len(buf) && buf[i] == '<' {
				o, n, err := parseOrigin(buf[i:])
				if err != nil {
					return nil, 0, err
				}
				i += n
				origin = &o
			}
			ns, n, err := NString(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += n
			var value []byte
			if !ns.IsNil() {
				value = []byte(ns.Text())
			}
			_ = partial
			return imap.DataItemBodySection{Section: section, Origin: origin, Value: value}, i, nil
		}
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		structure, n, err := ParseBodyStructure(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.DataItemBodyStructure{Structure: structure, NonExtensible: nonExtensible}, i, nil
	case "MODSEQ":
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		pn, err := Byte(buf[i:], '(')
		if err != nil {
			return nil, 0, err
		}
		i += pn
		num, n, err := Number64(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		cn, err := Byte(buf[i:], ')')
		if err != nil {
			return nil, 0, err
		}
		i += cn
		return imap.DataItemModSeq{ModSeq: num}, i, nil
	case "BINARY.SIZE":
		part, n, err := parseSectionPart(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		num, n, err := Number(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.DataItemBinarySize{Part: part, Size: num}, i, nil
	case "BINARY":
		part, n, err := parseSectionPart(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		var origin *int64
		if i < len(buf) && buf[i] == '<' {
			o, n, err := parseOrigin(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += n
			origin = &o
		}
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		lit, n, err := Literal(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.DataItemBinarySection{Part: part, Origin: origin, Value: lit.Bytes()}, i, nil
	}
	return nil, 0, &imap.ParseFailure{Production: "msg-att", Reason: "unknown data item " + word}
}

// parseOrigin parses a "<offset>" prefix preceding a fetched section's
// literal, as distinct from the request-side "<offset.count>" suffix.
func parseOrigin(buf []byte) (int64, int, error) {
	i := 1
	num, n, err := Number(buf[i:])
	if err != nil {
		return 0, 0, err
	}
	i += n
	cn, err := Byte(buf[i:], '>')
	if err != nil {
		return 0, 0, err
	}
	i += cn
	return int64(num), i, nil
}

func parseFlagList(buf []byte) ([]imap.Flag, int, error) {
	i, err := Byte(buf, '(')
	if err != nil {
		return nil, 0, err
	}
	var flags []imap.Flag
	for i < len(buf) && buf[i] != ')' {
		f, n, err := Flag(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		flags = append(flags, f)
		i += n
		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += sp
		}
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return nil, 0, err
	}
	i += cn
	return flags, i, nil
}
