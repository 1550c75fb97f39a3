package wire

import (
	"strings"

	"github.com/corvid-mail/imapcodec"
)

// ParseBodyStructure parses a BODY/BODYSTRUCTURE response value:
// "(" (body-type-mpart / body-type-1part) ")"
func ParseBodyStructure(buf []byte) (imap.BodyStructure, int, error) {
	i, err := Byte(buf, '(')
	if err != nil {
		return imap.BodyStructure{}, 0, err
	}

	if i < len(buf) && buf[i] == '(' {
		multi, n, err := parseMultiBody(buf[i:])
		if err != nil {
			return imap.BodyStructure{}, 0, err
		}
		i += n
		cn, err := Byte(buf[i:], ')')
		if err != nil {
			return imap.BodyStructure{}, 0, err
		}
		i += cn
		return imap.MultiBodyStructure(multi), i, nil
	}

	single, n, err := parseSingleBody(buf[i:])
	if err != nil {
		return imap.BodyStructure{}, 0, err
	}
	i += n
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return imap.BodyStructure{}, 0, err
	}
	i += cn
	return imap.SingleBodyStructure(single), i, nil
}

func parseMultiBody(buf []byte) (imap.MultiBody, int, error) {
	var children []imap.BodyStructure
	i := 0
	for i < len(buf) && buf[i] == '(' {
		child, n, err := ParseBodyStructure(buf[i:])
		if err != nil {
			return imap.MultiBody{}, 0, err
		}
		children = append(children, child)
		i += n
	}
	sp, err := SP(buf[i:])
	if err != nil {
		return imap.MultiBody{}, 0, err
	}
	i += sp

	subtype, n, err := IString(buf[i:])
	if err != nil {
		return imap.MultiBody{}, 0, err
	}
	i += n

	var ext *imap.MultiBodyExtension
	if i < len(buf) && buf[i] == ' ' {
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.MultiBody{}, 0, err
		}
		i += sp
		e, n, err := parseMultiBodyExt(buf[i:])
		if err != nil {
			return imap.MultiBody{}, 0, err
		}
		i += n
		ext = &e
	}

	childrenList, err := imap.NewNonEmptyList(children)
	if err != nil {
		return imap.MultiBody{}, 0, &imap.ParseFailure{Production: "body-type-mpart", Reason: err.Error()}
	}
	return imap.MultiBody{Children: childrenList, Subtype: subtype.Text(), Extension: ext}, i, nil
}

func parseSingleBody(buf []byte) (imap.SingleBody, int, error) {
	typ, n, err := IString(buf)
	if err != nil {
		return imap.SingleBody{}, 0, err
	}
	i := n

	sp, err := SP(buf[i:])
	if err != nil {
		return imap.SingleBody{}, 0, err
	}
	i += sp
	subtype, n, err := IString(buf[i:])
	if err != nil {
		return imap.SingleBody{}, 0, err
	}
	i += n

	sp, err = SP(buf[i:])
	if err != nil {
		return imap.SingleBody{}, 0, err
	}
	i += sp
	fields, n, err := parseBodyFields(buf[i:])
	if err != nil {
		return imap.SingleBody{}, 0, err
	}
	i += n

	typeStr := strings.ToUpper(typ.Text())
	subtypeStr := strings.ToUpper(subtype.Text())

	var msg *imap.MessageBody
	var textLines *uint32

	if typeStr == "MESSAGE" && subtypeStr == "RFC822" {
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.SingleBody{}, 0, err
		}
		i += sp
		env, n, err := ParseEnvelope(buf[i:])
		if err != nil {
			return imap.SingleBody{}, 0, err
		}
		i += n

		sp, err = SP(buf[i:])
		if err != nil {
			return imap.SingleBody{}, 0, err
		}
		i += sp
		body, n, err := ParseBodyStructure(buf[i:])
		if err != nil {
			return imap.SingleBody{}, 0, err
		}
		i += n

		sp, err = SP(buf[i:])
		if err != nil {
			return imap.SingleBody{}, 0, err
		}
		i += sp
		lines, n, err := Number(buf[i:])
		if err != nil {
			return imap.SingleBody{}, 0, err
		}
		i += n
		msg = &imap.MessageBody{Envelope: env, Body: body, Lines: lines}
	} else if typeStr == "TEXT" {
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.SingleBody{}, 0, err
		}
		i += sp
		lines, n, err := Number(buf[i:])
		if err != nil {
			return imap.SingleBody{}, 0, err
		}
		i += n
		textLines = &lines
	}

	var ext *imap.SingleBodyExtension
	if i < len(buf) && buf[i] == ' ' {
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.SingleBody{}, 0, err
		}
		i += sp
		e, n, err := parseSingleBodyExt(buf[i:])
		if err != nil {
			return imap.SingleBody{}, 0, err
		}
		i += n
		ext = &e
	}

	return imap.SingleBody{
		Type:      typ.Text(),
		Subtype:   subtype.Text(),
		Fields:    fields,
		Message:   msg,
		TextLines: textLines,
		Extension: ext,
	}, i, nil
}

func parseBodyFields(buf []byte) (imap.BodyFields, int, error) {
	params, n, err := parseBodyParams(buf)
	if err != nil {
		return imap.BodyFields{}, 0, err
	}
	i := n

	sp, err := SP(buf[i:])
	if err != nil {
		return imap.BodyFields{}, 0, err
	}
	i += sp
	id, n, err := NString(buf[i:])
	if err != nil {
		return imap.BodyFields{}, 0, err
	}
	i += n

	sp, err = SP(buf[i:])
	if err != nil {
		return imap.BodyFields{}, 0, err
	}
	i += sp
	desc, n, err := NString(buf[i:])
	if err != nil {
		return imap.BodyFields{}, 0, err
	}
	i += n

	sp, err = SP(buf[i:])
	if err != nil {
		return imap.BodyFields{}, 0, err
	}
	i += sp
	enc, n, err := IString(buf[i:])
	if err != nil {
		return imap.BodyFields{}, 0, err
	}
	i += n

	sp, err = SP(buf[i:])
	if err != nil {
		return imap.BodyFields{}, 0, err
	}
	i += sp
	size, n, err := Number(buf[i:])
	if err != nil {
		return imap.BodyFields{}, 0, err
	}
	i += n

	return imap.BodyFields{Params: params, ID: id, Description: desc, Encoding: enc.Text(), Size: size}, i, nil
}

// parseBodyParams parses body-fld-param: NIL or a parenthesized list
// of alternating key/value strings.
func parseBodyParams(buf []byte) (map[string]string, int, error) {
	if n, ok := matchNil(buf); ok {
		return nil, n, nil
	}
	i, err := Byte(buf, '(')
	if err != nil {
		return nil, 0, err
	}
	params := map[string]string{}
	for i < len(buf) && buf[i] != ')' {
		key, n, err := IString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		sp, err := SP(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += sp
		val, n, err := IString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		params[strings.ToUpper(key.Text())] = val.Text()
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
	return params, i, nil
}

// parseDisposition parses body-fld-dsp: NIL or "(" string SP
// body-fld-param ")".
func parseDisposition(buf []byte) (*imap.ContentDisposition, int, error) {
	if n, ok := matchNil(buf); ok {
		return nil, n, nil
	}
	i, err := Byte(buf, '(')
	if err != nil {
		return nil, 0, err
	}
	typ, n, err := IString(buf[i:])
	if err != nil {
		return nil, 0, err
	}
	i += n
	sp, err := SP(buf[i:])
	if err != nil {
		return nil, 0, err
	}
	i += sp
	params, n, err := parseBodyParams(buf[i:])
	if err != nil {
		return nil, 0, err
	}
	i += n
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return nil, 0, err
	}
	i += cn
	return &imap.ContentDisposition{Type: typ.Text(), Params: params}, i, nil
}

// parseLanguage parses body-fld-lang: NIL, a single nstring, or a
// parenthesized list of strings.
func parseLanguage(buf []byte) ([]string, int, error) {
	if len(buf) == 0 {
		return nil, 0, imap.IncompleteUnknownErr()
	}
	if buf[0] != '(' {
		ns, n, err := NString(buf)
		if err != nil {
			return nil, 0, err
		}
		if ns.IsNil() {
			return nil, n, nil
		}
		return []string{ns.Text()}, n, nil
	}
	i, err := Byte(buf, '(')
	if err != nil {
		return nil, 0, err
	}
	var langs []string
	for i < len(buf) && buf[i] != ')' {
		s, n, err := IString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		langs = append(langs, s.Text())
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
	return langs, i, nil
}

func parseSingleBodyExt(buf []byte) (imap.SingleBodyExtension, int, error) {
	md5, n, err := NString(buf)
	if err != nil {
		return imap.SingleBodyExtension{}, 0, err
	}
	i := n

	var disp *imap.ContentDisposition
	var lang []string
	var loc imap.NString

	if i < len(buf) && buf[i] == ' ' {
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.SingleBodyExtension{}, 0, err
		}
		i += sp
		d, n, err := parseDisposition(buf[i:])
		if err != nil {
			return imap.SingleBodyExtension{}, 0, err
		}
		i += n
		disp = d

		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return imap.SingleBodyExtension{}, 0, err
			}
			i += sp
			l, n, err := parseLanguage(buf[i:])
			if err != nil {
				return imap.SingleBodyExtension{}, 0, err
			}
			i += n
			lang = l

			if i < len(buf) && buf[i] == ' ' {
				sp, err := SP(buf[i:])
				if err != nil {
					return imap.SingleBodyExtension{}, 0, err
				}
				i += sp
				l2, n, err := NString(buf[i:])
				if err != nil {
					return imap.SingleBodyExtension{}, 0, err
				}
				i += n
				loc = l2
			}
		}
	}

	return imap.SingleBodyExtension{MD5: md5, Disposition: disp, Language: lang, Location: loc}, i, nil
}

func parseMultiBodyExt(buf []byte) (imap.MultiBodyExtension, int, error) {
	params, n, err := parseBodyParams(buf)
	if err != nil {
		return imap.MultiBodyExtension{}, 0, err
	}
	i := n

	var disp *imap.ContentDisposition
	var lang []string
	var loc imap.NString

	if i < len(buf) && buf[i] == ' ' {
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.MultiBodyExtension{}, 0, err
		}
		i += sp
		d, n, err := parseDisposition(buf[i:])
		if err != nil {
			return imap.MultiBodyExtension{}, 0, err
		}
		i += n
		disp = d

		if i < len(buf) && buf[i] == ' ' {
			sp, err := SP(buf[i:])
			if err != nil {
				return imap.MultiBodyExtension{}, 0, err
			}
			i += sp
			l, n, err := parseLanguage(buf[i:])
			if err != nil {
				return imap.MultiBodyExtension{}, 0, err
			}
			i += n
			lang = l

			if i < len(buf) && buf[i] == ' ' {
				sp, err := SP(buf[i:])
				if err != nil {
					return imap.MultiBodyExtension{}, 0, err
				}
				i += sp
				l2, n, err := NString(buf[i:])
				if err != nil {
					return imap.MultiBodyExtension{}, 0, err
				}
				i += n
				loc = l2
			}
		}
	}

	return imap.MultiBodyExtension{Params: params, Disposition: disp, Language: lang, Location: loc}, i, nil
}
