package wire

import (
	"strings"

	"github.com/corvid-mail/imapcodec"
)

// ParseSearchKey parses one search-key, recursing into AND/OR/NOT.
// A sequence of space-separated keys at the top level is folded into
// a SearchKeyAnd.
func ParseSearchKey(buf []byte) (imap.SearchKey, int, error) {
	var keys []imap.SearchKey
	i := 0
	for {
		key, n, err := parseOneSearchKey(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		keys = append(keys, key)
		i += n
		if i < len(buf) && buf[i] == ' ' && i+1 < len(buf) && buf[i+1] != ')' {
			sp, err := SP(buf[i:])
			if err != nil {
				return nil, 0, err
			}
			i += sp
			continue
		}
		break
	}
	if len(keys) == 1 {
		return keys[0], i, nil
	}
	list, err := imap.NewNonEmptyList(keys)
	if err != nil {
		return nil, 0, &imap.ParseFailure{Production: "search-key", Reason: err.Error()}
	}
	return imap.SearchKeyAnd{Keys: list}, i, nil
}

func parseOneSearchKey(buf []byte) (imap.SearchKey, int, error) {
	if len(buf) == 0 {
		return nil, 0, imap.IncompleteUnknownErr()
	}

	if buf[0] == '(' {
		i, err := Byte(buf, '(')
		if err != nil {
			return nil, 0, err
		}
		key, n, err := ParseSearchKey(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		cn, err := Byte(buf[i:], ')')
		if err != nil {
			return nil, 0, err
		}
		i += cn
		return key, i, nil
	}

	if isDigit(buf[0]) || buf[0] == '*' || buf[0] == '$' {
		return parseSeqSetOrSavedSearch(buf)
	}

	a, n, err := Atom(buf)
	if err != nil {
		return nil, 0, err
	}
	word := strings.ToUpper(a.String())
	i := n

	consumeSP := func() error {
		sp, err := SP(buf[i:])
		if err != nil {
			return err
		}
		i += sp
		return nil
	}
	parseStringArg := func() (string, error) {
		if err := consumeSP(); err != nil {
			return "", err
		}
		as, n, err := AString(buf[i:])
		if err != nil {
			return "", err
		}
		i += n
		return as.Text(), nil
	}
	parseDateArg := func() (imap.Date, error) {
		if err := consumeSP(); err != nil {
			return imap.Date{}, err
		}
		as, n, err := AString(buf[i:])
		if err != nil {
			return imap.Date{}, err
		}
		i += n
		d, err := imap.ParseDate(as.Text())
		if err != nil {
			return imap.Date{}, &imap.ParseFailure{Production: "search-date", Reason: err.Error()}
		}
		return d, nil
	}
	parseNumArg := func() (uint32, error) {
		if err := consumeSP(); err != nil {
			return 0, err
		}
		num, n, err := Number(buf[i:])
		if err != nil {
			return 0, err
		}
		i += n
		return num, nil
	}

	switch word {
	case "ALL":
		return imap.SearchKeyAll{}, i, nil
	case "ANSWERED":
		return imap.SearchKeyAnswered{}, i, nil
	case "BCC":
		v, err := parseStringArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeyBcc{Value: v}, i, nil
	case "BEFORE":
		d, err := parseDateArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeyBefore{Date: d}, i, nil
	case "BODY":
		v, err := parseStringArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeyBody{Value: v}, i, nil
	case "CC":
		v, err := parseStringArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeyCc{Value: v}, i, nil
	case "DELETED":
		return imap.SearchKeyDeleted{}, i, nil
	case "DRAFT":
		return imap.SearchKeyDraft{}, i, nil
	case "FLAGGED":
		return imap.SearchKeyFlagged{}, i, nil
	case "FROM":
		v, err := parseStringArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeyFrom{Value: v}, i, nil
	case "HEADER":
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		fa, n, err := AString(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		v, err := parseStringArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeyHeader{Field: fa.Text(), Value: v}, i, nil
	case "KEYWORD":
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		fl, n, err := Atom(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.SearchKeyKeyword{Flag: fl.String()}, i, nil
	case "LARGER":
		n, err := parseNumArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeyLarger{N: n}, i, nil
	case "NEW":
		return imap.SearchKeyNew{}, i, nil
	case "NOT":
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		k, n, err := parseOneSearchKey(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.SearchKeyNot{Key: k}, i, nil
	case "OLD":
		return imap.SearchKeyOld{}, i, nil
	case "ON":
		d, err := parseDateArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeyOn{Date: d}, i, nil
	case "OR":
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		l, n, err := parseOneSearchKey(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		r, n, err := parseOneSearchKey(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.SearchKeyOr{Left: l, Right: r}, i, nil
	case "RECENT":
		return imap.SearchKeyRecent{}, i, nil
	case "SEEN":
		return imap.SearchKeySeen{}, i, nil
	case "SENTBEFORE":
		d, err := parseDateArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeySentBefore{Date: d}, i, nil
	case "SENTON":
		d, err := parseDateArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeySentOn{Date: d}, i, nil
	case "SENTSINCE":
		d, err := parseDateArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeySentSince{Date: d}, i, nil
	case "SINCE":
		d, err := parseDateArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeySince{Date: d}, i, nil
	case "SMALLER":
		n, err := parseNumArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeySmaller{N: n}, i, nil
	case "SUBJECT":
		v, err := parseStringArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeySubject{Value: v}, i, nil
	case "TEXT":
		v, err := parseStringArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeyText{Value: v}, i, nil
	case "TO":
		v, err := parseStringArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeyTo{Value: v}, i, nil
	case "UID":
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		set, n, err := SequenceSet(buf[i:], imap.NumKindUID)
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.SearchKeyUID{Set: set}, i, nil
	case "UNANSWERED":
		return imap.SearchKeyUnanswered{}, i, nil
	case "UNDELETED":
		return imap.SearchKeyUndeleted{}, i, nil
	case "UNDRAFT":
		return imap.SearchKeyUndraft{}, i, nil
	case "UNFLAGGED":
		return imap.SearchKeyUnflagged{}, i, nil
	case "UNKEYWORD":
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		fl, n, err := Atom(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.SearchKeyUnkeyword{Flag: fl.String()}, i, nil
	case "UNSEEN":
		return imap.SearchKeyUnseen{}, i, nil
	case "MODSEQ":
		if err := consumeSP(); err != nil {
			return nil, 0, err
		}
		num, n, err := Number64(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		i += n
		return imap.SearchKeyModSeq{ModSeq: num}, i, nil
	case "YOUNGER":
		n, err := parseNumArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeyYounger{Seconds: n}, i, nil
	case "OLDER":
		n, err := parseNumArg()
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeyOlder{Seconds: n}, i, nil
	}
	return nil, 0, &imap.ParseFailure{Production: "search-key", Reason: "unknown search key " + word}
}

func parseSeqSetOrSavedSearch(buf []byte) (imap.SearchKey, int, error) {
	if buf[0] == '$' {
		i, err := Byte(buf, '$')
		if err != nil {
			return nil, 0, err
		}
		return imap.SearchKeySaveResult{}, i, nil
	}
	set, n, err := SequenceSet(buf, imap.NumKindSeq)
	if err != nil {
		return nil, 0, err
	}
	return imap.SearchKeySequenceSet{Set: set}, n, nil
}
