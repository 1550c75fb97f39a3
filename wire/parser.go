package wire

import (
	"strings"

	"github.com/corvid-mail/imapcodec"
	"github.com/corvid-mail/imapcodec/extgate"
)

// ParseGreeting parses the server's opening greeting line.
func ParseGreeting(buf []byte) (int, imap.Greeting, error) {
	i, err := Byte(buf, '*')
	if err != nil {
		return 0, imap.Greeting{}, err
	}
	n, err := SP(buf[i:])
	if err != nil {
		return 0, imap.Greeting{}, err
	}
	i += n

	status, n, code, codeArg, err := parseRespStatus(buf[i:])
	if err != nil {
		return 0, imap.Greeting{}, err
	}
	i += n

	text, n, err := parseRespText(buf[i:])
	if err != nil {
		return 0, imap.Greeting{}, err
	}
	i += n

	n, err = CRLF(buf[i:])
	if err != nil {
		return 0, imap.Greeting{}, err
	}
	i += n

	return i, imap.Greeting{Status: status, Code: code, CodeArg: codeArg, Text: text}, nil
}

// parseRespStatus parses "OK"/"NO"/"BAD"/"BYE"/"PREAUTH", followed by
// an optional bracketed response code.
func parseRespStatus(buf []byte) (imap.StatusResponseType, int, imap.ResponseCode, interface{}, error) {
	a, n, err := Atom(buf)
	if err != nil {
		return "", 0, "", nil, err
	}
	status := imap.StatusResponseType(strings.ToUpper(a.String()))
	switch status {
	case imap.StatusResponseTypeOK, imap.StatusResponseTypeNO, imap.StatusResponseTypeBAD,
		imap.StatusResponseTypeBYE, imap.StatusResponseTypePREAUTH:
	default:
		return "", 0, "", nil, &imap.ParseFailure{Production: "resp-status", Offset: 0, Reason: "unknown status " + a.String()}
	}
	i := n

	if i < len(buf) && buf[i] == ' ' && i+1 < len(buf) && buf[i+1] == '[' {
		sp, err := SP(buf[i:])
		if err != nil {
			return "", 0, "", nil, err
		}
		i += sp
		code, n, arg, err := parseRespCode(buf[i:])
		if err != nil {
			return "", 0, "", nil, err
		}
		i += n
		return status, i, code, arg, nil
	}
	return status, i, "", nil, nil
}

// parseRespCode parses a bracketed response code "[CODE arg]".
func parseRespCode(buf []byte) (imap.ResponseCode, int, interface{}, error) {
	i, err := Byte(buf, '[')
	if err != nil {
		return "", 0, nil, err
	}
	a, n, err := Atom(buf[i:])
	if err != nil {
		return "", 0, nil, err
	}
	code := imap.ResponseCode(strings.ToUpper(a.String()))
	i += n

	var arg interface{}
	if i < len(buf) && buf[i] == ' ' {
		sp, err := SP(buf[i:])
		if err != nil {
			return "", 0, nil, err
		}
		i += sp
		argStr, n, err := takeUntilByte(buf[i:], ']')
		if err != nil {
			return "", 0, nil, err
		}
		i += n
		arg = argStr
	}
	cn, err := Byte(buf[i:], ']')
	if err != nil {
		return "", 0, nil, err
	}
	i += cn
	return code, i, arg, nil
}

func takeUntilByte(buf []byte, delim byte) (string, int, error) {
	for i, b := range buf {
		if b == delim {
			return string(buf[:i]), i, nil
		}
	}
	return "", 0, imap.IncompleteUnknownErr()
}

// parseRespText parses the human-readable text trailing a status
// response, up to (not including) the terminating CRLF. An empty
// SP-prefixed text is normalized to "".
func parseRespText(buf []byte) (string, int, error) {
	if len(buf) > 0 && buf[0] == ' ' {
		n, err := SP(buf)
		if err != nil {
			return "", 0, err
		}
		s, m, err := takeUntilByte(buf[n:], '\r')
		if err != nil {
			return "", 0, err
		}
		return s, n + m, nil
	}
	return "", 0, nil
}

// ParseResponse parses one server response line: a tagged status
// response, an untagged status response, an untagged data response,
// or a continuation request. fs gates which extension data responses
// parse; a nil fs is permissive (every extension parses
// unconditionally).
func ParseResponse(buf []byte, fs *extgate.FeatureSet) (int, imap.Response, error) {
	if len(buf) == 0 {
		return 0, imap.Response{}, imap.IncompleteUnknownErr()
	}

	if buf[0] == '+' {
		n, err := Byte(buf, '+')
		if err != nil {
			return 0, imap.Response{}, err
		}
		i := n
		text, n, err := parseRespText(buf[i:])
		if err != nil {
			return 0, imap.Response{}, err
		}
		i += n
		n, err = CRLF(buf[i:])
		if err != nil {
			return 0, imap.Response{}, err
		}
		i += n
		return i, imap.Response{Status: &imap.StatusResponse{Type: imap.StatusResponseTypeOK, Text: text}}, nil
	}

	if buf[0] == '*' {
		i, err := Byte(buf, '*')
		if err != nil {
			return 0, imap.Response{}, err
		}
		n, err := SP(buf[i:])
		if err != nil {
			return 0, imap.Response{}, err
		}
		i += n
		return parseResponseAfterStar(buf, i, fs)
	}

	tag, n, err := Tag(buf)
	if err != nil {
		return 0, imap.Response{}, err
	}
	i := n
	sp, err := SP(buf[i:])
	if err != nil {
		return 0, imap.Response{}, err
	}
	i += sp
	status, n, code, codeArg, err := parseRespStatus(buf[i:])
	if err != nil {
		return 0, imap.Response{}, err
	}
	i += n
	text, n, err := parseRespText(buf[i:])
	if err != nil {
		return 0, imap.Response{}, err
	}
	i += n
	n, err = CRLF(buf[i:])
	if err != nil {
		return 0, imap.Response{}, err
	}
	i += n
	return i, imap.Response{Tag: tag, Status: &imap.StatusResponse{Type: status, Code: code, CodeArg: codeArg, Text: text}}, nil
}

// parseResponseAfterStar dispatches an untagged response by its
// leading word: a status type, a number (EXISTS/RECENT/EXPUNGE/FETCH),
// or a data-response name.
func parseResponseAfterStar(buf []byte, i int, fs *extgate.FeatureSet) (int, imap.Response, error) {
	if i < len(buf) && isDigit(buf[i]) {
		return parseNumberedData(buf, i)
	}

	a, n, err := Atom(buf[i:])
	if err != nil {
		return 0, imap.Response{}, err
	}
	word := strings.ToUpper(a.String())
	switch word {
	case "OK", "NO", "BAD", "BYE", "PREAUTH":
		status, sn, code, codeArg, err := parseRespStatus(buf[i:])
		if err != nil {
			return 0, imap.Response{}, err
		}
		j := i + sn
		text, tn, err := parseRespText(buf[j:])
		if err != nil {
			return 0, imap.Response{}, err
		}
		j += tn
		cn, err := CRLF(buf[j:])
		if err != nil {
			return 0, imap.Response{}, err
		}
		j += cn
		return j, imap.Response{Status: &imap.StatusResponse{Type: status, Code: code, CodeArg: codeArg, Text: text}}, nil
	}

	j := i + n
	data, dn, err := parseNamedData(word, buf[j:], fs)
	if err != nil {
		return 0, imap.Response{}, err
	}
	j += dn
	cn, err := CRLF(buf[j:])
	if err != nil {
		return 0, imap.Response{}, err
	}
	j += cn
	return j, imap.Response{Data: data}, nil
}

func parseNumberedData(buf []byte, i int) (int, imap.Response, error) {
	num, n, err := Number(buf[i:])
	if err != nil {
		return 0, imap.Response{}, err
	}
	j := i + n
	sp, err := SP(buf[j:])
	if err != nil {
		return 0, imap.Response{}, err
	}
	j += sp
	a, n, err := Atom(buf[j:])
	if err != nil {
		return 0, imap.Response{}, err
	}
	j += n
	word := strings.ToUpper(a.String())

	var data imap.Data
	switch word {
	case "EXISTS":
		data = imap.DataExists{Count: num}
	case "RECENT":
		data = imap.DataRecent{Count: num}
	case "EXPUNGE":
		data = imap.DataExpunge{SeqNum: imap.SeqNum(num)}
	case "FETCH":
		fsp, err := SP(buf[j:])
		if err != nil {
			return 0, imap.Response{}, err
		}
		j += fsp
		msg, fn, err := ParseFetchMessageData(imap.SeqNum(num), buf[j:])
		if err != nil {
			return 0, imap.Response{}, err
		}
		j += fn
		data = imap.DataFetch{Message: msg}
	default:
		return 0, imap.Response{}, &imap.ParseFailure{Production: "numbered-data", Offset: j, Reason: "unknown numbered response " + word}
	}

	cn, err := CRLF(buf[j:])
	if err != nil {
		return 0, imap.Response{}, err
	}
	j += cn
	return j, imap.Response{Data: data}, nil
}
