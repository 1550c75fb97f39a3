package wire

import "github.com/corvid-mail/imapcodec"

// ParseEnvelope parses an envelope structure:
//
//	"(" env-date SP env-subject SP env-from SP env-sender SP
//	    env-reply-to SP env-to SP env-cc SP env-bcc SP
//	    env-in-reply-to SP env-message-id ")"
func ParseEnvelope(buf []byte) (imap.Envelope, int, error) {
	i, err := Byte(buf, '(')
	if err != nil {
		return imap.Envelope{}, 0, err
	}

	date, n, err := NString(buf[i:])
	if err != nil {
		return imap.Envelope{}, 0, err
	}
	i += n

	sp, err := SP(buf[i:])
	if err != nil {
		return imap.Envelope{}, 0, err
	}
	i += sp
	subject, n, err := NString(buf[i:])
	if err != nil {
		return imap.Envelope{}, 0, err
	}
	i += n

	addrLists := make([][]imap.Address, 6)
	for idx := range addrLists {
		sp, err := SP(buf[i:])
		if err != nil {
			return imap.Envelope{}, 0, err
		}
		i += sp
		list, n, err := parseAddressList(buf[i:])
		if err != nil {
			return imap.Envelope{}, 0, err
		}
		i += n
		addrLists[idx] = list
	}

	sp, err = SP(buf[i:])
	if err != nil {
		return imap.Envelope{}, 0, err
	}
	i += sp
	inReplyTo, n, err := NString(buf[i:])
	if err != nil {
		return imap.Envelope{}, 0, err
	}
	i += n

	sp, err = SP(buf[i:])
	if err != nil {
		return imap.Envelope{}, 0, err
	}
	i += sp
	messageID, n, err := NString(buf[i:])
	if err != nil {
		return imap.Envelope{}, 0, err
	}
	i += n

	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return imap.Envelope{}, 0, err
	}
	i += cn

	return imap.Envelope{
		Date:      date,
		Subject:   subject,
		From:      addrLists[0],
		Sender:    addrLists[1],
		ReplyTo:   addrLists[2],
		To:        addrLists[3],
		Cc:        addrLists[4],
		Bcc:       addrLists[5],
		InReplyTo: inReplyTo,
		MessageID: messageID,
	}, i, nil
}

// parseAddressList parses an address list: NIL or a parenthesized
// sequence of one or more addresses.
func parseAddressList(buf []byte) ([]imap.Address, int, error) {
	if n, ok := matchNil(buf); ok {
		return nil, n, nil
	}
	i, err := Byte(buf, '(')
	if err != nil {
		return nil, 0, err
	}
	var addrs []imap.Address
	for {
		a, n, err := parseAddress(buf[i:])
		if err != nil {
			return nil, 0, err
		}
		addrs = append(addrs, a)
		i += n
		if i < len(buf) && buf[i] == ')' {
			break
		}
	}
	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return nil, 0, err
	}
	i += cn
	return addrs, i, nil
}

// parseAddress parses a single address structure:
// "(" addr-name SP addr-adl SP addr-mailbox SP addr-host ")"
func parseAddress(buf []byte) (imap.Address, int, error) {
	i, err := Byte(buf, '(')
	if err != nil {
		return imap.Address{}, 0, err
	}
	name, n, err := NString(buf[i:])
	if err != nil {
		return imap.Address{}, 0, err
	}
	i += n

	sp, err := SP(buf[i:])
	if err != nil {
		return imap.Address{}, 0, err
	}
	i += sp
	adl, n, err := NString(buf[i:])
	if err != nil {
		return imap.Address{}, 0, err
	}
	i += n

	sp, err = SP(buf[i:])
	if err != nil {
		return imap.Address{}, 0, err
	}
	i += sp
	mailbox, n, err := NString(buf[i:])
	if err != nil {
		return imap.Address{}, 0, err
	}
	i += n

	sp, err = SP(buf[i:])
	if err != nil {
		return imap.Address{}, 0, err
	}
	i += sp
	host, n, err := NString(buf[i:])
	if err != nil {
		return imap.Address{}, 0, err
	}
	i += n

	cn, err := Byte(buf[i:], ')')
	if err != nil {
		return imap.Address{}, 0, err
	}
	i += cn

	return imap.Address{Name: name, Adl: adl, Mailbox: mailbox, Host: host}, i, nil
}
