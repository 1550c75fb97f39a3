package imap

import (
	"strings"

	"github.com/corvid-mail/imapcodec/wire/utf7"
)

// Mailbox is a mailbox name: the reserved name INBOX, matched
// case-insensitively, or any other astring. RFC 3501 §5.1.3 further
// requires that "other" names use modified UTF-7 on the wire; Name
// always returns the decoded (UTF-8) form.
type Mailbox struct {
	inbox bool
	other AString
	// decoded caches the UTF-7-decoded text for the Other case so Name
	// doesn't redo the transform on every call.
	decoded string
}

// Inbox is the reserved INBOX mailbox.
func Inbox() Mailbox { return Mailbox{inbox: true} }

// NewMailbox builds a Mailbox from decoded (UTF-8) text, matching
// "INBOX" case-insensitively and otherwise modified-UTF-7-encoding the
// name before wrapping it as an astring.
func NewMailbox(name string) (Mailbox, error) {
	if strings.EqualFold(name, "INBOX") {
		return Mailbox{inbox: true}, nil
	}
	encoded := utf7.Encode(name)
	as, err := NewAString(encoded)
	if err != nil {
		return Mailbox{}, &InvalidValue{Production: "mailbox", Offset: -1, Reason: "name is not a valid astring once UTF-7 encoded"}
	}
	return Mailbox{other: as, decoded: name}, nil
}

// MailboxFromWireAString wraps an astring already read off the wire
// (still in modified UTF-7), decoding it for Name's benefit. Used by
// the parser, which has already validated the astring syntax.
func MailboxFromWireAString(as AString) (Mailbox, error) {
	if strings.EqualFold(as.Text(), "INBOX") {
		return Mailbox{inbox: true}, nil
	}
	decoded, err := utf7.Decode(as.Text())
	if err != nil {
		return Mailbox{}, &InvalidValue{Production: "mailbox", Offset: -1, Reason: "invalid modified UTF-7: " + err.Error()}
	}
	return Mailbox{other: as, decoded: decoded}, nil
}

// IsInbox reports whether this Mailbox is the reserved INBOX.
func (m Mailbox) IsInbox() bool { return m.inbox }

// Name returns the mailbox's decoded (UTF-8) name, "INBOX" for the
// reserved mailbox.
func (m Mailbox) Name() string {
	if m.inbox {
		return "INBOX"
	}
	return m.decoded
}

// WireAString returns the astring as it would be (or was) carried on
// the wire, still modified-UTF-7-encoded for non-INBOX mailboxes.
func (m Mailbox) WireAString() (AString, bool) {
	if m.inbox {
		return AString{}, false
	}
	return m.other, true
}
