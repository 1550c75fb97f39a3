package wire

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/corvid-mail/imapcodec"
)

// FragmentKind discriminates the two kinds of chunk an Encoder
// produces.
type FragmentKind int

const (
	// FragmentComplete is a chunk that may be followed immediately by
	// the next fragment with no round-trip.
	FragmentComplete FragmentKind = iota
	// FragmentPendingContinuation is a chunk after which the sender
	// must wait for a "+" continuation request from the peer before
	// sending the next fragment — produced immediately after a
	// synchronizing literal's `{n}` header.
	FragmentPendingContinuation
)

// Fragment is one chunk of an encoded command or response.
type Fragment struct {
	Kind FragmentKind
	Data []byte
}

// WriteFragments writes fragments to w, assuming the caller has
// already satisfied any continuation wait between them (this package
// does no network I/O itself; orchestrating the wait is a session
// layer's job).
func WriteFragments(w io.Writer, fragments []Fragment) error {
	for _, f := range fragments {
		if _, err := w.Write(f.Data); err != nil {
			return err
		}
	}
	return nil
}

// Encoder renders the composite types in package imap to wire form,
// splitting output into fragments at each synchronizing literal so a
// session layer can pause for the server's continuation request.
type Encoder struct {
	buf       bytes.Buffer
	fragments []Fragment
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

func (e *Encoder) cut(kind FragmentKind) {
	data := make([]byte, e.buf.Len())
	copy(data, e.buf.Bytes())
	e.fragments = append(e.fragments, Fragment{Kind: kind, Data: data})
	e.buf.Reset()
}

// Fragments returns the accumulated fragments, flushing any buffered
// trailing bytes as a final Complete fragment.
func (e *Encoder) Fragments() []Fragment {
	if e.buf.Len() > 0 || len(e.fragments) == 0 {
		e.cut(FragmentComplete)
	}
	return e.fragments
}

// Raw writes raw bytes to the output.
func (e *Encoder) Raw(data []byte) *Encoder {
	e.buf.Write(data)
	return e
}

// RawString writes a raw string to the output.
func (e *Encoder) RawString(s string) *Encoder {
	e.buf.WriteString(s)
	return e
}

// Atom writes an atom verbatim.
func (e *Encoder) Atom(s string) *Encoder {
	e.buf.WriteString(s)
	return e
}

// SP writes a space.
func (e *Encoder) SP() *Encoder {
	e.buf.WriteByte(' ')
	return e
}

// CRLF writes a CRLF.
func (e *Encoder) CRLF() *Encoder {
	e.buf.WriteString("\r\n")
	return e
}

// QuotedString writes a quoted string, backslash-escaping quoted-specials.
func (e *Encoder) QuotedString(s string) *Encoder {
	e.buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if imap.IsQuotedSpecial(s[i]) {
			e.buf.WriteByte('\\')
		}
		e.buf.WriteByte(s[i])
	}
	e.buf.WriteByte('"')
	return e
}

// Literal writes a literal string `{n}\r\n<data>`. Unless nonSync is
// set, this cuts a fragment boundary immediately after the header:
// the sender must wait for the peer's continuation request before the
// literal's octets (and anything following) can be sent.
func (e *Encoder) Literal(data []byte, nonSync bool) *Encoder {
	e.buf.WriteByte('{')
	e.buf.WriteString(strconv.Itoa(len(data)))
	if nonSync {
		e.buf.WriteByte('+')
	}
	e.buf.WriteByte('}')
	e.buf.WriteString("\r\n")
	if !nonSync {
		e.cut(FragmentPendingContinuation)
	}
	e.buf.Write(data)
	return e
}

// String writes s using the smallest-risk representation: atom if it
// needs neither quoting nor a literal, quoted if it merely needs
// quoting, literal (synchronizing) otherwise.
func (e *Encoder) String(s string) *Encoder {
	if imap.NeedsLiteral(s) {
		return e.Literal([]byte(s), false)
	}
	if imap.NeedsQuoting(s) {
		return e.QuotedString(s)
	}
	return e.Atom(s)
}

// AString writes an astring using the smallest-risk representation.
func (e *Encoder) AString(s string) *Encoder {
	if s != "" && !imap.NeedsQuoting(s) && !imap.NeedsLiteral(s) {
		return e.Atom(s)
	}
	return e.String(s)
}

// NString writes an nstring: NIL if s is nil, otherwise the string.
func (e *Encoder) NString(s *string) *Encoder {
	if s == nil {
		return e.Nil()
	}
	return e.String(*s)
}

// Nil writes NIL.
func (e *Encoder) Nil() *Encoder {
	e.buf.WriteString("NIL")
	return e
}

// Number writes an unsigned 32-bit number.
func (e *Encoder) Number(n uint32) *Encoder {
	e.buf.WriteString(strconv.FormatUint(uint64(n), 10))
	return e
}

// Number64 writes an unsigned 64-bit number.
func (e *Encoder) Number64(n uint64) *Encoder {
	e.buf.WriteString(strconv.FormatUint(n, 10))
	return e
}

// BeginList writes an opening parenthesis.
func (e *Encoder) BeginList() *Encoder {
	e.buf.WriteByte('(')
	return e
}

// EndList writes a closing parenthesis.
func (e *Encoder) EndList() *Encoder {
	e.buf.WriteByte(')')
	return e
}

// List writes a parenthesized, SP-separated list via fn for each item.
func (e *Encoder) List(n int, fn func(i int)) *Encoder {
	e.BeginList()
	for i := 0; i < n; i++ {
		if i > 0 {
			e.SP()
		}
		fn(i)
	}
	return e.EndList()
}

// Flags writes a parenthesized list of flags.
func (e *Encoder) Flags(flags []imap.Flag) *Encoder {
	return e.List(len(flags), func(i int) { e.Atom(string(flags[i])) })
}

// Date writes a quoted date in DD-Mon-YYYY form.
func (e *Encoder) Date(d imap.Date) *Encoder {
	return e.QuotedString(d.String())
}

// DateTime writes a quoted date-time in DD-Mon-YYYY HH:MM:SS +ZZZZ form.
func (e *Encoder) DateTime(d imap.DateTime) *Encoder {
	return e.QuotedString(d.String())
}

// Tag writes a command tag.
func (e *Encoder) Tag(tag imap.Tag) *Encoder {
	e.buf.WriteString(tag.String())
	return e
}

// Star writes the untagged response prefix "* ".
func (e *Encoder) Star() *Encoder {
	e.buf.WriteString("* ")
	return e
}

// Plus writes the continuation request prefix "+ ".
func (e *Encoder) Plus() *Encoder {
	e.buf.WriteString("+ ")
	return e
}

// StatusResponse writes a complete status response line, tagged if
// tag is non-empty.
func (e *Encoder) StatusResponse(tag imap.Tag, r imap.StatusResponse) *Encoder {
	if tag.String() == "" {
		e.Star()
	} else {
		e.Tag(tag).SP()
	}
	e.Atom(string(r.Type))
	if r.Code != "" {
		e.RawString(" [").Atom(string(r.Code))
		if r.CodeArg != nil {
			e.SP()
			fmt.Fprint(&e.buf, r.CodeArg)
		}
		e.RawString("]")
	}
	if r.Text != "" {
		e.SP().RawString(r.Text)
	}
	return e.CRLF()
}

// BeginResponse starts an untagged response with the given name.
func (e *Encoder) BeginResponse(name string) *Encoder {
	return e.Star().Atom(name).SP()
}

// NumResponse writes an untagged numeric response (e.g. "* 5 EXISTS").
func (e *Encoder) NumResponse(num uint32, name string) *Encoder {
	return e.Star().Number(num).SP().Atom(name).CRLF()
}

// ContinuationRequest writes a continuation request line.
func (e *Encoder) ContinuationRequest(text string) *Encoder {
	e.Plus()
	if text != "" {
		e.RawString(text)
	}
	return e.CRLF()
}

// MailboxName writes a Mailbox in its wire (modified-UTF-7) form.
func (e *Encoder) MailboxName(m imap.Mailbox) *Encoder {
	if m.IsInbox() {
		return e.Atom("INBOX")
	}
	as, _ := m.WireAString()
	return e.AStringValue(as)
}

// AStringValue writes an already-constructed AString in its original
// representation (atom vs. string), never re-selecting.
func (e *Encoder) AStringValue(a imap.AString) *Encoder {
	if atom, ok := a.Atom(); ok {
		return e.Atom(atom.String())
	}
	is, _ := a.IString()
	return e.IStringValue(is)
}

// IStringValue writes an already-constructed IString in its original
// representation (quoted vs. literal), never re-selecting.
func (e *Encoder) IStringValue(s imap.IString) *Encoder {
	if q, ok := s.Quoted(); ok {
		return e.QuotedString(q.String())
	}
	l, _ := s.Literal()
	return e.Literal(l.Bytes(), false)
}

// NStringValue writes an already-constructed NString.
func (e *Encoder) NStringValue(s imap.NString) *Encoder {
	if s.IsNil() {
		return e.Nil()
	}
	v, _ := s.Value()
	return e.IStringValue(v)
}

// ResponseCode writes a bracketed response code with raw args.
func (e *Encoder) ResponseCode(code string, args ...interface{}) *Encoder {
	e.RawString("[").Atom(code)
	for _, arg := range args {
		e.SP()
		fmt.Fprint(&e.buf, arg)
	}
	e.RawString("] ")
	return e
}
