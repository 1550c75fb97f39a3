package imap

// Quoted is text safe to carry inside a quoted string: every byte is a
// 7-bit TEXT-CHAR (any CHAR except CR and LF). It may contain '"' and
// '\\'; the encoder backslash-escapes both on the wire. The empty
// string is a valid Quoted (it encodes as `""`).
type Quoted struct {
	inner string
}

// VerifyQuoted reports whether s may be carried as a quoted string.
func VerifyQuoted(s string) bool {
	for i := 0; i < len(s); i++ {
		if !IsTextChar(s[i]) {
			return false
		}
	}
	return true
}

// NewQuoted validates s and wraps it.
func NewQuoted(s string) (Quoted, error) {
	for i := 0; i < len(s); i++ {
		if !IsTextChar(s[i]) {
			return Quoted{}, &InvalidValue{Production: "quoted", Offset: i, Reason: "not a 7-bit TEXT-CHAR"}
		}
	}
	return Quoted{inner: s}, nil
}

// NewQuotedUnchecked wraps s without validation.
func NewQuotedUnchecked(s string) Quoted {
	return Quoted{inner: s}
}

// String returns the carrier text (unescaped, without surrounding
// quotes).
func (q Quoted) String() string { return q.inner }

// Literal is an octet sequence with no embedded NUL, encoded on the
// wire as `{n}CRLF` followed by exactly n octets. It is the only form
// that can carry CR, LF, or non-7-bit payload inline.
type Literal struct {
	inner []byte
}

// VerifyLiteral reports whether b may be carried as a literal: it must
// contain no NUL byte and must fit the protocol's 32-bit octet
// counter.
func VerifyLiteral(b []byte) bool {
	if uint64(len(b)) > 0xffffffff {
		return false
	}
	for _, c := range b {
		if !IsChar8(c) {
			return false
		}
	}
	return true
}

// NewLiteral validates b and wraps a copy of it.
func NewLiteral(b []byte) (Literal, error) {
	if uint64(len(b)) > 0xffffffff {
		return Literal{}, &InvalidValue{Production: "literal", Offset: -1, Reason: "length exceeds 32-bit octet counter"}
	}
	for i, c := range b {
		if !IsChar8(c) {
			return Literal{}, &InvalidValue{Production: "literal", Offset: i, Reason: "NUL byte not allowed in a literal"}
		}
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return Literal{inner: cp}, nil
}

// NewLiteralUnchecked wraps b (without copying) without validation.
// Used by the parser, which slices directly from the input buffer.
func NewLiteralUnchecked(b []byte) Literal {
	return Literal{inner: b}
}

// Bytes returns the literal's octets.
func (l Literal) Bytes() []byte { return l.inner }

// Len returns the number of octets in the literal.
func (l Literal) Len() int { return len(l.inner) }

// Text is non-empty text where every byte is a TEXT-CHAR (7-bit,
// excluding CR/LF). Used for human-readable response text.
type Text struct {
	inner string
}

// VerifyText reports whether s satisfies the text grammar.
func VerifyText(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsTextChar(s[i]) {
			return false
		}
	}
	return true
}

// NewText validates s and wraps it.
func NewText(s string) (Text, error) {
	if s == "" {
		return Text{}, &InvalidValue{Production: "text", Offset: -1, Reason: "empty"}
	}
	for i := 0; i < len(s); i++ {
		if !IsTextChar(s[i]) {
			return Text{}, &InvalidValue{Production: "text", Offset: i, Reason: "not a TEXT-CHAR"}
		}
	}
	return Text{inner: s}, nil
}

// NewTextUnchecked wraps s without validation.
func NewTextUnchecked(s string) Text {
	return Text{inner: s}
}

// String returns the carrier text.
func (t Text) String() string { return t.inner }

// QuotedChar is a single character valid inside a quoted string's
// QUOTED-CHAR production: any 7-bit TEXT-CHAR that is not itself a
// quoted-special, or a backslash/doublequote (which appear only
// escaped).
type QuotedChar struct {
	inner byte
}

// VerifyQuotedChar reports whether b satisfies the QUOTED-CHAR
// grammar.
func VerifyQuotedChar(b byte) bool {
	if b > 0x7f {
		return false
	}
	return IsTextCharNoQuotedSpecial(b) || b == '\\' || b == '"'
}

// NewQuotedChar validates b and wraps it.
func NewQuotedChar(b byte) (QuotedChar, error) {
	if !VerifyQuotedChar(b) {
		return QuotedChar{}, &InvalidValue{Production: "quoted-char", Offset: 0, Reason: "not a valid QUOTED-CHAR"}
	}
	return QuotedChar{inner: b}, nil
}

// NewQuotedCharUnchecked wraps b without validation.
func NewQuotedCharUnchecked(b byte) QuotedChar {
	return QuotedChar{inner: b}
}

// Byte returns the underlying character.
func (q QuotedChar) Byte() byte { return q.inner }

// Charset names a text encoding, as used by SEARCH CHARSET and the
// BADCHARSET response code. On the wire a charset name is an atom or a
// quoted string; this package validates only the name's syntax, never
// its membership in the IANA charset registry, and never decodes text
// (charset conversion is out of scope for this codec).
type Charset struct {
	asAtom   *Atom
	asQuoted *Quoted
}

// NewCharset builds a Charset from s, preferring the atom
// representation (shorter, no escaping) and falling back to quoted.
func NewCharset(s string) (Charset, error) {
	if a, err := NewAtom(s); err == nil {
		return Charset{asAtom: &a}, nil
	}
	if q, err := NewQuoted(s); err == nil {
		return Charset{asQuoted: &q}, nil
	}
	return Charset{}, &InvalidValue{Production: "charset", Offset: -1, Reason: "neither a valid atom nor a valid quoted string"}
}

// CharsetFromAtom wraps an already-validated Atom as a Charset.
func CharsetFromAtom(a Atom) Charset { return Charset{asAtom: &a} }

// CharsetFromQuoted wraps an already-validated Quoted as a Charset.
func CharsetFromQuoted(q Quoted) Charset { return Charset{asQuoted: &q} }

// String returns the charset name text.
func (c Charset) String() string {
	if c.asAtom != nil {
		return c.asAtom.String()
	}
	if c.asQuoted != nil {
		return c.asQuoted.String()
	}
	return ""
}

// IsQuoted reports whether this Charset was constructed (or parsed) in
// quoted-string form rather than atom form.
func (c Charset) IsQuoted() bool { return c.asQuoted != nil }
