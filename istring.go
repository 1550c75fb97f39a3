package imap

// IString is a string in quoted or literal form. Both forms encode
// the same abstract text or octet payload; the choice affects only
// wire representation, never equality semantics beyond what the
// underlying Quoted/Literal carriers already mean.
type IString struct {
	quoted  *Quoted
	literal *Literal
}

// IStringFromQuoted wraps an already-validated Quoted.
func IStringFromQuoted(q Quoted) IString { return IString{quoted: &q} }

// IStringFromLiteral wraps an already-validated Literal.
func IStringFromLiteral(l Literal) IString { return IString{literal: &l} }

// NewIString chooses the smallest-risk representation for s: quoted
// when s fits a quoted string (shorter on the wire, no continuation
// round-trip to wait for), literal otherwise. Per §4.2, encoders never
// re-select once a value is constructed or parsed.
func NewIString(s string) (IString, error) {
	if q, err := NewQuoted(s); err == nil {
		return IString{quoted: &q}, nil
	}
	if l, err := NewLiteral([]byte(s)); err == nil {
		return IString{literal: &l}, nil
	}
	return IString{}, &InvalidValue{Production: "istring", Offset: -1, Reason: "neither quotable nor a valid literal"}
}

// IsLiteral reports whether this IString is carried in literal form.
func (s IString) IsLiteral() bool { return s.literal != nil }

// Text returns the string's text content, decoding neither form
// further (a Literal's bytes are interpreted as-is).
func (s IString) Text() string {
	if s.quoted != nil {
		return s.quoted.String()
	}
	if s.literal != nil {
		return string(s.literal.Bytes())
	}
	return ""
}

// Quoted returns the Quoted carrier and true if this IString holds one.
func (s IString) Quoted() (Quoted, bool) {
	if s.quoted != nil {
		return *s.quoted, true
	}
	return Quoted{}, false
}

// Literal returns the Literal carrier and true if this IString holds
// one.
func (s IString) Literal() (Literal, bool) {
	if s.literal != nil {
		return *s.literal, true
	}
	return Literal{}, false
}

// NString is a nullable IString: absence is the wire token NIL.
type NString struct {
	value *IString
}

// NilNString is the NString representing NIL.
func NilNString() NString { return NString{} }

// NewNString wraps a present IString.
func NewNString(s IString) NString { return NString{value: &s} }

// NStringFromText builds a present NString from plain text, choosing
// the smallest-risk IString representation.
func NStringFromText(s string) (NString, error) {
	is, err := NewIString(s)
	if err != nil {
		return NString{}, err
	}
	return NString{value: &is}, nil
}

// IsNil reports whether this NString is NIL.
func (n NString) IsNil() bool { return n.value == nil }

// Value returns the underlying IString and true if present.
func (n NString) Value() (IString, bool) {
	if n.value != nil {
		return *n.value, true
	}
	return IString{}, false
}

// Text returns the string's text, or "" if NIL. Callers that must
// distinguish NIL from the empty string should use Value/IsNil
// instead.
func (n NString) Text() string {
	if n.value == nil {
		return ""
	}
	return n.value.Text()
}

// AString is an atom-or-string: wider than a plain atom because the
// atom alternative here is ASTRING-CHAR (allows "]"), and wider than
// IString because it additionally allows the bare-atom form.
type AString struct {
	atom   *AtomExt
	string *IString
}

// AStringFromAtom wraps an already-validated AtomExt.
func AStringFromAtom(a AtomExt) AString { return AString{atom: &a} }

// AStringFromString wraps an already-validated IString.
func AStringFromString(s IString) AString { return AString{string: &s} }

// NewAString chooses the smallest-risk representation for s: a bare
// atom if s satisfies ASTRING-CHAR, quoted if it additionally needs
// quoting, literal as a last resort.
func NewAString(s string) (AString, error) {
	if a, err := NewAtomExt(s); err == nil {
		return AString{atom: &a}, nil
	}
	is, err := NewIString(s)
	if err != nil {
		return AString{}, &InvalidValue{Production: "astring", Offset: -1, Reason: "neither an astring atom nor a valid string"}
	}
	return AString{string: &is}, nil
}

// IsAtom reports whether this AString is carried in bare-atom form.
func (a AString) IsAtom() bool { return a.atom != nil }

// Text returns the astring's text content.
func (a AString) Text() string {
	if a.atom != nil {
		return a.atom.String()
	}
	if a.string != nil {
		return a.string.Text()
	}
	return ""
}

// Atom returns the AtomExt carrier and true if this AString holds one.
func (a AString) Atom() (AtomExt, bool) {
	if a.atom != nil {
		return *a.atom, true
	}
	return AtomExt{}, false
}

// IString returns the IString carrier and true if this AString holds
// one.
func (a AString) IString() (IString, bool) {
	if a.string != nil {
		return *a.string, true
	}
	return IString{}, false
}
