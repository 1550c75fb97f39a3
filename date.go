package imap

import "time"

// DateLayout is the format of the date production (used in SEARCH keys
// such as SINCE and BEFORE): a calendar day, no time-of-day component.
const DateLayout = "02-Jan-2006"

// DateTimeLayout is the format of the date-time production, as carried
// by the INTERNALDATE fetch/status data item.
const DateTimeLayout = "02-Jan-2006 15:04:05 -0700"

// Date is a calendar day with no time-of-day component, as used in
// SEARCH date keys.
type Date struct {
	inner time.Time
}

// NewDate truncates t to a calendar day in its own location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{inner: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// ParseDate parses s in DateLayout form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &ParseFailure{Production: "date", Offset: 0, Reason: err.Error()}
	}
	return Date{inner: t}, nil
}

// Time returns the underlying time.Time.
func (d Date) Time() time.Time { return d.inner }

// String renders the date in its wire form.
func (d Date) String() string { return d.inner.Format(DateLayout) }

// DateTime is a full IMAP internal date-time, as carried by
// INTERNALDATE.
type DateTime struct {
	inner time.Time
}

// NewDateTime wraps t.
func NewDateTime(t time.Time) DateTime { return DateTime{inner: t} }

// ParseDateTime parses s in DateTimeLayout form.
func ParseDateTime(s string) (DateTime, error) {
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return DateTime{}, &ParseFailure{Production: "date-time", Offset: 0, Reason: err.Error()}
	}
	return DateTime{inner: t}, nil
}

// Time returns the underlying time.Time.
func (d DateTime) Time() time.Time { return d.inner }

// String renders the date-time in its wire form (quoted by callers
// that encode it, per the date-time production's surrounding DQUOTEs).
func (d DateTime) String() string { return d.inner.Format(DateTimeLayout) }
