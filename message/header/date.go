package header

import (
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrEmptyDate is returned by ParseDate when there is nothing to parse.
var ErrEmptyDate = errors.New("empty date")

// UnixDateWithEarlyYear is a format seen in the wild that neither net/mail nor
// dateparse recognize.
const UnixDateWithEarlyYear = "Mon Jan 02 2006 15:04:05 -0700"

// Date is a timestamp written in RFC 5322 format.
type Date struct {
	t time.Time
}

// NewDate returns a Date value for t.
func NewDate(t time.Time) *Date {
	return &Date{t}
}

// ParseDate parses a date the way mail clients actually write them. RFC 5322
// dates are tried first, then anything dateparse understands.
func ParseDate(s string) (*Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyDate
	}

	if t, err := mail.ParseDate(s); err == nil {
		return &Date{t}, nil
	}

	if t, err := dateparse.ParseAny(s); err == nil {
		return &Date{t}, nil
	}

	t, err := time.Parse(UnixDateWithEarlyYear, s)
	if err != nil {
		return nil, fmt.Errorf("unable to parse date %q: %w", s, err)
	}
	return &Date{t}, nil
}

// Time returns the timestamp.
func (d *Date) Time() time.Time {
	return d.t
}

// String returns the date in RFC 5322 format.
func (d *Date) String() string {
	return d.t.Format(time.RFC1123Z)
}

// WriteHeader writes the date. Dates never fold.
func (d *Date) WriteHeader(w io.Writer, written int) (int, error) {
	lw := newLineWriter(w, written)
	lw.write(d.String())
	return lw.end()
}
