package entity

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// Date is a calendar date without time-of-day. Wire format "2006-01-02".
type Date struct {
	time.Time
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: parse date %q", ErrInvalidArgument, s)
	}

	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}

	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}

	// Some revisions of the backend send a full timestamp where a plain
	// date belongs. Only the date part matters here.
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// DateTime is a zone-less local timestamp, the single canonical schedule
// representation. The decoder is deliberately lenient: the backend history
// mixed RFC3339, bare ISO and "date + time" strings, and all of them must
// normalize to one value. It always encodes as "2006-01-02T15:04:05".
type DateTime struct {
	time.Time
}

var dateTimeLayouts = []string{
	time.RFC3339,
	DateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func ParseDateTime(s string) (DateTime, error) {
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return DateTime{t}, nil
		}
	}

	return DateTime{}, fmt.Errorf("%w: parse timestamp %q", ErrInvalidArgument, s)
}

func (d DateTime) String() string {
	return d.Format(DateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}

	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = DateTime{}
		return nil
	}

	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

func BeginningOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// DaysUntilBirthday counts the days from today to the next occurrence of
// the birth month/day. Zero when it falls on today. Feb 29 birthdays clamp
// to Feb 28 in non-leap target years.
func DaysUntilBirthday(birth Date, today time.Time) int {
	y, m, d := today.Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	next := birthdayInYear(birth, y)
	if next.Before(t) {
		next = birthdayInYear(birth, y+1)
	}

	return int(next.Sub(t).Hours() / 24)
}

func birthdayInYear(birth Date, year int) time.Time {
	month, day := birth.Month(), birth.Day()
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
