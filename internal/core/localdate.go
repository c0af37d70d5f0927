// Package core holds the domain types of the ledger: transactions,
// categories, money in minor units and local calendar dates.
//
// This file implements LocalDate, a calendar date with no time-of-day
// and no timezone. Transaction dates are chosen by the user on a
// calendar; converting them through an instant type shifts the day for
// hosts west of UTC, so the date is kept as plain year/month/day and
// only converted to an instant at a named location when needed.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// Today returns the current calendar date in the host's local timezone.
func Today() LocalDate {
	return DateOf(time.Now())
}

// DateOf truncates an instant to the calendar date observed at the
// instant's own location.
func DateOf(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: m, Day: d}
}

// NewLocalDate builds a date from components, normalizing overflow the
// way time.Date does.
func NewLocalDate(year int, month time.Month, day int) LocalDate {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseLocalDate parses "YYYY-MM-DD". The legacy "YYYY/MM/DD" form is
// accepted too: the stored records of earlier versions carry it, a
// leftover of a workaround where swapping the separator forced local
// rather than UTC parsing on the client platform.
func ParseLocalDate(s string) (LocalDate, error) {
	s = strings.TrimSpace(s)
	norm := strings.ReplaceAll(s, "/", "-")
	parts := strings.Split(norm, "-")
	if len(parts) != 3 {
		return LocalDate{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDate)
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return LocalDate{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDate)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return LocalDate{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDate)
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil {
		return LocalDate{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDate)
	}
	ld := LocalDate{Year: y, Month: time.Month(m), Day: d}
	if err := ld.Validate(); err != nil {
		return LocalDate{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return ld, nil
}

// String formats the date as "YYYY-MM-DD", the draft representation.
func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d LocalDate) IsZero() bool {
	return d == LocalDate{}
}

func (d LocalDate) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	if d.Month < time.January || d.Month > time.December {
		return ErrInvalidDate
	}
	if d.Day < 1 || d.Day > daysIn(d.Year, d.Month) {
		return ErrInvalidDate
	}
	return nil
}

// In returns midnight of the date at the given location. This is the
// single defined conversion from calendar date to storage instant;
// round-tripping through DateOf at the same location always yields the
// same calendar day, whatever the location's UTC offset.
func (d LocalDate) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// MarshalJSON encodes the date as its "YYYY-MM-DD" string form.
func (d LocalDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *LocalDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseLocalDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d LocalDate) Before(other LocalDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
