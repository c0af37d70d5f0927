package codec

import (
	"fmt"

	"tally/internal/core"
)

// FormatDate renders a calendar date as the draft string "YYYY-MM-DD".
func FormatDate(d core.LocalDate) string {
	return d.String()
}

// ParseDate decodes a draft date string. Both "-" and the legacy "/"
// separator are accepted; the result is a plain calendar date, so no
// host UTC offset can shift the day.
func ParseDate(s string) (core.LocalDate, error) {
	d, err := core.ParseLocalDate(s)
	if err != nil {
		return core.LocalDate{}, fmt.Errorf("decode date: %w", err)
	}
	return d, nil
}
