// Package codec converts transaction fields between their storage form
// and the raw string form a draft holds: calendar dates, the masked
// currency amount and the serialized category selection.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tally/internal/core"
)

// ErrMalformedAmount reports a masked amount with no usable digits.
// Callers surface it as a validation problem, never as a crash.
var ErrMalformedAmount = errors.New("malformed amount")

// FormatAmount renders minor units as the masked input value: a sign
// prefix keyed on the transaction type, space-separated thousands and
// exactly two fraction digits. 123456 as an expense is "- $ 1 234.56".
func FormatAmount(cents int64, t core.TransactionType) string {
	prefix := "$ "
	switch t {
	case core.Income:
		prefix = "+ $ "
	case core.Expense:
		prefix = "- $ "
	}
	if cents < 0 {
		cents = 0
	}
	return prefix + groupThousands(cents/100) + fmt.Sprintf(".%02d", cents%100)
}

// ParseMaskedAmount recovers minor units from a masked string. The sign
// prefix and every separator are stripped and the surviving digit run
// is read as minor units directly, so pasted text with odd punctuation
// degrades to an error instead of a wrong amount.
func ParseMaskedAmount(s string) (int64, error) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	cents, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	return cents, nil
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	head := len(s) % 3
	var b strings.Builder
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
