package codec

import (
	"errors"
	"testing"
	"time"

	"tally/internal/core"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		cents int64
		typ   core.TransactionType
		want  string
	}{
		{450, core.Expense, "- $ 4.50"},
		{450, core.Income, "+ $ 4.50"},
		{450, "", "$ 4.50"},
		{0, core.Expense, "- $ 0.00"},
		{5, core.Income, "+ $ 0.05"},
		{123456, core.Income, "+ $ 1 234.56"},
		{100000000, core.Expense, "- $ 1 000 000.00"},
		{99999, "", "$ 999.99"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.cents, tc.typ); got != tc.want {
			t.Fatalf("FormatAmount(%d, %q) = %q, want %q", tc.cents, tc.typ, got, tc.want)
		}
	}
}

func TestParseMaskedAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"- $ 4.50", 450, true},
		{"+ $ 1 234.56", 123456, true},
		{"$ 0.00", 0, true},
		{"450", 450, true},
		{"4,50", 450, true},
		{"nonsense pasted text 7", 7, true}, // degrades, never panics
		{"$ ", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseMaskedAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if !errors.Is(err, ErrMalformedAmount) {
				t.Fatalf("%q expected ErrMalformedAmount, got %v", tc.in, err)
			}
		}
	}
}

func TestAmountRoundTrip(t *testing.T) {
	amounts := []int64{0, 1, 99, 100, 450, 999, 1000, 123456, 100000000}
	types := []core.TransactionType{core.Income, core.Expense, ""}
	for _, m := range amounts {
		for _, typ := range types {
			got, err := ParseMaskedAmount(FormatAmount(m, typ))
			if err != nil {
				t.Fatalf("round trip %d/%q: %v", m, typ, err)
			}
			if got != m {
				t.Fatalf("round trip %d/%q: got %d", m, typ, got)
			}
		}
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	c := core.Category{ID: "cat-1", Value: "Food", Type: "expense", Ordering: 2, Description: "groceries and eating out"}
	got, err := DecodeSelection(EncodeSelection(c))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != c {
		t.Fatalf("round trip: got %+v", got)
	}
}

func TestDecodeSelectionMalformed(t *testing.T) {
	cases := []string{"", "  ", "Food", "{not json", `{"id":"x"}`, `[]`}
	for _, s := range cases {
		if _, err := DecodeSelection(s); !errors.Is(err, ErrMalformedSelection) {
			t.Fatalf("%q expected ErrMalformedSelection, got %v", s, err)
		}
	}
}

func TestDateCodec(t *testing.T) {
	d := core.LocalDate{Year: 2024, Month: time.March, Day: 1}
	got, err := ParseDate(FormatDate(d))
	if err != nil || got != d {
		t.Fatalf("round trip: got %v err=%v", got, err)
	}
	if _, err := ParseDate("01-03-2024x"); err == nil {
		t.Fatal("expected decode error")
	}
	legacy, err := ParseDate("2024/03/01")
	if err != nil || legacy != d {
		t.Fatalf("legacy separator: got %v err=%v", legacy, err)
	}
}
