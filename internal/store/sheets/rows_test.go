package sheets

import (
	"testing"
	"time"

	"tally/internal/core"
)

func TestRowRoundTrip(t *testing.T) {
	tx := core.Transaction{
		ID:          "abc",
		Description: "Coffee",
		Type:        core.Expense,
		Amount:      core.Money{Cents: 450},
		Category:    "Food",
		Date:        core.LocalDate{Year: 2024, Month: time.March, Day: 1},
		Account:     "Checking",
		Note:        "with a friend",
		CreatedAt:   time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	back, owner, err := transactionOf(rowOf("u1", tx))
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if owner != "u1" {
		t.Fatalf("owner %q", owner)
	}
	if back != tx {
		t.Fatalf("round trip:\n got %+v\nwant %+v", back, tx)
	}
}

func TestTransactionOfRejectsBadRows(t *testing.T) {
	cases := [][]any{
		{},
		{"id", "u1", "desc"},
		{"id", "u1", "desc", "expense", "not-a-number", "Food", "2024-03-01", "Checking", "", "2024-03-01T12:00:00Z"},
		{"id", "u1", "desc", "expense", "450", "Food", "not-a-date", "Checking", "", "2024-03-01T12:00:00Z"},
		{"id", "u1", "desc", "expense", "450", "Food", "2024-03-01", "Checking", "", "not-a-time"},
	}
	for i, row := range cases {
		if _, _, err := transactionOf(row); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestSortNewestFirst(t *testing.T) {
	txs := []core.Transaction{
		{ID: "a", Date: core.LocalDate{Year: 2024, Month: time.January, Day: 1}},
		{ID: "b", Date: core.LocalDate{Year: 2024, Month: time.March, Day: 1}},
		{ID: "c", Date: core.LocalDate{Year: 2024, Month: time.February, Day: 1}},
	}
	sortNewestFirst(txs)
	if txs[0].ID != "b" || txs[2].ID != "a" {
		t.Fatalf("order: %+v", txs)
	}
}
