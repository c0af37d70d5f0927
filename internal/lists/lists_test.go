package lists

import (
	"context"
	"testing"
	"time"

	"tally/internal/core"
	"tally/internal/store/memory"
)

func seed(t *testing.T, s *memory.Store, desc string, d core.LocalDate) {
	t.Helper()
	_, err := s.Create(context.Background(), "u1", core.Transaction{
		Description: desc,
		Type:        core.Expense,
		Amount:      core.Money{Cents: 100},
		Category:    "Food",
		Date:        d,
		Account:     "Checking",
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("seed %s: %v", desc, err)
	}
}

func TestRecentKeepsNewestN(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSeeded()
	for day := 1; day <= 6; day++ {
		seed(t, s, "tx", core.LocalDate{Year: 2024, Month: time.March, Day: day})
	}

	r := NewRecent(s, "u1", 4)
	if len(r.Snapshot()) != 0 {
		t.Fatal("empty before first refresh")
	}
	if err := r.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	got := r.Snapshot()
	if len(got) != 4 {
		t.Fatalf("expected 4, got %d", len(got))
	}
	if got[0].Date.Day != 6 || got[3].Date.Day != 3 {
		t.Fatalf("wrong slice: %+v", got)
	}
}

func TestMonthlyFiltersActivePeriod(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSeeded()
	seed(t, s, "feb", core.LocalDate{Year: 2024, Month: time.February, Day: 10})
	seed(t, s, "mar-1", core.LocalDate{Year: 2024, Month: time.March, Day: 1})
	seed(t, s, "mar-2", core.LocalDate{Year: 2024, Month: time.March, Day: 15})

	m := NewMonthly(s, "u1", time.Minute)
	m.SetPeriod(2024, time.March)

	got, err := m.Transactions(ctx)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 march entries, got %d", len(got))
	}

	m.SetPeriod(2024, time.February)
	got, err = m.Transactions(ctx)
	if err != nil || len(got) != 1 || got[0].Description != "feb" {
		t.Fatalf("february: %+v err=%v", got, err)
	}
}

func TestMonthlyRefreshPicksUpNewCommits(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSeeded()
	seed(t, s, "first", core.LocalDate{Year: 2024, Month: time.March, Day: 1})

	m := NewMonthly(s, "u1", time.Minute)
	m.SetPeriod(2024, time.March)
	if _, err := m.Transactions(ctx); err != nil {
		t.Fatalf("prime: %v", err)
	}

	seed(t, s, "second", core.LocalDate{Year: 2024, Month: time.March, Day: 2})

	// Without a refresh the cached list is served.
	got, _ := m.Transactions(ctx)
	if len(got) != 1 {
		t.Fatalf("cache should serve stale list, got %d", len(got))
	}

	if err := m.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	got, _ = m.Transactions(ctx)
	if len(got) != 2 {
		t.Fatalf("refresh must pick up the commit, got %d", len(got))
	}
}
