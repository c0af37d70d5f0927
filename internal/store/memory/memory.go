// Package memory is an in-process store used for tests and as the
// default backend when no database is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"tally/internal/core"
	"tally/internal/store"
)

type Store struct {
	mu         sync.Mutex
	byOwner    map[string][]core.Transaction
	categories []core.Category
	accounts   []core.Account
}

var _ store.Store = (*Store)(nil)

func New(categories []core.Category, accounts []core.Account) *Store {
	return &Store{
		byOwner:    make(map[string][]core.Transaction),
		categories: categories,
		accounts:   accounts,
	}
}

// NewSeeded returns a store preloaded with a small default taxonomy.
func NewSeeded() *Store {
	return New(
		[]core.Category{
			{ID: "cat-salary", Value: "Salary", Type: "income", Ordering: 1},
			{ID: "cat-food", Value: "Food", Type: "expense", Ordering: 1, Description: "groceries and eating out"},
			{ID: "cat-home", Value: "Home", Type: "expense", Ordering: 2},
			{ID: "cat-other", Value: "Other", Type: "other", Ordering: 9},
		},
		[]core.Account{
			{ID: "acc-checking", Name: "Checking"},
			{ID: "acc-savings", Name: "Savings"},
		},
	)
}

func (s *Store) Create(_ context.Context, owner string, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx.ID = uuid.NewString()
	s.byOwner[owner] = append(s.byOwner[owner], tx)
	return tx.ID, nil
}

func (s *Store) Update(_ context.Context, owner string, tx core.Transaction) error {
	if tx.ID == "" {
		return store.ErrMissingID
	}
	if err := tx.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.byOwner[owner]
	for i := range items {
		if items[i].ID == tx.ID {
			items[i] = tx
			return nil
		}
	}
	return fmt.Errorf("update %q: %w", tx.ID, store.ErrNotFound)
}

func (s *Store) Get(_ context.Context, owner, id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.byOwner[owner] {
		if tx.ID == id {
			return tx, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("get %q: %w", id, store.ErrNotFound)
}

func (s *Store) ListAll(_ context.Context, owner string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Transaction(nil), s.byOwner[owner]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date)
	})
	return out, nil
}

func (s *Store) ListCategories(_ context.Context, _ string) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.categories...), nil
}

func (s *Store) ListAccounts(_ context.Context, _ string) ([]core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Account(nil), s.accounts...), nil
}
