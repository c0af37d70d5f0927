package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"

	// CategoryOther categories are selectable regardless of the
	// transaction type chosen in the editor.
	CategoryOther = "other"
)

type (
	TransactionType string

	Money struct {
		Cents int64 `json:"cents"`
	}

	// Transaction is a persisted ledger entry. ID is empty until the
	// record has been created in a store. CreatedAt is stamped exactly
	// once at creation and is never re-stamped by edits.
	Transaction struct {
		ID          string          `json:"id,omitempty"`
		Description string          `json:"description"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"` // category value key
		Date        LocalDate       `json:"date"`
		Account     string          `json:"account"`
		Note        string          `json:"note"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	Category struct {
		ID          string `json:"id"`
		Value       string `json:"value"`
		Type        string `json:"type"` // "income" | "expense" | "other"
		Ordering    int    `json:"ordering,omitempty"`
		Description string `json:"description,omitempty"`
	}

	Account struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrNegativeAmount   = errors.New("negative amount")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyAccount     = errors.New("empty account")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// SelectableFor reports whether the category may be offered for a
// transaction of the given type. "other" categories match either type.
func (c Category) SelectableFor(t TransactionType) bool {
	return c.Type == string(t) || c.Type == CategoryOther
}

func (tx Transaction) Validate() error {
	if len(strings.TrimSpace(tx.Description)) == 0 {
		return ErrEmptyDescription
	}
	if !tx.Type.Valid() {
		return ErrInvalidType
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(tx.Category) == "" {
		return ErrEmptyCategory
	}
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(tx.Account) == "" {
		return ErrEmptyAccount
	}
	return nil
}

// FindCategory resolves a stored category value key against a category
// list. Records whose category was since deleted resolve to nothing.
func FindCategory(categories []Category, value string) (Category, bool) {
	for _, c := range categories {
		if c.Value == value {
			return c, true
		}
	}
	return Category{}, false
}
