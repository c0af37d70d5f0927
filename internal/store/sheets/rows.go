package sheets

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"tally/internal/core"
)

// Row layout, columns A through J.
const (
	colID = iota
	colOwner
	colDescription
	colType
	colAmountCents
	colCategory
	colDate
	colAccount
	colNote
	colCreatedAt
)

func rowOf(owner string, tx core.Transaction) []any {
	return []any{
		tx.ID,
		owner,
		tx.Description,
		string(tx.Type),
		strconv.FormatInt(tx.Amount.Cents, 10),
		tx.Category,
		tx.Date.String(),
		tx.Account,
		tx.Note,
		tx.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func transactionOf(row []any) (core.Transaction, string, error) {
	if len(row) <= colCreatedAt {
		return core.Transaction{}, "", fmt.Errorf("short row: %d cells", len(row))
	}
	cell := func(i int) string { return fmt.Sprint(row[i]) }

	cents, err := strconv.ParseInt(cell(colAmountCents), 10, 64)
	if err != nil {
		return core.Transaction{}, "", fmt.Errorf("amount cell: %w", err)
	}
	date, err := core.ParseLocalDate(cell(colDate))
	if err != nil {
		return core.Transaction{}, "", fmt.Errorf("date cell: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, cell(colCreatedAt))
	if err != nil {
		return core.Transaction{}, "", fmt.Errorf("created_at cell: %w", err)
	}

	return core.Transaction{
		ID:          cell(colID),
		Description: cell(colDescription),
		Type:        core.TransactionType(cell(colType)),
		Amount:      core.Money{Cents: cents},
		Category:    cell(colCategory),
		Date:        date,
		Account:     cell(colAccount),
		Note:        cell(colNote),
		CreatedAt:   createdAt,
	}, cell(colOwner), nil
}

func sortNewestFirst(txs []core.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[j].Date.Before(txs[i].Date)
	})
}
