// Package store defines the document store boundary the editor talks
// to. Implementations live in the memory, sqlite and sheets
// subpackages; the editor and lists only ever see these interfaces.
package store

import (
	"context"

	"tally/internal/core"
)

// Ports for outbound adapters.
type (
	TransactionWriter interface {
		// Create persists a new transaction under the owner and
		// returns its assigned id.
		Create(ctx context.Context, owner string, tx core.Transaction) (id string, err error)

		// Update rewrites an existing transaction; tx must carry
		// its id. The stored CreatedAt is whatever tx carries.
		Update(ctx context.Context, owner string, tx core.Transaction) error
	}

	TransactionReader interface {
		// ListAll returns every transaction of the owner, newest
		// date first.
		ListAll(ctx context.Context, owner string) ([]core.Transaction, error)

		// Get returns one transaction by id.
		Get(ctx context.Context, owner, id string) (core.Transaction, error)
	}

	CategoryReader interface {
		ListCategories(ctx context.Context, owner string) ([]core.Category, error)
	}

	AccountReader interface {
		ListAccounts(ctx context.Context, owner string) ([]core.Account, error)
	}
)

// Store is the full surface a backend provides.
type Store interface {
	TransactionWriter
	TransactionReader
	CategoryReader
	AccountReader
}
