// Package lists holds the two read caches the editor refreshes after
// every commit: the recent-transactions list shown on the home view
// and the per-month list behind the active month filter.
package lists

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tally/internal/cache"
	"tally/internal/core"
	"tally/internal/store"
)

// DefaultRecentLimit matches the number of entries the summary view
// shows before "see all".
const DefaultRecentLimit = 4

// Recent caches the newest transactions of one owner.
type Recent struct {
	mu     sync.Mutex
	reader store.TransactionReader
	owner  string
	limit  int
	items  []core.Transaction
}

func NewRecent(reader store.TransactionReader, owner string, limit int) *Recent {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return &Recent{reader: reader, owner: owner, limit: limit}
}

// Refresh re-queries the store and keeps the first entries, relying on
// the reader's newest-first ordering.
func (r *Recent) Refresh(ctx context.Context) error {
	all, err := r.reader.ListAll(ctx, r.owner)
	if err != nil {
		return fmt.Errorf("refresh recent list: %w", err)
	}
	if len(all) > r.limit {
		all = all[:r.limit]
	}
	r.mu.Lock()
	r.items = all
	r.mu.Unlock()
	return nil
}

// Snapshot returns the cached entries without touching the store.
func (r *Recent) Snapshot() []core.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Transaction(nil), r.items...)
}

// Monthly caches per-month transaction lists keyed by "YYYY-MM",
// tracking one active period the way the month filter on the summary
// view does.
type Monthly struct {
	mu     sync.Mutex
	reader store.TransactionReader
	owner  string
	cache  *cache.TTLCache[[]core.Transaction]
	year   int
	month  time.Month
}

func NewMonthly(reader store.TransactionReader, owner string, ttl time.Duration) *Monthly {
	now := time.Now()
	return &Monthly{
		reader: reader,
		owner:  owner,
		cache:  cache.New[[]core.Transaction](24, ttl),
		year:   now.Year(),
		month:  now.Month(),
	}
}

// SetPeriod switches the active month filter.
func (m *Monthly) SetPeriod(year int, month time.Month) {
	m.mu.Lock()
	m.year, m.month = year, month
	m.mu.Unlock()
}

func (m *Monthly) period() (int, time.Month) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.year, m.month
}

// Refresh re-queries the active period and replaces its cache entry.
func (m *Monthly) Refresh(ctx context.Context) error {
	year, month := m.period()
	return m.refreshPeriod(ctx, year, month)
}

// Transactions returns the active period's list, querying the store
// only on a cache miss.
func (m *Monthly) Transactions(ctx context.Context) ([]core.Transaction, error) {
	year, month := m.period()
	if items, ok := m.cache.Get(periodKey(year, month)); ok {
		return items, nil
	}
	if err := m.refreshPeriod(ctx, year, month); err != nil {
		return nil, err
	}
	items, _ := m.cache.Get(periodKey(year, month))
	return items, nil
}

func (m *Monthly) refreshPeriod(ctx context.Context, year int, month time.Month) error {
	all, err := m.reader.ListAll(ctx, m.owner)
	if err != nil {
		return fmt.Errorf("refresh month list %d-%02d: %w", year, month, err)
	}
	var filtered []core.Transaction
	for _, tx := range all {
		if tx.Date.Year == year && tx.Date.Month == month {
			filtered = append(filtered, tx)
		}
	}
	m.cache.Set(periodKey(year, month), filtered)
	return nil
}

func periodKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}
