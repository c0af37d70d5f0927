// Package editor coordinates the lifecycle of one transaction being
// authored or edited: it owns the draft, decides between create and
// update on submit, and sequences the post-commit effects.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/core"
	"tally/internal/draft"
	"tally/internal/log"
	"tally/internal/store"
)

type Verb string

const (
	VerbCreate Verb = "create"
	VerbUpdate Verb = "update"
)

var (
	// ErrSubmitInFlight reports a second submit while one is still
	// pending on the same session.
	ErrSubmitInFlight = errors.New("submit already in flight")

	// ErrSessionClosed reports a submit on a torn-down session.
	ErrSessionClosed = errors.New("editor session closed")
)

// Refresher is a read cache the editor pokes after a successful
// commit. The editor never inspects what the refresh produced.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Notifier publishes commit events for out-of-process collaborators.
type Notifier interface {
	NotifyCommitted(ctx context.Context, id string, verb Verb) error
}

// Host is the surface the editor signals when it is done: clearing the
// record-under-edit selection and closing or navigating back.
type Host interface {
	ClearCurrent()
	Close()
}

// Config carries exactly the session inputs; nothing is ambient.
// Existing selects edit mode; Recent and Monthly are the two list
// caches refreshed after commit. Notifier and Host may be nil.
type Config struct {
	Owner      string
	Writer     store.TransactionWriter
	Categories []core.Category
	Existing   *core.Transaction
	Recent     Refresher
	Monthly    Refresher
	Notifier   Notifier
	Host       Host
	Logger     *log.Logger
	Now        func() time.Time
}

// Session owns exactly one draft. Field edits are synchronous local
// mutations; Submit is the only suspending operation.
type Session struct {
	mu       sync.Mutex
	inFlight bool
	closed   bool

	draft *draft.Draft
	cfg   Config
}

func NewSession(cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentEditor)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Session{
		draft: draft.Load(cfg.Existing, cfg.Categories),
		cfg:   cfg,
	}
}

// Draft exposes the session's draft for field edits.
func (s *Session) Draft() *draft.Draft {
	return s.draft
}

// EditMode reports whether the session was opened on an existing record.
func (s *Session) EditMode() bool {
	return s.draft.EditMode()
}

// Title is the editor heading for the current mode and chosen type.
func (s *Session) Title() string {
	if s.EditMode() {
		return "Update Transaction"
	}
	switch core.TransactionType(s.draft.Get(draft.FieldType)) {
	case core.Income:
		return "Add a new Income"
	case core.Expense:
		return "Add a new Expense"
	}
	return "Add a new Transaction"
}

// Close tears the session down. An in-flight submit is allowed to
// finish against the store, but its post-commit effects are suppressed.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Cancel abandons the draft without submitting: the selection is
// cleared and the host closed, nothing is written.
func (s *Session) Cancel() {
	s.Close()
	if s.cfg.Host != nil {
		s.cfg.Host.ClearCurrent()
		s.cfg.Host.Close()
	}
}

// Submit validates the draft, encodes it and dispatches exactly one
// create-or-update call. On success the draft is reset, the editing
// selection cleared, both list caches refreshed and the host closed,
// strictly in that order after the store call returns. On failure the
// error is propagated and the draft kept so the user can retry.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	s.inFlight = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	if err := s.draft.Validate(); err != nil {
		return err
	}
	tx, err := s.draft.Encode()
	if err != nil {
		return err
	}

	verb := VerbUpdate
	id := tx.ID
	if tx.ID == "" {
		verb = VerbCreate
		tx.CreatedAt = s.cfg.Now()
		id, err = s.cfg.Writer.Create(ctx, s.cfg.Owner, tx)
	} else {
		// CreatedAt carries the loaded snapshot's value; updates
		// never re-stamp it.
		err = s.cfg.Writer.Update(ctx, s.cfg.Owner, tx)
	}
	if err != nil {
		return fmt.Errorf("%s transaction: %w", verb, err)
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		s.cfg.Logger.Warn("session closed mid-submit, suppressing post-commit effects",
			log.FieldRecordID, id, log.FieldVerb, string(verb))
		return nil
	}

	s.draft.Reset()
	if s.cfg.Host != nil {
		s.cfg.Host.ClearCurrent()
	}
	s.refresh(ctx)
	s.notify(ctx, id, verb)
	if s.cfg.Host != nil {
		s.cfg.Host.Close()
	}

	s.cfg.Logger.Info("transaction committed",
		log.FieldRecordID, id,
		log.FieldVerb, string(verb),
		log.FieldAmountCents, tx.Amount.Cents,
		log.FieldCategory, tx.Category)
	return nil
}

// refresh pokes both list caches concurrently and waits for them;
// their failures are logged, never returned, so a broken cache cannot
// undo a commit that already happened.
func (s *Session) refresh(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range []Refresher{s.cfg.Recent, s.cfg.Monthly} {
		if r == nil {
			continue
		}
		g.Go(func() error { return r.Refresh(gctx) })
	}
	if err := g.Wait(); err != nil {
		s.cfg.Logger.Error("list refresh after commit failed", log.FieldError, err)
	}
}

func (s *Session) notify(ctx context.Context, id string, verb Verb) {
	if s.cfg.Notifier == nil {
		return
	}
	if err := s.cfg.Notifier.NotifyCommitted(ctx, id, verb); err != nil {
		// Commit is already durable; the sync event is best effort.
		s.cfg.Logger.Error("commit notification failed",
			log.FieldRecordID, id, log.FieldError, err)
	}
}
