// Package worker mirrors committed transactions into a remote store.
package worker

import (
	"context"
	"errors"
	"fmt"

	"tally/internal/events"
	"tally/internal/log"
	"tally/internal/store"
)

// SyncWorker consumes commit messages and copies the committed record
// from the local store to the remote mirror. The message carries only
// the id, so the freshest local state always wins no matter how late
// the message arrives.
type SyncWorker struct {
	local  store.TransactionReader
	remote store.TransactionWriter
	logger *log.Logger
}

func NewSyncWorker(local store.TransactionReader, remote store.TransactionWriter, logger *log.Logger) *SyncWorker {
	return &SyncWorker{
		local:  local,
		remote: remote,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleCommit processes one commit message.
func (w *SyncWorker) HandleCommit(ctx context.Context, msg *events.CommitMessage) error {
	tx, err := w.local.Get(ctx, msg.Owner, msg.ID)
	if err != nil {
		return fmt.Errorf("load committed record: %w", err)
	}

	switch msg.Verb {
	case events.VerbCreate:
		_, err = w.remote.Create(ctx, msg.Owner, tx)
	case events.VerbUpdate:
		err = w.remote.Update(ctx, msg.Owner, tx)
		if errors.Is(err, store.ErrNotFound) {
			// The mirror never saw the original create; heal by
			// appending instead.
			w.logger.WarnContext(ctx, "mirror missing record, creating",
				log.FieldRecordID, msg.ID)
			_, err = w.remote.Create(ctx, msg.Owner, tx)
		}
	default:
		return fmt.Errorf("unknown commit verb %q", msg.Verb)
	}
	if err != nil {
		return fmt.Errorf("mirror %s: %w", msg.Verb, err)
	}

	w.logger.InfoContext(ctx, "record mirrored",
		log.FieldRecordID, msg.ID,
		log.FieldVerb, msg.Verb,
		log.FieldOwner, msg.Owner)
	return nil
}
