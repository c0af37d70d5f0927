// Package events carries commit notifications over AMQP so
// out-of-process collaborators (the sync worker) learn about new and
// changed transactions without polling the store.
package events

import (
	"encoding/json"
	"time"
)

// Commit verbs as carried on the wire.
const (
	VerbCreate = "create"
	VerbUpdate = "update"
)

// CommitMessage announces one committed transaction. It carries only
// the record id and the verb: the consumer fetches the current record
// from the store, so a stale message can never overwrite fresher data.
type CommitMessage struct {
	ID        string    `json:"id"`
	Verb      string    `json:"verb"` // "create" | "update"
	Owner     string    `json:"owner"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCommitMessage(owner, id, verb string) *CommitMessage {
	return &CommitMessage{
		ID:        id,
		Verb:      verb,
		Owner:     owner,
		Timestamp: time.Now(),
	}
}

func (m *CommitMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func CommitMessageFromJSON(data []byte) (*CommitMessage, error) {
	var msg CommitMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
