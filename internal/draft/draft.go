// Package draft holds the editable, in-progress representation of a
// transaction. A draft keeps every field as the raw string the user
// typed; nothing is validated eagerly so typing stays unrestricted,
// and the whole mapping is checked once on submit.
package draft

import (
	"fmt"
	"time"

	"tally/internal/codec"
	"tally/internal/core"
)

type Field string

const (
	FieldDescription Field = "description"
	FieldType        Field = "type"
	FieldAmount      Field = "amount"
	FieldCategory    Field = "category"
	FieldDate        Field = "date"
	FieldAccount     Field = "account"
	FieldNote        Field = "note"
)

// requiredFields in submission-blocking order: validation reports the
// first missing one, the way a form blocks on its first invalid input.
var requiredFields = []Field{
	FieldDescription,
	FieldType,
	FieldAmount,
	FieldCategory,
	FieldDate,
	FieldAccount,
}

// ValidationError reports the first required field found empty.
type ValidationError struct {
	Field Field
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is empty", e.Field)
}

// Draft is the mutable editor state for one transaction. In edit mode
// it carries a value snapshot of the loaded record's identity (ID and
// CreatedAt), never a live reference, so concurrent external edits
// cannot be observed mid-draft.
type Draft struct {
	fields    map[Field]string
	recordID  string
	createdAt time.Time
}

// Empty returns a create-mode draft with today's local date pre-filled
// and the type unset.
func Empty() *Draft {
	d := &Draft{fields: make(map[Field]string)}
	d.Reset()
	return d
}

// Set overwrites a field with raw input. No validation happens here.
func (d *Draft) Set(f Field, v string) {
	d.fields[f] = v
}

func (d *Draft) Get(f Field) string {
	return d.fields[f]
}

// RecordID is empty in create mode.
func (d *Draft) RecordID() string {
	return d.recordID
}

// CreatedAt is the loaded record's original creation stamp; zero in
// create mode.
func (d *Draft) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Draft) EditMode() bool {
	return d.recordID != ""
}

// Validate returns the first missing required field. The note is
// always optional, and a zero amount passes: only emptiness blocks.
func (d *Draft) Validate() error {
	for _, f := range requiredFields {
		if d.fields[f] == "" {
			return &ValidationError{Field: f}
		}
	}
	return nil
}

// Reset clears every field back to its create-mode default, including
// re-deriving today's date in local time, and drops the edit snapshot.
func (d *Draft) Reset() {
	for f := range d.fields {
		delete(d.fields, f)
	}
	d.fields[FieldDate] = codec.FormatDate(core.Today())
	d.recordID = ""
	d.createdAt = time.Time{}
}

// LoadFrom populates the draft from an existing record, encoding each
// stored field into its draft form. The category is resolved against
// the current list by value key; when the category has since been
// deleted the field is left unset and the rest of the load proceeds,
// so the record stays editable.
func (d *Draft) LoadFrom(tx core.Transaction, categories []core.Category) {
	d.fields[FieldDescription] = tx.Description
	d.fields[FieldType] = string(tx.Type)
	d.fields[FieldAmount] = codec.FormatAmount(tx.Amount.Cents, tx.Type)
	if cat, ok := core.FindCategory(categories, tx.Category); ok {
		d.fields[FieldCategory] = codec.EncodeSelection(cat)
	} else {
		delete(d.fields, FieldCategory)
	}
	d.fields[FieldDate] = codec.FormatDate(tx.Date)
	d.fields[FieldAccount] = tx.Account
	d.fields[FieldNote] = tx.Note
	d.recordID = tx.ID
	d.createdAt = tx.CreatedAt
}

// Encode decodes the raw fields back into a storage-shape transaction.
// Codec failures (unparsable amount or date, malformed selection) are
// returned for the caller to surface next to the offending field; the
// draft itself is left untouched.
func (d *Draft) Encode() (core.Transaction, error) {
	cents, err := codec.ParseMaskedAmount(d.fields[FieldAmount])
	if err != nil {
		return core.Transaction{}, err
	}
	cat, err := codec.DecodeSelection(d.fields[FieldCategory])
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := codec.ParseDate(d.fields[FieldDate])
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		ID:          d.recordID,
		Description: d.fields[FieldDescription],
		Type:        core.TransactionType(d.fields[FieldType]),
		Amount:      core.Money{Cents: cents},
		Category:    cat.Value,
		Date:        date,
		Account:     d.fields[FieldAccount],
		Note:        d.fields[FieldNote],
		CreatedAt:   d.createdAt,
	}, nil
}
