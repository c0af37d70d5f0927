package draft

import "tally/internal/core"

// Load is the single branch point between create and edit mode. A nil
// record yields an empty create-mode draft; otherwise the record's
// fields are decoded into the draft and its identity snapshotted.
func Load(existing *core.Transaction, categories []core.Category) *Draft {
	d := Empty()
	if existing != nil {
		d.LoadFrom(*existing, categories)
	}
	return d
}
