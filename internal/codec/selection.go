package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tally/internal/core"
)

// ErrMalformedSelection reports a category draft value that is not a
// serialized category, typically a stale selection kept across a
// category list reload.
var ErrMalformedSelection = errors.New("malformed category selection")

// EncodeSelection serializes the whole category into the draft value.
// Carrying the full object rather than just the value key keeps the
// descriptive text available when the type filter changes.
func EncodeSelection(c core.Category) string {
	b, err := json.Marshal(c)
	if err != nil {
		// Category is a plain struct; Marshal cannot fail on it.
		return ""
	}
	return string(b)
}

// DecodeSelection parses a draft selection back into a category.
func DecodeSelection(s string) (core.Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Category{}, fmt.Errorf("%w: empty selection", ErrMalformedSelection)
	}
	var c core.Category
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return core.Category{}, fmt.Errorf("%w: %v", ErrMalformedSelection, err)
	}
	if c.Value == "" {
		return core.Category{}, fmt.Errorf("%w: missing value key", ErrMalformedSelection)
	}
	return c, nil
}
