package settlement

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound     = errors.New("settlement record not found")
	ErrUnsupportedVersion = errors.New("legacy settlement records cannot be updated or duplicated")
	ErrInvariant          = errors.New("settlement calculation invariant violated")
)

// ValidationError rejects malformed input before any calculation runs.
type ValidationError struct {
	Issues []FieldIssue
}

type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("invalid settlement input: %s %s", e.Issues[0].Field, e.Issues[0].Reason)
	}
	return fmt.Sprintf("invalid settlement input: %d field issues", len(e.Issues))
}

func (e *ValidationError) add(field, reason string) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Reason: reason})
}

func invariantErr(concept string, factor float64) error {
	return fmt.Errorf("%w: %s factor is %v", ErrInvariant, concept, factor)
}
