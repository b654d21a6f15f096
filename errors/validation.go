package errors

import (
	"fmt"
	"strings"
)

// ErrValidation is the sentinel matched by errors.Is for any schema
// validation failure.
var ErrValidation = fmt.Errorf("message failed schema validation")

type ValidationIssue struct{ Field, Reason string }

// ValidationError carries the field-level reasons a message was rejected.
// It never crosses the dispatch loop as a panic; handlers log it and drop
// the message.
type ValidationError struct{ Issues []ValidationIssue }

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", is.Field, is.Reason))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Add(field, reason string) {
	e.Issues = append(e.Issues, ValidationIssue{Field: field, Reason: reason})
}
