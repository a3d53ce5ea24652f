// Package validation checks incoming request payloads before any network
// call or store mutation happens.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"portfolio-tracker/internal/apperrors"
)

// Error carries field-specific validation messages.
// It wraps apperrors.ErrValidation so callers can classify it with errors.Is.
type Error struct {
	Fields map[string]string
}

// Error renders the field messages in a stable order.
func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, e.Fields[field])
	}
	return strings.Join(parts, "; ")
}

// Unwrap marks every validation Error as an apperrors.ErrValidation.
func (e *Error) Unwrap() error {
	return apperrors.ErrValidation
}
