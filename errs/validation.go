package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// Violation is a single field-level constraint failure.
type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError enumerates every violated field of an entity write.
// The write is all-or-nothing: if this error is returned, nothing was
// persisted.
type ValidationError struct {
	Entity     string
	Violations []Violation
}

func NewValidationError(entity string, violations ...Violation) *ValidationError {
	return &ValidationError{Entity: entity, Violations: violations}
}

func (e *ValidationError) Add(v Violation) {
	e.Violations = append(e.Violations, v)
}

func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StatusCode maps uniqueness conflicts to 409 and everything else to 400,
// so the responder can treat a ValidationError like an ApiErr.
func (e *ValidationError) StatusCode() int {
	for _, v := range e.Violations {
		if v.Code == CodeUnique {
			return http.StatusConflict
		}
	}
	return http.StatusBadRequest
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// Violation codes shared between the validators and the repositories.
const (
	CodeRequired      = "required"
	CodeMaxLength     = "max_length"
	CodeInvalidSlug   = "invalid_slug"
	CodeOutOfRange    = "out_of_range"
	CodeUnique        = "unique"
	CodeLimitFileSize = "limit_file_size"
	CodeFileExtension = "invalid_extension"
)
