package frontmatter

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-blog/internal/apperrors"
)

// ErrInvalid is the sentinel every *ValidationError unwraps to.
var ErrInvalid = errors.New("frontmatter: validation failed")

const (
	reasonMissing     = "No frontmatter found. Please add YAML frontmatter with required fields (title, date, description)"
	reasonEmpty       = "Frontmatter is empty. Please provide YAML frontmatter with required fields (title, date, description)"
	reasonTitle       = `Missing or invalid "title" field. Title must be a non-empty string`
	reasonDate        = `Missing or invalid "date" field. Date must be a valid date string (e.g., "2025-12-05")`
	reasonDescription = `Missing or invalid "description" field. Description must be a non-empty string`
)

// ValidationError reports why the frontmatter of SourceID was rejected.
type ValidationError struct {
	SourceID string
	Reason   string
	Cause    error
}

func newValidationError(sourceID, reason string, cause error) *ValidationError {
	return &ValidationError{SourceID: sourceID, Reason: reason, Cause: cause}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Frontmatter validation failed for %s: %s", e.SourceID, e.Reason)
}

// Unwrap exposes both the sentinel and the underlying cause, if any.
func (e *ValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalid}
	}
	return []error{ErrInvalid, e.Cause}
}

// ErrorCode reports the normalised error code.
func (e *ValidationError) ErrorCode() string {
	return apperrors.CodeFrontmatterInvalid
}

// AsValidationError returns the *ValidationError carried by err, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var target *ValidationError
	if errors.As(err, &target) && target != nil {
		return target, true
	}
	return nil, false
}
