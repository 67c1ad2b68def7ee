package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/diewo77/go-todolist/validation"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("not_found")

// ValidationError carries per-field violations back to the form layer.
// Duplicate-username conflicts are reported as a violation too: from the
// requester's point of view they are user-correctable input.
type ValidationError struct {
	Violations validation.Violations
}

func NewValidationError(v validation.Violations) *ValidationError {
	return &ValidationError{Violations: v}
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
