package errs

import (
	"errors"
	"fmt"
)

// ErrConflict signals a lost race against a concurrent writer.
// Callers may retry the operation.
var ErrConflict = errors.New("conflicting concurrent write")

// ErrNotFound signals that the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError rejects caller-supplied data. The reason is safe
// to return to the caller verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
