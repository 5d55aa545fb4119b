package domain

import (
	"errors"
	"fmt"
)

// Error kinds returned by the repository. They are always wrapped with
// context, so callers must compare with errors.Is.
var (
	// ErrValidation means caller-supplied data violates a documented constraint
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the referenced identity does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is a validation failure on a unique name
	ErrDuplicateName = fmt.Errorf("%w: duplicate name", ErrValidation)

	// ErrForeignKeyViolation means a link referenced a missing item or category
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrPersistence is any storage fault not covered by the other kinds
	ErrPersistence = errors.New("persistence error")

	// ErrStorageUnavailable means the store cannot be opened, provisioned or reached in time
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationErrorf wraps ErrValidation with a formatted reason
func ValidationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsKnownKind reports whether err already carries one of the error kinds
func IsKnownKind(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForeignKeyViolation) ||
		errors.Is(err, ErrPersistence) ||
		errors.Is(err, ErrStorageUnavailable)
}
