package service

import (
	"errors"

	"perishables/internal/domain"
)

// isStorageFault reports errors that say the store itself is broken, as
// opposed to a problem with one row
func isStorageFault(err error) bool {
	return errors.Is(err, domain.ErrStorageUnavailable) || errors.Is(err, domain.ErrPersistence)
}
