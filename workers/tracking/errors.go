package tracking

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTrackingNumber = errors.New("tracking number cannot be empty")
	ErrAlreadyTracked      = errors.New("package is already being tracked")
	ErrAlreadyInactive     = errors.New("package is already inactive")
	ErrNotFound            = errors.New("package not found")
	ErrQuotaExceeded       = errors.New("monthly registration limit reached")
)

// RegistrationRejectedError is an explicit provider refusal for a reason
// other than "already registered". The package is not saved in this case.
type RegistrationRejectedError struct {
	Code    int
	Message string
}

func (e *RegistrationRejectedError) Error() string {
	return fmt.Sprintf("17track rejected registration: %s (code %d)", e.Message, e.Code)
}
