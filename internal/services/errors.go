package services

import "errors"

var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("authentication failed")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrRateLimited    = errors.New("rate limited")
)

// ServiceError carries a caller-facing message alongside one of the sentinel
// kinds above, so errors.Is(err, ErrConflict) keeps working.
type ServiceError struct {
	Kind    error
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Kind
}

func newServiceError(kind error, message string) error {
	return &ServiceError{Kind: kind, Message: message}
}
