package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared by every service. Handlers map them to HTTP statuses
// with errors.Is; services wrap them with the failing operation name.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrTransport  = errors.New("transport error")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return wrapf(ErrValidation, format, args...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return wrapf(ErrNotFound, format, args...)
}

// Conflictf wraps ErrConflict with a formatted message.
func Conflictf(format string, args ...any) error {
	return wrapf(ErrConflict, format, args...)
}

// Transportf wraps ErrTransport with a formatted message.
func Transportf(format string, args ...any) error {
	return wrapf(ErrTransport, format, args...)
}

func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
