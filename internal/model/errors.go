// Error types shared by the service layer.  The taxonomy is deliberately
// small: NotFoundError covers both missing rows and visibility checks so
// that an unauthorized caller cannot distinguish "does not exist" from
// "not yours"; UnavailableItemError covers domain rule violations;
// StateError covers unrecognized listing filters; ValidationError covers
// malformed input rejected before business logic runs.
package model

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a referenced entity does not resolve or
// that the caller has no visibility of it.  Handlers map it to 404.
type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// NotFound builds a NotFoundError with a formatted message.
func NotFound(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// UnavailableItemError signals a domain rule violation: booking an
// unavailable item, re-approving an approved booking or commenting
// without a completed booking.  Handlers map it to 400.
type UnavailableItemError struct{ Message string }

func (e *UnavailableItemError) Error() string { return e.Message }

// Unavailable builds an UnavailableItemError with a formatted message.
func Unavailable(format string, args ...any) error {
	return &UnavailableItemError{Message: fmt.Sprintf(format, args...)}
}

// StateError signals a listing state outside the recognized set.
type StateError struct{ Value string }

func (e *StateError) Error() string { return "Unknown state: " + e.Value }

// UnknownState builds a StateError for the given raw value.
func UnknownState(value string) error { return &StateError{Value: value} }

// ValidationError signals malformed input caught at the HTTP surface
// before the business layer is invoked.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError with a formatted message.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
