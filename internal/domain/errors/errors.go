package errors

import (
	"errors"
	"fmt"
)

// ValidationError represents malformed caller input. It maps to a 4xx
// response and is never retried automatically.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a new validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// GatewayError represents a payment gateway that is unreachable or returned
// a failure envelope. Safe for the caller to retry.
type GatewayError struct {
	Operation string
	Reference string
	Message   string
	Cause     error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gateway %s failed: %s (reference: %s) - %v", e.Operation, e.Message, e.Reference, e.Cause)
	}
	return fmt.Sprintf("gateway %s failed: %s (reference: %s)", e.Operation, e.Message, e.Reference)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// NewGatewayError creates a new gateway error
func NewGatewayError(operation, reference, message string, cause error) *GatewayError {
	return &GatewayError{Operation: operation, Reference: reference, Message: message, Cause: cause}
}

// PersistenceError represents a database write or read failure. Surfaced
// generically to callers so storage details never leak.
type PersistenceError struct {
	Operation string
	Cause     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Operation, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// NewPersistenceError creates a new persistence error
func NewPersistenceError(operation string, cause error) *PersistenceError {
	return &PersistenceError{Operation: operation, Cause: cause}
}

// NotificationError represents an outbound notification failure. Always
// swallowed after logging; never propagated to the caller.
type NotificationError struct {
	Recipient string
	Cause     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification to %s failed: %v", e.Recipient, e.Cause)
}

func (e *NotificationError) Unwrap() error {
	return e.Cause
}

// NewNotificationError creates a new notification error
func NewNotificationError(recipient string, cause error) *NotificationError {
	return &NotificationError{Recipient: recipient, Cause: cause}
}

// ErrNotFound is the sentinel for a missing record, independent of the
// storage engine's own not-found error.
var ErrNotFound = errors.New("record not found")

// ErrForbidden is the sentinel for an action the caller's role does not
// permit. Role checks happen server side regardless of what the client
// claims about itself.
var ErrForbidden = errors.New("forbidden")

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsGateway reports whether err is a GatewayError.
func IsGateway(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}

// IsPersistence reports whether err is a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
