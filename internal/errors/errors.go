// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. Use cases and adapters wrap these sentinels so
// callers can classify any failure with errors.Is regardless of where it originated.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIntegrity indicates stored data failed authentication and may have been tampered with.
	ErrIntegrity = errors.New("integrity check failed")

	// ErrEncryptionService indicates the key management service failed (auth, throttling, outage).
	ErrEncryptionService = errors.New("encryption service error")

	// ErrStorage indicates the credential store failed, including conflicting appends.
	ErrStorage = errors.New("storage error")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap but formats the message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// WithCause attaches an underlying cause to a domain error. Both remain reachable
// through errors.Is and errors.As.
func WithCause(domainErr, cause error) error {
	if cause == nil {
		return domainErr
	}
	return fmt.Errorf("%w: %w", domainErr, cause)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
