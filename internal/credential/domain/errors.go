package domain

import (
	"github.com/allisson/credstash/internal/errors"
)

// Credential-specific error definitions.
var (
	// ErrCredentialNotFound indicates no record exists for the requested name (or version).
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "credential not found")

	// ErrVersionConflict indicates a record with the same name and version already exists.
	// Two writers racing on the same name produce this; the caller decides whether to retry.
	ErrVersionConflict = errors.WithCause(
		errors.Wrap(errors.ErrStorage, "credential version already exists"),
		errors.ErrConflict,
	)

	// ErrInvalidVersion indicates a version string is not VersionWidth decimal digits.
	ErrInvalidVersion = errors.Wrap(errors.ErrInvalidInput, "invalid credential version")

	// ErrVersionOverflow indicates the next version does not fit in VersionWidth digits.
	ErrVersionOverflow = errors.Wrap(errors.ErrInvalidInput, "credential version overflow")
)
