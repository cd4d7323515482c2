// Package repository implements credential persistence. Records are append-only:
// every adapter rejects a duplicate name and version with ErrVersionConflict instead
// of overwriting it. DynamoDB uses the credstash table layout so records stay readable
// by other credstash clients; PostgreSQL and MySQL share a relational schema.
package repository

import (
	apperrors "github.com/allisson/credstash/internal/errors"
)

// errMalformedRecord indicates a stored record is missing fields or has undecodable values.
var errMalformedRecord = apperrors.Wrap(apperrors.ErrStorage, "malformed credential record")

// storageError classifies an infrastructure failure as ErrStorage while keeping the cause.
func storageError(message string, cause error) error {
	return apperrors.WithCause(apperrors.Wrap(apperrors.ErrStorage, message), cause)
}
