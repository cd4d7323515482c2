package metrics

import (
	"context"
	"errors"

	apperrors "github.com/allisson/credstash/internal/errors"
)

// StatusSuccess is the status label of an operation that returned no error.
const StatusSuccess = "success"

// statusKinds is checked in order; conflicts also carry ErrStorage, so they come first.
var statusKinds = []struct {
	err    error
	status string
}{
	{apperrors.ErrInvalidInput, "invalid_input"},
	{apperrors.ErrNotFound, "not_found"},
	{apperrors.ErrConflict, "conflict"},
	{apperrors.ErrIntegrity, "integrity"},
	{apperrors.ErrEncryptionService, "encryption_service"},
	{apperrors.ErrStorage, "storage"},
	{context.Canceled, "canceled"},
	{context.DeadlineExceeded, "timeout"},
}

// Status maps an operation result to a low-cardinality status label.
func Status(err error) string {
	if err == nil {
		return StatusSuccess
	}
	for _, kind := range statusKinds {
		if errors.Is(err, kind.err) {
			return kind.status
		}
	}
	return "error"
}
