// Package domain defines the credential record and the versioning policy.
//
// A credential is never updated in place. Every put appends a new record under the
// same name with the next version, and reads return the highest version.
package domain

import (
	cryptoDomain "github.com/allisson/credstash/internal/crypto/domain"
)

// Credential is one immutable, encrypted version of a named secret.
type Credential struct {
	// Name identifies the secret; unique together with Version.
	Name string
	// Version is a VersionWidth-digit zero-padded decimal string.
	Version string

	cryptoDomain.EncryptedPayload
}
