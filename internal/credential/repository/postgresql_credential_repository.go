package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	credentialDomain "github.com/allisson/credstash/internal/credential/domain"
	"github.com/allisson/credstash/internal/database"
)

// pgUniqueViolation is the SQLSTATE raised when a unique constraint rejects a row.
const pgUniqueViolation = "23505"

// PostgreSQLCredentialRepository implements Credential persistence for PostgreSQL databases.
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// Create inserts a new credential version. The (name, version) unique constraint turns
// a concurrent duplicate into ErrVersionConflict.
func (p *PostgreSQLCredentialRepository) Create(ctx context.Context, credential *credentialDomain.Credential) error {
	querier := database.GetTx(ctx, p.db)

	id, err := uuid.NewV7()
	if err != nil {
		return storageError("failed to generate credential id", err)
	}

	query := `INSERT INTO credentials (id, name, version, wrapped_key, ciphertext, digest, hmac, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		credential.Name,
		credential.Version,
		credential.WrappedKey,
		credential.Ciphertext,
		string(credential.Digest),
		credential.HMAC,
		time.Now().UTC(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return credentialDomain.ErrVersionConflict
		}
		return storageError("failed to create credential", err)
	}
	return nil
}

// GetLatest retrieves the highest version of a credential by name.
func (p *PostgreSQLCredentialRepository) GetLatest(
	ctx context.Context,
	name string,
) (*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT name, version, wrapped_key, ciphertext, digest, hmac
			  FROM credentials
			  WHERE name = $1
			  ORDER BY version DESC
			  LIMIT 1`

	credential, err := scanCredential(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credentialDomain.ErrCredentialNotFound
		}
		return nil, storageError("failed to get latest credential", err)
	}
	return credential, nil
}

// GetByVersion retrieves a specific version of a credential.
func (p *PostgreSQLCredentialRepository) GetByVersion(
	ctx context.Context,
	name, version string,
) (*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT name, version, wrapped_key, ciphertext, digest, hmac
			  FROM credentials
			  WHERE name = $1 AND version = $2`

	credential, err := scanCredential(querier.QueryRowContext(ctx, query, name, version))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credentialDomain.ErrCredentialNotFound
		}
		return nil, storageError("failed to get credential by version", err)
	}
	return credential, nil
}

// List returns every name and version ordered by name, then version.
func (p *PostgreSQLCredentialRepository) List(ctx context.Context) ([]*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT name, version FROM credentials ORDER BY name, version`

	return listCredentials(ctx, querier, query)
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQL Credential repository instance.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db}
}
