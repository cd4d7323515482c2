package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	credentialDomain "github.com/allisson/credstash/internal/credential/domain"
	"github.com/allisson/credstash/internal/database"
)

// mysqlDuplicateEntry is the MySQL error number for a duplicate unique key.
const mysqlDuplicateEntry = 1062

// MySQLCredentialRepository implements Credential persistence for MySQL databases.
type MySQLCredentialRepository struct {
	db *sql.DB
}

// Create inserts a new credential version. Ids are stored as BINARY(16).
func (m *MySQLCredentialRepository) Create(ctx context.Context, credential *credentialDomain.Credential) error {
	querier := database.GetTx(ctx, m.db)

	id, err := uuid.NewV7()
	if err != nil {
		return storageError("failed to generate credential id", err)
	}
	binaryID, err := id.MarshalBinary()
	if err != nil {
		return storageError("failed to marshal credential id", err)
	}

	query := `INSERT INTO credentials (id, name, version, wrapped_key, ciphertext, digest, hmac, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		binaryID,
		credential.Name,
		credential.Version,
		credential.WrappedKey,
		credential.Ciphertext,
		string(credential.Digest),
		credential.HMAC,
		time.Now().UTC(),
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return credentialDomain.ErrVersionConflict
		}
		return storageError("failed to create credential", err)
	}
	return nil
}

// GetLatest retrieves the highest version of a credential by name.
func (m *MySQLCredentialRepository) GetLatest(
	ctx context.Context,
	name string,
) (*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT name, version, wrapped_key, ciphertext, digest, hmac
			  FROM credentials
			  WHERE name = ?
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
func (m *MySQLCredentialRepository) GetByVersion(
	ctx context.Context,
	name, version string,
) (*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT name, version, wrapped_key, ciphertext, digest, hmac
			  FROM credentials
			  WHERE name = ? AND version = ?`

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
func (m *MySQLCredentialRepository) List(ctx context.Context) ([]*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT name, version FROM credentials ORDER BY name, version`

	return listCredentials(ctx, querier, query)
}

// NewMySQLCredentialRepository creates a new MySQL Credential repository instance.
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db}
}
