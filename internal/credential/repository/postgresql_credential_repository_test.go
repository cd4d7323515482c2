package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialDomain "github.com/allisson/credstash/internal/credential/domain"
	cryptoDomain "github.com/allisson/credstash/internal/crypto/domain"
	"github.com/allisson/credstash/internal/database"
	apperrors "github.com/allisson/credstash/internal/errors"
)

var payloadColumns = []string{"name", "version", "wrapped_key", "ciphertext", "digest", "hmac"}

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mock
}

func testCredential() *credentialDomain.Credential {
	return &credentialDomain.Credential{
		Name:    "db-password",
		Version: "0000000000000000001",
		EncryptedPayload: cryptoDomain.EncryptedPayload{
			WrappedKey: []byte("wrapped"),
			Ciphertext: []byte("cipher"),
			Digest:     cryptoDomain.SHA256,
			HMAC:       "abcdef",
		},
	}
}

func TestNewPostgreSQLCredentialRepository(t *testing.T) {
	db, _ := newSQLMock(t)

	repo := NewPostgreSQLCredentialRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLCredentialRepository{}, repo)
}

func TestPostgreSQLCredentialRepository_Create(t *testing.T) {
	ctx := context.Background()
	insert := regexp.QuoteMeta("INSERT INTO credentials (id, name, version, wrapped_key, ciphertext, digest, hmac, created_at)")

	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)
		credential := testCredential()

		mock.ExpectExec(insert).
			WithArgs(sqlmock.AnyArg(), "db-password", "0000000000000000001", []byte("wrapped"),
				[]byte("cipher"), "SHA256", "abcdef", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLCredentialRepository(db)
		require.NoError(t, repo.Create(ctx, credential))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_InsideTransaction", func(t *testing.T) {
		db, mock := newSQLMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewPostgreSQLCredentialRepository(db)
		err := database.NewTxManager(db).WithTx(ctx, func(ctx context.Context) error {
			return repo.Create(ctx, testCredential())
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_UniqueViolationIsConflict", func(t *testing.T) {
		db, mock := newSQLMock(t)

		mock.ExpectExec(insert).WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key"})

		repo := NewPostgreSQLCredentialRepository(db)
		err := repo.Create(ctx, testCredential())
		assert.ErrorIs(t, err, credentialDomain.ErrVersionConflict)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Error_OtherFailureIsStorage", func(t *testing.T) {
		db, mock := newSQLMock(t)

		mock.ExpectExec(insert).WillReturnError(errors.New("connection refused"))

		repo := NewPostgreSQLCredentialRepository(db)
		err := repo.Create(ctx, testCredential())
		assert.ErrorIs(t, err, apperrors.ErrStorage)
		assert.NotErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestPostgreSQLCredentialRepository_GetLatest(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("ORDER BY version DESC")

	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)

		mock.ExpectQuery(query).
			WithArgs("db-password").
			WillReturnRows(sqlmock.NewRows(payloadColumns).
				AddRow("db-password", "0000000000000000002", []byte("wrapped"), []byte("cipher"), "SHA384", "abcdef"))

		repo := NewPostgreSQLCredentialRepository(db)
		credential, err := repo.GetLatest(ctx, "db-password")
		require.NoError(t, err)

		assert.Equal(t, "0000000000000000002", credential.Version)
		assert.Equal(t, []byte("wrapped"), credential.WrappedKey)
		assert.Equal(t, []byte("cipher"), credential.Ciphertext)
		assert.Equal(t, cryptoDomain.SHA384, credential.Digest)
		assert.Equal(t, "abcdef", credential.HMAC)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newSQLMock(t)

		mock.ExpectQuery(query).WithArgs("missing").WillReturnRows(sqlmock.NewRows(payloadColumns))

		repo := NewPostgreSQLCredentialRepository(db)
		_, err := repo.GetLatest(ctx, "missing")
		assert.ErrorIs(t, err, credentialDomain.ErrCredentialNotFound)
	})

	t.Run("Error_QueryFails", func(t *testing.T) {
		db, mock := newSQLMock(t)

		mock.ExpectQuery(query).WillReturnError(errors.New("timeout"))

		repo := NewPostgreSQLCredentialRepository(db)
		_, err := repo.GetLatest(ctx, "db-password")
		assert.ErrorIs(t, err, apperrors.ErrStorage)
	})
}

func TestPostgreSQLCredentialRepository_GetByVersion(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("WHERE name = $1 AND version = $2")

	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)

		mock.ExpectQuery(query).
			WithArgs("db-password", "0000000000000000001").
			WillReturnRows(sqlmock.NewRows(payloadColumns).
				AddRow("db-password", "0000000000000000001", []byte("wrapped"), []byte("cipher"), "SHA256", "abcdef"))

		repo := NewPostgreSQLCredentialRepository(db)
		credential, err := repo.GetByVersion(ctx, "db-password", "0000000000000000001")
		require.NoError(t, err)
		assert.Equal(t, "0000000000000000001", credential.Version)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newSQLMock(t)

		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(payloadColumns))

		repo := NewPostgreSQLCredentialRepository(db)
		_, err := repo.GetByVersion(ctx, "db-password", "0000000000000000009")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLCredentialRepository_List(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("SELECT name, version FROM credentials ORDER BY name, version")

	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)

		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"name", "version"}).
			AddRow("a", "0000000000000000001").
			AddRow("b", "0000000000000000001"))

		repo := NewPostgreSQLCredentialRepository(db)
		credentials, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, credentials, 2)
		assert.Equal(t, "a", credentials[0].Name)
		assert.Empty(t, credentials[0].Ciphertext)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		db, mock := newSQLMock(t)

		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"name", "version"}))

		repo := NewPostgreSQLCredentialRepository(db)
		credentials, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, credentials)
		assert.Empty(t, credentials)
	})

	t.Run("Error_RowError", func(t *testing.T) {
		db, mock := newSQLMock(t)

		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"name", "version"}).
			AddRow("a", "0000000000000000001").
			RowError(0, errors.New("broken row")))

		repo := NewPostgreSQLCredentialRepository(db)
		_, err := repo.List(ctx)
		assert.ErrorIs(t, err, apperrors.ErrStorage)
	})
}
