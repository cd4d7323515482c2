package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialDomain "github.com/allisson/credstash/internal/credential/domain"
	credentialUseCase "github.com/allisson/credstash/internal/credential/usecase"
	cryptoDomain "github.com/allisson/credstash/internal/crypto/domain"
	"github.com/allisson/credstash/internal/testutil"
)

func integrationCredential(name, version string) *credentialDomain.Credential {
	return &credentialDomain.Credential{
		Name:    name,
		Version: version,
		EncryptedPayload: cryptoDomain.EncryptedPayload{
			WrappedKey: []byte("wrapped-" + version),
			Ciphertext: []byte("ciphertext-" + version),
			Digest:     cryptoDomain.DefaultDigest,
			HMAC:       "00ff",
		},
	}
}

// exerciseRepository runs the same append-only scenario against a live database.
func exerciseRepository(t *testing.T, repo credentialUseCase.CredentialRepository) {
	ctx := context.Background()

	_, err := repo.GetLatest(ctx, "app.secret")
	require.ErrorIs(t, err, credentialDomain.ErrCredentialNotFound)

	require.NoError(t, repo.Create(ctx, integrationCredential("app.secret", "0000000000000000001")))
	require.NoError(t, repo.Create(ctx, integrationCredential("app.secret", "0000000000000000002")))
	require.NoError(t, repo.Create(ctx, integrationCredential("other", "0000000000000000001")))

	err = repo.Create(ctx, integrationCredential("app.secret", "0000000000000000002"))
	require.ErrorIs(t, err, credentialDomain.ErrVersionConflict)

	latest, err := repo.GetLatest(ctx, "app.secret")
	require.NoError(t, err)
	assert.Equal(t, integrationCredential("app.secret", "0000000000000000002"), latest)

	first, err := repo.GetByVersion(ctx, "app.secret", "0000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, []byte("ciphertext-0000000000000000001"), first.Ciphertext)

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "app.secret", listed[0].Name)
	assert.Equal(t, "0000000000000000001", listed[0].Version)
	assert.Equal(t, "other", listed[2].Name)
}

func TestPostgreSQLCredentialRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupDB(t, db)

	exerciseRepository(t, NewPostgreSQLCredentialRepository(db))
}

func TestMySQLCredentialRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testutil.SkipIfNoMySQL(t)

	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupDB(t, db)

	exerciseRepository(t, NewMySQLCredentialRepository(db))
}
