package repository

import (
	"context"
	"database/sql"

	credentialDomain "github.com/allisson/credstash/internal/credential/domain"
	cryptoDomain "github.com/allisson/credstash/internal/crypto/domain"
	"github.com/allisson/credstash/internal/database"
)

// scanCredential reads the payload columns shared by the SQL repositories.
func scanCredential(row *sql.Row) (*credentialDomain.Credential, error) {
	var (
		credential credentialDomain.Credential
		digest     string
	)

	err := row.Scan(
		&credential.Name,
		&credential.Version,
		&credential.WrappedKey,
		&credential.Ciphertext,
		&digest,
		&credential.HMAC,
	)
	if err != nil {
		return nil, err
	}

	credential.Digest = cryptoDomain.Digest(digest)
	return &credential, nil
}

// listCredentials runs a name/version query and collects the rows.
func listCredentials(
	ctx context.Context,
	querier database.Querier,
	query string,
) ([]*credentialDomain.Credential, error) {
	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, storageError("failed to list credentials", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	credentials := make([]*credentialDomain.Credential, 0)
	for rows.Next() {
		var credential credentialDomain.Credential
		if err := rows.Scan(&credential.Name, &credential.Version); err != nil {
			return nil, storageError("failed to scan credential", err)
		}
		credentials = append(credentials, &credential)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("failed to iterate credentials", err)
	}

	return credentials, nil
}
