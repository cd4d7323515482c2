package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"

	cryptoDomain "github.com/allisson/credstash/internal/crypto/domain"
)

var digests = map[cryptoDomain.Digest]func() hash.Hash{
	cryptoDomain.SHA224: sha256.New224,
	cryptoDomain.SHA256: sha256.New,
	cryptoDomain.SHA384: sha512.New384,
	cryptoDomain.SHA512: sha512.New,
}

// hashFor returns the hash constructor registered for digest.
func hashFor(digest cryptoDomain.Digest) (func() hash.Hash, error) {
	h, ok := digests[digest]
	if !ok {
		return nil, cryptoDomain.ErrUnsupportedDigest
	}
	return h, nil
}

// sign returns the raw HMAC of data.
func sign(digest cryptoDomain.Digest, key, data []byte) ([]byte, error) {
	h, err := hashFor(digest)
	if err != nil {
		return nil, err
	}
	mac := hmac.New(h, key)
	mac.Write(data)
	return mac.Sum(nil), nil
}

// verify checks a hex tag against the HMAC of data in constant time.
// Tags that are not valid hex never match.
func verify(digest cryptoDomain.Digest, key, data []byte, tag string) error {
	expected, err := sign(digest, key, data)
	if err != nil {
		return err
	}

	got, err := hex.DecodeString(tag)
	if err != nil || !hmac.Equal(expected, got) {
		return cryptoDomain.ErrIntegrityCheckFailed
	}
	return nil
}
