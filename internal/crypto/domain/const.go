package domain

// Digest identifies the hash function used to compute a credential's HMAC.
//
// The value is stored on every record so that records written with an older digest
// remain verifiable after the default changes. Names match the credstash record format.
type Digest string

const (
	// SHA224 selects HMAC-SHA224.
	SHA224 Digest = "SHA224"
	// SHA256 selects HMAC-SHA256. It is the digest used for all new records.
	SHA256 Digest = "SHA256"
	// SHA384 selects HMAC-SHA384.
	SHA384 Digest = "SHA384"
	// SHA512 selects HMAC-SHA512.
	SHA512 Digest = "SHA512"

	// DefaultDigest is the digest applied when encrypting new values.
	DefaultDigest = SHA256
)

const (
	// DataKeySize is the number of bytes requested from the key service per encryption.
	DataKeySize = 64
	// CipherKeySize is the AES-256 key length taken from the front of a data key.
	CipherKeySize = 32
)
