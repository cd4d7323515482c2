package domain

// EncryptedPayload is everything needed to recover a value, minus its storage identity.
type EncryptedPayload struct {
	WrappedKey []byte // Key service ciphertext of the one-time data key
	Ciphertext []byte // AES-256-CTR ciphertext of the value
	Digest     Digest // Hash function used for HMAC
	HMAC       string // Lowercase hex HMAC of Ciphertext
}
