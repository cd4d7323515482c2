// Package domain defines the cryptographic domain models for envelope encryption.
//
// Every credential version is encrypted with its own data key. The key service mints the
// key and returns it together with a wrapped copy that only the key service can unwrap;
// the wrapped copy is stored next to the ciphertext.
package domain

import "sync"

// DataKey is a one-shot handle over freshly minted or freshly unwrapped key material.
//
// The first DataKeySize/2 bytes key the stream cipher, the remaining bytes key the HMAC.
// Use may run exactly once; the material is zeroed when it returns, so a key can never
// encrypt two different values.
type DataKey struct {
	mu        sync.Mutex
	plaintext []byte
	wrapped   []byte
	used      bool
}

// NewDataKey takes ownership of plaintext and returns a handle over it.
// The plaintext must be exactly DataKeySize bytes.
func NewDataKey(plaintext, wrapped []byte) (*DataKey, error) {
	if len(plaintext) != DataKeySize {
		Zero(plaintext)
		return nil, ErrInvalidDataKeySize
	}
	return &DataKey{plaintext: plaintext, wrapped: wrapped}, nil
}

// Wrapped returns the key service ciphertext of this data key.
func (k *DataKey) Wrapped() []byte {
	return k.wrapped
}

// Used reports whether the key material has already been consumed.
func (k *DataKey) Used() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.used
}

// Use hands the split key material to fn and then destroys it.
// Any call after the first returns ErrDataKeyConsumed without invoking fn.
func (k *DataKey) Use(fn func(cipherKey, hmacKey []byte) error) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.used {
		return ErrDataKeyConsumed
	}
	k.used = true
	defer Zero(k.plaintext)

	return fn(k.plaintext[:CipherKeySize], k.plaintext[CipherKeySize:])
}
