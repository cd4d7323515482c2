package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	cryptoDomain "github.com/allisson/credstash/internal/crypto/domain"
)

// initialCounter is the CTR counter block used for every value: a 128-bit big-endian
// integer equal to 1. A fixed counter is sound only because each data key encrypts a
// single value; see DataKey.
var initialCounter = [aes.BlockSize]byte{aes.BlockSize - 1: 1}

// xorCTR runs AES-256-CTR over in. Encryption and decryption are the same operation.
func xorCTR(key, in []byte) ([]byte, error) {
	if len(key) != cryptoDomain.CipherKeySize {
		return nil, fmt.Errorf("cipher key must be %d bytes, got %d", cryptoDomain.CipherKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	iv := initialCounter
	out := make([]byte, len(in))
	cipher.NewCTR(block, iv[:]).XORKeyStream(out, in)
	return out, nil
}
