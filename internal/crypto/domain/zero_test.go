package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZero(t *testing.T) {
	t.Run("clears data key material", func(t *testing.T) {
		material := bytes.Repeat([]byte{0xAB}, DataKeySize)
		Zero(material[:CipherKeySize])

		assert.Equal(t, make([]byte, CipherKeySize), material[:CipherKeySize])
		assert.Equal(t, bytes.Repeat([]byte{0xAB}, DataKeySize-CipherKeySize), material[CipherKeySize:])
	})

	t.Run("nil and empty slices", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero(nil) })
		assert.NotPanics(t, func() { Zero([]byte{}) })
	})

	t.Run("split halves seen by Use are cleared afterwards", func(t *testing.T) {
		key, err := NewDataKey(bytes.Repeat([]byte{0x5A}, DataKeySize), []byte("wrapped"))
		require.NoError(t, err)

		var cipherKey, hmacKey []byte
		require.NoError(t, key.Use(func(c, h []byte) error {
			cipherKey, hmacKey = c, h
			return nil
		}))

		assert.Equal(t, make([]byte, CipherKeySize), cipherKey)
		assert.Equal(t, make([]byte, DataKeySize-CipherKeySize), hmacKey)
		assert.Equal(t, []byte("wrapped"), key.Wrapped())
	})
}
