package crypto

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeal(t *testing.T) {
	// Генерируем валидный ключ (32 bytes)
	validKey := make([]byte, KeySize)
	_, _ = rand.Read(validKey)

	tests := []struct {
		name      string
		errMsg    string
		plaintext []byte
		key       []byte
		wantErr   bool
	}{
		{
			name:      "successful seal",
			plaintext: []byte("eyJhbGciOiJIUzI1NiJ9.payload.signature"),
			key:       validKey,
		},
		{
			name:      "empty plaintext",
			plaintext: []byte{},
			key:       validKey,
			wantErr:   true,
			errMsg:    "plaintext cannot be empty",
		},
		{
			name:      "invalid key length - too short",
			plaintext: []byte("test"),
			key:       make([]byte, 16), // неправильная длина
			wantErr:   true,
			errMsg:    "sealing key must be 32 bytes",
		},
		{
			name:      "invalid key length - too long",
			plaintext: []byte("test"),
			key:       make([]byte, 64),
			wantErr:   true,
			errMsg:    "sealing key must be 32 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := Seal(tt.plaintext, tt.key)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, sealed)
				return
			}

			require.NoError(t, err)
			// nonce + ciphertext + tag
			assert.Len(t, sealed, 24+len(tt.plaintext)+16)
			assert.NotContains(t, string(sealed), string(tt.plaintext))

			opened, err := Open(sealed, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, opened)
		})
	}
}

func TestSeal_RandomNonce(t *testing.T) {
	key := make([]byte, KeySize)
	_, _ = rand.Read(key)

	first, err := Seal([]byte("same"), key)
	require.NoError(t, err)
	second, err := Seal([]byte("same"), key)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "одинаковый plaintext должен давать разный ciphertext")
}

func TestOpen_Errors(t *testing.T) {
	key := make([]byte, KeySize)
	_, _ = rand.Read(key)
	otherKey := make([]byte, KeySize)
	_, _ = rand.Read(otherKey)

	sealed, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := Open(sealed, otherKey)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "authentication failed")
	})

	t.Run("tampered data", func(t *testing.T) {
		tampered := append([]byte(nil), sealed...)
		tampered[len(tampered)-1] ^= 0xff
		_, err := Open(tampered, key)
		require.Error(t, err)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := Open([]byte("short"), key)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too short")
	})

	t.Run("invalid key", func(t *testing.T) {
		_, err := Open(sealed, []byte("bad"))
		require.Error(t, err)
	})
}

func TestSealToBase64_RoundTrip(t *testing.T) {
	key := make([]byte, KeySize)
	_, _ = rand.Read(key)

	encoded, err := SealToBase64("refresh-token-value", key)
	require.NoError(t, err)

	decoded, err := OpenFromBase64(encoded, key)
	require.NoError(t, err)
	assert.Equal(t, "refresh-token-value", decoded)

	_, err = OpenFromBase64("not base64 !!!", key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode base64")
}
