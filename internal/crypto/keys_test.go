package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSealingKey(t *testing.T) {
	tests := []struct {
		name       string
		passphrase string
		deviceID   string
		errMsg     string
		wantErr    bool
	}{
		{
			name:       "valid input",
			passphrase: "correct horse battery staple",
			deviceID:   "5f0c3a4e-8d2b-4b7e-9a51-0c6f1d2e3b4a",
		},
		{
			name:     "empty passphrase",
			deviceID: "device",
			wantErr:  true,
			errMsg:   "passphrase cannot be empty",
		},
		{
			name:       "empty device id",
			passphrase: "secret",
			wantErr:    true,
			errMsg:     "device id cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DeriveSealingKey(tt.passphrase, tt.deviceID)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, key)
				return
			}
			require.NoError(t, err)
			assert.Len(t, key, KeySize)
		})
	}
}

func TestDeriveSealingKey_Deterministic(t *testing.T) {
	first, err := DeriveSealingKey("secret", "device-a")
	require.NoError(t, err)
	second, err := DeriveSealingKey("secret", "device-a")
	require.NoError(t, err)
	other, err := DeriveSealingKey("secret", "device-b")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other, "разные устройства должны давать разные ключи")
}
