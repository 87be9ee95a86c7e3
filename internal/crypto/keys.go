package crypto

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id для ключа запечатывания
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
)

// sealingContext separates this derivation from any other use of the same passphrase
const sealingContext = "opensky/session-sealing/v1"

// DeriveSealingKey derives the key that seals tokens at rest.
// The device ID acts as salt so the same passphrase yields different keys
// on different installations.
func DeriveSealingKey(passphrase, deviceID string) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	if deviceID == "" {
		return nil, fmt.Errorf("device id cannot be empty")
	}

	// Соль фиксированной длины из device ID и контекста
	salt := sha256.Sum256([]byte(sealingContext + deviceID))

	key := argon2.IDKey([]byte(passphrase), salt[:], Argon2Time, Argon2Memory, Argon2Threads, KeySize)
	return key, nil
}
