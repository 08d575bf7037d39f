package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

var ErrEmptySalt = errors.New("password salt is empty")

// HashParams configures the Argon2id hashing parameters.
type HashParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultHashParams returns recommended Argon2id parameters for password hashing.
func DefaultHashParams() HashParams {
	return HashParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// HashPassword derives an Argon2id key from password using a fresh random salt.
// Hash and salt are returned separately so they can be stored in their own columns.
func HashPassword(password string) (hash, salt []byte, err error) {
	params := DefaultHashParams()

	salt = make([]byte, params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generating salt: %w", err)
	}

	return deriveKey(password, salt, params), salt, nil
}

// VerifyPassword checks whether password, combined with salt, produces hash.
// Uses constant-time comparison to prevent timing attacks.
func VerifyPassword(password string, hash, salt []byte) (bool, error) {
	if len(salt) == 0 {
		return false, ErrEmptySalt
	}

	params := DefaultHashParams()
	params.KeyLength = uint32(len(hash))

	candidate := deriveKey(password, salt, params)
	return subtle.ConstantTimeCompare(hash, candidate) == 1, nil
}

func deriveKey(password string, salt []byte, p HashParams) []byte {
	return argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
}
