package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

type ScryptParams struct {
	N       int
	R       int
	P       int
	KeyLen  int
	SaltLen int
}

var defaultParams = ScryptParams{
	N:       32768,
	R:       8,
	P:       1,
	KeyLen:  64,
	SaltLen: 16,
}

// HashPassword derives a key from the password with a fresh random salt.
// The stored form is "hex(hash).hex(salt)".
func HashPassword(password string) (string, error) {
	return HashPasswordWithParams(password, defaultParams)
}

func HashPasswordWithParams(password string, params ScryptParams) (string, error) {
	salt := make([]byte, params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.KeyLen)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return fmt.Sprintf("%s.%s", hex.EncodeToString(hash), hex.EncodeToString(salt)), nil
}

// VerifyPassword re-derives the key with the stored salt and compares in
// constant time.
func VerifyPassword(password string, stored string) (bool, error) {
	hashHex, saltHex, ok := strings.Cut(stored, ".")
	if !ok {
		return false, fmt.Errorf("malformed password hash")
	}

	hash, err := hex.DecodeString(hashHex)
	if err != nil {
		return false, fmt.Errorf("decode hash: %w", err)
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}
	if len(hash) == 0 || len(salt) == 0 {
		return false, fmt.Errorf("malformed password hash")
	}

	computed, err := scrypt.Key([]byte(password), salt, defaultParams.N, defaultParams.R, defaultParams.P, len(hash))
	if err != nil {
		return false, fmt.Errorf("derive key: %w", err)
	}

	return subtle.ConstantTimeCompare(hash, computed) == 1, nil
}
