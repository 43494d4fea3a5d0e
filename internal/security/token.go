package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewSessionToken returns an opaque URL-safe session handle.
func NewSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
