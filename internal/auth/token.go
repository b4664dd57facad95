package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

const rawTokenBytes = 48

// NewRawToken generates a cryptographically random URL-safe one-time token.
// Only its sha256 is ever stored.
func NewRawToken() (string, error) {
	buf := make([]byte, rawTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashRawToken returns the hex sha256 digest under which a raw token is stored.
func HashRawToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
