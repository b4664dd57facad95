package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultBcryptCost = bcrypt.DefaultCost

	// bcrypt ignores everything past 72 bytes; truncate explicitly so the
	// behaviour is the same on every backing scheme.
	maxPasswordBytes = 72

	fallbackPrefix = "sha256$"
)

// Hasher hashes and verifies passwords. bcrypt is the primary scheme; when the
// startup self-test fails the hasher degrades to salted sha256 and logs a
// warning, matching the deployment environments where bcrypt is unavailable.
type Hasher struct {
	degraded bool
}

// NewHasher runs a bcrypt self-test and selects the hashing scheme.
func NewHasher() *Hasher {
	if _, err := bcrypt.GenerateFromPassword([]byte("self-test"), bcrypt.MinCost); err != nil {
		logrus.WithError(err).Warn("bcrypt unavailable, degrading to salted sha256 password hashing")
		return &Hasher{degraded: true}
	}
	return &Hasher{}
}

// Degraded reports whether the hasher fell back to the secondary scheme.
func (h *Hasher) Degraded() bool {
	return h != nil && h.degraded
}

// Hash produces a password digest.
func (h *Hasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password must not be empty")
	}
	raw := []byte(password)
	if len(raw) > maxPasswordBytes {
		raw = raw[:maxPasswordBytes]
	}
	if h.Degraded() {
		return hashFallback(raw)
	}
	hashed, err := bcrypt.GenerateFromPassword(raw, defaultBcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether candidate matches the stored digest. The scheme is
// picked from the digest itself so bcrypt hashes keep verifying after a
// fallback and vice versa.
func (h *Hasher) Verify(digest, candidate string) bool {
	if strings.TrimSpace(digest) == "" {
		return false
	}
	raw := []byte(candidate)
	if len(raw) > maxPasswordBytes {
		raw = raw[:maxPasswordBytes]
	}
	if strings.HasPrefix(digest, fallbackPrefix) {
		return verifyFallback(digest, raw)
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), raw) == nil
}

func hashFallback(password []byte) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	sum := sha256.Sum256(append(salt, password...))
	return fmt.Sprintf("%s%s$%s", fallbackPrefix, hex.EncodeToString(salt), hex.EncodeToString(sum[:])), nil
}

func verifyFallback(digest string, password []byte) bool {
	parts := strings.Split(strings.TrimPrefix(digest, fallbackPrefix), "$")
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	sum := sha256.Sum256(append(salt, password...))
	return hmac.Equal(sum[:], want)
}
