package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const resetTokenType = "reset_password"

// AccessClaims are the claims carried by a bearer token. Subject is the
// username; TokenVersion must match the account's stored counter or the token
// is treated as revoked.
type AccessClaims struct {
	TokenVersion int `json:"ver"`
	jwt.RegisteredClaims
}

// ResetClaims is the legacy email-bound reset token, kept for links issued
// before the opaque store-backed tokens replaced it.
type ResetClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// Manager encapsulates JWT generation and validation.
type Manager struct {
	secret       []byte
	issuer       string
	accessExpiry time.Duration
	resetExpiry  time.Duration
}

// NewManager creates a new JWT manager.
func NewManager(secret, issuer string, accessExpiry, resetExpiry time.Duration) (*Manager, error) {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if accessExpiry <= 0 {
		accessExpiry = time.Hour * 24
	}
	if resetExpiry <= 0 {
		resetExpiry = time.Hour
	}
	if strings.TrimSpace(issuer) == "" {
		issuer = "monitoring-jalan"
	}
	return &Manager{
		secret:       []byte(trimmed),
		issuer:       issuer,
		accessExpiry: accessExpiry,
		resetExpiry:  resetExpiry,
	}, nil
}

// GenerateAccessToken issues a signed bearer token for the given username and
// token version.
func (m *Manager) GenerateAccessToken(username string, tokenVersion int) (string, time.Time, error) {
	if m == nil {
		return "", time.Time{}, errors.New("jwt manager is nil")
	}
	if strings.TrimSpace(username) == "" {
		return "", time.Time{}, errors.New("username must not be empty")
	}
	now := time.Now().UTC()
	expiry := now.Add(m.accessExpiry)

	claims := AccessClaims{
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiry, nil
}

// ParseAccessToken validates the token and returns its claims.
func (m *Manager) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	if m == nil {
		return nil, errors.New("jwt manager is nil")
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, errors.New("token subject is missing")
	}
	return claims, nil
}

// GenerateResetToken issues the legacy email-bound reset token.
func (m *Manager) GenerateResetToken(email string) (string, error) {
	if m == nil {
		return "", errors.New("jwt manager is nil")
	}
	now := time.Now().UTC()
	claims := ResetClaims{
		TokenType: resetTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.resetExpiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseResetToken validates a legacy reset token and returns the bound email.
// Tokens without the exact reset type claim are rejected.
func (m *Manager) ParseResetToken(tokenString string) (string, error) {
	if m == nil {
		return "", errors.New("jwt manager is nil")
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	if claims.TokenType != resetTokenType {
		return "", errors.New("not a reset password token")
	}
	email := strings.TrimSpace(claims.Subject)
	if email == "" {
		return "", errors.New("token subject is missing")
	}
	return email, nil
}
