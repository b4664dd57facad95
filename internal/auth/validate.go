package auth

import (
	"errors"
	"regexp"
	"strings"
)

var (
	nipPattern     = regexp.MustCompile(`^[0-9]+$`)
	phonePattern   = regexp.MustCompile(`^(\+62|62|0)[0-9]{9,12}$`)
	phoneCleaner   = regexp.MustCompile(`[^\d+]`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[#?!/@&]`)
)

// ValidatePassword enforces the password policy: 8 to 20 characters with at
// least one uppercase letter, one lowercase letter, one digit and one of
// # ? ! / @ &.
func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return errors.New("password harus 8 sampai 20 karakter")
	}
	if !upperPattern.MatchString(password) {
		return errors.New("password harus mengandung minimal 1 huruf kapital")
	}
	if !lowerPattern.MatchString(password) {
		return errors.New("password harus mengandung minimal 1 huruf kecil")
	}
	if !digitPattern.MatchString(password) {
		return errors.New("password harus mengandung minimal 1 angka")
	}
	if !specialPattern.MatchString(password) {
		return errors.New("password harus mengandung minimal 1 karakter khusus (#, ?, !, /, @, &)")
	}
	return nil
}

// ValidateNIP checks the personnel identifier is numeric.
func ValidateNIP(nip string) error {
	if !nipPattern.MatchString(nip) {
		return errors.New("NIP harus berupa angka")
	}
	return nil
}

// NormalizePhone strips formatting characters and validates the Indonesian
// phone format. Returns the cleaned number.
func NormalizePhone(phone string) (string, error) {
	cleaned := phoneCleaner.ReplaceAllString(phone, "")
	if !phonePattern.MatchString(cleaned) {
		return "", errors.New("format nomor telepon tidak valid (contoh: 081234567890)")
	}
	return cleaned, nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmailDomain enforces the optional domain restriction. An empty
// allowed domain disables the check.
func ValidateEmailDomain(email, allowedDomain string) error {
	domain := strings.TrimSpace(strings.TrimPrefix(allowedDomain, "@"))
	if domain == "" {
		return nil
	}
	if !strings.HasSuffix(NormalizeEmail(email), "@"+strings.ToLower(domain)) {
		return errors.New("email harus menggunakan domain @" + domain)
	}
	return nil
}
