package auth

import (
	"testing"
	"time"
)

func TestAccessTokenLifecycle(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute*30, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	token, expiresAt, err := mgr.GenerateAccessToken("jdoe", 3)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatal("expected future expiry time")
	}

	claims, err := mgr.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.Subject != "jdoe" {
		t.Fatalf("expected subject jdoe, got %s", claims.Subject)
	}
	if claims.TokenVersion != 3 {
		t.Fatalf("expected token version 3, got %d", claims.TokenVersion)
	}
}

func TestAccessTokenRejectedAfterExpiry(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Millisecond, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	token, _, err := mgr.GenerateAccessToken("jdoe", 0)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := mgr.ParseAccessToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestAccessTokenRejectedWithWrongSecret(t *testing.T) {
	mgr, _ := NewManager("secret-a", "issuer", time.Minute, time.Hour)
	other, _ := NewManager("secret-b", "issuer", time.Minute, time.Hour)

	token, _, err := mgr.GenerateAccessToken("jdoe", 0)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if _, err := other.ParseAccessToken(token); err == nil {
		t.Fatal("expected token signed with different secret to be rejected")
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("   ", "", time.Hour, time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute*30, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	token, err := mgr.GenerateResetToken("j@x.com")
	if err != nil {
		t.Fatalf("unexpected error generating reset token: %v", err)
	}

	email, err := mgr.ParseResetToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing reset token: %v", err)
	}
	if email != "j@x.com" {
		t.Fatalf("expected email j@x.com, got %s", email)
	}
}

func TestResetTokenRejectsAccessToken(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute*30, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	// an access token lacks the type=reset_password claim
	token, _, err := mgr.GenerateAccessToken("j@x.com", 0)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if _, err := mgr.ParseResetToken(token); err == nil {
		t.Fatal("expected access token to be rejected as reset token")
	}
}
