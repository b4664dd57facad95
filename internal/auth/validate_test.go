package auth

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Passw0rd!", false},
		{"valid with slash", "Aa1/aaaa", false},
		{"too short", "Aa1!xyz", true},
		{"too long", "Aa1!aaaaaaaaaaaaaaaaaaaaa", true},
		{"no uppercase", "passw0rd!", true},
		{"no lowercase", "PASSW0RD!", true},
		{"no digit", "Password!", true},
		{"no special", "Passw0rdX", true},
		{"special outside charset", "Passw0rd%", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNIP(t *testing.T) {
	if err := ValidateNIP("1234567890"); err != nil {
		t.Fatalf("expected numeric nip to validate, got %v", err)
	}
	if err := ValidateNIP("12345abc"); err == nil {
		t.Fatal("expected non-numeric nip to fail")
	}
}

func TestNormalizePhone(t *testing.T) {
	cleaned, err := NormalizePhone("0812-3456-7890")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cleaned != "081234567890" {
		t.Fatalf("expected formatting stripped, got %q", cleaned)
	}

	if _, err := NormalizePhone("+6281234567890"); err != nil {
		t.Fatalf("expected +62 prefix to validate, got %v", err)
	}
	if _, err := NormalizePhone("12345"); err == nil {
		t.Fatal("expected short number to fail")
	}
	if _, err := NormalizePhone("9912345678901"); err == nil {
		t.Fatal("expected invalid prefix to fail")
	}
}

func TestValidateEmailDomain(t *testing.T) {
	if err := ValidateEmailDomain("j@x.com", ""); err != nil {
		t.Fatalf("expected empty policy to allow any domain, got %v", err)
	}
	if err := ValidateEmailDomain("a@jabarprov.go.id", "jabarprov.go.id"); err != nil {
		t.Fatalf("expected matching domain to pass, got %v", err)
	}
	if err := ValidateEmailDomain("a@example.com", "jabarprov.go.id"); err == nil {
		t.Fatal("expected mismatched domain to fail")
	}
}
