package utils

import (
	"strings"
	"testing"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "Dana", "ADMIN")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.MemberID != 42 {
		t.Errorf("member ID = %d, want 42", claims.MemberID)
	}
	if claims.Name != "Dana" {
		t.Errorf("name = %q, want Dana", claims.Name)
	}
	if claims.Role != "ADMIN" {
		t.Errorf("role = %q, want ADMIN", claims.Role)
	}
}

func TestRefreshTokenCarriesOnlyMemberID(t *testing.T) {
	token, err := GenerateRefreshToken(7)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.MemberID != 7 {
		t.Errorf("member ID = %d, want 7", claims.MemberID)
	}
	if claims.Name != "" || claims.Role != "" {
		t.Errorf("refresh token leaked identity claims: name=%q role=%q", claims.Name, claims.Role)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := ValidateToken(token); err == nil {
			t.Errorf("token %q validated, want error", token)
		}
	}
}

func TestValidateTokenRejectsTamperedSignature(t *testing.T) {
	token, err := GenerateAccessToken(1, "Dana", "USER")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := ValidateToken(tampered); err == nil {
		t.Errorf("tampered token validated, want error")
	}
}
