package services

import (
	"testing"

	"crosspost/models"
)

func TestGenerateAndValidateToken(t *testing.T) {
	auth := NewAuthService(nil, []byte("test-secret"))

	user := &models.User{ID: "u1", Username: "admin", IsAdmin: true}
	token, err := auth.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", claims.UserID)
	}
	if !claims.IsAdmin {
		t.Error("IsAdmin = false, want true")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	auth := NewAuthService(nil, []byte("test-secret"))
	other := NewAuthService(nil, []byte("different-secret"))

	token, err := auth.GenerateToken(&models.User{ID: "u1", IsAdmin: true})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret validated")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	auth := NewAuthService(nil, []byte("test-secret"))

	for _, token := range []string{"", "not.a.token", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		if _, err := auth.ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) succeeded, want error", token)
		}
	}
}
