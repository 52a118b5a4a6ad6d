package jwt

import (
	"errors"
	"testing"

	"MediPlan-Backend/domain"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	service := NewJWTService()
	userID := uuid.New().String()

	token := service.GenerateTokenUser(userID, domain.RoleUser)
	if token == "" {
		t.Fatal("expected a signed token")
	}

	gotID, gotRole, err := service.GetUserIDByToken(token)
	if err != nil {
		t.Fatalf("GetUserIDByToken failed: %v", err)
	}
	if gotID != userID {
		t.Errorf("expected user id %s, got %s", userID, gotID)
	}
	if gotRole != domain.RoleUser {
		t.Errorf("expected role %s, got %s", domain.RoleUser, gotRole)
	}
}

func TestGetUserIDByTokenRejectsGarbage(t *testing.T) {
	service := NewJWTService()

	if _, _, err := service.GetUserIDByToken("not.a.token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestGetUserIDByTokenRejectsTamperedToken(t *testing.T) {
	service := NewJWTService()

	token := service.GenerateTokenUser(uuid.New().String(), domain.RoleUser)
	tampered := token[:len(token)-2] + "xx"

	if _, _, err := service.GetUserIDByToken(tampered); err == nil {
		t.Fatal("tampered token should be rejected")
	}
}
