package identity_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/lendaround/lendaround/pkg/identity"
	"github.com/lendaround/lendaround/pkg/models"
)

func signedToken(t *testing.T, claims identity.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestFromToken(t *testing.T) {
	raw := signedToken(t, identity.Claims{
		UserID: 42,
		Email:  "owner@example.com",
		Role:   "seller",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	id, err := identity.FromToken(raw)
	if err != nil {
		t.Fatalf("FromToken: %v", err)
	}
	if id.UserID != 42 || id.Email != "owner@example.com" || id.Role != models.RoleSeller {
		t.Errorf("unexpected identity: %+v", id)
	}
	if !id.Ready() {
		t.Error("decoded identity should be ready")
	}
}

func TestFromToken_Garbage(t *testing.T) {
	if _, err := identity.FromToken("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestFromToken_MissingUserID(t *testing.T) {
	raw := signedToken(t, identity.Claims{Email: "nobody@example.com"})
	if _, err := identity.FromToken(raw); err == nil {
		t.Error("expected error for token without a user id")
	}
}

func TestReady_ZeroValue(t *testing.T) {
	var id identity.Identity
	if id.Ready() {
		t.Error("zero identity must not be ready")
	}
}

func TestFromUser(t *testing.T) {
	u := models.User{ID: 7, Email: "b@example.com", Role: models.RoleBuyer}
	id := identity.FromUser(u)
	if id.UserID != 7 || !id.Ready() {
		t.Errorf("unexpected identity: %+v", id)
	}
}
