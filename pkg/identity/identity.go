// Package identity carries the signed-in user's read-only identity as seen
// by the client. The access token is issued and verified by the API; this
// package only decodes its claims so screens can gate on who is signed in.
package identity

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/lendaround/lendaround/pkg/models"
)

// Identity is the injected auth context value. Zero value means "not signed
// in yet"; screens that need an owner must check Ready first.
type Identity struct {
	UserID int64
	Email  string
	Role   models.Role
}

// Ready reports whether a signed-in identity is available. Operations that
// require one treat a not-ready identity as a precondition failure and no-op.
func (id Identity) Ready() bool {
	return id.UserID != 0
}

// Claims are the JWT claims the API embeds in access tokens.
type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// FromToken decodes the claims of an access token without verifying its
// signature. The API is the verifier of record; the client only needs the
// identity fields for display and gating.
func FromToken(token string) (Identity, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, fmt.Errorf("decode token: %w", err)
	}
	if claims.UserID == 0 {
		return Identity{}, fmt.Errorf("token carries no user id")
	}
	return Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   models.Role(claims.Role),
	}, nil
}

// FromUser builds an identity directly from a user record, for responses
// that return the signed-in user alongside the token.
func FromUser(u models.User) Identity {
	return Identity{UserID: u.ID, Email: u.Email, Role: u.Role}
}
