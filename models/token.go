package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse is the success body of POST /auth/refresh.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenClaims is the claim set the backend embeds into its access and
// refresh tokens. Scope distinguishes the two kinds.
type TokenClaims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// TokenInfo is a human-readable summary of a cached token. It is built from
// unverified claims and must never be used for authorization decisions.
type TokenInfo struct {
	Subject   string    `json:"subject"`
	Scope     string    `json:"scope,omitempty"`
	IssuedAt  time.Time `json:"issued_at,omitzero"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
	Expired   bool      `json:"expired"`
}
