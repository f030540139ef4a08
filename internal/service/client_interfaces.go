package service

import (
	"context"

	"github.com/MKhiriev/sqledu-client/models"
)

// ClientSessionService owns the signed-in session: it is the only code
// besides the dispatcher that writes credentials.
type ClientSessionService interface {
	// Login authenticates and persists the access token, the refresh token and
	// the user profile. Nothing is persisted when the backend rejects the call.
	Login(ctx context.Context, email, password string) (models.User, error)

	// Register creates an account. It does not sign in.
	Register(ctx context.Context, req models.RegisterRequest) (models.ResponseOut, error)

	// RequestEmailCode mails a registration captcha to email.
	RequestEmailCode(ctx context.Context, email string) (models.ResponseOut, error)

	// Logout tells the backend (best effort) and removes local credentials.
	Logout(ctx context.Context) error

	// EnsureAuthed reports whether an access token is stored. When none is,
	// the app is sent to the login screen.
	EnsureAuthed(ctx context.Context) bool

	// CurrentUser returns the cached profile.
	CurrentUser(ctx context.Context) (models.User, error)

	// RefreshProfile fetches the profile from the backend and caches it.
	RefreshProfile(ctx context.Context) (models.User, error)

	// IsTeacher reports whether the cached profile has the teacher role.
	IsTeacher(ctx context.Context) bool

	// RequireTeacher is a screen guard: for non-teachers it notifies the user,
	// sends the app home and returns false.
	RequireTeacher(ctx context.Context) bool

	// AccessToken returns the stored access token.
	AccessToken(ctx context.Context) (string, error)

	// TokenInfo decodes the stored access token's claims without verifying
	// its signature.
	TokenInfo(ctx context.Context) (models.TokenInfo, error)
}
