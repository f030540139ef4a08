package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/MKhiriev/sqledu-client/internal/dispatcher"
	"github.com/MKhiriev/sqledu-client/models"
)

// Auth wraps the /auth router.
type Auth struct {
	c dispatcher.Caller
}

// GetEmailCode asks the backend to mail a registration captcha to email.
func (a *Auth) GetEmailCode(ctx context.Context, email string) (models.ResponseOut, error) {
	return dispatcher.Do[models.ResponseOut](ctx, a.c, dispatcher.RequestSpec{
		Path:   withQuery("/auth/code", url.Values{"email": {email}}),
		Method: http.MethodGet,
	})
}

func (a *Auth) Register(ctx context.Context, req models.RegisterRequest) (models.ResponseOut, error) {
	return dispatcher.Do[models.ResponseOut](ctx, a.c, dispatcher.RequestSpec{
		Path:   "/auth/register",
		Method: http.MethodPost,
		Body:   req,
	})
}

func (a *Auth) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	return dispatcher.Do[models.LoginResponse](ctx, a.c, dispatcher.RequestSpec{
		Path:   "/auth/login",
		Method: http.MethodPost,
		Body:   req,
	})
}

// RefreshToken exchanges refreshToken explicitly. The dispatcher refreshes
// on its own when a call is rejected; this is for callers that want to
// renew ahead of time.
func (a *Auth) RefreshToken(ctx context.Context, refreshToken string) (models.RefreshResponse, error) {
	return dispatcher.Do[models.RefreshResponse](ctx, a.c, dispatcher.RequestSpec{
		Path:   dispatcher.RefreshPath,
		Method: http.MethodPost,
		Body:   models.RefreshRequest{RefreshToken: refreshToken},
	})
}

func (a *Auth) Logout(ctx context.Context) (models.ResponseOut, error) {
	return dispatcher.Do[models.ResponseOut](ctx, a.c, dispatcher.RequestSpec{
		Path:   "/auth/logout",
		Method: http.MethodPost,
	})
}

func (a *Auth) GetProfile(ctx context.Context) (models.User, error) {
	return dispatcher.Do[models.User](ctx, a.c, dispatcher.RequestSpec{
		Path:   "/auth/profile",
		Method: http.MethodGet,
	})
}

func (a *Auth) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	return dispatcher.Do[models.User](ctx, a.c, dispatcher.RequestSpec{
		Path:   "/auth/profile",
		Method: http.MethodPut,
		Body:   req,
	})
}

func (a *Auth) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.ResponseOut, error) {
	return dispatcher.Do[models.ResponseOut](ctx, a.c, dispatcher.RequestSpec{
		Path:   "/auth/change-password",
		Method: http.MethodPost,
		Body:   req,
	})
}

// DeleteAccount removes the signed-in account. The password travels in the
// body of the DELETE request.
func (a *Auth) DeleteAccount(ctx context.Context, req models.DeleteAccountRequest) (models.ResponseOut, error) {
	return dispatcher.Do[models.ResponseOut](ctx, a.c, dispatcher.RequestSpec{
		Path:   "/auth/delete-account",
		Method: http.MethodDelete,
		Body:   req,
	})
}
