// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/sqledu-client/internal/api"
	"github.com/MKhiriev/sqledu-client/internal/logger"
	"github.com/MKhiriev/sqledu-client/internal/notify"
	"github.com/MKhiriev/sqledu-client/internal/store"
	"github.com/MKhiriev/sqledu-client/models"
)

// MsgTeacherOnly is shown when a student opens a teacher screen.
const MsgTeacherOnly = "only teachers can access this feature"

var sessionKeys = []string{store.KeyAccessToken, store.KeyRefreshToken, store.KeyUser}

type clientSessionService struct {
	api         *api.API
	credentials store.CredentialStore
	notifier    notify.Notifier
	navigator   notify.Navigator
	logger      *logger.Logger

	now func() time.Time
}

func NewClientSessionService(
	endpoints *api.API,
	credentials store.CredentialStore,
	notifier notify.Notifier,
	navigator notify.Navigator,
	log *logger.Logger,
) ClientSessionService {
	return &clientSessionService{
		api:         endpoints,
		credentials: credentials,
		notifier:    notifier,
		navigator:   navigator,
		logger:      log,
		now:         time.Now,
	}
}

func (s *clientSessionService) Login(ctx context.Context, email, password string) (models.User, error) {
	out, err := s.api.Auth.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return models.User{}, err
	}
	if out.Token == "" || out.RefreshToken == "" {
		return models.User{}, ErrIncompleteLogin
	}

	profile, err := json.Marshal(out.User)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrPersistSession, err)
	}

	session := []struct{ key, value string }{
		{store.KeyAccessToken, out.Token},
		{store.KeyRefreshToken, out.RefreshToken},
		{store.KeyUser, string(profile)},
	}
	for i, entry := range session {
		if err = s.credentials.Set(ctx, entry.key, entry.value); err != nil {
			// leave no partial session behind
			for _, written := range session[:i] {
				s.discard(ctx, written.key)
			}
			return models.User{}, fmt.Errorf("%w: %v", ErrPersistSession, err)
		}
	}

	s.logger.Info().
		Str("func", "clientSessionService.Login").
		Int64("user_id", out.User.ID).
		Str("role", string(out.User.Role)).
		Msg("signed in")

	return out.User, nil
}

func (s *clientSessionService) Register(ctx context.Context, req models.RegisterRequest) (models.ResponseOut, error) {
	return s.api.Auth.Register(ctx, req)
}

func (s *clientSessionService) RequestEmailCode(ctx context.Context, email string) (models.ResponseOut, error) {
	return s.api.Auth.GetEmailCode(ctx, email)
}

func (s *clientSessionService) Logout(ctx context.Context) error {
	if s.hasToken(ctx) {
		// the local session ends even if the backend cannot be told
		if _, err := s.api.Auth.Logout(ctx); err != nil {
			s.logger.Warn().Err(err).Str("func", "clientSessionService.Logout").Msg("backend logout failed")
		}
	}

	var errs []error
	for _, key := range sessionKeys {
		if err := s.credentials.Remove(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrClearSession, errors.Join(errs...))
	}
	return nil
}

func (s *clientSessionService) EnsureAuthed(ctx context.Context) bool {
	if s.hasToken(ctx) {
		return true
	}
	s.navigator.NavigateTo(notify.RouteLogin)
	return false
}

func (s *clientSessionService) CurrentUser(ctx context.Context) (models.User, error) {
	raw, err := s.credentials.Get(ctx, store.KeyUser)
	if errors.Is(err, store.ErrCredentialNotFound) {
		return models.User{}, ErrNotLoggedIn
	}
	if err != nil {
		return models.User{}, err
	}

	var u models.User
	if err = json.Unmarshal([]byte(raw), &u); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrCorruptedProfile, err)
	}
	return u, nil
}

func (s *clientSessionService) RefreshProfile(ctx context.Context) (models.User, error) {
	u, err := s.api.Auth.GetProfile(ctx)
	if err != nil {
		return models.User{}, err
	}
	if err = s.cacheUser(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *clientSessionService) IsTeacher(ctx context.Context) bool {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return false
	}
	return u.IsTeacher()
}

func (s *clientSessionService) RequireTeacher(ctx context.Context) bool {
	if s.IsTeacher(ctx) {
		return true
	}
	s.notifier.Notify(MsgTeacherOnly)
	s.navigator.NavigateTo(notify.RouteHome)
	return false
}

func (s *clientSessionService) AccessToken(ctx context.Context) (string, error) {
	token, err := s.credentials.Get(ctx, store.KeyAccessToken)
	if errors.Is(err, store.ErrCredentialNotFound) {
		return "", ErrNotLoggedIn
	}
	return token, err
}

func (s *clientSessionService) TokenInfo(ctx context.Context) (models.TokenInfo, error) {
	raw, err := s.AccessToken(ctx)
	if err != nil {
		return models.TokenInfo{}, err
	}

	claims := &models.TokenClaims{}
	if _, _, err = jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return models.TokenInfo{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	info := models.TokenInfo{
		Subject: claims.Subject,
		Scope:   claims.Scope,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		info.Expired = !s.now().Before(info.ExpiresAt)
	}
	return info, nil
}

func (s *clientSessionService) hasToken(ctx context.Context) bool {
	token, err := s.credentials.Get(ctx, store.KeyAccessToken)
	return err == nil && token != ""
}

func (s *clientSessionService) discard(ctx context.Context, key string) {
	if err := s.credentials.Remove(ctx, key); err != nil {
		s.logger.Err(err).
			Str("func", "clientSessionService.discard").
			Str("key", key).
			Msg("failed to roll back credential")
	}
}

func (s *clientSessionService) cacheUser(ctx context.Context, u models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistSession, err)
	}
	if err = s.credentials.Set(ctx, store.KeyUser, string(raw)); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistSession, err)
	}
	return nil
}
