package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/sqledu-client/internal/api"
	"github.com/MKhiriev/sqledu-client/internal/dispatcher"
	"github.com/MKhiriev/sqledu-client/internal/logger"
	"github.com/MKhiriev/sqledu-client/internal/mock"
	"github.com/MKhiriev/sqledu-client/internal/notify"
	"github.com/MKhiriev/sqledu-client/internal/store"
	"github.com/MKhiriev/sqledu-client/models"
)

// scriptedCaller answers each path with a canned outcome and records calls.
type scriptedCaller struct {
	replies map[string]string
	errs    map[string]error
	calls   []dispatcher.RequestSpec
}

func (c *scriptedCaller) Dispatch(_ context.Context, spec dispatcher.RequestSpec) (json.RawMessage, error) {
	c.calls = append(c.calls, spec)
	if err := c.errs[spec.Path]; err != nil {
		return nil, err
	}
	return json.RawMessage(c.replies[spec.Path]), nil
}

func newTestSessionSvc(t *testing.T, caller *scriptedCaller) (
	*clientSessionService,
	*mock.MockCredentialStore,
	*mock.MockNotifier,
	*mock.MockNavigator,
) {
	t.Helper()
	ctrl := gomock.NewController(t)

	creds := mock.NewMockCredentialStore(ctrl)
	notifier := mock.NewMockNotifier(ctrl)
	navigator := mock.NewMockNavigator(ctrl)

	svc := NewClientSessionService(api.New(caller), creds, notifier, navigator, logger.Nop()).(*clientSessionService)
	return svc, creds, notifier, navigator
}

const teacherJSON = `{"id":3,"email":"t@school.io","username":"teach","role":"teacher"}`

// ── Login ────────────────────────────────────────────────────────────────────

func TestClientSessionService_Login_PersistsSession(t *testing.T) {
	caller := &scriptedCaller{replies: map[string]string{
		"/auth/login": `{"user":` + teacherJSON + `,"token":"a1","refresh_token":"r1"}`,
	}}
	svc, creds, _, _ := newTestSessionSvc(t, caller)
	ctx := context.Background()

	gomock.InOrder(
		creds.EXPECT().Set(ctx, store.KeyAccessToken, "a1").Return(nil),
		creds.EXPECT().Set(ctx, store.KeyRefreshToken, "r1").Return(nil),
		creds.EXPECT().Set(ctx, store.KeyUser, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, v string) error {
				assert.JSONEq(t, teacherJSON, v)
				return nil
			},
		),
	)

	u, err := svc.Login(ctx, "teach", "pw")
	require.NoError(t, err)
	assert.True(t, u.IsTeacher())

	require.Len(t, caller.calls, 1)
	assert.Equal(t, models.LoginRequest{Email: "teach", Password: "pw"}, caller.calls[0].Body)
}

func TestClientSessionService_Login_RejectedPersistsNothing(t *testing.T) {
	rejected := &dispatcher.ClientError{Kind: dispatcher.KindUnauthenticated, StatusCode: http.StatusUnauthorized, Message: "Incorrect email or password"}
	caller := &scriptedCaller{errs: map[string]error{"/auth/login": rejected}}
	svc, _, _, _ := newTestSessionSvc(t, caller)

	_, err := svc.Login(context.Background(), "teach", "wrong")
	assert.ErrorIs(t, err, dispatcher.ErrUnauthenticated)
}

func TestClientSessionService_Login_IncompleteResponse(t *testing.T) {
	caller := &scriptedCaller{replies: map[string]string{"/auth/login": `{"user":` + teacherJSON + `,"token":"a1"}`}}
	svc, _, _, _ := newTestSessionSvc(t, caller)

	_, err := svc.Login(context.Background(), "teach", "pw")
	assert.ErrorIs(t, err, ErrIncompleteLogin)
}

func TestClientSessionService_Login_StoreFailure(t *testing.T) {
	caller := &scriptedCaller{replies: map[string]string{"/auth/login": `{"user":{},"token":"a1","refresh_token":"r1"}`}}
	svc, creds, _, _ := newTestSessionSvc(t, caller)

	creds.EXPECT().Set(gomock.Any(), store.KeyAccessToken, "a1").Return(store.ErrExecutingStatement)

	_, err := svc.Login(context.Background(), "teach", "pw")
	assert.ErrorIs(t, err, ErrPersistSession)
}

func TestClientSessionService_Login_PartialPersistIsRolledBack(t *testing.T) {
	tests := []struct {
		name       string
		failingKey string
		rolledBack []string
	}{
		{name: "refresh token", failingKey: store.KeyRefreshToken, rolledBack: []string{store.KeyAccessToken}},
		{name: "profile", failingKey: store.KeyUser, rolledBack: []string{store.KeyAccessToken, store.KeyRefreshToken}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := &scriptedCaller{replies: map[string]string{
				"/auth/login": `{"user":` + teacherJSON + `,"token":"a1","refresh_token":"r1"}`,
			}}
			svc, creds, _, _ := newTestSessionSvc(t, caller)

			var calls []any
			for _, key := range []string{store.KeyAccessToken, store.KeyRefreshToken, store.KeyUser} {
				if key == tt.failingKey {
					calls = append(calls, creds.EXPECT().Set(gomock.Any(), key, gomock.Any()).Return(store.ErrExecutingStatement))
					break
				}
				calls = append(calls, creds.EXPECT().Set(gomock.Any(), key, gomock.Any()).Return(nil))
			}
			for i, key := range tt.rolledBack {
				var err error
				if i == 0 {
					// a failed rollback does not stop the others
					err = store.ErrExecutingStatement
				}
				calls = append(calls, creds.EXPECT().Remove(gomock.Any(), key).Return(err))
			}
			gomock.InOrder(calls...)

			_, err := svc.Login(context.Background(), "teach", "pw")
			assert.ErrorIs(t, err, ErrPersistSession)
		})
	}
}

func TestClientSessionService_Login_PartialPersistLeavesNoSession(t *testing.T) {
	caller := &scriptedCaller{replies: map[string]string{
		"/auth/login": `{"user":` + teacherJSON + `,"token":"a1","refresh_token":"r1"}`,
	}}
	creds := &failingSetStore{CredentialStore: store.NewMemoryStore(), failKey: store.KeyUser}
	svc := NewClientSessionService(api.New(caller), creds, &notify.Recorder{}, &notify.Recorder{}, logger.Nop())
	ctx := context.Background()

	_, err := svc.Login(ctx, "teach", "pw")
	require.ErrorIs(t, err, ErrPersistSession)

	for _, key := range []string{store.KeyAccessToken, store.KeyRefreshToken, store.KeyUser} {
		_, err = creds.Get(ctx, key)
		assert.ErrorIs(t, err, store.ErrCredentialNotFound, key)
	}
	assert.False(t, svc.EnsureAuthed(ctx))
}

// failingSetStore refuses writes to failKey.
type failingSetStore struct {
	store.CredentialStore
	failKey string
}

func (s *failingSetStore) Set(ctx context.Context, key, value string) error {
	if key == s.failKey {
		return store.ErrExecutingStatement
	}
	return s.CredentialStore.Set(ctx, key, value)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestClientSessionService_Logout_TellsBackendThenClears(t *testing.T) {
	caller := &scriptedCaller{replies: map[string]string{"/auth/logout": `{"result":"success"}`}}
	svc, creds, _, _ := newTestSessionSvc(t, caller)
	ctx := context.Background()

	gomock.InOrder(
		creds.EXPECT().Get(ctx, store.KeyAccessToken).Return("a1", nil),
		creds.EXPECT().Remove(ctx, store.KeyAccessToken).Return(nil),
		creds.EXPECT().Remove(ctx, store.KeyRefreshToken).Return(nil),
		creds.EXPECT().Remove(ctx, store.KeyUser).Return(nil),
	)

	require.NoError(t, svc.Logout(ctx))
	require.Len(t, caller.calls, 1)
	assert.Equal(t, "/auth/logout", caller.calls[0].Path)
}

func TestClientSessionService_Logout_BackendFailureStillClears(t *testing.T) {
	caller := &scriptedCaller{errs: map[string]error{"/auth/logout": &dispatcher.ClientError{Kind: dispatcher.KindTransport}}}
	svc, creds, _, _ := newTestSessionSvc(t, caller)

	creds.EXPECT().Get(gomock.Any(), store.KeyAccessToken).Return("a1", nil)
	creds.EXPECT().Remove(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	assert.NoError(t, svc.Logout(context.Background()))
}

func TestClientSessionService_Logout_WithoutTokenSkipsBackend(t *testing.T) {
	caller := &scriptedCaller{}
	svc, creds, _, _ := newTestSessionSvc(t, caller)

	creds.EXPECT().Get(gomock.Any(), store.KeyAccessToken).Return("", store.ErrCredentialNotFound)
	creds.EXPECT().Remove(gomock.Any(), store.KeyAccessToken).Return(nil)
	creds.EXPECT().Remove(gomock.Any(), store.KeyRefreshToken).Return(errors.New("locked"))
	creds.EXPECT().Remove(gomock.Any(), store.KeyUser).Return(nil)

	err := svc.Logout(context.Background())
	assert.ErrorIs(t, err, ErrClearSession)
	assert.Empty(t, caller.calls)
}

// ── guards ───────────────────────────────────────────────────────────────────

func TestClientSessionService_EnsureAuthed(t *testing.T) {
	svc, creds, _, navigator := newTestSessionSvc(t, &scriptedCaller{})
	ctx := context.Background()

	creds.EXPECT().Get(ctx, store.KeyAccessToken).Return("a1", nil)
	assert.True(t, svc.EnsureAuthed(ctx))

	gomock.InOrder(
		creds.EXPECT().Get(ctx, store.KeyAccessToken).Return("", store.ErrCredentialNotFound),
		navigator.EXPECT().NavigateTo(notify.RouteLogin),
	)
	assert.False(t, svc.EnsureAuthed(ctx))
}

func TestClientSessionService_RequireTeacher(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		userErr error
		want    bool
	}{
		{name: "teacher", user: teacherJSON, want: true},
		{name: "student", user: `{"id":1,"role":"student"}`, want: false},
		{name: "no profile", userErr: store.ErrCredentialNotFound, want: false},
		{name: "corrupted profile", user: `{`, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, creds, notifier, navigator := newTestSessionSvc(t, &scriptedCaller{})
			ctx := context.Background()

			creds.EXPECT().Get(ctx, store.KeyUser).Return(tt.user, tt.userErr)
			if !tt.want {
				gomock.InOrder(
					notifier.EXPECT().Notify(MsgTeacherOnly),
					navigator.EXPECT().NavigateTo(notify.RouteHome),
				)
			}

			assert.Equal(t, tt.want, svc.RequireTeacher(ctx))
		})
	}
}

func TestClientSessionService_CurrentUser(t *testing.T) {
	svc, creds, _, _ := newTestSessionSvc(t, &scriptedCaller{})
	ctx := context.Background()

	creds.EXPECT().Get(ctx, store.KeyUser).Return("", store.ErrCredentialNotFound)
	_, err := svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	creds.EXPECT().Get(ctx, store.KeyUser).Return("not-json", nil)
	_, err = svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrCorruptedProfile)

	creds.EXPECT().Get(ctx, store.KeyUser).Return(teacherJSON, nil)
	u, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "teach", u.Username)
}

func TestClientSessionService_RefreshProfile_CachesUser(t *testing.T) {
	caller := &scriptedCaller{replies: map[string]string{"/auth/profile": `{"id":1,"username":"stu","role":"student","level":4}`}}
	svc, creds, _, _ := newTestSessionSvc(t, caller)

	creds.EXPECT().Set(gomock.Any(), store.KeyUser, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, v string) error {
			var u models.User
			require.NoError(t, json.Unmarshal([]byte(v), &u))
			assert.Equal(t, 4, u.Level)
			return nil
		},
	)

	u, err := svc.RefreshProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stu", u.Username)
}

// ── TokenInfo ────────────────────────────────────────────────────────────────

func signedToken(t *testing.T, claims models.TokenClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestClientSessionService_TokenInfo(t *testing.T) {
	issued := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	expires := issued.Add(30 * time.Minute)
	token := signedToken(t, models.TokenClaims{
		Scope: "access_token",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})

	tests := []struct {
		name        string
		now         time.Time
		wantExpired bool
	}{
		{name: "valid", now: issued.Add(time.Minute), wantExpired: false},
		{name: "expired", now: expires.Add(time.Second), wantExpired: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, creds, _, _ := newTestSessionSvc(t, &scriptedCaller{})
			svc.now = func() time.Time { return tt.now }
			creds.EXPECT().Get(gomock.Any(), store.KeyAccessToken).Return(token, nil)

			info, err := svc.TokenInfo(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "42", info.Subject)
			assert.Equal(t, "access_token", info.Scope)
			assert.True(t, info.IssuedAt.Equal(issued))
			assert.True(t, info.ExpiresAt.Equal(expires))
			assert.Equal(t, tt.wantExpired, info.Expired)
		})
	}
}

func TestClientSessionService_TokenInfo_Errors(t *testing.T) {
	svc, creds, _, _ := newTestSessionSvc(t, &scriptedCaller{})
	ctx := context.Background()

	creds.EXPECT().Get(ctx, store.KeyAccessToken).Return("", store.ErrCredentialNotFound)
	_, err := svc.TokenInfo(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	creds.EXPECT().Get(ctx, store.KeyAccessToken).Return("opaque-token", nil)
	_, err = svc.TokenInfo(ctx)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
