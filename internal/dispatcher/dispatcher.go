// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dispatcher is the single entry point every backend call goes
// through.
//
// A [Dispatcher] attaches the stored bearer token to outgoing requests and
// turns every non-2xx outcome into a [*ClientError]. When the backend rejects
// the token (a 401, or a 403 whose detail names a credential problem) it
// exchanges the stored refresh token for a new access token and repeats the
// call exactly once. If no refresh is possible the session is torn down: the
// user is told, credentials are removed and the app is sent to the login
// screen.
//
// Each call is a two-state machine (primary, retrying). The retry state is
// carried by a local [attempt] value, so concurrent calls never observe each
// other's progress. They do share the credential store: a token refreshed by
// one call is what every later call sends.
package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/sqledu-client/internal/adapter"
	"github.com/MKhiriev/sqledu-client/internal/logger"
	"github.com/MKhiriev/sqledu-client/internal/notify"
	"github.com/MKhiriev/sqledu-client/internal/store"
)

// RefreshPath is the backend endpoint that exchanges refresh tokens.
const RefreshPath = "/auth/refresh"

// User-facing messages.
const (
	MsgSessionExpired = "session expired, please log in again"
	MsgUnreachable    = "cannot reach the server"
	MsgRequestFailed  = "request failed"
	MsgCancelled      = "request cancelled"
)

// RequestSpec describes one backend call.
type RequestSpec struct {
	// Path is appended to the base URL, e.g. "/questions/".
	Path string
	// Method is GET, POST, PUT or DELETE. Empty means GET.
	Method string
	// Body is sent as JSON when non-nil.
	Body any
	// Headers are merged over the defaults. Authorization is always
	// overwritten when a token is available.
	Headers map[string]string
}

// attempt is the per-call retry state.
type attempt struct {
	retried       bool
	tokenOverride string
}

// Dispatcher issues authenticated calls against one backend. It is safe for
// concurrent use.
type Dispatcher struct {
	baseURL     string
	transport   adapter.Transport
	credentials store.CredentialStore
	notifier    notify.Notifier
	navigator   notify.Navigator
	logger      *logger.Logger

	// refreshGroup is non-nil only with WithRefreshCoalescing.
	refreshGroup *singleflight.Group
}

// New returns a Dispatcher for the backend at baseURL (already normalised,
// without a trailing slash).
func New(
	baseURL string,
	transport adapter.Transport,
	credentials store.CredentialStore,
	notifier notify.Notifier,
	navigator notify.Navigator,
	opts ...Option,
) *Dispatcher {
	d := &Dispatcher{
		baseURL:     strings.TrimRight(baseURL, "/"),
		transport:   transport,
		credentials: credentials,
		notifier:    notifier,
		navigator:   navigator,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch performs spec and returns the raw body of the 2xx response.
// Every failure is a *ClientError. Notifications, credential changes and
// navigation happen before Dispatch returns.
func (d *Dispatcher) Dispatch(ctx context.Context, spec RequestSpec) (json.RawMessage, error) {
	method, err := normalizeMethod(spec.Method)
	if err != nil {
		return nil, &ClientError{Kind: KindApplication, Message: err.Error(), Err: err}
	}
	spec.Method = method

	callLog := d.logger.GetChildLogger()
	callLog.Logger = callLog.With().
		Str("call_id", uuid.NewString()).
		Str("method", spec.Method).
		Str("path", spec.Path).
		Logger()

	return d.send(callLog.WithContext(ctx), spec, attempt{})
}

// send runs one pass of the call: resolve token, exchange, classify.
func (d *Dispatcher) send(ctx context.Context, spec RequestSpec, at attempt) (json.RawMessage, error) {
	log := logger.FromContext(ctx)

	token := at.tokenOverride
	if token == "" {
		token = d.stored(ctx, store.KeyAccessToken)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range spec.Headers {
		headers[http.CanonicalHeaderKey(k)] = v
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	resp, err := d.transport.Send(ctx, adapter.Request{
		URL:     d.baseURL + spec.Path,
		Method:  spec.Method,
		Body:    spec.Body,
		Headers: headers,
	})
	if err != nil {
		log.Err(err).Bool("retried", at.retried).Msg("backend unreachable")
		d.notifier.Notify(MsgUnreachable)
		return nil, &ClientError{Kind: KindTransport, Message: MsgUnreachable, Err: err}
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Bool("retried", at.retried).
		Bool("authorized", token != "").
		Msg("backend responded")

	if isSuccess(resp.StatusCode) {
		return json.RawMessage(resp.Body), nil
	}

	detail := ExtractDetail(resp.Body)
	authFailure := ShouldTryRefresh(resp.StatusCode, detail)

	if authFailure && !at.retried && !IsAuthEndpoint(spec.Path) {
		return d.refreshAndRetry(ctx, spec, resp, detail)
	}

	if !authFailure {
		d.notifier.Notify(messageFor(detail))
	}

	return nil, newResponseError(classify(resp.StatusCode, authFailure), resp, detail, nil)
}

// refreshAndRetry obtains a new access token and repeats spec once with it.
// Any failure to refresh ends the session and reports the original response.
func (d *Dispatcher) refreshAndRetry(ctx context.Context, spec RequestSpec, original *adapter.Response, detail string) (json.RawMessage, error) {
	log := logger.FromContext(ctx)

	refreshToken := d.stored(ctx, store.KeyRefreshToken)
	if refreshToken == "" {
		log.Warn().Int("status", original.StatusCode).Msg("access rejected and no refresh token stored")
		d.forceLogout(ctx)
		return nil, newResponseError(KindAuthIrrecoverable, original, detail, ErrNoRefreshToken)
	}

	log.Info().Int("status", original.StatusCode).Msg("access token rejected, refreshing")

	accessToken, err := d.refresh(ctx, refreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("refresh failed")
		d.forceLogout(ctx)
		return nil, newResponseError(KindAuthIrrecoverable, original, detail, err)
	}

	if err = ctx.Err(); err != nil {
		log.Info().Err(err).Msg("access token refreshed, call cancelled before retry")
		return nil, &ClientError{Kind: KindTransport, Message: MsgCancelled, Err: err}
	}

	log.Info().Msg("access token refreshed, retrying")
	return d.send(ctx, spec, attempt{retried: true, tokenOverride: accessToken})
}

// forceLogout ends the local session. It is safe to run more than once.
func (d *Dispatcher) forceLogout(ctx context.Context) {
	log := logger.FromContext(ctx)

	d.notifier.Notify(MsgSessionExpired)
	for _, key := range []string{store.KeyAccessToken, store.KeyRefreshToken, store.KeyUser} {
		if err := d.credentials.Remove(ctx, key); err != nil {
			log.Err(err).Str("key", key).Msg("failed to remove credential")
		}
	}
	d.navigator.NavigateTo(notify.RouteLogin)

	log.Warn().Msg("session cleared, user sent to login")
}

// stored reads key from the credential store. Read failures count as an
// absent value.
func (d *Dispatcher) stored(ctx context.Context, key string) string {
	v, err := d.credentials.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrCredentialNotFound) {
			logger.FromContext(ctx).Err(err).Str("key", key).Msg("failed to read credential")
		}
		return ""
	}
	return v
}

var allowedMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodDelete: {},
}

func normalizeMethod(method string) (string, error) {
	if method == "" {
		return http.MethodGet, nil
	}
	m := strings.ToUpper(method)
	if _, ok := allowedMethods[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrMethodNotAllowed, method)
	}
	return m, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func classify(status int, authFailure bool) Kind {
	switch {
	case authFailure:
		return KindUnauthenticated
	case status == http.StatusForbidden:
		return KindPermissionDenied
	default:
		return KindApplication
	}
}

func messageFor(detail string) string {
	if detail == "" {
		return MsgRequestFailed
	}
	return detail
}

func newResponseError(kind Kind, resp *adapter.Response, detail string, cause error) *ClientError {
	return &ClientError{
		Kind:       kind,
		StatusCode: resp.StatusCode,
		RawBody:    resp.Body,
		Detail:     detail,
		Message:    messageFor(detail),
		Err:        cause,
	}
}
