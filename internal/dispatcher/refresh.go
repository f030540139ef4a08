package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/sqledu-client/internal/adapter"
	"github.com/MKhiriev/sqledu-client/internal/logger"
	"github.com/MKhiriev/sqledu-client/internal/store"
	"github.com/MKhiriev/sqledu-client/models"
)

// refresh exchanges refreshToken for a new access token and persists it.
// With coalescing enabled, concurrent callers holding the same refresh token
// wait for a single exchange.
//
// The exchange runs to completion even when ctx is cancelled: a refresh cut
// short by the caller is not a rejected session. It stays bounded by the
// transport's request timeout.
func (d *Dispatcher) refresh(ctx context.Context, refreshToken string) (string, error) {
	ctx = context.WithoutCancel(ctx)
	if d.refreshGroup == nil {
		return d.exchange(ctx, refreshToken)
	}

	v, err, shared := d.refreshGroup.Do(refreshToken, func() (any, error) {
		return d.exchange(ctx, refreshToken)
	})
	if shared {
		logger.FromContext(ctx).Debug().Msg("joined in-flight refresh")
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (d *Dispatcher) exchange(ctx context.Context, refreshToken string) (string, error) {
	resp, err := d.transport.Send(ctx, adapter.Request{
		URL:     d.baseURL + RefreshPath,
		Method:  http.MethodPost,
		Body:    models.RefreshRequest{RefreshToken: refreshToken},
		Headers: map[string]string{"Content-Type": "application/json"},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	if !isSuccess(resp.StatusCode) {
		return "", fmt.Errorf("%w: refresh endpoint answered %d", ErrRefreshFailed, resp.StatusCode)
	}

	var out models.RefreshResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("%w: response carries no access token", ErrRefreshFailed)
	}

	if err := d.credentials.Set(ctx, store.KeyAccessToken, out.AccessToken); err != nil {
		// the retry still uses the new token explicitly
		logger.FromContext(ctx).Err(err).Msg("failed to persist refreshed access token")
	}

	return out.AccessToken, nil
}
