// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/sqledu-client/internal/config"
	"github.com/MKhiriev/sqledu-client/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransport(t *testing.T) Transport {
	t.Helper()
	return NewHTTPTransport(config.Adapter{RequestTimeout: 2 * time.Second}, logger.Nop())
}

// ── Send ─────────────────────────────────────────────────────────────────────

func TestSend_PostsJSONBodyAndHeaders(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"t"}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := newTestTransport(t).Send(context.Background(), Request{
		URL:    srv.URL + "/auth/login",
		Method: http.MethodPost,
		Body:   map[string]string{"email": "alice@example.com"},
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer abc",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"token":"t"}`, string(resp.Body))
}

func TestSend_NonSuccessStatusIsNotAnError(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := newTestTransport(t).Send(context.Background(), Request{
		URL:    srv.URL + "/auth/profile",
		Method: http.MethodGet,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"detail":"Not authenticated"}`, string(resp.Body))
}

func TestSend_NilBodySendsNothing(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/questions/{id}", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.Empty(t, b)
		assert.Equal(t, "7", chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := newTestTransport(t).Send(context.Background(), Request{
		URL:    srv.URL + "/questions/7",
		Method: http.MethodDelete,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, resp.Body)
}

func TestSend_UnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	resp, err := newTestTransport(t).Send(context.Background(), Request{
		URL:    url + "/auth/profile",
		Method: http.MethodGet,
	})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrUnreachable)
}

// ── NormalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "adds scheme", in: "localhost:8000", want: "http://localhost:8000"},
		{name: "trims slash", in: "https://api.example.com/api/", want: "https://api.example.com/api"},
		{name: "trims spaces", in: "  http://x:1  ", want: "http://x:1"},
		{name: "empty", in: "   ", wantErr: ErrEmptyAddress},
		{name: "no host", in: "http://", wantErr: ErrInvalidAddress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeBaseURL(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
