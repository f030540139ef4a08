package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/sqledu-client/internal/config"
	"github.com/MKhiriev/sqledu-client/internal/logger"
	"github.com/go-resty/resty/v2"
)

type httpTransport struct {
	client *resty.Client
	logger *logger.Logger
}

// NewHTTPTransport constructs a resty-backed [Transport] whose per-request
// timeout is cfg.RequestTimeout.
func NewHTTPTransport(cfg config.Adapter, log *logger.Logger) Transport {
	client := resty.New().
		SetTimeout(cfg.RequestTimeout)

	return &httpTransport{client: client, logger: log}
}

// NormalizeBaseURL validates raw and returns it with a scheme and without a
// trailing slash. A missing scheme defaults to http.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidAddress
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Send implements [Transport].
func (h *httpTransport) Send(ctx context.Context, req Request) (*Response, error) {
	r := h.client.R().
		SetContext(ctx).
		SetHeaders(req.Headers)
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		h.logger.Err(err).
			Str("func", "httpTransport.Send").
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("exchange failed")
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnreachable, req.Method, req.URL, err)
	}

	h.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL).
		Int("status", resp.StatusCode()).
		Dur("took", resp.Time()).
		Msg("exchange completed")

	return &Response{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}
