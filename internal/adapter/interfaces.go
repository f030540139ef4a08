// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport primitive used by the request
// dispatcher to reach the sqledu backend.
//
// The primary abstraction is [Transport], which executes one HTTP exchange
// and reports its status code and raw body. It never interprets status codes:
// a 401 or a 500 is a successful exchange from the transport's point of view.
// Only failures to complete the exchange (DNS, refused connection, timeout)
// are returned as errors, wrapped around [ErrUnreachable].
package adapter

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// Transport executes a single HTTP exchange.
type Transport interface {
	// Send performs req and returns the backend's status code and raw body.
	// A non-nil error means no response was received.
	Send(ctx context.Context, req Request) (*Response, error)
}

// Request describes one outbound exchange.
type Request struct {
	// URL is the absolute target URL.
	URL string
	// Method is the HTTP method (GET, POST, PUT, DELETE).
	Method string
	// Body is serialised as JSON when non-nil.
	Body any
	// Headers are sent verbatim.
	Headers map[string]string
}

// Response is the outcome of a completed exchange.
type Response struct {
	StatusCode int
	Body       []byte
}
