// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dispatcher

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed call.
type Kind int

const (
	// KindTransport means no response was received from the backend.
	KindTransport Kind = iota + 1
	// KindUnauthenticated is an authentication failure that was not
	// refreshed: the call was already a retry, or it targeted an auth endpoint.
	KindUnauthenticated
	// KindAuthIrrecoverable means the session could not be refreshed and the
	// user was logged out.
	KindAuthIrrecoverable
	// KindPermissionDenied is a 403 that does not signal an auth problem.
	KindPermissionDenied
	// KindApplication covers every other failure.
	KindApplication
)

// Sentinels matched by [ClientError] through errors.Is, one per [Kind].
var (
	ErrTransport         = errors.New("transport failure")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrAuthIrrecoverable = errors.New("session expired")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrApplication       = errors.New("request failed")
)

var (
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrNoRefreshToken   = errors.New("no refresh token stored")
	ErrRefreshFailed    = errors.New("token refresh failed")
	ErrDecodeResponse   = errors.New("cannot decode response body")
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindAuthIrrecoverable:
		return "auth irrecoverable"
	case KindPermissionDenied:
		return "permission denied"
	case KindApplication:
		return "application"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindUnauthenticated:
		return ErrUnauthenticated
	case KindAuthIrrecoverable:
		return ErrAuthIrrecoverable
	case KindPermissionDenied:
		return ErrPermissionDenied
	default:
		return ErrApplication
	}
}

// ClientError is the single error type returned by the dispatcher.
//
// For HTTP failures StatusCode and RawBody describe the response that caused
// the failure. After a failed refresh this is the original response, never
// the refresh call's. Detail is the backend's "detail" text (possibly empty)
// and Message is what the user should see.
type ClientError struct {
	Kind       Kind
	StatusCode int
	RawBody    []byte
	Detail     string
	Message    string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": http %d", e.StatusCode)
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *ClientError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// AsClientError reports whether err is (or wraps) a *ClientError.
func AsClientError(err error) (*ClientError, bool) {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
