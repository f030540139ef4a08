package store

import (
	"context"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/credential_store_mock.go -package=mock

// Well-known credential keys.
const (
	// KeyAccessToken holds the short-lived bearer token.
	KeyAccessToken = "token"
	// KeyRefreshToken holds the long-lived token exchanged for new access tokens.
	KeyRefreshToken = "refresh_token"
	// KeyUser holds the JSON-encoded profile of the signed-in user.
	KeyUser = "user"
)

// CredentialStore is a process-wide key/value store of credential strings.
// Implementations must be safe for concurrent use.
type CredentialStore interface {
	// Get returns the value stored under key, or [ErrCredentialNotFound].
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
