package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFastSealer keeps Argon2id cheap so the suite stays quick.
func newFastSealer(secret string) *aeadSealer {
	s := &aeadSealer{argonTime: 1, argonMemory: 1024, argonThreads: 1}
	s.key = s.deriveKey(secret)
	return s
}

func TestSealer_SealOpen(t *testing.T) {
	s := newFastSealer("correct horse battery staple")

	blob, err := s.Seal([]byte("eyJhbGciOi.access.token"))
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "access.token")

	got, err := s.Open(blob)
	require.NoError(t, err)
	assert.Equal(t, "eyJhbGciOi.access.token", string(got))
}

func TestSealer_SealIsRandomised(t *testing.T) {
	s := newFastSealer("secret-secret")

	a, err := s.Seal([]byte("same"))
	require.NoError(t, err)
	b, err := s.Seal([]byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSealer_OpenWithWrongKey(t *testing.T) {
	blob, err := newFastSealer("key-one-key-one").Seal([]byte("value"))
	require.NoError(t, err)

	_, err = newFastSealer("key-two-key-two").Open(blob)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decryption failed")
}

func TestSealer_OpenTampered(t *testing.T) {
	s := newFastSealer("secret-secret")
	blob, err := s.Seal([]byte("value"))
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0xff
	_, err = s.Open(blob)
	assert.Error(t, err)
}

func TestSealer_OpenTooShort(t *testing.T) {
	_, err := newFastSealer("secret-secret").Open([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrBlobTooShort)
}

func TestNewSealer_Deterministic(t *testing.T) {
	a := NewSealer("same-secret").(*aeadSealer)
	b := NewSealer("same-secret").(*aeadSealer)
	assert.Equal(t, a.key, b.key)
	assert.Len(t, a.key, 32)
}

func TestNopSealer(t *testing.T) {
	var s Sealer = NopSealer{}
	blob, err := s.Seal([]byte("plain"))
	require.NoError(t, err)
	got, err := s.Open(blob)
	require.NoError(t, err)
	assert.Equal(t, "plain", string(got))
}
