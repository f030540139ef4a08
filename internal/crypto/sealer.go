// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// ErrBlobTooShort is returned by Open when the blob cannot even hold a nonce.
var ErrBlobTooShort = errors.New("ciphertext too short")

// storeKeySalt domain-separates the credential key from any other use of
// the configured secret.
var storeKeySalt = []byte("sqledu-client/credential-store/v1")

// aeadSealer is the private implementation of [Sealer].
type aeadSealer struct {
	key []byte

	// Argon2id tuning parameters, kept on the struct so tests can lower them.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// NewSealer derives a 256-bit key from secret with Argon2id and returns a
// [Sealer] using XChaCha20-Poly1305. The derivation runs once, here.
//
// Argon2id parameters follow the OWASP recommendation:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func NewSealer(secret string) Sealer {
	s := &aeadSealer{
		argonTime:    1,
		argonMemory:  64 * 1024,
		argonThreads: 4,
	}
	s.key = s.deriveKey(secret)
	return s
}

func (s *aeadSealer) deriveKey(secret string) []byte {
	return argon2.IDKey(
		[]byte(secret),
		storeKeySalt,
		s.argonTime,
		s.argonMemory,
		s.argonThreads,
		chacha20poly1305.KeySize,
	)
}

// Seal implements [Sealer]. The output is nonce (24 bytes) ‖ ciphertext.
func (s *aeadSealer) Seal(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open implements [Sealer].
func (s *aeadSealer) Open(blob []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}

	if len(blob) < aead.NonceSize() {
		return nil, ErrBlobTooShort
	}

	nonce, ciphertext := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return plaintext, nil
}

// NopSealer stores values as-is. Used when no store key is configured.
type NopSealer struct{}

// Seal implements [Sealer].
func (NopSealer) Seal(plaintext []byte) ([]byte, error) { return plaintext, nil }

// Open implements [Sealer].
func (NopSealer) Open(blob []byte) ([]byte, error) { return blob, nil }
