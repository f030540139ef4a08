package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/sqledu-client/internal/crypto"
	"github.com/MKhiriev/sqledu-client/internal/logger"
)

type sqliteCredentialStore struct {
	*DB
	sealer crypto.Sealer
	logger *logger.Logger
}

// NewSQLiteCredentialStore returns a [CredentialStore] persisted in db.
// Values are passed through sealer before they are written.
func NewSQLiteCredentialStore(db *DB, sealer crypto.Sealer, logger *logger.Logger) CredentialStore {
	return &sqliteCredentialStore{
		DB:     db,
		sealer: sealer,
		logger: logger,
	}
}

func (s *sqliteCredentialStore) Get(ctx context.Context, key string) (string, error) {
	query, args, err := buildGetCredentialQuery(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var blob []byte
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrCredentialNotFound
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteCredentialStore.Get").
			Str("key", key).
			Msg("failed to query credential")
		return "", fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	plaintext, err := s.sealer.Open(blob)
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteCredentialStore.Get").
			Str("key", key).
			Msg("failed to open sealed credential")
		return "", fmt.Errorf("%w: %v", ErrSealing, err)
	}

	return string(plaintext), nil
}

func (s *sqliteCredentialStore) Set(ctx context.Context, key, value string) error {
	blob, err := s.sealer.Seal([]byte(value))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSealing, err)
	}

	query, args, err := buildUpsertCredentialQuery(key, blob)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "sqliteCredentialStore.Set").
			Str("key", key).
			Msg("failed to upsert credential")
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteCredentialStore) Remove(ctx context.Context, key string) error {
	query, args, err := buildDeleteCredentialQuery(key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "sqliteCredentialStore.Remove").
			Str("key", key).
			Msg("failed to delete credential")
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	return nil
}
