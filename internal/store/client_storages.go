package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sqledu-client/internal/config"
	"github.com/MKhiriev/sqledu-client/internal/crypto"
	"github.com/MKhiriev/sqledu-client/internal/logger"
)

// MemoryDSN selects the non-persistent credential store.
const MemoryDSN = ":memory:"

// ClientStorages groups the client-side storage backends.
type ClientStorages struct {
	// Credentials is the process-wide credential store shared by the
	// dispatcher and the session flows.
	Credentials CredentialStore

	db *DB
}

// NewClientStorages initialises the client storage layer:
//  1. ":memory:" selects [NewMemoryStore] and nothing else is opened.
//  2. Otherwise the SQLite file at cfg.DB.DSN is opened (and created) and
//     pending migrations are applied.
//  3. Credentials are sealed with a key derived from appCfg.StoreKey, or
//     stored as-is when no key is configured.
func NewClientStorages(ctx context.Context, cfg config.Storage, appCfg config.App, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	if cfg.DB.DSN == MemoryDSN {
		return &ClientStorages{Credentials: NewMemoryStore()}, nil
	}

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	var sealer crypto.Sealer = crypto.NopSealer{}
	if appCfg.StoreKey != "" {
		sealer = crypto.NewSealer(appCfg.StoreKey)
	}

	return &ClientStorages{
		Credentials: NewSQLiteCredentialStore(db, sealer, logger),
		db:          db,
	}, nil
}

// Close releases the underlying database, if any.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
