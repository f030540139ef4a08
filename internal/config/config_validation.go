// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

const minStoreKeyLen = 8

// validate checks that the merged [ClientConfig] is usable at startup.
func (cfg *ClientConfig) validate() error {
	if strings.TrimSpace(cfg.Storage.DB.DSN) == "" {
		return ErrInvalidStorageConfigs
	}

	switch {
	case strings.TrimSpace(cfg.Adapter.HTTPAddress) == "":
		return fmt.Errorf("%w: empty backend address", ErrInvalidAdapterConfigs)
	case cfg.Adapter.RequestTimeout <= 0:
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
	}

	if cfg.App.StoreKey != "" && len(cfg.App.StoreKey) < minStoreKeyLen {
		return fmt.Errorf("%w: store key shorter than %d characters", ErrInvalidAppConfigs, minStoreKeyLen)
	}

	return nil
}
