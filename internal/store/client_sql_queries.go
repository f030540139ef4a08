// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const credentialsTable = "credentials"

// squirrel's default "?" placeholders match SQLite.

func buildGetCredentialQuery(key string) (string, []any, error) {
	return sq.Select("value").
		From(credentialsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}

func buildUpsertCredentialQuery(key string, value []byte) (string, []any, error) {
	return sq.Insert(credentialsTable).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func buildDeleteCredentialQuery(key string) (string, []any, error) {
	return sq.Delete(credentialsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}
