// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads on the client before they are
// dispatched, so obviously incomplete input never costs a round trip.
//
// Validation is optionally scoped to named fields: passing field names to
// Validate restricts the checks to those fields.
package validators

import "context"

// Validator validates a value, optionally only the named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
