// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package api holds one typed function per backend endpoint. Every function
// only fixes the path, method and payload shape and hands the call to the
// dispatcher; none of them branch on the outcome.
package api

import (
	"net/url"
	"strconv"

	"github.com/MKhiriev/sqledu-client/internal/dispatcher"
)

// API groups the endpoint wrappers by backend router.
type API struct {
	Auth      *Auth
	Questions *Questions
	AI        *AI
}

// New returns the wrappers bound to c.
func New(c dispatcher.Caller) *API {
	return &API{
		Auth:      &Auth{c: c},
		Questions: &Questions{c: c},
		AI:        &AI{c: c},
	}
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
