// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sqledu command-line application.
//
// Each invocation runs one command (login, questions, check, ...) against
// the backend through the session service and the endpoint wrappers, prints
// the result as indented JSON and exits. Notifications raised while the
// command runs are rendered by the notify package on stderr.
package client
