// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify holds the user-facing side effects of the request layer:
// transient notifications ("toasts") and navigation between screens.
//
// Both capabilities are fire-and-forget. Implementations must never block
// the caller on user interaction and never report failures back.
package notify

//go:generate mockgen -source=interfaces.go -destination=../mock/notify_mock.go -package=mock

// Application routes the request layer navigates to.
const (
	RouteLogin = "/pages/login/index"
	RouteHome  = "/pages/index/index"
)

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(message string)
}

// Navigator switches the application to another screen.
type Navigator interface {
	NavigateTo(route string)
}
