// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// routeHints maps routes to the command that opens the matching screen.
var routeHints = map[string]string{
	RouteLogin: "run `sqledu login` to sign in again",
	RouteHome:  "run `sqledu questions` to return to the question list",
}

// Terminal renders notifications and navigation hints on a terminal stream
// (normally stderr so they never mix with command output).
type Terminal struct {
	mu    sync.Mutex
	out   io.Writer
	route string

	toast lipgloss.Style
	hint  lipgloss.Style
}

// NewTerminal returns a Terminal writing to out. Colours are only emitted
// when out is a terminal.
func NewTerminal(out io.Writer) *Terminal {
	r := lipgloss.NewRenderer(out)
	return &Terminal{
		out: out,
		toast: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#E0556B")).
			Padding(0, 1),
		hint: r.NewStyle().
			Faint(true).
			Italic(true),
	}
}

// Notify prints message as a toast line.
func (t *Terminal) Notify(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintln(t.out, t.toast.Render(message))
}

// NavigateTo records route as the current screen and prints a hint telling
// the user how to get there.
func (t *Terminal) NavigateTo(route string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.route = route
	hint, ok := routeHints[route]
	if !ok {
		hint = "open " + route
	}
	fmt.Fprintln(t.out, t.hint.Render("→ "+hint))
}

// Route returns the last route navigated to, or "" if none.
func (t *Terminal) Route() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.route
}
