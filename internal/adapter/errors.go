package adapter

import "errors"

var (
	// ErrUnreachable wraps every failure to complete an exchange with the
	// backend (network unreachable, DNS failure, timeout).
	ErrUnreachable = errors.New("backend unreachable")
	// ErrEmptyAddress is returned when no backend address is configured.
	ErrEmptyAddress = errors.New("empty address")
	// ErrInvalidAddress is returned when the backend address lacks a scheme
	// or host.
	ErrInvalidAddress = errors.New("address must include host and scheme")
)
