package client

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("invalid arguments")
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrTeacherOnly    = errors.New("teacher role required")
)
