package service

import "errors"

var (
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrIncompleteLogin  = errors.New("login response carries no tokens")
	ErrPersistSession   = errors.New("cannot persist session")
	ErrCorruptedProfile = errors.New("cached user profile is corrupted")
	ErrMalformedToken   = errors.New("malformed access token")
	ErrClearSession     = errors.New("cannot clear session")
)
