package store

import "errors"

// Sentinel errors returned by credential stores. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrCredentialNotFound is returned by Get when nothing is stored under
	// the requested key.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrSealing is returned when a value cannot be sealed or opened.
	ErrSealing = errors.New("failed to seal credential")
)
