package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyLogin          = errors.New("email or username is required")
	ErrEmptyPassword       = errors.New("password is required")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrEmptyUsername       = errors.New("username is required")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrEmptyCaptcha        = errors.New("email code is required")
	ErrEmptySQL            = errors.New("SQL is required")
	ErrInvalidQuestionID   = errors.New("invalid question ID")
	ErrEmptyMessage        = errors.New("message is required")
	ErrRatingOutOfRange    = errors.New("rating must be between 1 and 10")
	ErrEmptyKnowledgePoint = errors.New("knowledge point is required")
	ErrCountOutOfRange     = errors.New("count must be between 1 and 10")
)
