package validators

import (
	"context"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/MKhiriev/sqledu-client/models"
)

// Field names accepted by [RequestValidator.Validate].
const (
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldUsername         = "username"
	FieldConfirmPassword  = "confirm_password"
	FieldCaptcha          = "captcha"
	FieldSQL              = "sql"
	FieldQuestionID       = "question_id"
	FieldMessage          = "message"
	FieldRating           = "rating"
	FieldKnowledgePointID = "knowledge_point_id"
	FieldCount            = "count"
)

const (
	minRating   = 1
	maxRating   = 10
	maxGenerate = 10
)

// RequestValidator validates the request bodies the CLI sends.
type RequestValidator struct{}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.CheckSQLRequest:
		return v.validateCheckSQL(value, fields...)
	case *models.CheckSQLRequest:
		return v.validateCheckSQL(*value, fields...)

	case models.SQLHintRequest:
		return run(fields, map[string]func() error{
			FieldSQL: func() error { return requireText(value.SQL, ErrEmptySQL) },
		})

	case models.ChatRequest:
		return v.validateChat(value, fields...)
	case *models.ChatRequest:
		return v.validateChat(*value, fields...)

	case models.DifficultyFeedbackRequest:
		return run(fields, map[string]func() error{
			FieldRating: func() error { return checkRating(value.Rating) },
		})

	case models.GenerateQuestionsRequest:
		return v.validateGenerate(value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	return run(fields, map[string]func() error{
		FieldEmail:    func() error { return requireText(req.Email, ErrEmptyLogin) },
		FieldPassword: func() error { return requireText(req.Password, ErrEmptyPassword) },
	})
}

func (v *RequestValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	return run(fields, map[string]func() error{
		FieldEmail:    func() error { return checkEmail(req.Email) },
		FieldUsername: func() error { return requireText(req.Username, ErrEmptyUsername) },
		FieldPassword: func() error { return requireText(req.Password, ErrEmptyPassword) },
		FieldConfirmPassword: func() error {
			if req.Password != req.ConfirmPassword {
				return ErrPasswordMismatch
			}
			return nil
		},
		FieldCaptcha: func() error { return requireText(req.Captcha, ErrEmptyCaptcha) },
	})
}

func (v *RequestValidator) validateCheckSQL(req models.CheckSQLRequest, fields ...string) error {
	return run(fields, map[string]func() error{
		FieldSQL:        func() error { return requireText(req.StudentSQL, ErrEmptySQL) },
		FieldQuestionID: func() error { return checkID(req.QuestionID) },
	})
}

func (v *RequestValidator) validateChat(req models.ChatRequest, fields ...string) error {
	return run(fields, map[string]func() error{
		FieldQuestionID: func() error { return checkID(req.QuestionID) },
		FieldMessage:    func() error { return requireText(req.Message, ErrEmptyMessage) },
	})
}

func (v *RequestValidator) validateGenerate(req models.GenerateQuestionsRequest, fields ...string) error {
	return run(fields, map[string]func() error{
		FieldKnowledgePointID: func() error { return requireText(req.KnowledgePointID, ErrEmptyKnowledgePoint) },
		FieldCount: func() error {
			if req.Count < 1 || req.Count > maxGenerate {
				return ErrCountOutOfRange
			}
			return nil
		},
	})
}

// run executes the checks for the requested fields (all of them when
// fields is empty) in a stable order and returns the first failure.
func run(fields []string, checks map[string]func() error) error {
	for _, f := range fields {
		if _, ok := checks[f]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	names := fields
	if len(names) == 0 {
		for name := range checks {
			names = append(names, name)
		}
		slices.Sort(names)
	}

	for _, name := range names {
		if err := checks[name](); err != nil {
			return err
		}
	}
	return nil
}

func requireText(s string, err error) error {
	if strings.TrimSpace(s) == "" {
		return err
	}
	return nil
}

func checkEmail(s string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(s))
	if err != nil || addr.Name != "" {
		return ErrInvalidEmail
	}
	return nil
}

func checkID(id int64) error {
	if id <= 0 {
		return ErrInvalidQuestionID
	}
	return nil
}

func checkRating(r int) error {
	if r < minRating || r > maxRating {
		return ErrRatingOutOfRange
	}
	return nil
}
