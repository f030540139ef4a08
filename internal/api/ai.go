package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/sqledu-client/internal/dispatcher"
	"github.com/MKhiriev/sqledu-client/models"
)

const (
	defaultSubmissionsLimit = 100
	defaultChatLimit        = 80
)

// AI wraps the /ai router: hints, judging, submissions and tutor chat.
type AI struct {
	c dispatcher.Caller
}

func (a *AI) SQLHint(ctx context.Context, sql string) (models.SQLHintResponse, error) {
	return dispatcher.Do[models.SQLHintResponse](ctx, a.c, dispatcher.RequestSpec{
		Path:   "/ai/sql-hint",
		Method: http.MethodPost,
		Body:   models.SQLHintRequest{SQL: sql},
	})
}

func (a *AI) CheckSQL(ctx context.Context, req models.CheckSQLRequest) (models.CheckSQLResponse, error) {
	return dispatcher.Do[models.CheckSQLResponse](ctx, a.c, dispatcher.RequestSpec{
		Path:   "/ai/check-sql",
		Method: http.MethodPost,
		Body:   req,
	})
}

// GetMySubmissions lists the caller's answers, newest first. questionID 0
// means all questions; a non-positive limit means 100.
func (a *AI) GetMySubmissions(ctx context.Context, questionID int64, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = defaultSubmissionsLimit
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if questionID > 0 {
		q.Set("question_id", itoa(questionID))
	}
	return dispatcher.Do[[]models.Submission](ctx, a.c, dispatcher.RequestSpec{
		Path:   withQuery("/ai/submissions", q),
		Method: http.MethodGet,
	})
}

func (a *AI) GetSubmission(ctx context.Context, id int64) (models.Submission, error) {
	return dispatcher.Do[models.Submission](ctx, a.c, dispatcher.RequestSpec{
		Path:   "/ai/submissions/" + itoa(id),
		Method: http.MethodGet,
	})
}

// GetChatMessages returns the tutor conversation for a question. A
// non-positive limit means 80.
func (a *AI) GetChatMessages(ctx context.Context, questionID int64, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultChatLimit
	}
	return dispatcher.Do[[]models.ChatMessage](ctx, a.c, dispatcher.RequestSpec{
		Path: withQuery("/ai/chat/messages", url.Values{
			"question_id": {itoa(questionID)},
			"limit":       {strconv.Itoa(limit)},
		}),
		Method: http.MethodGet,
	})
}

func (a *AI) ClearChatMessages(ctx context.Context, questionID int64) (models.DeletedCount, error) {
	return dispatcher.Do[models.DeletedCount](ctx, a.c, dispatcher.RequestSpec{
		Path:   withQuery("/ai/chat/messages", url.Values{"question_id": {itoa(questionID)}}),
		Method: http.MethodDelete,
	})
}

func (a *AI) ChatWithTeacher(ctx context.Context, req models.ChatRequest) (models.ChatReply, error) {
	return dispatcher.Do[models.ChatReply](ctx, a.c, dispatcher.RequestSpec{
		Path:   "/ai/chat",
		Method: http.MethodPost,
		Body:   req,
	})
}
