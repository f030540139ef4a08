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
	defaultQuestionsLimit = 1000
	defaultGenerateCount  = 1
)

// Questions wraps the /questions router.
type Questions struct {
	c dispatcher.Caller
}

// GetQuestions lists exercises. A non-positive limit means 1000.
func (q *Questions) GetQuestions(ctx context.Context, skip, limit int) ([]models.Question, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultQuestionsLimit
	}
	return dispatcher.Do[[]models.Question](ctx, q.c, dispatcher.RequestSpec{
		Path: withQuery("/questions/", url.Values{
			"skip":  {strconv.Itoa(skip)},
			"limit": {strconv.Itoa(limit)},
		}),
		Method: http.MethodGet,
	})
}

func (q *Questions) GetQuestion(ctx context.Context, id int64) (models.Question, error) {
	return dispatcher.Do[models.Question](ctx, q.c, dispatcher.RequestSpec{
		Path:   "/questions/" + itoa(id),
		Method: http.MethodGet,
	})
}

func (q *Questions) CreateQuestion(ctx context.Context, in models.QuestionInput) (models.Question, error) {
	return dispatcher.Do[models.Question](ctx, q.c, dispatcher.RequestSpec{
		Path:   "/questions/",
		Method: http.MethodPost,
		Body:   in,
	})
}

func (q *Questions) UpdateQuestion(ctx context.Context, id int64, in models.QuestionInput) (models.Question, error) {
	return dispatcher.Do[models.Question](ctx, q.c, dispatcher.RequestSpec{
		Path:   "/questions/" + itoa(id),
		Method: http.MethodPut,
		Body:   in,
	})
}

func (q *Questions) DeleteQuestion(ctx context.Context, id int64) (models.ResponseOut, error) {
	return dispatcher.Do[models.ResponseOut](ctx, q.c, dispatcher.RequestSpec{
		Path:   "/questions/" + itoa(id),
		Method: http.MethodDelete,
	})
}

// SubmitDifficultyFeedback records a 1..10 difficulty rating for question id.
func (q *Questions) SubmitDifficultyFeedback(ctx context.Context, id int64, rating int) (models.ResponseOut, error) {
	return dispatcher.Do[models.ResponseOut](ctx, q.c, dispatcher.RequestSpec{
		Path:   "/questions/" + itoa(id) + "/difficulty-feedback",
		Method: http.MethodPost,
		Body:   models.DifficultyFeedbackRequest{Rating: rating},
	})
}

func (q *Questions) GetKnowledgePoints(ctx context.Context) ([]models.KnowledgePoint, error) {
	return dispatcher.Do[[]models.KnowledgePoint](ctx, q.c, dispatcher.RequestSpec{
		Path:   "/questions/knowledge-points",
		Method: http.MethodGet,
	})
}

func (q *Questions) GenerateSchemaPreview(ctx context.Context, id int64) (models.Question, error) {
	return dispatcher.Do[models.Question](ctx, q.c, dispatcher.RequestSpec{
		Path:   "/questions/" + itoa(id) + "/generate-schema-preview",
		Method: http.MethodPost,
	})
}

func (q *Questions) GenerateQuestionI18n(ctx context.Context, id int64) (models.Question, error) {
	return dispatcher.Do[models.Question](ctx, q.c, dispatcher.RequestSpec{
		Path:   "/questions/" + itoa(id) + "/generate-i18n",
		Method: http.MethodPost,
	})
}

// GenerateQuestionsByAI drafts count new exercises for a knowledge point.
// A non-positive count means 1.
func (q *Questions) GenerateQuestionsByAI(ctx context.Context, knowledgePointID string, count int) ([]models.Question, error) {
	if count <= 0 {
		count = defaultGenerateCount
	}
	return dispatcher.Do[[]models.Question](ctx, q.c, dispatcher.RequestSpec{
		Path:   "/questions/generate-by-ai",
		Method: http.MethodPost,
		Body:   models.GenerateQuestionsRequest{KnowledgePointID: knowledgePointID, Count: count},
	})
}
